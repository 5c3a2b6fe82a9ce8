package glossary

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"gopkg.in/yaml.v3"
)

// ErrInvalidImport is returned when an import document does not match
// the import schema.
var ErrInvalidImport = errors.New("invalid import document")

// ImportFile is the YAML document accepted by the import command.
//
//	terms:
//	  - name: Atom
//	    meaning: smallest unit of matter
type ImportFile struct {
	Terms []ImportTerm `yaml:"terms"`
}

// ImportTerm is one entry of an ImportFile.
type ImportTerm struct {
	Name    string `yaml:"name"`
	Meaning string `yaml:"meaning"`
}

const importSchemaURL = "schema://glossary-import.json"

// importSchema describes ImportFile. Record rules (separator, newlines)
// are left to NewTerm.
const importSchema = `{
  "type": "object",
  "required": ["terms"],
  "additionalProperties": false,
  "properties": {
    "terms": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["name", "meaning"],
        "additionalProperties": false,
        "properties": {
          "name":    {"type": "string", "pattern": "\\S"},
          "meaning": {"type": "string", "pattern": "\\S"}
        }
      }
    }
  }
}`

var compiledImportSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	def, err := jsonschema.UnmarshalJSON(strings.NewReader(importSchema))
	if err != nil {
		return nil, fmt.Errorf("parse import schema: %w", err)
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource(importSchemaURL, def); err != nil {
		return nil, fmt.Errorf("add resource: %w", err)
	}
	return c.Compile(importSchemaURL)
})

// LoadTerms decodes an ImportFile, checks it against the import schema
// and validates every entry. No terms are returned unless all of them
// are valid.
func LoadTerms(r io.Reader) ([]Term, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read terms: %w", err)
	}

	var doc any
	if err := yaml.NewDecoder(bytes.NewReader(raw)).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("decode terms: %w", err)
	}
	if err := validateImport(doc); err != nil {
		return nil, err
	}

	var f ImportFile
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("decode terms: %w", err)
	}

	terms := make([]Term, 0, len(f.Terms))
	for i, it := range f.Terms {
		t, err := NewTerm(it.Name, it.Meaning)
		if err != nil {
			return nil, fmt.Errorf("term %d: %w", i+1, err)
		}
		terms = append(terms, t)
	}
	return terms, nil
}

// validateImport checks a decoded YAML document against the import schema.
// The document goes through JSON so the validator sees plain JSON values.
func validateImport(doc any) error {
	schema, err := compiledImportSchema()
	if err != nil {
		return fmt.Errorf("compile import schema: %w", err)
	}

	b, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidImport, err)
	}
	v, err := jsonschema.UnmarshalJSON(bytes.NewReader(b))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidImport, err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidImport, err)
	}
	return nil
}
