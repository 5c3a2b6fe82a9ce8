package quiz

import (
	"math/rand/v2"
	"testing"
)

// scriptedRand replays a fixed sequence of draws and fails the test when
// the sequence runs out or a draw is outside [0, n).
type scriptedRand struct {
	t     *testing.T
	draws []int
	calls int
}

func script(t *testing.T, draws ...int) *scriptedRand {
	t.Helper()
	return &scriptedRand{t: t, draws: draws}
}

func (r *scriptedRand) IntN(n int) int {
	if r.calls >= len(r.draws) {
		r.t.Fatalf("unexpected draw #%d (IntN(%d))", r.calls+1, n)
	}
	v := r.draws[r.calls]
	r.calls++
	if v < 0 || v >= n {
		r.t.Fatalf("scripted draw %d outside [0, %d)", v, n)
	}
	return v
}

func seeded(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// chemistry is the example corpus with the blank line a newly created
// topic starts with.
var chemistry = []string{
	"",
	"Atom -$- smallest unit of matter",
	"Bond -$- link between atoms",
	"Molecule -$- two or more atoms",
	"Ion -$- charged atom",
}
