package sat

import (
	"fmt"
	"math/rand"
	"strings"
	"testing"
	"time"
)

const testBudget = time.Minute

func mustParse(t *testing.T, text string) *Formula {
	t.Helper()
	f, err := ParseDIMACS(strings.NewReader(text))
	if err != nil {
		t.Fatal(err)
	}
	return f
}

func TestSolveTrivialSat(t *testing.T) {
	f := mustParse(t, "p cnf 1 1\n1 0\n")
	res, a := Solve(f, testBudget)
	if res != Sat {
		t.Fatalf("got %s, want SAT", res)
	}
	if a.Get(1) != True {
		t.Fatalf("A[1] = %s, want true", a.Get(1))
	}
}

func TestSolveTrivialUnsat(t *testing.T) {
	f := mustParse(t, "p cnf 1 2\n1 0\n-1 0\n")
	if res, _ := Solve(f, testBudget); res != Unsat {
		t.Fatalf("got %s, want UNSAT", res)
	}
}

func TestSolvePropagationChain(t *testing.T) {
	f := mustParse(t, "p cnf 3 3\n1 0\n-1 2 0\n-2 3 0\n")
	res, a := Solve(f, testBudget)
	if res != Sat {
		t.Fatalf("got %s, want SAT", res)
	}
	for v := 1; v <= 3; v++ {
		if a.Get(v) != True {
			t.Errorf("A[%d] = %s, want true", v, a.Get(v))
		}
	}
}

// With lowest-var, true-first branching the solver must land on x1=true,
// x2=false.
func TestSolveBranchingPolicy(t *testing.T) {
	f := mustParse(t, "p cnf 2 2\n1 2 0\n-1 -2 0\n")
	res, a := Solve(f, testBudget)
	if res != Sat {
		t.Fatalf("got %s, want SAT", res)
	}
	if a.Get(1) != True || a.Get(2) != False {
		t.Fatalf("got A[1]=%s A[2]=%s, want true/false", a.Get(1), a.Get(2))
	}
}

// pigeonhole encodes PHP(pigeons, holes): every pigeon in some hole, no two
// pigeons sharing a hole.
func pigeonhole(pigeons, holes int) *Formula {
	v := func(p, h int) int { return (p-1)*holes + h }
	f := &Formula{NumVars: pigeons * holes}
	for p := 1; p <= pigeons; p++ {
		cls := make(Clause, 0, holes)
		for h := 1; h <= holes; h++ {
			cls = append(cls, v(p, h))
		}
		f.Clauses = append(f.Clauses, cls)
	}
	for h := 1; h <= holes; h++ {
		for p1 := 1; p1 <= pigeons; p1++ {
			for p2 := p1 + 1; p2 <= pigeons; p2++ {
				f.Clauses = append(f.Clauses, Clause{-v(p1, h), -v(p2, h)})
			}
		}
	}
	return f
}

func TestSolvePigeonhole(t *testing.T) {
	if res, _ := Solve(pigeonhole(3, 2), testBudget); res != Unsat {
		t.Fatalf("PHP(3,2): got %s, want UNSAT", res)
	}
	res, a := Solve(pigeonhole(3, 3), testBudget)
	if res != Sat {
		t.Fatalf("PHP(3,3): got %s, want SAT", res)
	}
	if !pigeonhole(3, 3).Satisfied(a) {
		t.Fatal("PHP(3,3) assignment does not satisfy the formula")
	}
}

func TestSolveEmptyFormula(t *testing.T) {
	f := &Formula{NumVars: 3}
	res, a := Solve(f, testBudget)
	if res != Sat {
		t.Fatalf("got %s, want SAT", res)
	}
	// Unconstrained variables stay unassigned and default to false in
	// external output.
	for _, lit := range a.Literals() {
		if lit > 0 {
			t.Fatalf("unconstrained var rendered positive: %v", a.Literals())
		}
	}
}

func TestSolveEmptyClause(t *testing.T) {
	f := &Formula{NumVars: 2, Clauses: []Clause{{1, 2}, {}}}
	if res, _ := Solve(f, testBudget); res != Unsat {
		t.Fatalf("got %s, want UNSAT", res)
	}
}

func TestSolveZeroBudgetTimesOut(t *testing.T) {
	if res, _ := Solve(pigeonhole(3, 2), 0); res != Timeout {
		t.Fatal("zero budget should time out immediately")
	}
}

func TestSolveUnlimitedBudget(t *testing.T) {
	f := mustParse(t, "p cnf 1 1\n1 0\n")
	if res, _ := Solve(f, -1); res != Sat {
		t.Fatal("negative budget should mean no limit")
	}
}

func TestSolveRandomized(t *testing.T) {
	for _, tt := range []struct {
		numVars    int
		numClauses int
		numSeeds   int
	}{
		{2, 2, 10},
		{3, 10, 100},
		{5, 10, 200},
		{10, 20, 200},
	} {
		name := fmt.Sprintf("vars=%d,clauses=%d", tt.numVars, tt.numClauses)
		t.Run(name, func(t *testing.T) {
			for seed := 0; seed < tt.numSeeds; seed++ {
				f := makeRandomSat(int64(seed), tt.numVars, tt.numClauses)
				res, a := Solve(f, testBudget)
				if res != Sat {
					t.Fatalf("[seed=%d] got %s for a satisfiable formula", seed, res)
				}
				if !f.Satisfied(a) {
					t.Fatalf("[seed=%d] returned assignment %v does not satisfy the formula", seed, a)
				}
			}
		})
	}
}

// makeRandomSat builds a formula that is satisfiable by construction: a
// random target assignment is drawn first and every clause gets one literal
// agreeing with it.
func makeRandomSat(seed int64, numVars, numClauses int) *Formula {
	rng := rand.New(rand.NewSource(seed))
	target := make([]bool, numVars)
	for v := range target {
		target[v] = rng.Intn(2) == 1
	}
	f := &Formula{NumVars: numVars}
	vars := rng.Perm(numVars)
	for i := 0; i < numClauses; i++ {
		rng.Shuffle(len(vars), func(i, j int) {
			vars[i], vars[j] = vars[j], vars[i]
		})
		cls := make(Clause, rng.Intn(numVars)+1)
		fixed := rng.Intn(len(cls))
		for j := range cls {
			v := vars[j] + 1
			if j == fixed {
				if !target[v-1] {
					v = -v
				}
			} else if rng.Intn(2) == 1 {
				v = -v
			}
			cls[j] = v
		}
		f.Clauses = append(f.Clauses, cls)
	}
	return f
}
