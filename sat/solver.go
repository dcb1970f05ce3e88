package sat

import (
	"time"

	log "github.com/sirupsen/logrus"
)

// Result is the outcome of a solve.
type Result int

const (
	Unsat   Result = 0
	Sat     Result = 1
	Timeout Result = -1
)

func (r Result) String() string {
	switch r {
	case Sat:
		return "SAT"
	case Unsat:
		return "UNSAT"
	case Timeout:
		return "TIMEOUT"
	default:
		panic("unreached")
	}
}

// Solve decides satisfiability of f within the given wall-clock budget.
// A negative budget means no limit; a zero budget times out immediately,
// which doubles as cancellation.
//
// On Sat, the returned assignment satisfies every clause of f; variables not
// constrained by f may be left Unassigned. On Unsat or Timeout the
// assignment is nil.
//
// The search is deterministic: unit propagation visits clauses in stored
// order, and branching always picks the lowest-numbered unassigned variable,
// trying True before False.
func Solve(f *Formula, budget time.Duration) (Result, Assignment) {
	s := &solver{formula: f}
	if budget >= 0 {
		s.deadline = time.Now().Add(budget)
	}
	return s.search(NewAssignment(f.NumVars))
}

type solver struct {
	formula  *Formula
	deadline time.Time // zero means no limit
	nodes    int64
}

func (s *solver) expired() bool {
	return !s.deadline.IsZero() && !time.Now().Before(s.deadline)
}

// propagation outcomes
const (
	propSat = iota
	propConflict
	propQuiescent
	propTimeout
)

// propagate runs unit propagation on a to fixpoint. Each pass visits every
// clause in stored order: a conflicting clause returns propConflict, a unit clause
// assigns its unit literal, and a fully satisfied formula short-circuits to
// propSat. A pass with no assignments returns propQuiescent.
func (s *solver) propagate(a Assignment) int {
	if s.formula.Satisfied(a) {
		return propSat
	}
	for changed := true; changed; {
		changed = false
		if s.expired() {
			return propTimeout
		}
		for _, cls := range s.formula.Clauses {
			if cls.Satisfied(a) {
				continue
			}
			if cls.Conflicting(a) {
				return propConflict
			}
			lit, ok := cls.UnitLiteral(a)
			if !ok {
				continue
			}
			if lit > 0 {
				a[lit-1] = True
			} else {
				a[-lit-1] = False
			}
			changed = true
			if s.formula.Satisfied(a) {
				return propSat
			}
		}
	}
	return propQuiescent
}

// search is one DPLL node. It owns a and is free to mutate it; callers pass
// a copy when branching so failed branches leave the parent untouched.
func (s *solver) search(a Assignment) (Result, Assignment) {
	s.nodes++
	if s.expired() {
		return Timeout, nil
	}

	switch s.propagate(a) {
	case propSat:
		return Sat, a
	case propConflict:
		return Unsat, nil
	case propTimeout:
		return Timeout, nil
	}

	v := firstUnassigned(a)
	if v == 0 {
		// Complete but the propagation pass did not report Sat; with
		// no unassigned variables every clause is either satisfied or
		// conflicting, so this re-check is definitive.
		if s.formula.Satisfied(a) {
			return Sat, a
		}
		return Unsat, nil
	}

	log.WithFields(log.Fields{"var": v, "node": s.nodes}).Debug("branching")

	for _, val := range [2]Value{True, False} {
		branch := a.Clone()
		branch[v-1] = val
		res, soln := s.search(branch)
		switch res {
		case Sat:
			return Sat, soln
		case Timeout:
			return Timeout, nil
		}
	}
	return Unsat, nil
}

// firstUnassigned returns the lowest-numbered unassigned variable, or 0 if
// the assignment is complete.
func firstUnassigned(a Assignment) int {
	for i, val := range a {
		if val == Unassigned {
			return i + 1
		}
	}
	return 0
}
