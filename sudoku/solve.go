package sudoku

import (
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/Owleye4/sat-sudoku/sat"
)

// Stats collects timing and size measurements for one solve pipeline run.
type Stats struct {
	GenerationTime time.Duration
	EncodeTime     time.Duration
	SolvingTime    time.Duration
	TotalTime      time.Duration

	NumVariables int
	NumClauses   int
	NumGivens    int

	Result sat.Result
}

// SolveWithSAT solves game.Puzzle through the CNF/DPLL pipeline: encode,
// solve within the budget, decode. On Sat the filled grid is stored in
// game.Solution. The returned stats always carry the encode and solve
// timings.
func SolveWithSAT(game *Game, budget time.Duration) (sat.Result, Stats) {
	var stats Stats
	stats.NumGivens = game.Puzzle.CountGivens()

	encodeStart := time.Now()
	f := ToCNF(&game.Puzzle)
	stats.EncodeTime = time.Since(encodeStart)
	stats.NumVariables = f.NumVars
	stats.NumClauses = f.NumClauses()

	solveStart := time.Now()
	res, assignment := sat.Solve(f, budget)
	stats.SolvingTime = time.Since(solveStart)
	stats.TotalTime = stats.EncodeTime + stats.SolvingTime
	stats.Result = res

	if res == sat.Sat {
		game.Solution = DecodeAssignment(&game.Puzzle, assignment)
	}

	log.WithFields(log.Fields{
		"result":  res,
		"clauses": stats.NumClauses,
		"elapsed": stats.SolvingTime,
	}).Debug("SAT pipeline finished")
	return res, stats
}

// GenerateAndSolve generates a puzzle at the given difficulty, then solves
// it back through the SAT pipeline. The generator's stored solution is left
// in game.Solution by the solve, which must reproduce it since generated
// puzzles are unique.
func GenerateAndSolve(gen *Generator, difficulty int, budget time.Duration) (*Game, Stats, error) {
	genStart := time.Now()
	game := gen.Generate(difficulty)
	genTime := time.Since(genStart)

	res, stats := SolveWithSAT(game, budget)
	stats.GenerationTime = genTime
	stats.TotalTime += genTime

	if res == sat.Sat {
		if err := VerifySolution(&game.Puzzle, &game.Solution); err != nil {
			return game, stats, err
		}
	}
	return game, stats, nil
}

// VerifySolution checks that solution is a legal completion of puzzle: it
// must be complete, valid under all five constraint families, and agree
// with every non-empty cell of the puzzle.
func VerifySolution(puzzle, solution *Grid) error {
	if !solution.Complete() {
		return fmt.Errorf("solution is incomplete")
	}
	if !solution.Valid() {
		return fmt.Errorf("solution violates a constraint")
	}
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			if puzzle[r][c] != Empty && puzzle[r][c] != solution[r][c] {
				return fmt.Errorf("solution disagrees with given at (%d,%d)", r, c)
			}
		}
	}
	return nil
}
