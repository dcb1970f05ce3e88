package sudoku

import (
	log "github.com/sirupsen/logrus"

	"github.com/Owleye4/sat-sudoku/sat"
)

// NumVariables is the size of the CNF variable space: one variable per
// (cell, digit) pair.
const NumVariables = Size * Size * maxDigit

// VarIndex returns the CNF variable encoding "cell (r, c) holds digit d":
// (r*9+c)*9 + d, yielding indices in [1, 729].
func VarIndex(r, c, d int) int {
	return (r*Size+c)*maxDigit + d
}

// CellDigit inverts VarIndex.
func CellDigit(v int) (r, c, d int) {
	v--
	d = v%maxDigit + 1
	v /= maxDigit
	return v / Size, v % Size, d
}

// NumClauses is the size of the clause set for a puzzle with no givens:
// 81 at-least-one and 2916 at-most-one clauses per cell, 2916 pairwise
// clauses each for rows, columns and boxes, and 324 each for the
// anti-diagonal and the two windows. Each given adds one unit clause.
const NumClauses = 81 + 4*2916 + 3*324

// ToCNF encodes the puzzle as a CNF formula over 729 variables: one
// at-least-one clause per cell, pairwise at-most-one clauses per cell, row,
// column, box, anti-diagonal and window, and one unit clause per given.
// The per-cell at-most-one clauses are redundant for satisfiability
// (pigeonhole over the group constraints forces them) but let unit
// propagation clear a cell's other digits as soon as one is placed.
func ToCNF(puzzle *Grid) *sat.Formula {
	f := &sat.Formula{
		NumVars: NumVariables,
		Clauses: make([]sat.Clause, 0, NumClauses+puzzle.CountGivens()),
	}

	// At-least-one digit per cell.
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			cls := make(sat.Clause, 0, maxDigit)
			for d := minDigit; d <= maxDigit; d++ {
				cls = append(cls, VarIndex(r, c, d))
			}
			f.Clauses = append(f.Clauses, cls)
		}
	}

	// At-most-one digit per cell.
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			for d1 := minDigit; d1 <= maxDigit; d1++ {
				for d2 := d1 + 1; d2 <= maxDigit; d2++ {
					f.Clauses = append(f.Clauses,
						sat.Clause{-VarIndex(r, c, d1), -VarIndex(r, c, d2)})
				}
			}
		}
	}

	// At-most-one per row.
	for r := 0; r < Size; r++ {
		for d := minDigit; d <= maxDigit; d++ {
			for c1 := 0; c1 < Size; c1++ {
				for c2 := c1 + 1; c2 < Size; c2++ {
					f.Clauses = append(f.Clauses,
						sat.Clause{-VarIndex(r, c1, d), -VarIndex(r, c2, d)})
				}
			}
		}
	}

	// At-most-one per column.
	for c := 0; c < Size; c++ {
		for d := minDigit; d <= maxDigit; d++ {
			for r1 := 0; r1 < Size; r1++ {
				for r2 := r1 + 1; r2 < Size; r2++ {
					f.Clauses = append(f.Clauses,
						sat.Clause{-VarIndex(r1, c, d), -VarIndex(r2, c, d)})
				}
			}
		}
	}

	// At-most-one per 3x3 box, pairs ordered by linearized cell index.
	for boxR := 0; boxR < 3; boxR++ {
		for boxC := 0; boxC < 3; boxC++ {
			cells := boxCells(boxR, boxC)
			appendPairClauses(f, cells)
		}
	}

	// At-most-one on the anti-diagonal.
	diag := make([][2]int, 0, Size)
	for r := 0; r < Size; r++ {
		diag = append(diag, [2]int{r, Size - 1 - r})
	}
	appendPairClauses(f, diag)

	// At-most-one in each window.
	appendPairClauses(f, windowCells(1))
	appendPairClauses(f, windowCells(5))

	// Givens.
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			if puzzle[r][c] != Empty {
				f.Clauses = append(f.Clauses, sat.Clause{VarIndex(r, c, puzzle[r][c])})
			}
		}
	}

	log.WithFields(log.Fields{
		"variables": f.NumVars,
		"clauses":   len(f.Clauses),
		"givens":    puzzle.CountGivens(),
	}).Debug("encoded puzzle as CNF")
	return f
}

func boxCells(boxR, boxC int) [][2]int {
	cells := make([][2]int, 0, 9)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			cells = append(cells, [2]int{boxR*3 + i, boxC*3 + j})
		}
	}
	return cells
}

func windowCells(start int) [][2]int {
	cells := make([][2]int, 0, 9)
	for r := start; r < start+3; r++ {
		for c := start; c < start+3; c++ {
			cells = append(cells, [2]int{r, c})
		}
	}
	return cells
}

// appendPairClauses adds, for each digit, a binary clause per unordered pair
// of distinct cells in the group. Cells arrive in linearized-index order so
// each pair is emitted once.
func appendPairClauses(f *sat.Formula, cells [][2]int) {
	for d := minDigit; d <= maxDigit; d++ {
		for i := 0; i < len(cells); i++ {
			for j := i + 1; j < len(cells); j++ {
				f.Clauses = append(f.Clauses, sat.Clause{
					-VarIndex(cells[i][0], cells[i][1], d),
					-VarIndex(cells[j][0], cells[j][1], d),
				})
			}
		}
	}
}

// DecodeAssignment turns a satisfying assignment back into a filled grid:
// givens are copied verbatim from the puzzle, then each remaining cell takes
// the digit whose variable the assignment set True.
func DecodeAssignment(puzzle *Grid, a sat.Assignment) Grid {
	grid := *puzzle
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			if grid[r][c] != Empty {
				continue
			}
			for d := minDigit; d <= maxDigit; d++ {
				if a.Get(VarIndex(r, c, d)) == sat.True {
					grid[r][c] = d
					break
				}
			}
		}
	}
	return grid
}
