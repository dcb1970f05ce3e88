package sudoku

import (
	"math/rand"
	"time"

	log "github.com/sirupsen/logrus"
)

// blankCounts maps difficulty to the target number of blanked cells.
var blankCounts = map[int]int{
	1: 30,
	2: 40,
	3: 50,
	4: 55,
	5: 60,
}

const defaultBlanks = 40

// BlankCount returns the number of cells blanked at the given difficulty,
// falling back to the default for unknown levels.
func BlankCount(difficulty int) int {
	if n, ok := blankCounts[difficulty]; ok {
		return n
	}
	return defaultBlanks
}

// A Generator produces Percent Sudoku games with unique solutions.
type Generator struct {
	rng *rand.Rand
}

// NewGenerator returns a generator seeded from wall-clock time.
func NewGenerator() *Generator {
	return NewGeneratorSeeded(time.Now().UnixNano())
}

// NewGeneratorSeeded returns a generator with an explicit seed, for
// deterministic output.
func NewGeneratorSeeded(seed int64) *Generator {
	return &Generator{rng: rand.New(rand.NewSource(seed))}
}

// Generate produces a (puzzle, solution) pair at the given difficulty. The
// puzzle is the solution with roughly BlankCount(difficulty) cells blanked
// and has exactly one completion; fewer cells may end up blank when the
// grid is too constrained to blank more.
func (gen *Generator) Generate(difficulty int) *Game {
	game := &Game{Difficulty: difficulty}

	fillRandom(&game.Solution, 0, 0, gen.rng)
	game.Puzzle = game.Solution

	gen.blank(&game.Puzzle, BlankCount(difficulty))

	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			if game.Puzzle[r][c] != Empty {
				game.Given[r][c] = true
				game.NumGivens++
			}
		}
	}

	log.WithFields(log.Fields{
		"difficulty": difficulty,
		"givens":     game.NumGivens,
	}).Debug("generated puzzle")
	return game
}

// blank walks the 81 cell positions in a uniformly shuffled order,
// tentatively blanking each one and keeping the blanking only while the
// puzzle retains exactly one completion. It stops at target blanks or when
// the positions are exhausted.
func (gen *Generator) blank(puzzle *Grid, target int) {
	positions := gen.rng.Perm(Size * Size)
	removed := 0
	for _, pos := range positions {
		if removed >= target {
			break
		}
		r, c := pos/Size, pos%Size
		d := puzzle[r][c]
		puzzle[r][c] = Empty
		if HasUniqueCompletion(puzzle) {
			removed++
		} else {
			puzzle[r][c] = d
		}
	}
}
