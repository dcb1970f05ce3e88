package sudoku

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

const fileHeader = "# Percent Sudoku Game File"

// Save writes the game in the line-oriented puzzle file format: a header
// comment, difficulty and num_givens lines, then the puzzle and solution
// grids as nine rows of nine space-separated digits each (0 for empty).
// Save and Load are inverses.
func Save(w io.Writer, game *Game) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, fileHeader)
	fmt.Fprintf(bw, "difficulty %d\n", game.Difficulty)
	fmt.Fprintf(bw, "num_givens %d\n", game.NumGivens)
	fmt.Fprintln(bw, "\n# Puzzle")
	writeGrid(bw, &game.Puzzle)
	fmt.Fprintln(bw, "\n# Solution")
	writeGrid(bw, &game.Solution)
	return bw.Flush()
}

func writeGrid(w io.Writer, g *Grid) {
	for r := 0; r < Size; r++ {
		for c := 0; c < Size; c++ {
			if c > 0 {
				fmt.Fprint(w, " ")
			}
			fmt.Fprintf(w, "%d", g[r][c])
		}
		fmt.Fprintln(w)
	}
}

// Load reads a game in the puzzle file format. Comment lines (beginning
// with '#') and blank lines are skipped; the first nine data rows form the
// puzzle and the next nine the solution. Given flags are rebuilt from the
// puzzle's non-empty cells.
func Load(r io.Reader) (*Game, error) {
	game := &Game{}
	s := bufio.NewScanner(r)
	row := 0
	for s.Scan() {
		line := strings.TrimSpace(s.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasPrefix(line, "difficulty") {
			n, err := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(line, "difficulty")))
			if err != nil {
				return nil, errors.Wrapf(err, "malformed difficulty line %q", line)
			}
			game.Difficulty = n
			continue
		}
		if strings.HasPrefix(line, "num_givens") {
			n, err := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(line, "num_givens")))
			if err != nil {
				return nil, errors.Wrapf(err, "malformed num_givens line %q", line)
			}
			game.NumGivens = n
			continue
		}
		if row >= 2*Size {
			return nil, fmt.Errorf("unexpected extra row %q", line)
		}
		grid := &game.Puzzle
		gr := row
		if row >= Size {
			grid = &game.Solution
			gr -= Size
		}
		fields := strings.Fields(line)
		if len(fields) != Size {
			return nil, fmt.Errorf("grid row %q has %d cells, want %d", line, len(fields), Size)
		}
		for c, field := range fields {
			d, err := strconv.Atoi(field)
			if err != nil {
				return nil, errors.Wrapf(err, "malformed cell in row %q", line)
			}
			if d < Empty || d > maxDigit {
				return nil, fmt.Errorf("cell value %d out of range in row %q", d, line)
			}
			grid[gr][c] = d
		}
		row++
	}
	if err := s.Err(); err != nil {
		return nil, errors.Wrap(err, "reading puzzle file")
	}
	if row < Size {
		return nil, fmt.Errorf("puzzle file truncated: got %d grid rows", row)
	}
	for i := 0; i < Size; i++ {
		for j := 0; j < Size; j++ {
			game.Given[i][j] = game.Puzzle[i][j] != Empty
		}
	}
	return game, nil
}

// SaveFile writes the game to path.
func SaveFile(path string, game *Game) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "creating puzzle file")
	}
	defer f.Close()
	return Save(f, game)
}

// LoadFile reads the game at path.
func LoadFile(path string) (*Game, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening puzzle file")
	}
	defer f.Close()
	game, err := Load(f)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing %s", path)
	}
	return game, nil
}
