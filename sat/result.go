package sat

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// WriteResult writes the machine-readable result record:
//
//	s <status>
//	v <lit1> <lit2> ... <litN>   (only when status is 1)
//	t <milliseconds>
//
// where status is 1 for Sat, 0 for Unsat and -1 for Timeout. On the v line
// each variable appears as +i when True and -i otherwise; unassigned
// variables default to False and appear negated. Time is rounded to integer
// milliseconds.
func WriteResult(w io.Writer, f *Formula, res Result, a Assignment, elapsed time.Duration) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "s %d\n", int(res))
	if res == Sat {
		bw.WriteString("v")
		if len(a) < f.NumVars {
			padded := NewAssignment(f.NumVars)
			copy(padded, a)
			a = padded
		}
		for _, lit := range a.Literals() {
			fmt.Fprintf(bw, " %d", lit)
		}
		bw.WriteString("\n")
	}
	fmt.Fprintf(bw, "t %d\n", elapsed.Round(time.Millisecond)/time.Millisecond)
	return bw.Flush()
}

// WriteResultFile writes the result record to the .res sibling of cnfPath.
func WriteResultFile(cnfPath string, f *Formula, res Result, a Assignment, elapsed time.Duration) (string, error) {
	path := ResultPath(cnfPath)
	file, err := os.Create(path)
	if err != nil {
		return path, errors.Wrap(err, "creating result file")
	}
	defer file.Close()
	if err := WriteResult(file, f, res, a, elapsed); err != nil {
		return path, err
	}
	return path, nil
}

// ResultPath derives the result file name from a CNF path by replacing its
// extension with .res (or appending .res when there is none).
func ResultPath(cnfPath string) string {
	if i := strings.LastIndexByte(cnfPath, '.'); i > strings.LastIndexByte(cnfPath, '/') {
		return cnfPath[:i] + ".res"
	}
	return cnfPath + ".res"
}
