package sat

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// ParseDIMACS parses text in the DIMACS CNF format.
//
// The input must carry exactly one problem line ("p cnf N M") before any
// clause line. Comment lines (beginning with 'c') and blank lines are
// ignored anywhere. Clause lines are whitespace-separated signed integers
// terminated by 0; a trailing clause left open at end of input is accepted.
// Some CNF collections attach extra data after a line containing a single
// '%'; everything from that line on is ignored.
//
// Clauses beyond the declared count M are accepted and stored, with a
// warning. Clauses referring to variables above N are an error.
func ParseDIMACS(r io.Reader) (*Formula, error) {
	var (
		f        *Formula
		clause   Clause
		declared int
		lineno   int
	)
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for s.Scan() {
		lineno++
		line := strings.TrimSpace(s.Text())
		if len(line) == 0 || line[0] == 'c' {
			continue
		}
		if line == "%" {
			break
		}
		if line[0] == 'p' {
			if f != nil {
				return nil, fmt.Errorf("line %d: multiple problem lines", lineno)
			}
			fields := strings.Fields(line)
			if len(fields) != 4 {
				return nil, fmt.Errorf("line %d: malformed problem line %q", lineno, line)
			}
			if fields[1] != "cnf" {
				return nil, fmt.Errorf("line %d: only cnf supported; got %q", lineno, fields[1])
			}
			nVars, err := strconv.Atoi(fields[2])
			if err != nil {
				return nil, errors.Wrapf(err, "line %d: malformed #vars in problem line", lineno)
			}
			nClauses, err := strconv.Atoi(fields[3])
			if err != nil {
				return nil, errors.Wrapf(err, "line %d: malformed #clauses in problem line", lineno)
			}
			if nVars < 0 {
				return nil, fmt.Errorf("line %d: invalid #vars %d", lineno, nVars)
			}
			if nClauses < 0 {
				return nil, fmt.Errorf("line %d: invalid #clauses %d", lineno, nClauses)
			}
			declared = nClauses
			f = &Formula{
				NumVars: nVars,
				Clauses: make([]Clause, 0, nClauses),
			}
			continue
		}
		if f == nil {
			return nil, fmt.Errorf("line %d: clause appears before problem line", lineno)
		}
		for _, field := range strings.Fields(line) {
			n, err := strconv.Atoi(field)
			if err != nil {
				return nil, errors.Wrapf(err, "line %d: invalid literal", lineno)
			}
			if n == 0 {
				f.Clauses = append(f.Clauses, clause)
				clause = nil
				continue
			}
			if abs(n) > f.NumVars {
				return nil, fmt.Errorf("line %d: literal %d out of range (formula declares %d vars)",
					lineno, n, f.NumVars)
			}
			clause = append(clause, n)
		}
	}
	if err := s.Err(); err != nil {
		return nil, errors.Wrap(err, "reading DIMACS input")
	}
	if f == nil {
		return nil, fmt.Errorf("no problem line found")
	}
	if len(clause) > 0 {
		f.Clauses = append(f.Clauses, clause)
	}
	if len(f.Clauses) != declared {
		log.WithFields(log.Fields{
			"declared": declared,
			"parsed":   len(f.Clauses),
		}).Warn("clause count differs from problem line")
	}
	return f, nil
}

// ParseDIMACSFile parses the DIMACS CNF file at path.
func ParseDIMACSFile(path string) (*Formula, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "opening CNF file")
	}
	defer file.Close()
	f, err := ParseDIMACS(file)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing %s", path)
	}
	return f, nil
}

// WriteDIMACS serializes the formula in the DIMACS CNF format: one problem
// line followed by one clause per line, each terminated by 0.
func WriteDIMACS(w io.Writer, f *Formula) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "p cnf %d %d\n", f.NumVars, len(f.Clauses))
	for _, cls := range f.Clauses {
		for _, lit := range cls {
			fmt.Fprintf(bw, "%d ", lit)
		}
		fmt.Fprintln(bw, "0")
	}
	return bw.Flush()
}
