// Command satsudoku is a DPLL SAT solver with a Percent Sudoku front end.
//
// It has two modes. The CNF mode reads a DIMACS CNF file, decides
// satisfiability within a wall-clock budget, prints a summary, and writes a
// .res sibling file. The percent-sudoku mode generates, solves, and
// exercises Percent Sudoku puzzles through the CNF encoding.
package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/kr/pretty"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/Owleye4/sat-sudoku/sat"
)

const defaultCNFTimeout = 300.0 // seconds

var (
	flagDebug   bool
	flagVerbose bool
)

func main() {
	root := &cobra.Command{
		Use:   "satsudoku <cnf_file> [timeout_seconds]",
		Short: "DPLL SAT solver and Percent Sudoku toolkit",
		Long: `satsudoku decides satisfiability of DIMACS CNF formulas with a plain
recursive DPLL procedure, and applies it to the Percent Sudoku puzzle
variant (rows, columns, boxes, anti-diagonal, and two windows).`,
		Args: cobra.RangeArgs(1, 2),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if flagDebug {
				log.SetLevel(log.DebugLevel)
			}
		},
		RunE:          runCNF,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	addGlobalFlags(root.PersistentFlags())

	root.AddCommand(newPercentSudokuCmd())

	if err := root.Execute(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}

func addGlobalFlags(fs *pflag.FlagSet) {
	fs.BoolVar(&flagDebug, "debug", false, "enable debug logging")
	fs.BoolVarP(&flagVerbose, "verbose", "v", false, "dump solve statistics")
}

func runCNF(cmd *cobra.Command, args []string) error {
	cnfPath := args[0]
	timeout := defaultCNFTimeout
	if len(args) == 2 {
		t, err := strconv.ParseFloat(args[1], 64)
		if err != nil || t <= 0 {
			return fmt.Errorf("invalid timeout value %q", args[1])
		}
		timeout = t
	}
	budget := time.Duration(timeout * float64(time.Second))

	f, err := sat.ParseDIMACSFile(cnfPath)
	if err != nil {
		return err
	}
	log.WithFields(log.Fields{
		"file":    cnfPath,
		"vars":    f.NumVars,
		"clauses": f.NumClauses(),
		"timeout": budget,
	}).Info("solving CNF formula")

	start := time.Now()
	res, assignment := sat.Solve(f, budget)
	elapsed := time.Since(start)

	printSummary(f, res, assignment, elapsed)

	if path, err := sat.WriteResultFile(cnfPath, f, res, assignment, elapsed); err != nil {
		log.WithField("file", path).Warnf("cannot write result file: %v", err)
	} else {
		fmt.Printf("Results saved to: %s\n", path)
	}
	return nil
}

func printSummary(f *sat.Formula, res sat.Result, a sat.Assignment, elapsed time.Duration) {
	fmt.Printf("Solving result: %s\n", res)
	fmt.Printf("Execution time: %.2f ms\n", float64(elapsed)/float64(time.Millisecond))
	if res != sat.Sat {
		return
	}
	if f.Satisfied(a) {
		fmt.Println("Verification passed: all clauses are satisfied")
	} else {
		fmt.Println("Verification failed: some clauses are not satisfied")
	}
	fmt.Println("Satisfying assignment:")
	for _, lit := range a.Literals() {
		fmt.Printf("%d ", lit)
	}
	fmt.Println("0")
	if flagVerbose {
		pretty.Println(a)
	}
}
