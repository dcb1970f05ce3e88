package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/kr/pretty"
	"github.com/spf13/cobra"

	"github.com/Owleye4/sat-sudoku/sat"
	"github.com/Owleye4/sat-sudoku/sudoku"
)

const defaultSudokuTimeout = 60.0 // seconds

var (
	flagSeed   int64
	flagOutput string
)

func newPercentSudokuCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "percent-sudoku",
		Short: "generate and solve Percent Sudoku puzzles",
	}

	generate := &cobra.Command{
		Use:   "generate <difficulty> [timeout_seconds]",
		Short: "generate a puzzle with a unique solution and solve it back",
		Args:  cobra.RangeArgs(1, 2),
		RunE:  runGenerate,
	}
	generate.Flags().Int64Var(&flagSeed, "seed", 0, "generator seed (0 means time-based)")
	generate.Flags().StringVarP(&flagOutput, "output", "o", "", "save the generated game to this file")

	solve := &cobra.Command{
		Use:   "solve <puzzle_file> [timeout_seconds]",
		Short: "solve a puzzle file through the CNF/DPLL pipeline",
		Args:  cobra.RangeArgs(1, 2),
		RunE:  runSolve,
	}

	test := &cobra.Command{
		Use:   "test",
		Short: "run the generate/encode/solve/verify self checks",
		Args:  cobra.NoArgs,
		RunE:  runTest,
	}

	demo := &cobra.Command{
		Use:   "demo",
		Short: "generate and solve sample puzzles, comparing both solvers",
		Args:  cobra.NoArgs,
		RunE:  runDemo,
	}

	cmd.AddCommand(generate, solve, test, demo)
	return cmd
}

func parseTimeout(args []string, i int) (time.Duration, error) {
	timeout := defaultSudokuTimeout
	if len(args) > i {
		t, err := strconv.ParseFloat(args[i], 64)
		if err != nil || t <= 0 {
			return 0, fmt.Errorf("invalid timeout value %q", args[i])
		}
		timeout = t
	}
	return time.Duration(timeout * float64(time.Second)), nil
}

func newGenerator() *sudoku.Generator {
	if flagSeed != 0 {
		return sudoku.NewGeneratorSeeded(flagSeed)
	}
	return sudoku.NewGenerator()
}

func runGenerate(cmd *cobra.Command, args []string) error {
	difficulty, err := strconv.Atoi(args[0])
	if err != nil || difficulty < 1 || difficulty > 5 {
		return fmt.Errorf("invalid difficulty %q: want 1-5", args[0])
	}
	budget, err := parseTimeout(args, 1)
	if err != nil {
		return err
	}

	game, stats, err := sudoku.GenerateAndSolve(newGenerator(), difficulty, budget)
	if err != nil {
		return err
	}
	if stats.Result != sat.Sat {
		return fmt.Errorf("generated puzzle did not solve: %s", stats.Result)
	}

	fmt.Printf("Difficulty: %d\nGivens: %d\n\n", game.Difficulty, game.NumGivens)
	fmt.Println("Puzzle:")
	fmt.Print(game.Puzzle.String())
	fmt.Println("\nSolution:")
	fmt.Print(game.Solution.String())
	printStats(stats)

	if flagOutput != "" {
		if err := sudoku.SaveFile(flagOutput, game); err != nil {
			return err
		}
		fmt.Printf("Game saved to: %s\n", flagOutput)
	}
	return nil
}

func runSolve(cmd *cobra.Command, args []string) error {
	budget, err := parseTimeout(args, 1)
	if err != nil {
		return err
	}
	game, err := sudoku.LoadFile(args[0])
	if err != nil {
		return err
	}

	fmt.Println("Puzzle:")
	fmt.Print(game.Puzzle.String())

	res, stats := sudoku.SolveWithSAT(game, budget)
	switch res {
	case sat.Sat:
		if err := sudoku.VerifySolution(&game.Puzzle, &game.Solution); err != nil {
			return err
		}
		fmt.Println("\nSolution:")
		fmt.Print(game.Solution.String())
	case sat.Unsat:
		fmt.Println("\nThe puzzle has no solution")
	case sat.Timeout:
		fmt.Println("\nSolving timed out")
	}
	printStats(stats)
	return nil
}

func runTest(cmd *cobra.Command, args []string) error {
	gen := newGenerator()
	passed, total := 0, 0

	check := func(name string, ok bool) {
		total++
		if ok {
			passed++
			fmt.Printf("  ok   %s\n", name)
		} else {
			fmt.Printf("  FAIL %s\n", name)
		}
	}

	game := gen.Generate(1)
	check("generated puzzle is valid", game.Puzzle.Valid())
	check("generated puzzle is unique", sudoku.HasUniqueCompletion(&game.Puzzle))
	check("stored solution is solved", game.Solution.Solved())

	f := sudoku.ToCNF(&game.Puzzle)
	check("encoding has 729 variables", f.NumVars == sudoku.NumVariables)
	check("encoding clause count", f.NumClauses() == sudoku.NumClauses+game.NumGivens)

	want := game.Solution
	res, _ := sudoku.SolveWithSAT(game, time.Minute)
	check("SAT pipeline solves the puzzle", res == sat.Sat)
	check("decoded grid matches generator solution", game.Solution == want)
	check("decoded grid verifies", sudoku.VerifySolution(&game.Puzzle, &game.Solution) == nil)

	fmt.Printf("Test results: %d/%d passed\n", passed, total)
	if passed != total {
		return fmt.Errorf("%d checks failed", total-passed)
	}
	return nil
}

func runDemo(cmd *cobra.Command, args []string) error {
	gen := newGenerator()
	for difficulty := 1; difficulty <= 3; difficulty++ {
		fmt.Printf("=== Difficulty %d ===\n", difficulty)
		game, stats, err := sudoku.GenerateAndSolve(gen, difficulty, time.Minute)
		if err != nil {
			return err
		}
		fmt.Printf("Givens: %d\n", game.NumGivens)
		fmt.Print(game.Puzzle.String())
		fmt.Printf("Solved via DPLL in %.2f ms (%s)\n\n",
			float64(stats.SolvingTime)/float64(time.Millisecond), stats.Result)
	}

	// Same puzzle through both solve paths.
	fmt.Println("=== Solving method comparison ===")
	game := gen.Generate(2)

	grid := game.Puzzle
	start := time.Now()
	solved := sudoku.SolveBacktracking(&grid)
	backtrackTime := time.Since(start)
	fmt.Printf("Backtracking: solved=%v in %.2f ms\n",
		solved, float64(backtrackTime)/float64(time.Millisecond))

	res, stats := sudoku.SolveWithSAT(game, time.Minute)
	fmt.Printf("CNF/DPLL:     result=%s in %.2f ms\n",
		res, float64(stats.SolvingTime)/float64(time.Millisecond))
	if flagVerbose {
		pretty.Println(stats)
	}
	return nil
}

func printStats(stats sudoku.Stats) {
	fmt.Printf("\nVariables: %d  Clauses: %d  Givens: %d\n",
		stats.NumVariables, stats.NumClauses, stats.NumGivens)
	fmt.Printf("Solve time: %.2f ms (total %.2f ms)\n",
		float64(stats.SolvingTime)/float64(time.Millisecond),
		float64(stats.TotalTime)/float64(time.Millisecond))
	if flagVerbose {
		pretty.Println(stats)
	}
}
