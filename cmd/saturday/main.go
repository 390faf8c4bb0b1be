package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ericr/saturday/config"
	"github.com/ericr/saturday/encoding"
	"github.com/ericr/saturday/solver"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	conf := config.New()

	root := &cobra.Command{
		Use:           "saturday",
		Short:         "A CDCL Boolean SAT solver",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	root.PersistentFlags().UintVar(&conf.Models, "models", 1, "number of models to find")
	root.PersistentFlags().Float64Var(&conf.VarDecay, "decay-var", conf.VarDecay, "variable activity decay constant")
	root.PersistentFlags().Float64Var(&conf.ClaDecay, "decay-cla", conf.ClaDecay, "clause activity decay constant")
	root.PersistentFlags().Var(newBranchHeuristicFlag(&conf.BranchHeuristic), "heuristic", "branching heuristic: vsids or maple")
	root.PersistentFlags().Var(newRestartTypeFlag(&conf.RestartType), "restart", "restart policy: geom, luby, glue, or glue-geom")
	root.PersistentFlags().BoolVar(&conf.ProbeEnabled, "probe", conf.ProbeEnabled, "enable failed-literal probing between restarts")
	root.PersistentFlags().Int64Var(&conf.Seed, "seed", conf.Seed, "random seed")
	root.PersistentFlags().BoolVarP(&conf.Verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(newSolveCmd(conf))
	root.AddCommand(newReadCNFCmd())
	root.AddCommand(newWriteDRATCmd(conf))
	root.AddCommand(newLoadStateCmd(conf))
	root.AddCommand(newSaveStateCmd(conf))

	return root
}

// newSolveCmd is the everyday entry point: read a CNF file, search for a
// model (or conf.Models of them), and report the result on exit code 10
// for satisfiable, 20 for unsatisfiable, 1 for a configuration error.
func newSolveCmd(conf *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "solve [input.cnf]",
		Short: "Solve a DIMACS CNF file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if conf.Verbose {
				conf.Logger.SetLevel(loggerDebugLevel())
			}
			if err := conf.Validate(); err != nil {
				conf.Logger.WithError(err).Error("invalid configuration")
				os.Exit(1)
			}

			clauses, err := readCNFFile(args[0])
			if err != nil {
				return err
			}

			s := solver.New(conf)
			for _, clause := range clauses {
				s.AddClause(clause)
			}

			var models [][]int
			if conf.Models > 1 {
				models = s.SolveMany(nil, conf.Models)
			} else if s.Solve(nil) {
				models = [][]int{s.Answer()}
			}

			printStats(s, cmd)

			if len(models) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "s UNSATISFIABLE")
				os.Exit(20)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "s SATISFIABLE")
			printModels(cmd, models)
			os.Exit(10)
			return nil
		},
	}
}

// newReadCNFCmd validates a CNF file parses cleanly, without solving it.
func newReadCNFCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "read-cnf [input.cnf]",
		Short: "Parse a DIMACS CNF file and report its clause count",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clauses, err := readCNFFile(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d clauses\n", len(clauses))
			return nil
		},
	}
}

// newWriteDRATCmd solves a CNF file, streaming every learnt and deleted
// clause as a DRAT proof to the --out path; the file is written whatever
// the result.
func newWriteDRATCmd(conf *config.Config) *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "write-drat [input.cnf]",
		Short: "Solve a CNF file and emit a DRAT proof of unsatisfiability",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clauses, err := readCNFFile(args[0])
			if err != nil {
				return err
			}

			f, err := os.Create(outPath)
			if err != nil {
				return err
			}
			defer f.Close()

			sink := encoding.NewDRATWriter(f)

			s := solver.New(conf)
			s.SetDRATSink(sink)
			for _, clause := range clauses {
				s.AddClause(clause)
			}

			sat := s.Solve(nil)
			if err := sink.Close(); err != nil {
				return err
			}

			if sat {
				fmt.Fprintln(cmd.OutOrStdout(), "s SATISFIABLE")
				os.Exit(10)
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), "s UNSATISFIABLE")
			os.Exit(20)
			return nil
		},
	}
	cmd.Flags().StringVar(&outPath, "out", "proof.drat", "path to write the DRAT proof to")

	return cmd
}

// newSaveStateCmd solves nothing; it loads a CNF file into a solver and
// immediately checkpoints its root-level knowledge to disk.
func newSaveStateCmd(conf *config.Config) *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "save-state [input.cnf]",
		Short: "Load a CNF file and write its solver state to disk",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clauses, err := readCNFFile(args[0])
			if err != nil {
				return err
			}

			s := solver.New(conf)
			for _, clause := range clauses {
				s.AddClause(clause)
			}

			f, err := os.Create(outPath)
			if err != nil {
				return err
			}
			defer f.Close()

			return s.SaveState(f)
		},
	}
	cmd.Flags().StringVar(&outPath, "out", "state.bin", "path to write solver state to")

	return cmd
}

// newLoadStateCmd rehydrates a solver from a prior save-state and solves
// it, the same way solve would have.
func newLoadStateCmd(conf *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "load-state [state.bin]",
		Short: "Load a saved solver state and solve it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			s, err := solver.LoadState(f, func() *solver.Solver { return solver.New(conf) })
			if err != nil {
				return err
			}

			printStats(s, cmd)

			if s.Solve(nil) {
				fmt.Fprintln(cmd.OutOrStdout(), "s SATISFIABLE")
				printModels(cmd, [][]int{s.Answer()})
				os.Exit(10)
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), "s UNSATISFIABLE")
			os.Exit(20)
			return nil
		},
	}
}

func readCNFFile(path string) ([][]int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return encoding.ParseDimacs(f)
}

func printModels(cmd *cobra.Command, models [][]int) {
	for _, model := range models {
		for _, p := range model {
			fmt.Fprintf(cmd.OutOrStdout(), "%d ", p)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "0")
	}
}

func printStats(s *solver.Solver, cmd *cobra.Command) {
	stats := s.Stats()
	out := cmd.ErrOrStderr()
	fmt.Fprintln(out)
	fmt.Fprintf(out, "variables:    %d\n", s.NVars())
	fmt.Fprintf(out, "constraints:  %d\n", s.NConstrs())
	fmt.Fprintf(out, "conflicts:    %d\n", stats.Conflicts)
	fmt.Fprintf(out, "propagations: %d\n", stats.Propagations)
	fmt.Fprintf(out, "restarts:     %d\n", stats.Restarts)
	fmt.Fprintf(out, "decisions:    %d\n", stats.Decisions)
	fmt.Fprintln(out)
}
