package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/xerrors"

	"thompson/internal/dot"
	"thompson/internal/logger"
	"thompson/internal/match"
	"thompson/internal/nfa"
	"thompson/internal/syntax"
)

type app struct {
	logLevel  string
	maxRepeat int
	maxStates int
	log       *zap.Logger
}

func newRootCommand() *cobra.Command {
	a := &app{log: zap.NewNop()}

	root := &cobra.Command{
		Use:          "thompson",
		Short:        "Build Thompson ε-NFAs from regular expressions",
		Example:      "thompson dot 'a(b|c)*d' -o graph.dot",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			l, err := logger.New(a.logLevel)
			if err != nil {
				return err
			}
			a.log = l
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.log.Sync()
		},
	}
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", logger.Level(), "log level: debug, info, warn, error")
	root.PersistentFlags().IntVar(&a.maxRepeat, "max-repeat", syntax.MaxRepeat, "largest count accepted inside {}")
	root.PersistentFlags().IntVar(&a.maxStates, "max-states", syntax.MaxStates, "largest automaton a pattern may compile to")

	root.AddCommand(a.inspectCommand(), a.matchCommand(), a.dotCommand())
	return root
}

func (a *app) compile(pattern string) (*nfa.Automaton, error) {
	return syntax.Compile(pattern,
		syntax.WithLogger(a.log),
		syntax.WithMaxRepeat(a.maxRepeat),
		syntax.WithMaxStates(a.maxStates),
	)
}

func (a *app) inspectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect PATTERN",
		Short: "Print the states, edges and alphabet of the ε-NFA",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			auto, err := a.compile(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "states: %d\n", auto.NumStates())
			fmt.Fprint(out, auto.String())
			return nil
		},
	}
}

func (a *app) matchCommand() *cobra.Command {
	var useDFA bool
	cmd := &cobra.Command{
		Use:   "match PATTERN INPUT...",
		Short: "Report whether each input is accepted as a whole",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			auto, err := a.compile(args[0])
			if err != nil {
				return err
			}
			accepts := func(s string) bool { return match.AcceptsString(auto, s) }
			if useDFA {
				d := match.Minimize(match.Determinize(auto))
				a.log.Debug("minimized", zap.Int("dfa_states", len(d.States)))
				accepts = d.AcceptsString
			}
			out := cmd.OutOrStdout()
			for _, in := range args[1:] {
				verdict := "reject"
				if accepts(in) {
					verdict = "accept"
				}
				fmt.Fprintf(out, "%s\t%q\n", verdict, in)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&useDFA, "dfa", false, "match with the minimized DFA instead of simulating the ε-NFA")
	return cmd
}

func (a *app) dotCommand() *cobra.Command {
	var (
		output   string
		useDFA   bool
		minimize bool
	)
	cmd := &cobra.Command{
		Use:   "dot PATTERN",
		Short: "Export the automaton in Graphviz DOT format",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			auto, err := a.compile(args[0])
			if err != nil {
				return err
			}
			var src string
			switch {
			case minimize:
				src, err = dot.DFA(match.Minimize(match.Determinize(auto)))
			case useDFA:
				src, err = dot.DFA(match.Determinize(auto))
			default:
				src, err = dot.NFA(auto)
			}
			if err != nil {
				return xerrors.Errorf("render %q: %w", args[0], err)
			}
			return a.write(cmd.OutOrStdout(), output, src)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "-", "output file, - for stdout")
	cmd.Flags().BoolVar(&useDFA, "dfa", false, "export the subset-construction DFA")
	cmd.Flags().BoolVar(&minimize, "minimize", false, "export the minimized DFA")
	return cmd
}

func (a *app) write(stdout io.Writer, path, src string) error {
	if path == "-" {
		if _, err := io.WriteString(stdout, src); err != nil {
			return xerrors.Errorf("write stdout: %w", err)
		}
		return nil
	}
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		return xerrors.Errorf("write %s: %w", path, err)
	}
	a.log.Info("DOT written", zap.String("path", path))
	return nil
}
