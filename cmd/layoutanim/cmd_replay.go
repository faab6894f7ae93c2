package main

import (
	"fmt"
	"log/slog"

	"github.com/phanxgames/layoutanim/scenario"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

type replayOutcome struct {
	script *scenario.Script
	result *scenario.Result
	err    error
}

func newReplayCmd(logger func(*cobra.Command) *slog.Logger) *cobra.Command {
	var quiet bool
	cmd := &cobra.Command{
		Use:   "replay <scenario.yaml>...",
		Short: "Replay scenario files and print the mutations each step emits",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			outcomes := make([]replayOutcome, len(args))
			var g errgroup.Group
			for i, path := range args {
				g.Go(func() error {
					script, err := scenario.Load(path)
					if err != nil {
						return err
					}
					res, err := scenario.NewRunner(script, logger(cmd)).Run()
					outcomes[i] = replayOutcome{script: script, result: res, err: err}
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}

			failed := 0
			for _, o := range outcomes {
				printf(cmd, "== %s\n", o.script.Name)
				if !quiet && o.result != nil {
					printFrames(cmd, o.result.Frames)
				}
				if o.err != nil {
					failed++
					printf(cmd, "FAIL: %v\n", o.err)
					continue
				}
				printf(cmd, "ok: %d steps, %d completions\n", len(o.result.Frames), len(o.result.Completions))
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d scenarios failed", failed, len(outcomes))
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "print only the per-file outcome")
	return cmd
}

func printFrames(cmd *cobra.Command, frames []scenario.Frame) {
	for _, f := range frames {
		printf(cmd, "step %d @%dms %s\n", f.Step, f.At, f.Action)
		for _, m := range f.Mutations {
			printf(cmd, "  %s\n", m)
		}
	}
}
