package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/phanxgames/layoutanim"
	"github.com/spf13/cobra"
)

const curveWidth = 40

func newCurveCmd() *cobra.Command {
	var steps int
	cmd := &cobra.Command{
		Use:   "curve <easing>",
		Short: "Print samples of an easing curve",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := layoutanim.ParseEasing(args[0])
			if err != nil {
				return err
			}
			if steps < 1 {
				return fmt.Errorf("steps must be positive, got %d", steps)
			}
			for i, v := range layoutanim.SampleCurve(e, steps) {
				bar := strings.Repeat("#", int(v*curveWidth+0.5))
				printf(cmd, "%5.3f  %5.3f  %s\n", float64(i)/float64(steps), v, bar)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&steps, "steps", "n", 10, "number of intervals to sample")
	return cmd
}

func newDecodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "decode <config.yaml>",
		Short: "Validate an animation configuration and print how it decodes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			anim, err := layoutanim.DecodeLayoutAnimationYAML(data, nil, nil)
			if err != nil {
				return err
			}
			printf(cmd, "duration %gms\n", anim.Duration)
			for _, cfg := range []*layoutanim.AnimationConfig{anim.Create, anim.Update, anim.Delete} {
				if cfg == nil {
					continue
				}
				printf(cmd, "%-6s %s %s duration=%gms delay=%gms\n",
					cfg.Kind, cfg.Easing, cfg.Property, cfg.Duration, cfg.Delay)
			}
			return nil
		},
	}
}
