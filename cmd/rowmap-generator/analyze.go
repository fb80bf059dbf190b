package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"rowmap-generator/internal/mapping"
)

const analyzeLongDescription = `Resolve the properties of every marked type and print the mapping plan as
YAML: matching keys, coercion categories and strategies, in matching order.
The output can be passed to "check --mapping".

` + pathPatternsHelp

func newAnalyzeCmd(a *app) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "analyze [packages]",
		Short: "Print the mapping plan as YAML",
		Long:  analyzeLongDescription,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.loadPlan(cmd.Context(), args)
			if err != nil {
				return err
			}

			mf := mapping.FromPlan(p)

			if out == "" {
				return mapping.Encode(cmd.OutOrStdout(), mf)
			}

			if err := mapping.WriteFile(mf, out); err != nil {
				return err
			}

			a.logger.Info("wrote mapping", zap.String("path", out), zap.Int("types", len(mf.Types)))

			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "f", "", "write the YAML to this file instead of stdout")

	return cmd
}
