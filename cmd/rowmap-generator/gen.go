package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"rowmap-generator/internal/gen"
)

const genLongDescription = `Generate a <type>_rowmap.go file for every marked type in the given packages
(default: ./...). Files are written next to the package declaring the type
unless --output names a directory.

` + pathPatternsHelp

func newGenCmd(a *app) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "gen [packages]",
		Short: "Generate row mappers",
		Long:  genLongDescription,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := a.loadPlan(cmd.Context(), args)
			if err != nil {
				return err
			}

			if err := p.Diagnostics.Err(); err != nil {
				return err
			}

			cfg := generatorConfig(a.v)

			files, err := gen.NewGenerator(cfg).Generate(p)
			if err != nil {
				return err
			}

			for _, f := range files {
				for _, s := range f.Skipped {
					a.logger.Warn("property is not reachable from generated code",
						zap.String("type", f.TypeID), zap.String("property", s))
				}
			}

			if dryRun {
				for _, f := range files {
					fmt.Fprintf(cmd.OutOrStdout(), "// %s\n%s\n", f.Filename, f.Content)
				}

				return nil
			}

			written, err := gen.WriteFiles(files, cfg.OutputDir)
			if err != nil {
				return err
			}

			for _, path := range written {
				a.logger.Debug("wrote file", zap.String("path", path))
				fmt.Fprintln(cmd.OutOrStdout(), path)
			}

			a.logger.Info("generation complete", zap.Int("files", len(written)))

			return nil
		},
	}

	flags := cmd.Flags()

	flags.BoolVar(&dryRun, "dry-run", false, "print generated code instead of writing files")

	flags.StringP(outputFlagName, "o", "", "directory to write files to (default: next to each package)")
	bindFlagToConfig(a.v, flags.Lookup(outputFlagName), outputKey)

	flags.String(runtimeImportFlagName, gen.DefaultRuntimeImport, "import path of the rowmap runtime package")
	bindFlagToConfig(a.v, flags.Lookup(runtimeImportFlagName), runtimeImportKey)

	flags.String(suffixFlagName, gen.DefaultFileSuffix, "suffix of generated file names")
	bindFlagToConfig(a.v, flags.Lookup(suffixFlagName), suffixKey)

	flags.Bool(commentsFlagName, true, "annotate switch cases with selector and strategy")
	bindFlagToConfig(a.v, flags.Lookup(commentsFlagName), commentsKey)

	return cmd
}
