package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"rowmap-generator/internal/analyze"
	"rowmap-generator/internal/logging"
	"rowmap-generator/internal/plan"
)

const pathPatternsHelp = `Supports Go package patterns:
  - ./...          every package below the current directory
  - ./store        a single package
  - ./a ./b        several packages`

const rootLongDescription = `rowmap-generator writes row mappers for Go structs marked with

    //rowmap:generate

Each marked type gets Set<Type>PropertyByName, which assigns an untyped value to
the property whose name matches case-insensitively, and Materialize<Type>, which
reads every row of a cursor into a slice of the type.

` + pathPatternsHelp

// app holds state shared by all commands of one invocation.
type app struct {
	v        *viper.Viper
	logger   *zap.Logger
	closeLog func() error

	configPath string
}

func newApp() *app {
	return &app{v: newConfig(), logger: zap.NewNop(), closeLog: func() error { return nil }}
}

func newRootCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "rowmap-generator",
		Short:         "Generate case-insensitive row mappers for Go structs",
		Long:          rootLongDescription,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd.ErrOrStderr())
		},
	}

	configureRootFlags(a, cmd)

	cmd.AddCommand(
		newGenCmd(a),
		newAnalyzeCmd(a),
		newCheckCmd(a),
		newVersionCmd(),
	)

	return cmd
}

func configureRootFlags(a *app, cmd *cobra.Command) {
	flags := cmd.PersistentFlags()

	flags.StringVar(&a.configPath, configFlagName, "", "config file (default ./"+configBaseName+".yaml)")

	flags.StringP(dirFlagName, "C", "", "directory package patterns are resolved from")
	bindFlagToConfig(a.v, flags.Lookup(dirFlagName), dirKey)

	flags.BoolP(verboseFlagName, "v", false, "enable debug logging")
	bindFlagToConfig(a.v, flags.Lookup(verboseFlagName), logVerboseKey)

	flags.String(logFileFlagName, "", "also write JSON logs to this file")
	bindFlagToConfig(a.v, flags.Lookup(logFileFlagName), logFilenameKey)

	flags.String(logLevelFlagName, defaultLogLevel, "log level: debug, info, warn, error")
	bindFlagToConfig(a.v, flags.Lookup(logLevelFlagName), logLevelKey)

	flags.IntP(workersFlagName, "j", defaultWorkers, "number of types planned concurrently")
	bindFlagToConfig(a.v, flags.Lookup(workersFlagName), workersKey)
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(v *viper.Viper, flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(v.BindPFlag(key, flag))
}

// setup reads the config file and builds the logger.
func (a *app) setup(console io.Writer) error {
	if err := readConfig(a.v, a.configPath); err != nil {
		return fmt.Errorf("reading config: %w", err)
	}

	logger, closeLog, err := logging.New(loggingConfig(a.v), console)
	if err != nil {
		return err
	}

	a.logger, a.closeLog = logger, closeLog

	if used := a.v.ConfigFileUsed(); used != "" {
		a.logger.Debug("using config file", zap.String("path", used))
	}

	return nil
}

// loadPlan loads the packages matched by patterns and plans every marked type.
func (a *app) loadPlan(ctx context.Context, patterns []string) (*plan.ResolvedMappingPlan, error) {
	if len(patterns) == 0 {
		patterns = []string{"./..."}
	}

	analyzer := analyze.NewAnalyzer(
		analyze.WithLogger(a.logger),
		analyze.WithDir(a.v.GetString(dirKey)),
	)

	graph, err := analyzer.LoadPackages(patterns...)
	if err != nil {
		return nil, err
	}

	a.logger.Info("loaded packages",
		zap.Strings("patterns", patterns),
		zap.Int("packages", len(graph.Packages)),
		zap.Int("targets", len(graph.Targets)))

	p, err := plan.NewBuilder(a.logger, a.v.GetInt(workersKey)).Build(ctx, graph)
	if err != nil {
		return nil, err
	}

	p.Diagnostics.Log(a.logger)

	return p, nil
}

// execute runs the command line and returns the process exit code.
func execute(args []string, stdout, stderr io.Writer) int {
	a := newApp()

	cmd := newRootCmd(a)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.Execute()

	if closeErr := a.closeLog(); err == nil && closeErr != nil {
		err = closeErr
	}

	if err != nil {
		fmt.Fprintln(stderr, "error:", err)
		return 1
	}

	return 0
}
