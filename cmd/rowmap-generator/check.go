package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"rowmap-generator/internal/mapping"
	"rowmap-generator/internal/probe"
)

const checkLongDescription = `Show which property every column of a result set would set on a marked type.

The type is looked up in the given packages (default: ./...) or, with --mapping,
in a file written by "analyze". Columns come from --columns or from running
--query against a live database:

  rowmap-generator check --type Order --columns id,status,created_at ./store
  rowmap-generator check --type store.Order --mapping plan.yaml \
      --driver sqlite --dsn shop.db --query "SELECT * FROM orders"

Columns that match no property are ignored by the generated setter; a likely
property is suggested for them.`

// ErrIgnoredColumns is returned by check --strict when a column sets nothing.
var ErrIgnoredColumns = errors.New("columns match no property")

type checkOptions struct {
	typeName    string
	mappingPath string
	columns     []string
	driver      string
	dsn         string
	query       string
	minScore    float64
	strict      bool
}

func newCheckCmd(a *app) *cobra.Command {
	var opts checkOptions

	cmd := &cobra.Command{
		Use:   "check --type <type> [packages]",
		Short: "Match a column set against a marked type",
		Long:  checkLongDescription,
		RunE: func(cmd *cobra.Command, args []string) error {
			tm, err := a.findType(cmd, &opts, args)
			if err != nil {
				return err
			}

			columns, err := a.columns(cmd, &opts)
			if err != nil {
				return err
			}

			res := mapping.CheckColumns(tm, columns, opts.minScore)
			renderCheck(cmd.OutOrStdout(), res)

			ignored := res.Ignored()
			for _, c := range ignored {
				a.logger.Debug("column ignored", zap.String("column", c.Column), zap.String("suggestion", c.Suggestion))
			}

			if opts.strict && len(ignored) > 0 {
				return fmt.Errorf("%w: %d of %d", ErrIgnoredColumns, len(ignored), len(columns))
			}

			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.typeName, "type", "t", "", "type to check: Type, pkg.Type or import/path.Type")
	flags.StringVarP(&opts.mappingPath, "mapping", "m", "", "read the type from a YAML file written by analyze")
	flags.StringSliceVar(&opts.columns, "columns", nil, "comma-separated column names")
	flags.StringVar(&opts.driver, "driver", probe.DriverSQLite, "database driver for --query: sqlite or postgres")
	flags.StringVar(&opts.dsn, "dsn", "", "data source name for --query")
	flags.StringVar(&opts.query, "query", "", "query whose result columns are checked")
	flags.Float64Var(&opts.minScore, "min-score", mapping.DefaultMinScore, "minimum similarity for suggestions (0-1)")
	flags.BoolVar(&opts.strict, "strict", false, "fail when a column matches no property")

	_ = cmd.MarkFlagRequired("type")
	cmd.MarkFlagsMutuallyExclusive("columns", "query")
	cmd.MarkFlagsOneRequired("columns", "query")

	return cmd
}

func (a *app) findType(cmd *cobra.Command, opts *checkOptions, patterns []string) (*mapping.TypeMapping, error) {
	var (
		mf  *mapping.MappingFile
		err error
	)

	if opts.mappingPath != "" {
		mf, err = mapping.LoadFile(opts.mappingPath)
	} else {
		mf, err = a.loadMapping(cmd, patterns)
	}

	if err != nil {
		return nil, err
	}

	tm, ok := mf.FindType(opts.typeName)
	if !ok {
		return nil, fmt.Errorf("type %q is not a marked type", opts.typeName)
	}

	return tm, nil
}

func (a *app) loadMapping(cmd *cobra.Command, patterns []string) (*mapping.MappingFile, error) {
	p, err := a.loadPlan(cmd.Context(), patterns)
	if err != nil {
		return nil, err
	}

	return mapping.FromPlan(p), nil
}

func (a *app) columns(cmd *cobra.Command, opts *checkOptions) ([]string, error) {
	if opts.query == "" {
		return opts.columns, nil
	}

	if opts.dsn == "" {
		return nil, errors.New("--query needs --dsn")
	}

	columns, err := probe.Columns(cmd.Context(), opts.driver, opts.dsn, opts.query)
	if err != nil {
		return nil, err
	}

	a.logger.Debug("probed columns", zap.String("driver", opts.driver), zap.Strings("columns", columns))

	return columns, nil
}

func renderCheck(w io.Writer, res *mapping.CheckResult) {
	fmt.Fprintf(w, "%s\n\n", res.Type)

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Column", "Status", "Property", "Strategy", "Suggestion"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetTablePadding("  ")
	table.SetNoWhiteSpace(true)

	for _, c := range res.Columns {
		table.Append([]string{c.Column, string(c.Status), c.Property, c.Strategy, c.Suggestion})
	}

	table.Render()

	if len(res.Unassigned) > 0 {
		fmt.Fprintf(w, "\nunassigned: %s\n", strings.Join(res.Unassigned, ", "))
	}
}
