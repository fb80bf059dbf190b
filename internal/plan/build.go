package plan

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"rowmap-generator/internal/analyze"
	"rowmap-generator/internal/diagnostic"
)

// Diagnostic codes produced while building a plan.
const (
	CodeNotAStruct     = "not_a_struct"
	CodeTypeNotFound   = "type_not_found"
	CodeConstructorArg = "constructor_args"
	CodeConstructorRes = "constructor_results"
)

// OptionNoMaterialize is the directive option that suppresses the materializer.
const OptionNoMaterialize = "nomaterialize"

// ResolvedMappingPlan is the final output of the planning pipeline.
// It contains everything needed for code generation.
type ResolvedMappingPlan struct {
	// Units holds one mapping unit per target, in target order.
	Units []MappingUnit[*analyze.TypeInfo]
	// TypeGraph holds all analyzed types and packages to allow looking up package names.
	TypeGraph *analyze.TypeGraph
	// Diagnostics contains all warnings and errors from planning.
	Diagnostics diagnostic.Diagnostics
}

// Builder plans every target of a type graph.
type Builder struct {
	logger  *zap.Logger
	workers int
}

// NewBuilder creates a Builder. workers bounds how many targets are planned at once;
// values below one plan sequentially.
func NewBuilder(logger *zap.Logger, workers int) *Builder {
	if logger == nil {
		logger = zap.NewNop()
	}

	if workers < 1 {
		workers = 1
	}

	return &Builder{logger: logger, workers: workers}
}

// Build plans all targets of graph. Targets are independent, so they are planned
// concurrently; the result keeps the graph's target order.
func (b *Builder) Build(ctx context.Context, graph *analyze.TypeGraph) (*ResolvedMappingPlan, error) {
	units := make([]*MappingUnit[*analyze.TypeInfo], len(graph.Targets))
	diags := make([]diagnostic.Diagnostics, len(graph.Targets))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(b.workers)

	for i, target := range graph.Targets {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			unit, d := PlanTarget(graph, target)
			units[i], diags[i] = unit, d

			if unit != nil {
				b.logger.Debug("planned target",
					zap.String("type", unit.Target.ID),
					zap.Int("properties", len(unit.Mappings)),
					zap.Bool("materializer", unit.HasMaterializer))
			}

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("planning targets: %w", err)
	}

	result := &ResolvedMappingPlan{TypeGraph: graph}

	for i := range graph.Targets {
		result.Diagnostics.Merge(diags[i])

		if units[i] == nil {
			continue
		}

		result.Diagnostics.Merge(units[i].Diagnostics)
		result.Units = append(result.Units, *units[i])
	}

	return result, nil
}

// PlanTarget builds the mapping unit for one directive target.
// It returns a nil unit, and an error diagnostic, when the target cannot be mapped.
func PlanTarget(graph *analyze.TypeGraph, target analyze.Target) (*MappingUnit[*analyze.TypeInfo], diagnostic.Diagnostics) {
	var diags diagnostic.Diagnostics

	info := graph.GetType(target.ID)
	if info == nil {
		diags.AddError(CodeTypeNotFound, "type is not part of the analyzed packages", target.ID.String(), "")
		return nil, diags
	}

	if info.Kind != analyze.TypeKindStruct {
		diags.AddError(CodeNotAStruct,
			fmt.Sprintf("%s is a %s; only struct types can be mapped", target.Pos, info.Kind),
			target.ID.String(), "")

		return nil, diags
	}

	tt := TargetType{
		ID:            target.ID.String(),
		Name:          target.ID.Name,
		PkgPath:       target.ID.PkgPath,
		Constructible: !target.HasOption(OptionNoMaterialize),
	}

	if pkg, ok := graph.Packages[target.ID.PkgPath]; ok {
		tt.PkgName = pkg.Name
	}

	// Generated code calls the constructor as a single-value expression.
	switch {
	case target.Constructor == "":
	case target.ConstructorParams > 0:
		tt.Constructible = false
		diags.AddInfo(CodeConstructorArg,
			fmt.Sprintf("%s takes %d argument(s)", target.Constructor, target.ConstructorParams),
			tt.ID, "")
	case target.ConstructorResults > 1:
		tt.Constructible = false
		diags.AddInfo(CodeConstructorRes,
			fmt.Sprintf("%s returns %d values", target.Constructor, target.ConstructorResults),
			tt.ID, "")
	default:
		tt.Constructor = target.Constructor
		tt.ConstructorPointer = target.ConstructorPointer
	}

	unit := Plan[*analyze.TypeInfo](tt, NewAnalyzedSource(info))

	return &unit, diags
}
