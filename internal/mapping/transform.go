package mapping

import (
	"rowmap-generator/internal/analyze"
	"rowmap-generator/internal/diagnostic"
	"rowmap-generator/internal/gen"
	"rowmap-generator/internal/plan"
)

// FromPlan converts a resolved plan into its YAML form.
// Plan diagnostics about a mapped type are attached to it; the rest stay at file level.
func FromPlan(p *plan.ResolvedMappingPlan) *MappingFile {
	mf := &MappingFile{Version: CurrentVersion, Types: make([]TypeMapping, 0, len(p.Units))}
	mapped := make(map[string]int, len(p.Units))

	for i := range p.Units {
		mf.Types = append(mf.Types, fromUnit(&p.Units[i]))
		mapped[p.Units[i].Target.ID] = i
	}

	for _, d := range p.Diagnostics.All() {
		if i, ok := mapped[d.Type]; ok {
			mf.Types[i].Diagnostics = append(mf.Types[i].Diagnostics, fromDiagnostic(d))
		} else {
			mf.Diagnostics = append(mf.Diagnostics, fromDiagnostic(d))
		}
	}

	return mf
}

func fromUnit(unit *plan.MappingUnit[*analyze.TypeInfo]) TypeMapping {
	tt := unit.Target
	stringer := analyze.NewTypeStringer(tt.PkgPath)

	tm := TypeMapping{
		Type:        tt.ID,
		Package:     tt.PkgName,
		Setter:      gen.SetterName(tt.Name),
		Constructor: tt.Constructor,
		Properties:  make([]PropertyEntry, 0, len(unit.Mappings)),
	}

	if unit.HasMaterializer {
		tm.Materializer = gen.MaterializerName(tt.Name)
	}

	for _, m := range unit.Mappings {
		entry := PropertyEntry{
			Name:      m.Selector(),
			Key:       m.Key,
			Type:      stringer.TypeString(m.Type),
			Category:  m.Category.String(),
			Strategy:  m.Strategy.String(),
			Duplicate: m.Duplicate,
		}

		if m.Promoted() {
			entry.Owner = m.Owner
		}

		tm.Properties = append(tm.Properties, entry)
	}

	return tm
}

func fromDiagnostic(d diagnostic.Diagnostic) DiagnosticEntry {
	return DiagnosticEntry{
		Severity: d.Severity.String(),
		Code:     d.Code,
		Message:  d.Message,
		Field:    d.Field,
	}
}
