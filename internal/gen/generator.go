package gen

import (
	"bytes"
	"fmt"
	"go/format"
	"strings"
	"text/template"
	"unicode"

	"rowmap-generator/internal/analyze"
	"rowmap-generator/internal/plan"
)

// DefaultRuntimeImport is the import path of the package generated code calls into.
const DefaultRuntimeImport = "rowmap-generator/rowmap"

// runtimePkgName is the package name generated code expects at RuntimeImport.
const runtimePkgName = "rowmap"

// DefaultFileSuffix is appended to the snake-cased type name to form the output file name.
const DefaultFileSuffix = "_rowmap.go"

// GeneratorConfig holds configuration for code generation.
type GeneratorConfig struct {
	// RuntimeImport is the import path of the rowmap runtime package.
	RuntimeImport string
	// FileSuffix is the suffix of generated file names.
	FileSuffix string
	// OutputDir overrides the directory files are written to.
	// Empty means next to the declaring package.
	OutputDir string
	// GenerateComments enables generation of explanatory comments.
	GenerateComments bool
}

// DefaultGeneratorConfig returns the default generator configuration.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		RuntimeImport:    DefaultRuntimeImport,
		FileSuffix:       DefaultFileSuffix,
		GenerateComments: true,
	}
}

// Generator generates Go code from a resolved mapping plan.
type Generator struct {
	config GeneratorConfig
	graph  *analyze.TypeGraph

	// contextPkgPath is the package path currently being generated into.
	// Used to suppress package prefixes for types in the same package.
	contextPkgPath string
}

// NewGenerator creates a new Generator with the given configuration.
func NewGenerator(config GeneratorConfig) *Generator {
	if config.RuntimeImport == "" {
		config.RuntimeImport = DefaultRuntimeImport
	}

	if config.FileSuffix == "" {
		config.FileSuffix = DefaultFileSuffix
	}

	return &Generator{config: config}
}

// GeneratedFile represents a generated Go source file.
type GeneratedFile struct {
	// Filename is the name of the file (e.g., "person_rowmap.go").
	Filename string
	// Dir is the directory of the package declaring the type, if known.
	Dir string
	// PkgPath is the import path of the package the file belongs to.
	PkgPath string
	// TypeID identifies the mapped type.
	TypeID string
	// Content is the formatted Go source code.
	Content []byte
	// Skipped lists properties that generated code cannot reach.
	Skipped []string
}

// Generate generates one file per mapping unit of p, in unit order.
func (g *Generator) Generate(p *plan.ResolvedMappingPlan) ([]GeneratedFile, error) {
	g.graph = p.TypeGraph

	files := make([]GeneratedFile, 0, len(p.Units))

	for i := range p.Units {
		file, err := g.generateUnit(&p.Units[i])
		if err != nil {
			return nil, fmt.Errorf("generating %s: %w", p.Units[i].Target.ID, err)
		}

		files = append(files, *file)
	}

	return files, nil
}

// generateUnit generates code for a single mapping unit.
func (g *Generator) generateUnit(unit *plan.MappingUnit[*analyze.TypeInfo]) (*GeneratedFile, error) {
	g.contextPkgPath = unit.Target.PkgPath
	defer func() { g.contextPkgPath = "" }()

	data, err := g.buildTemplateData(unit)
	if err != nil {
		return nil, err
	}

	file := &GeneratedFile{
		Filename: data.Filename,
		Dir:      g.packageDir(unit.Target.PkgPath),
		PkgPath:  unit.Target.PkgPath,
		TypeID:   unit.Target.ID,
		Skipped:  data.Skipped,
	}

	var buf bytes.Buffer
	if err := unitTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template: %w", err)
	}

	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		// Best-effort: write unformatted code to a sidecar file to aid debugging.
		debugDir := g.config.OutputDir
		if debugDir == "" {
			debugDir = file.Dir
		}

		_ = writeDebugUnformatted(debugDir, data.Filename, buf.Bytes())

		file.Content = buf.Bytes()

		return file, fmt.Errorf("formatting code: %w (unformatted code returned)", err)
	}

	file.Content = formatted

	return file, nil
}

func (g *Generator) packageDir(pkgPath string) string {
	if g.graph == nil {
		return ""
	}

	if pkg, ok := g.graph.Packages[pkgPath]; ok {
		return pkg.Dir
	}

	return ""
}

// Helper functions

func (g *Generator) filename(name string) string {
	return snakeCase(name) + g.config.FileSuffix
}

// SetterName returns the name of the generated setter for a type.
func SetterName(typeName string) string {
	return "Set" + typeName + "PropertyByName"
}

// MaterializerName returns the name of the generated materializer for a type.
func MaterializerName(typeName string) string {
	return "Materialize" + typeName
}

func keySetterName(typeName string) string {
	return "set" + typeName + "Property"
}

// snakeCase converts a Go identifier to snake_case, keeping acronyms together:
// "HTTPServer" becomes "http_server".
func snakeCase(s string) string {
	runes := []rune(s)

	var sb strings.Builder

	for i, r := range runes {
		if unicode.IsUpper(r) && i > 0 {
			prevLower := unicode.IsLower(runes[i-1]) || unicode.IsDigit(runes[i-1])
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])

			if prevLower || (unicode.IsUpper(runes[i-1]) && nextLower) {
				sb.WriteByte('_')
			}
		}

		sb.WriteRune(unicode.ToLower(r))
	}

	return sb.String()
}

// Template for the mapper file

var unitTemplate = template.Must(template.New("unit").Parse(`// Code generated by rowmap-generator. DO NOT EDIT.

package {{.PackageName}}

{{if .Imports}}
import (
{{range .Imports}}	{{if .Explicit}}{{.Alias}} {{end}}"{{.Path}}"
{{end}})
{{end}}

// {{.SetterName}} assigns value to the property of t whose name matches name, ignoring case.
// Unknown names are ignored; nil is the absent value.
func {{.SetterName}}(t *{{.TypeRef}}, name string, value any) error {
	return {{.KeySetterName}}(t, {{.Runtime}}.Key(name), value)
}

// {{.KeySetterName}} assigns value to the property matching key, which is already upper-cased.
func {{.KeySetterName}}(t *{{.TypeRef}}, key string, value any) error {
	switch key {
{{range .Cases}}	case {{printf "%q" .Key}}:{{if $.GenerateComments}} // {{.Comment}}{{end}}
{{.Body}}
{{end}}	}

	return nil
}
{{if .HasMaterializer}}
// {{.MaterializerName}} reads every row of cur into a new {{.TypeRef}}. It always closes cur.
func {{.MaterializerName}}(cur {{.Runtime}}.Cursor) (_ []{{.TypeRef}}, err error) {
	defer {{.Runtime}}.CloseInto(cur, &err)

	out := []{{.TypeRef}}{}
	if !cur.Next() {
		if err := cur.Err(); err != nil {
			return nil, err
		}

		return out, nil
	}

	keys := {{.Runtime}}.Keys(cur)

	for {
		t := {{.NewInstance}}

		for i, key := range keys {
			if err := {{.KeySetterName}}(&t, key, {{.Runtime}}.Value(cur, i)); err != nil {
				return nil, err
			}
		}

		out = append(out, t)

		if !cur.Next() {
			break
		}
	}

	if err := cur.Err(); err != nil {
		return nil, err
	}

	return out, nil
}
{{end}}
`))
