package gen

import (
	"bytes"
	"fmt"
	"go/format"
	"path/filepath"
	"text/template"

	"derive-generator/internal/common"
	"derive-generator/internal/derive"
)

// GeneratorConfig holds configuration for code generation.
type GeneratorConfig struct {
	// OutputDir receives the files of targets whose package has no entry in
	// PackageDirs.
	OutputDir string
	// PackageDirs maps target package import paths to their directories.
	PackageDirs map[string]string
	// DebugUnformatted writes the raw source next to the output when it does
	// not pass gofmt.
	DebugUnformatted bool
}

// DefaultGeneratorConfig returns the default generator configuration.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		OutputDir: ".",
	}
}

// Generator turns resolved schemas into Go source files.
type Generator struct {
	config GeneratorConfig
}

// NewGenerator creates a new Generator with the given configuration.
func NewGenerator(config GeneratorConfig) *Generator {
	return &Generator{config: config}
}

// GeneratedFile represents a generated Go source file.
type GeneratedFile struct {
	// Package is the import path of the package the file belongs to.
	Package string
	// Dir is the directory the file belongs in; empty means the writer's
	// default directory.
	Dir string
	// Filename is the name of the file (e.g., "order_summary_derived.go").
	Filename string
	// Content is the formatted Go source code.
	Content []byte
}

// Generate renders one file per schema, in input order. Nil schemas (targets
// whose derivation aborted) are skipped. Two targets that would be written to
// the same file are an error.
func (g *Generator) Generate(schemas []*derive.ResolvedSchema) ([]GeneratedFile, error) {
	files := make([]GeneratedFile, 0, len(schemas))
	seen := make(map[string]string)
	paths := make(map[string]string)

	for _, rs := range schemas {
		if rs == nil {
			continue
		}

		key := rs.Target.Package + "." + rs.Target.Name
		if _, dup := seen[key]; dup {
			return nil, fmt.Errorf("target %s is declared more than once", key)
		}

		seen[key] = rs.Target.Name

		path := filepath.Join(g.dirFor(rs.Target.Package), Filename(rs.Target.Name))
		if other, dup := paths[path]; dup {
			return nil, fmt.Errorf("targets %s and %s are both written to %s", other, key, path)
		}

		paths[path] = key

		file, err := g.GenerateFile(rs)
		if err != nil {
			return nil, fmt.Errorf("generating %s: %w", rs.Target.Name, err)
		}

		files = append(files, *file)
	}

	return files, nil
}

// GenerateFile renders the file of a single schema.
func (g *Generator) GenerateFile(rs *derive.ResolvedSchema) (*GeneratedFile, error) {
	rendered, err := Emit(rs)
	if err != nil {
		return nil, err
	}

	data := fileData{
		PackageName: rs.Target.PkgName,
		Rendered:    rendered,
	}

	if data.PackageName == "" {
		data.PackageName = common.PkgAlias(rs.Target.Package)
	}

	for _, imp := range rendered.Imports {
		line := importLine{Path: imp.Path}
		if imp.Name != common.PkgAlias(imp.Path) {
			line.Alias = imp.Name
		}

		data.Imports = append(data.Imports, line)
	}

	file := &GeneratedFile{
		Package:  rs.Target.Package,
		Dir:      g.dirFor(rs.Target.Package),
		Filename: Filename(rs.Target.Name),
	}

	var buf bytes.Buffer
	if err := fileTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template: %w", err)
	}

	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		if g.config.DebugUnformatted {
			_ = writeDebugUnformatted(file.Dir, file.Filename, buf.Bytes())
		}

		file.Content = buf.Bytes()

		return file, fmt.Errorf("formatting code: %w (unformatted code returned)", err)
	}

	file.Content = formatted

	return file, nil
}

func (g *Generator) dirFor(pkgPath string) string {
	if dir, ok := g.config.PackageDirs[pkgPath]; ok && dir != "" {
		return dir
	}

	return g.config.OutputDir
}

// Filename returns the name of the file generated for target.
func Filename(target string) string {
	return snakeCase(target) + "_derived.go"
}

type importLine struct {
	Alias string
	Path  string
}

type fileData struct {
	PackageName string
	Imports     []importLine
	Rendered    Rendered
}

var fileTemplate = template.Must(template.New("derived").Parse(`// Code generated by derive-generator. DO NOT EDIT.

package {{.PackageName}}
{{if .Imports}}
import (
{{range .Imports}}	{{if .Alias}}{{.Alias}} {{end}}"{{.Path}}"
{{end}})
{{end}}
{{.Rendered.Properties}}
{{with .Rendered.Accessors}}{{.}}
{{end}}{{.Rendered.Constructor}}
{{with .Rendered.Validate}}
{{.}}{{end}}`))
