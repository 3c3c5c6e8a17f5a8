package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"slices"

	"derive-generator/internal/analyze"
	"derive-generator/internal/derive"
	"derive-generator/internal/gen"
	"derive-generator/internal/pipeline"
	"derive-generator/internal/request"
	"derive-generator/internal/schema"
)

// inputs are the annotations of a run and everything needed to resolve them.
type inputs struct {
	file     *request.File
	graph    *analyze.Graph
	provider schema.Provider
	anns     []request.Annotation
}

func loadInputs(cfg genConfig) (*inputs, error) {
	in := &inputs{graph: analyze.NewGraph()}
	static := schema.NewIndex()
	patterns := slices.Clone(cfg.Packages)

	if cfg.ConfigFile != "" {
		f, err := request.LoadFile(cfg.ConfigFile)
		if err != nil {
			return nil, err
		}

		static, err = f.StaticSchemas()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", cfg.ConfigFile, err)
		}

		in.file = f
		in.anns = f.Annotations()
		patterns = append(patterns, f.Packages...)
	}

	loader := analyze.NewLoader()

	if len(cfg.Scan) > 0 {
		g, err := loader.Load(cfg.Scan...)
		if err != nil {
			return nil, err
		}

		// Later loads add and re-sort comments; keep only the scanned ones.
		in.anns = append(in.anns, request.FromComments(slices.Clone(g.Comments))...)
		in.graph = g
	}

	if len(patterns) > 0 {
		g, err := loader.Load(patterns...)
		if err != nil {
			return nil, err
		}

		in.graph = g
	}

	in.provider = schema.Chain{static, in.graph}

	return in, nil
}

// capabilities reports what the modules of the target packages support. An
// explicit goVersion wins; otherwise every module must support a feature.
func capabilities(goVersion string, dirs []string, logger *log.Logger) (derive.Capabilities, error) {
	if goVersion != "" {
		return analyze.CapabilitiesFor(goVersion), nil
	}

	caps := derive.Capabilities{MandatoryFields: true}

	for _, dir := range dirs {
		c, _, err := analyze.DetectCapabilities(dir)
		if errors.Is(err, analyze.ErrNoModule) {
			logger.Printf("no go.mod found for %s; mandatory members need Go %s or -go-version", dir, derive.MandatoryFieldsSince)
			return derive.Capabilities{}, nil
		}

		if err != nil {
			return derive.Capabilities{}, err
		}

		caps.MandatoryFields = caps.MandatoryFields && c.MandatoryFields
	}

	return caps, nil
}

// moduleDirs returns the distinct directories the targets are written to.
// Targets of packages without a known directory use the output directory.
func moduleDirs(cfg genConfig, in *inputs, pkgDirs map[string]string) []string {
	fallback := cfg.OutputDir
	if fallback == "" {
		fallback = "."
	}

	var dirs []string
	for _, ann := range in.anns {
		dir, ok := pkgDirs[ann.Target.Package]
		if !ok || cfg.OutputDir != "" {
			dir = fallback
		}

		if !slices.Contains(dirs, dir) {
			dirs = append(dirs, dir)
		}
	}

	if len(dirs) == 0 {
		dirs = append(dirs, fallback)
	}

	return dirs
}

// generate resolves every target and, when write is set, writes the derived
// files. Targets with error diagnostics are still written; the run fails.
func generate(ctx context.Context, cfg genConfig, write bool, stdout io.Writer, logger *log.Logger) error {
	in, err := loadInputs(cfg)
	if err != nil {
		return err
	}

	pkgDirs := packageDirs(in)

	caps, err := capabilities(cfg.GoVersion, moduleDirs(cfg, in, pkgDirs), logger)
	if err != nil {
		return err
	}

	results, err := pipeline.Run(ctx, in.anns, pipeline.Options{
		Provider:     in.provider,
		Capabilities: caps,
		Workers:      cfg.Workers,
	})
	if err != nil {
		return err
	}

	report(stdout, results)

	if write {
		if err := writeDerived(cfg, pkgDirs, results, stdout); err != nil {
			return err
		}
	}

	diags := pipeline.Diagnostics(results)
	resErrs := pipeline.Errors(results)
	warnings := diags.Warnings()

	fmt.Fprintf(stdout, "%d targets: %d unresolved, %d errors, %d warnings\n",
		len(results), len(resErrs), len(diags.Errors()), len(warnings))

	for i := range results {
		if !results[i].OK() {
			return errFailed
		}
	}

	if cfg.Strict && len(warnings) > 0 {
		return errFailed
	}

	return nil
}

// report prints resolution errors and diagnostics in target order.
func report(out io.Writer, results []pipeline.Result) {
	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(out, "%v\n", r.Err)
			continue
		}

		for _, d := range r.Diagnostics.Items {
			fmt.Fprintln(out, d.String())
		}
	}
}

func writeDerived(cfg genConfig, pkgDirs map[string]string, results []pipeline.Result, stdout io.Writer) error {
	schemas := pipeline.Schemas(results)

	genCfg := gen.GeneratorConfig{
		OutputDir:        cfg.OutputDir,
		DebugUnformatted: cfg.DebugUnformatted,
	}

	if cfg.OutputDir == "" {
		genCfg.PackageDirs = pkgDirs

		for _, rs := range schemas {
			if _, ok := genCfg.PackageDirs[rs.Target.Package]; !ok {
				return fmt.Errorf("no directory known for package %s of %s: set dir in the request file or -out",
					rs.Target.Package, rs.Target.Name)
			}
		}
	}

	files, err := gen.NewGenerator(genCfg).Generate(schemas)
	if err != nil {
		return err
	}

	if err := gen.WriteFiles(files, cfg.OutputDir); err != nil {
		return err
	}

	for _, f := range files {
		dir := f.Dir
		if dir == "" {
			dir = cfg.OutputDir
		}

		fmt.Fprintf(stdout, "wrote %s\n", filepath.Join(dir, f.Filename))
	}

	return nil
}

// packageDirs maps target packages to their directories: the request file's
// dir for its package, and the loaded package for directive targets.
func packageDirs(in *inputs) map[string]string {
	dirs := make(map[string]string)

	if in.file != nil && in.file.Dir != "" {
		dirs[in.file.Package] = in.file.Dir
	}

	for _, ann := range in.anns {
		pkg := ann.Target.Package
		if _, ok := dirs[pkg]; ok {
			continue
		}

		if p, ok := in.graph.Package(pkg); ok && p.Dir != "" {
			dirs[pkg] = p.Dir
		}
	}

	return dirs
}
