package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/davecgh/go-spew/spew"

	"derive-generator/internal/analyze"
	"derive-generator/internal/schema"
)

var dumper = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

// analyzeTypes prints the catalogs of the requested types, or the struct
// types of every loaded package when none is requested.
func analyzeTypes(cfg analyzeConfig, out io.Writer) error {
	graph, err := analyze.NewLoader().Load(cfg.Packages...)
	if err != nil {
		return err
	}

	if len(cfg.Types) == 0 {
		for _, p := range graph.Roots() {
			fmt.Fprintf(out, "%s (package %s)\n", p.Path, p.Name)

			for _, name := range p.Types {
				fmt.Fprintf(out, "  %s\n", name)
			}
		}

		return nil
	}

	var provider schema.Provider = graph
	if cfg.From != "" {
		provider = graph.From(cfg.From)
	}

	for _, ref := range cfg.Types {
		ts, err := provider.Lookup(ref)
		if err != nil {
			return err
		}

		if cfg.Dump {
			dumper.Fdump(out, ts)
			continue
		}

		printSchema(out, ts, cfg.From)
	}

	return nil
}

// printSchema lists the members of ts. Without a target package, members
// with package visibility are derivable only by targets in the same package.
func printSchema(out io.Writer, ts *schema.TypeSchema, from string) {
	fmt.Fprintf(out, "%s (%s)\n", ts, ts.Namespace)

	eligible := make(map[string]bool)
	for _, m := range schema.Catalog(ts, schema.FilterPublicOrInternal) {
		eligible[m.Name] = true
	}

	for _, m := range ts.Members {
		var notes []string
		if m.IsStatic {
			notes = append(notes, "static")
		}

		if m.IsSynthesized {
			notes = append(notes, "synthesized")
		}

		switch {
		case !eligible[m.Name]:
			notes = append(notes, "not derivable")
		case from == "" && m.Visibility == schema.VisibilityInternal:
			notes = append(notes, "same package only")
		}

		line := fmt.Sprintf("  %-16s %-24s %s", m.Name, m.Type, m.Visibility)
		if len(notes) > 0 {
			line += " (" + strings.Join(notes, ", ") + ")"
		}

		fmt.Fprintln(out, strings.TrimRight(line, " "))
	}
}
