package request

import (
	"strings"

	"derive-generator/internal/analyze"
	"derive-generator/internal/common"
	"derive-generator/internal/derive"
	"derive-generator/internal/diagnostic"
)

// Annotation is a raw derivation request as written by the user. Nothing in
// it has been checked yet.
type Annotation struct {
	Target     derive.Target
	Kind       string
	Sources    []string
	Properties []string
	Location   diagnostic.Location
}

// Annotations returns the annotations declared by the file's targets, in
// file order.
func (f *File) Annotations() []Annotation {
	out := make([]Annotation, 0, len(f.Targets))
	for _, t := range f.Targets {
		out = append(out, Annotation{
			Target: derive.Target{
				Name:    t.Name,
				Package: f.Package,
				PkgName: f.PackageName,
			},
			Kind:       t.Strategy,
			Sources:    common.Compact(trimAll(t.Source)),
			Properties: common.Compact(trimAll(t.Properties)),
			Location:   diagnostic.Location{File: f.Path, Line: t.Line, Column: t.Column},
		})
	}

	return out
}

// ParseDirective parses a comment of the form
//
//	//derive:<kind> <Target> <Source>[,<Source>...] [Property ...]
//
// Properties may be separated by spaces or commas. The target package is left
// empty for the caller to fill in.
func ParseDirective(text string, loc diagnostic.Location) (Annotation, bool) {
	body, ok := strings.CutPrefix(strings.TrimSpace(text), analyze.DirectivePrefix)
	if !ok {
		return Annotation{}, false
	}

	fields := strings.Fields(body)
	ann := Annotation{Location: loc}

	if len(fields) > 0 {
		ann.Kind = fields[0]
	}

	if len(fields) > 1 {
		ann.Target.Name = fields[1]
	}

	if len(fields) > 2 {
		ann.Sources = splitList(fields[2])
	}

	for _, f := range fields[min(3, len(fields)):] {
		ann.Properties = append(ann.Properties, splitList(f)...)
	}

	return ann, true
}

// FromComments parses the directive comments collected by the loader. Each
// annotation targets the package declaring its comment.
func FromComments(comments []analyze.Comment) []Annotation {
	var out []Annotation
	for _, c := range comments {
		loc := diagnostic.Location{File: c.Position.Filename, Line: c.Position.Line, Column: c.Position.Column}

		ann, ok := ParseDirective(c.Text, loc)
		if !ok {
			continue
		}

		if c.Package != nil {
			ann.Target.Package = c.Package.Path
			ann.Target.PkgName = c.Package.Name
		}

		out = append(out, ann)
	}

	return out
}

func splitList(s string) []string {
	return common.Compact(trimAll(strings.Split(s, ",")))
}

func trimAll(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = strings.TrimSpace(s)
	}

	return out
}
