package gen

import (
	"fmt"
	"regexp"
	"sort"

	"derive-generator/internal/schema"
)

// importSet collects the imports of one generated file, keyed by name.
type importSet struct {
	self   string
	byName map[string]string
}

func newImportSet(self string) *importSet {
	return &importSet{self: self, byName: make(map[string]string)}
}

// add registers imp. Importing the generated package itself is a no-op.
func (s *importSet) add(imp schema.Import) error {
	if imp.Path == "" || imp.Path == s.self {
		return nil
	}

	if have, ok := s.byName[imp.Name]; ok && have != imp.Path {
		return fmt.Errorf("package name %q refers to both %s and %s", imp.Name, have, imp.Path)
	}

	s.byName[imp.Name] = imp.Path

	return nil
}

// list returns the imports sorted by path.
func (s *importSet) list() []schema.Import {
	out := make([]schema.Import, 0, len(s.byName))
	for name, path := range s.byName {
		out = append(out, schema.Import{Name: name, Path: path})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })

	return out
}

// qualify returns the text of t as written in the generated package,
// registering the imports it needs.
func (s *importSet) qualify(t schema.TypeExpr) (string, error) {
	text := t.Text
	for _, imp := range t.Imports {
		if imp.Path == s.self {
			text = unqualify(text, imp.Name)
			continue
		}

		if err := s.add(imp); err != nil {
			return "", err
		}
	}

	return text, nil
}

// unqualify drops the "pkg." qualifier from every identifier in text.
func unqualify(text, pkg string) string {
	re := regexp.MustCompile(`\b` + regexp.QuoteMeta(pkg) + `\.`)

	return re.ReplaceAllString(text, "")
}
