package gen

import (
	"errors"
	"fmt"
	"go/token"
	"strings"

	"derive-generator/internal/common"
	"derive-generator/internal/derive"
	"derive-generator/internal/schema"
)

// validateMethod is the name of the method checking mandatory members.
const validateMethod = "Validate"

// Rendered holds the declarations generated for one derived type. The blocks
// are not gofmt'ed.
type Rendered struct {
	// Properties is the struct type declaration.
	Properties string
	// Accessors holds the getters of exported get-only members, if any.
	Accessors string
	// Constructor is the New<Target> function.
	Constructor string
	// Validate is the mandatory member check, empty when no member is mandatory.
	Validate string
	// Imports needed by the blocks, sorted by path.
	Imports []schema.Import
}

// field is a member as it is declared in the struct.
type field struct {
	member   derive.ResolvedMember
	name     string
	accessor string
	typ      string
}

// Emit renders rs as Go declarations for the package rs.Target.Package.
// It performs no validation of the schema beyond what is needed to produce
// compilable names and imports.
func Emit(rs *derive.ResolvedSchema) (Rendered, error) {
	if rs == nil {
		return Rendered{}, errors.New("nothing to emit: schema is nil")
	}

	e := &emitter{
		rs:      rs,
		imports: newImportSet(rs.Target.Package),
		recv:    receiverName(rs.Target.Name),
	}

	params, err := e.params()
	if err != nil {
		return Rendered{}, fmt.Errorf("emitting %s: %w", rs.Target.Name, err)
	}

	fields, err := e.fields()
	if err != nil {
		return Rendered{}, fmt.Errorf("emitting %s: %w", rs.Target.Name, err)
	}

	out := Rendered{
		Properties:  e.properties(fields, params),
		Accessors:   e.accessors(fields),
		Constructor: e.constructor(fields, params),
	}

	if v := e.validate(fields); v != "" {
		if err := e.imports.add(schema.Import{Name: "errors", Path: "errors"}); err != nil {
			return Rendered{}, fmt.Errorf("emitting %s: %w", rs.Target.Name, err)
		}

		if err := e.imports.add(schema.Import{Name: "reflect", Path: "reflect"}); err != nil {
			return Rendered{}, fmt.Errorf("emitting %s: %w", rs.Target.Name, err)
		}

		out.Validate = v
	}

	out.Imports = e.imports.list()

	return out, nil
}

type emitter struct {
	rs      *derive.ResolvedSchema
	imports *importSet
	recv    string
}

// params returns the constructor parameter types, one per source.
func (e *emitter) params() ([]string, error) {
	out := make([]string, 0, len(e.rs.Sources))
	for _, src := range e.rs.Sources {
		if src.Namespace == "" || src.Namespace == e.rs.Target.Package {
			out = append(out, src.Name)
			continue
		}

		name := src.Package
		if name == "" {
			name = common.PkgAlias(src.Namespace)
		}

		if err := e.imports.add(schema.Import{Name: name, Path: src.Namespace}); err != nil {
			return nil, err
		}

		out = append(out, name+"."+src.Name)
	}

	return out, nil
}

// fields names the struct fields. Exported members keep an exported name,
// everything else is unexported. Get-only members are stored in an
// unexported field; exported ones are read through an accessor method.
func (e *emitter) fields() ([]field, error) {
	taken := nameSet{}
	out := make([]field, len(e.rs.Members))

	// Names visible to callers first so that backing fields yield to them.
	for i, m := range e.rs.Members {
		typ, err := e.imports.qualify(m.Type)
		if err != nil {
			return nil, fmt.Errorf("member %s: %w", m.Name, err)
		}

		out[i] = field{member: m, typ: typ}

		switch {
		case m.Visibility.IsExported() && m.Mutable:
			out[i].name = taken.claim(exportName(m.Name))
		case m.Visibility.IsExported():
			out[i].accessor = taken.claim(exportName(m.Name))
		default:
			out[i].name = taken.claim(unexportName(m.Name))
		}
	}

	for i := range out {
		if out[i].name == "" {
			out[i].name = taken.claim(unexportName(out[i].member.Name))
		}
	}

	if e.hasMandatory() && taken[validateMethod] {
		return nil, fmt.Errorf("member %s collides with the generated %s method", validateMethod, validateMethod)
	}

	return out, nil
}

func (e *emitter) hasMandatory() bool {
	for _, m := range e.rs.Members {
		if m.Mandatory {
			return true
		}
	}

	return false
}

func (e *emitter) properties(fields []field, params []string) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "// %s %s.\n", e.rs.Target.Name, describe(e.rs.Kind, params))
	fmt.Fprintf(&sb, "type %s struct {\n", e.rs.Target.Name)

	for _, f := range fields {
		fmt.Fprintf(&sb, "\t%s %s", f.name, f.typ)

		if f.member.Mandatory {
			sb.WriteString(" `validate:\"required\"`")
		}

		switch f.member.Visibility {
		case schema.VisibilityPublic, schema.VisibilityInternal:
		default:
			fmt.Fprintf(&sb, " // %s", f.member.Visibility)
		}

		sb.WriteByte('\n')
	}

	sb.WriteString("}\n")

	return sb.String()
}

func describe(kind derive.Kind, params []string) string {
	switch kind {
	case derive.KindSelect:
		return "picks members of " + joinList(params)
	case derive.KindUnion:
		return "merges the members of " + joinList(params)
	case derive.KindReadonly:
		return "is a read-only view of " + joinList(params)
	case derive.KindRequired:
		return "requires every exported member of " + joinList(params)
	default:
		return "is derived from " + joinList(params)
	}
}

func joinList(items []string) string {
	switch len(items) {
	case 0:
		return "nothing"
	case 1:
		return items[0]
	default:
		return strings.Join(items[:len(items)-1], ", ") + " and " + items[len(items)-1]
	}
}

func (e *emitter) accessors(fields []field) string {
	var sb strings.Builder

	for _, f := range fields {
		if f.accessor == "" {
			continue
		}

		if sb.Len() > 0 {
			sb.WriteByte('\n')
		}

		fmt.Fprintf(&sb, "// %s returns the %s member.\n", f.accessor, f.member.Name)
		fmt.Fprintf(&sb, "func (%s %s) %s() %s {\n", e.recv, e.rs.Target.Name, f.accessor, f.typ)
		fmt.Fprintf(&sb, "\treturn %s.%s\n", e.recv, f.name)
		sb.WriteString("}\n")
	}

	return sb.String()
}

// constructorName is New<Target>, or new<Target> for unexported targets.
func (e *emitter) constructorName() string {
	name := e.rs.Target.Name
	if token.IsExported(name) {
		return "New" + name
	}

	return "new" + exportName(name)
}

func (e *emitter) constructor(fields []field, params []string) string {
	var sb strings.Builder

	name := e.constructorName()
	fmt.Fprintf(&sb, "// %s creates a %s from its source values.\n", name, e.rs.Target.Name)
	fmt.Fprintf(&sb, "func %s(", name)

	for i, p := range params {
		if i > 0 {
			sb.WriteString(", ")
		}

		fmt.Fprintf(&sb, "%s %s", paramName(i+1), p)
	}

	fmt.Fprintf(&sb, ") %s {\n", e.rs.Target.Name)

	if len(fields) == 0 {
		fmt.Fprintf(&sb, "\treturn %s{}\n}\n", e.rs.Target.Name)
		return sb.String()
	}

	fmt.Fprintf(&sb, "\treturn %s{\n", e.rs.Target.Name)

	for _, f := range fields {
		fmt.Fprintf(&sb, "\t\t%s: %s.%s,\n", f.name, paramName(f.member.SourceIndex), f.member.Name)
	}

	sb.WriteString("\t}\n}\n")

	return sb.String()
}

// paramName is the constructor parameter holding source i (1-based).
func paramName(i int) string {
	return fmt.Sprintf("value_%d", i)
}

func (e *emitter) validate(fields []field) string {
	if !e.hasMandatory() {
		return ""
	}

	var sb strings.Builder

	target := e.rs.Target.Name
	fmt.Fprintf(&sb, "// %s reports the mandatory members of %s that are not set.\n", validateMethod, target)
	fmt.Fprintf(&sb, "func (%s %s) %s() error {\n", e.recv, target, validateMethod)
	sb.WriteString("\tvar errs []error\n")

	for _, f := range fields {
		if !f.member.Mandatory {
			continue
		}

		fmt.Fprintf(&sb, "\tif reflect.ValueOf(&%s.%s).Elem().IsZero() {\n", e.recv, f.name)
		fmt.Fprintf(&sb, "\t\terrs = append(errs, errors.New(%q))\n", target+"."+f.name+" is required")
		sb.WriteString("\t}\n")
	}

	sb.WriteString("\n\treturn errors.Join(errs...)\n}\n")

	return sb.String()
}
