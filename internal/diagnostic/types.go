package diagnostic

import (
	"fmt"
	"strings"

	"derive-generator/internal/common"
)

// Code identifies a kind of diagnostic.
type Code string

const (
	MissingMember                Code = "MISSING_MEMBER"
	DuplicateMemberSameType      Code = "DUPLICATE_MEMBER_SAME_TYPE"
	DuplicateMemberDifferentType Code = "DUPLICATE_MEMBER_DIFFERENT_TYPE"
	FeatureUnsupported           Code = "FEATURE_UNSUPPORTED"
	VisibilityIgnored            Code = "VISIBILITY_IGNORED"
	RepeatedProperty             Code = "REPEATED_PROPERTY"
)

// ID returns the stable numeric identifier of the code (e.g. "DSG3000").
// Errors are in the 3000 range, warnings in the 2000 range.
func (c Code) ID() string {
	switch c {
	case MissingMember:
		return "DSG3000"
	case DuplicateMemberDifferentType:
		return "DSG3001"
	case FeatureUnsupported:
		return "DSG3002"
	case DuplicateMemberSameType:
		return "DSG2000"
	case VisibilityIgnored:
		return "DSG2001"
	case RepeatedProperty:
		return "DSG2002"
	default:
		return ""
	}
}

// Severity represents the severity level of a diagnostic.
type Severity int

const (
	SeverityWarning Severity = iota
	SeverityError
)

// String returns a human-readable severity name.
func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return common.UnknownStr
	}
}

// Location points at the annotation that produced a diagnostic.
type Location struct {
	File   string
	Line   int
	Column int
}

// IsZero reports whether the location is unset.
func (l Location) IsZero() bool {
	return l.File == "" && l.Line == 0
}

// String formats the location as file:line:col, omitting unknown parts.
func (l Location) String() string {
	if l.IsZero() {
		return ""
	}

	s := l.File
	if l.Line > 0 {
		s += fmt.Sprintf(":%d", l.Line)
		if l.Column > 0 {
			s += fmt.Sprintf(":%d", l.Column)
		}
	}

	return s
}

// Diagnostic represents a single diagnostic message.
type Diagnostic struct {
	// Code is a unique identifier for this type of diagnostic.
	Code Code
	// Severity of the diagnostic.
	Severity Severity
	// Template is a fmt format string rendered with Args.
	Template string
	// Args are the template arguments (type and member names).
	Args []string
	// Location of the annotation this diagnostic relates to.
	Location Location
	// Hint is an optional suggestion shown after the message.
	Hint string
}

// Message renders the template with its arguments.
func (d Diagnostic) Message() string {
	args := make([]any, len(d.Args))
	for i, a := range d.Args {
		args[i] = a
	}

	return fmt.Sprintf(d.Template, args...)
}

// String returns a formatted diagnostic string.
func (d Diagnostic) String() string {
	var prefix []string
	if loc := d.Location.String(); loc != "" {
		prefix = append(prefix, loc+":")
	}

	prefix = append(prefix, d.Severity.String())
	if id := d.Code.ID(); id != "" {
		prefix = append(prefix, id)
	}

	msg := fmt.Sprintf("%s %s: %s", strings.Join(prefix, " "), d.Code, d.Message())
	if d.Hint != "" {
		msg += " (" + d.Hint + ")"
	}

	return msg
}

// Diagnostics holds diagnostics in the order they were raised.
type Diagnostics struct {
	Items []Diagnostic
}

// AddError adds an error diagnostic.
func (d *Diagnostics) AddError(code Code, loc Location, template string, args ...string) {
	d.Items = append(d.Items, Diagnostic{
		Code:     code,
		Severity: SeverityError,
		Template: template,
		Args:     args,
		Location: loc,
	})
}

// AddWarning adds a warning diagnostic.
func (d *Diagnostics) AddWarning(code Code, loc Location, template string, args ...string) {
	d.Items = append(d.Items, Diagnostic{
		Code:     code,
		Severity: SeverityWarning,
		Template: template,
		Args:     args,
		Location: loc,
	})
}

// Hint attaches a hint to the most recently added diagnostic.
func (d *Diagnostics) Hint(hint string) {
	if len(d.Items) > 0 {
		d.Items[len(d.Items)-1].Hint = hint
	}
}

// Errors returns the error diagnostics in order.
func (d *Diagnostics) Errors() []Diagnostic {
	return d.filter(SeverityError)
}

// Warnings returns the warning diagnostics in order.
func (d *Diagnostics) Warnings() []Diagnostic {
	return d.filter(SeverityWarning)
}

func (d *Diagnostics) filter(s Severity) []Diagnostic {
	var out []Diagnostic
	for _, item := range d.Items {
		if item.Severity == s {
			out = append(out, item)
		}
	}

	return out
}

// Count returns how many diagnostics carry the given code.
func (d *Diagnostics) Count(code Code) int {
	n := 0
	for _, item := range d.Items {
		if item.Code == code {
			n++
		}
	}

	return n
}

// Len returns the number of diagnostics.
func (d *Diagnostics) Len() int {
	return len(d.Items)
}

// HasErrors returns true if there are any error diagnostics.
func (d *Diagnostics) HasErrors() bool {
	for _, item := range d.Items {
		if item.Severity == SeverityError {
			return true
		}
	}

	return false
}

// Merge appends another Diagnostics instance to this one.
func (d *Diagnostics) Merge(other Diagnostics) {
	d.Items = append(d.Items, other.Items...)
}

// IsValid returns true if there are no errors.
func (d *Diagnostics) IsValid() bool {
	return !d.HasErrors()
}
