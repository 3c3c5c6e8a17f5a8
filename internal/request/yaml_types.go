package request

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// File is the YAML request file.
type File struct {
	Version     string        `yaml:"version"`
	Package     string        `yaml:"package"`
	PackageName string        `yaml:"package_name,omitempty"`
	Dir         string        `yaml:"dir,omitempty"`
	Packages    StringOrArray `yaml:"packages,omitempty"`
	Targets     []TargetDef   `yaml:"targets"`
	Schemas     []SchemaDecl  `yaml:"schemas,omitempty"`

	// Path is the file the definition was read from, if any.
	Path string `yaml:"-"`
}

// TargetDef declares one derived type.
type TargetDef struct {
	Name       string        `yaml:"name"`
	Strategy   string        `yaml:"strategy"`
	Source     StringOrArray `yaml:"source"`
	Properties StringOrArray `yaml:"properties,omitempty"`

	// Line and Column locate the definition in its file.
	Line   int `yaml:"-"`
	Column int `yaml:"-"`
}

// SchemaDecl declares a source type that is not loaded from Go packages.
type SchemaDecl struct {
	Name        string       `yaml:"name"`
	Package     string       `yaml:"package,omitempty"`
	PackageName string       `yaml:"package_name,omitempty"`
	Members     []MemberDecl `yaml:"members"`
}

// MemberDecl declares one member of a SchemaDecl.
type MemberDecl struct {
	Name        string       `yaml:"name"`
	Type        string       `yaml:"type"`
	Visibility  string       `yaml:"visibility,omitempty"` // default: public
	Static      bool         `yaml:"static,omitempty"`
	Synthesized bool         `yaml:"synthesized,omitempty"`
	Imports     []ImportDecl `yaml:"imports,omitempty"`
}

// ImportDecl names a package a member type refers to.
type ImportDecl struct {
	Name string `yaml:"name,omitempty"`
	Path string `yaml:"path"`
}

// StringOrArray is a string slice that can be written as a single string or a list.
type StringOrArray []string

// UnmarshalYAML implements custom YAML unmarshaling for TargetDef, recording
// where the definition starts.
func (t *TargetDef) UnmarshalYAML(node *yaml.Node) error {
	type plain TargetDef

	var p plain
	if err := node.Decode(&p); err != nil {
		return err
	}

	*t = TargetDef(p)
	t.Line = node.Line
	t.Column = node.Column

	return nil
}

// UnmarshalYAML implements custom YAML unmarshaling for StringOrArray.
// Accepts either a single string or an array of strings.
func (s *StringOrArray) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var str string

		err := node.Decode(&str)
		if err != nil {
			return err
		}

		if str != "" {
			*s = StringOrArray{str}
		} else {
			*s = StringOrArray{}
		}

		return nil

	case yaml.SequenceNode:
		var arr []string

		err := node.Decode(&arr)
		if err != nil {
			return err
		}

		*s = arr

		return nil

	default:
		return fmt.Errorf("line %d: expected string or array, got %v", node.Line, node.Kind)
	}
}
