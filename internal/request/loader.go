package request

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"derive-generator/internal/common"
)

// CurrentVersion is the only request file version understood.
const CurrentVersion = "1"

// LoadFile loads and parses a YAML request file from the given path.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read request file %s: %w", path, err)
	}

	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	f.Path = path

	return f, nil
}

// Parse parses YAML data into a File and validates its structure.
func Parse(data []byte) (*File, error) {
	var f File

	err := yaml.Unmarshal(data, &f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse request YAML: %w", err)
	}

	applyDefaults(&f)

	if err := f.Validate(); err != nil {
		return nil, err
	}

	return &f, nil
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(f *File) {
	if f.Version == "" {
		f.Version = CurrentVersion
	}

	if f.PackageName == "" {
		f.PackageName = common.PkgAlias(f.Package)
	}

	for i := range f.Schemas {
		s := &f.Schemas[i]
		if s.PackageName == "" {
			s.PackageName = common.PkgAlias(s.Package)
		}
	}
}

// Validate checks the structure of the file. Strategy kinds and source
// references are checked later, per target, by the Resolver.
func (f *File) Validate() error {
	var errs []error

	if f.Version != CurrentVersion {
		errs = append(errs, fmt.Errorf("unsupported version %q", f.Version))
	}

	if len(f.Targets) > 0 && f.Package == "" {
		errs = append(errs, errors.New("package is required when targets are declared"))
	}

	for i, t := range f.Targets {
		if t.Name == "" {
			errs = append(errs, fmt.Errorf("target #%d (line %d): name is required", i+1, t.Line))
		}
	}

	for i, s := range f.Schemas {
		if s.Name == "" {
			errs = append(errs, fmt.Errorf("schema #%d: name is required", i+1))
		}
	}

	return errors.Join(errs...)
}
