package analyze

import (
	"errors"
	"fmt"
	"go/version"
	"os"
	"path/filepath"

	"golang.org/x/mod/modfile"

	"derive-generator/internal/derive"
)

// defaultGoVersion is the language version the go command assumes for a
// go.mod without a go directive.
const defaultGoVersion = "1.16"

// ErrNoModule is returned when no go.mod is found above a directory.
var ErrNoModule = errors.New("go.mod not found")

// FindGoMod walks up from dir and returns the path of the nearest go.mod.
func FindGoMod(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", dir, err)
	}

	for {
		candidate := filepath.Join(abs, "go.mod")
		if st, err := os.Stat(candidate); err == nil && !st.IsDir() {
			return candidate, nil
		}

		parent := filepath.Dir(abs)
		if parent == abs {
			return "", fmt.Errorf("%s: %w", dir, ErrNoModule)
		}

		abs = parent
	}
}

// ModuleGoVersion returns the go directive of the go.mod at path, e.g. "1.24".
func ModuleGoVersion(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}

	f, err := modfile.ParseLax(path, data, nil)
	if err != nil {
		return "", fmt.Errorf("failed to parse %s: %w", path, err)
	}

	if f.Go == nil || f.Go.Version == "" {
		return defaultGoVersion, nil
	}

	return f.Go.Version, nil
}

// CapabilitiesFor returns the capabilities of a module declaring the given
// go version ("1.22", "1.21.3" or "go1.22").
func CapabilitiesFor(goVersion string) derive.Capabilities {
	v := goVersion
	if len(v) < 2 || v[:2] != "go" {
		v = "go" + v
	}

	return derive.Capabilities{
		MandatoryFields: version.IsValid(v) && version.Compare(v, derive.MandatoryFieldsSince) >= 0,
	}
}

// DetectCapabilities reads the go.mod of the module containing dir.
// It returns the capabilities together with the go version they derive from.
func DetectCapabilities(dir string) (derive.Capabilities, string, error) {
	path, err := FindGoMod(dir)
	if err != nil {
		return derive.Capabilities{}, "", err
	}

	v, err := ModuleGoVersion(path)
	if err != nil {
		return derive.Capabilities{}, "", err
	}

	return CapabilitiesFor(v), v, nil
}
