package common

import (
	"path"
	"strings"
)

// UnknownStr is returned by String methods for out-of-range enum values.
const UnknownStr = "unknown"

// PkgAlias returns the package alias (last element of path) for a given package path.
// Returns empty string if pkgPath is empty.
func PkgAlias(pkgPath string) string {
	if pkgPath == "" {
		return ""
	}

	return path.Base(pkgPath)
}

// SplitTypeRef splits a type reference such as "derive-generator/store.Order"
// or "store.Order" into its package part and type name. A reference without a
// dot yields an empty package part.
func SplitTypeRef(ref string) (pkg, name string) {
	lastDot := strings.LastIndex(ref, ".")
	if lastDot < 0 {
		return "", ref
	}

	return ref[:lastDot], ref[lastDot+1:]
}

// MatchesPkg reports whether pkgPath is addressed by the (possibly shortened)
// package reference ref: either exactly, or as a trailing path suffix.
func MatchesPkg(pkgPath, ref string) bool {
	return pkgPath == ref || strings.HasSuffix(pkgPath, "/"+ref)
}
