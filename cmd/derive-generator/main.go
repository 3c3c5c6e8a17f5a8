// Package main provides the CLI entrypoint for derive-generator.
//
// derive-generator writes Go types derived from existing struct types:
//   - pick: a subset of the members of one type
//   - union: the members of several types merged
//   - readonly: every member of one type, read through accessors
//   - required: the exported members of one type, all mandatory
//
// Targets are declared in a YAML request file (-config) or with //derive:
// directive comments in scanned packages (-scan). Package patterns are
// resolved from the working directory.
//
// Usage:
//
//	derive-generator gen     [-config file] [-scan pkgs] [-packages pkgs] [-out dir] [-go-version v] [-workers n] [-strict]
//	derive-generator check   [-config file] [-scan pkgs] [-packages pkgs] [-go-version v] [-workers n] [-strict]
//	derive-generator analyze -packages pkgs [-dump] [-from pkg] [type ...]
//
// Defaults come from DERIVE_* environment variables.
package main

import (
	"context"
	"os"
	"os/signal"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)

	stop()
	os.Exit(code)
}
