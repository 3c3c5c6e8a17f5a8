package pipeline

import (
	"context"
	"errors"
	"runtime"

	"golang.org/x/sync/errgroup"

	"derive-generator/internal/derive"
	"derive-generator/internal/diagnostic"
	"derive-generator/internal/request"
	"derive-generator/internal/schema"
)

// Options configures Run.
type Options struct {
	// Provider supplies source schemas. It is shared by all workers and must
	// be safe for concurrent use.
	Provider schema.Provider
	// Capabilities of the toolchain the derived code is compiled with.
	Capabilities derive.Capabilities
	// Workers bounds the number of targets resolved at once. Zero or less
	// means runtime.GOMAXPROCS(0).
	Workers int
}

// Result is the outcome for one annotation.
type Result struct {
	Annotation request.Annotation
	// Request is nil when the annotation could not be resolved.
	Request *derive.Request
	// Schema is nil when resolution failed or the strategy aborted.
	Schema      *derive.ResolvedSchema
	Diagnostics diagnostic.Diagnostics
	// Err is the *request.ResolutionError of an unresolvable annotation.
	Err error
}

// OK reports whether the target produced a schema without error diagnostics.
func (r *Result) OK() bool {
	return r.Err == nil && r.Schema != nil && r.Diagnostics.IsValid()
}

// Run resolves every annotation and returns one Result per annotation, in
// input order. A failing target does not stop the others; Run itself only
// fails when ctx is done before all targets were processed.
func Run(ctx context.Context, anns []request.Annotation, opts Options) ([]Result, error) {
	if opts.Provider == nil {
		return nil, errors.New("pipeline: no schema provider")
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	resolver := request.NewResolver(opts.Provider)
	results := make([]Result, len(anns))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, ann := range anns {
		if gctx.Err() != nil {
			break
		}

		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			results[i] = resolveOne(resolver, ann, opts.Capabilities)

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return results, nil
}

func resolveOne(resolver *request.Resolver, ann request.Annotation, caps derive.Capabilities) Result {
	res := Result{Annotation: ann}

	req, err := resolver.Resolve(ann)
	if err != nil {
		res.Err = err
		return res
	}

	res.Request = req
	res.Schema, res.Diagnostics = derive.Resolve(req, caps)

	return res
}

// Schemas returns the schemas that were produced, in result order.
func Schemas(results []Result) []*derive.ResolvedSchema {
	var out []*derive.ResolvedSchema
	for _, r := range results {
		if r.Schema != nil {
			out = append(out, r.Schema)
		}
	}

	return out
}

// Diagnostics merges the diagnostics of all results, in result order.
func Diagnostics(results []Result) diagnostic.Diagnostics {
	var all diagnostic.Diagnostics
	for _, r := range results {
		all.Merge(r.Diagnostics)
	}

	return all
}

// Errors returns the resolution errors, in result order.
func Errors(results []Result) []error {
	var out []error
	for _, r := range results {
		if r.Err != nil {
			out = append(out, r.Err)
		}
	}

	return out
}
