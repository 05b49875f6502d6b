package pipeline

import "context"

// Result pairs one batch source with its render outcome.
type Result struct {
	Source string
	Output string
	Stats  *Stats
	Err    error
}

// RenderAll renders sources into outDir with at most workers renders in
// flight. Results come back in input order. A failing source does not stop
// the rest; cancelling ctx does.
func (r *Renderer) RenderAll(ctx context.Context, sources []string, outDir string, workers int) []Result {
	if workers <= 0 {
		workers = 1
	}

	type renderResult struct {
		res Result
		idx int
	}
	results := make(chan renderResult, len(sources))
	sem := make(chan struct{}, workers)

	for i, src := range sources {
		sem <- struct{}{}
		go func(i int, src string) {
			defer func() { <-sem }()
			out := OutputPath(outDir, src)
			st, err := r.RenderFile(ctx, src, out)
			results <- renderResult{res: Result{Source: src, Output: out, Stats: st, Err: err}, idx: i}
		}(i, src)
	}

	all := make([]Result, len(sources))
	for range sources {
		rr := <-results
		all[rr.idx] = rr.res
	}
	return all
}
