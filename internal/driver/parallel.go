package driver

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"borrowck/internal/mirfile"
)

// ExpandPaths replaces every directory argument with the MIR files found
// under it, sorted for a deterministic order. Plain files are kept as
// given, whatever their extension.
func ExpandPaths(args []string) ([]string, error) {
	var out []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			out = append(out, arg)
			continue
		}
		var found []string
		err = filepath.WalkDir(arg, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}
			if _, ferr := mirfile.DetectFormat(path); ferr == nil {
				found = append(found, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
		// Сортируем для детерминированного порядка
		sort.Strings(found)
		out = append(out, found...)
	}
	return out, nil
}

// CheckFiles checks every path in parallel and returns the results in
// the order of paths.
func CheckFiles(ctx context.Context, paths []string, opts *Options) ([]*Result, error) {
	if len(paths) == 0 {
		return nil, nil
	}
	if opts == nil {
		opts = &Options{}
	}
	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	for _, path := range paths {
		if opts.Progress != nil {
			opts.Progress.OnEvent(Event{File: path, Stage: StageLoad, Status: StatusQueued})
		}
	}

	// индексы уникальны для каждой горутины, мьютекс не нужен
	results := make([]*Result, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(paths)))
	for i, path := range paths {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			res, err := CheckFile(gctx, path, opts)
			results[i] = res
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}
