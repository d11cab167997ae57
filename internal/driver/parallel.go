package driver

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"stratum/internal/diag"
	"stratum/internal/source"
	"stratum/internal/trace"
)

// ManifestName is the project file skipped when listing fixtures.
const ManifestName = "stratum.toml"

// ListFixtures returns every *.toml file under dir except the project
// manifest, sorted for a deterministic order.
func ListFixtures(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, ".toml") && d.Name() != ManifestName {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// AnalyzeFiles analyzes paths concurrently, one scope tree per goroutine.
// Results are returned in the order of paths. Files that fail to load get a
// result carrying an I/O diagnostic.
func AnalyzeFiles(ctx context.Context, paths []string, baseDir string, opts Options) (*source.FileSet, []*FileResult, error) {
	tracer := trace.FromContext(ctx)
	span, ctx := trace.BeginContext(ctx, trace.ScopeDriver, "analyze_files")
	span.WithExtra("files", fmt.Sprint(len(paths)))
	defer span.End("")

	// the file set is not safe for concurrent writes, so load up front
	fileSet := source.NewFileSet()
	fileSet.SetBaseDir(baseDir)
	fileIDs := make([]source.FileID, len(paths))
	loadErrors := make([]error, len(paths))
	loadSpan := trace.Begin(tracer, trace.ScopePass, "load", span.ID())
	for i, path := range paths {
		fileIDs[i], loadErrors[i] = fileSet.Load(path)
		if loadErrors[i] != nil {
			// register the path anyway so the I/O diagnostic has a file to point at
			fileIDs[i] = fileSet.Add(path, nil)
		}
	}
	loadSpan.End(fmt.Sprintf("%d files", len(paths)))

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	results := make([]*FileResult, len(paths))
	if len(paths) == 0 {
		return fileSet, results, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(paths)))
	for i, path := range paths {
		g.Go(func() error {
			if loadErrors[i] != nil {
				bag := diag.NewBag(opts.MaxDiagnostics)
				diag.ReportError(diag.BagReporter{Bag: bag}, diag.IOLoadFileError, source.Span{File: fileIDs[i]},
					"failed to load file: "+loadErrors[i].Error()).Emit()
				results[i] = &FileResult{Path: path, FileID: fileIDs[i], Bag: bag}
				return nil
			}
			res, err := AnalyzeFile(gctx, fileSet, fileIDs[i], opts)
			if err != nil {
				return err
			}
			// index i is owned by this goroutine
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fileSet, results, err
	}
	return fileSet, results, nil
}
