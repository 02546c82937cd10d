package scan

import (
	"runtime"
	"sort"
	"sync"

	"github.com/dylan-gluck/cognee-agent/internal/extract"
)

// Result pairs one file's extraction outcome with its path.
type Result struct {
	FilePath string
	Catalog  *extract.Catalog
	Err      error
}

// ExtractAll extracts every file with a bounded worker pool. jobs <= 0
// means one worker per CPU. Results come back sorted by file path so
// output is deterministic regardless of scheduling; a per-file failure
// lands in its Result, never aborts the batch.
func ExtractAll(repoRoot string, files []string, opts extract.Options, jobs int) []Result {
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	if jobs > len(files) {
		jobs = len(files)
	}
	if jobs < 1 {
		jobs = 1
	}

	paths := make(chan string)
	results := make([]Result, 0, len(files))
	var mu sync.Mutex
	var wg sync.WaitGroup

	for i := 0; i < jobs; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range paths {
				cat, err := extract.Extract(repoRoot, path, opts)
				mu.Lock()
				results = append(results, Result{FilePath: path, Catalog: cat, Err: err})
				mu.Unlock()
			}
		}()
	}

	for _, f := range files {
		paths <- f
	}
	close(paths)
	wg.Wait()

	sort.Slice(results, func(i, j int) bool {
		return results[i].FilePath < results[j].FilePath
	})
	return results
}
