// Package scheduler fans the pairwise match engine out across a
// goroutine worker pool, partitioning the outer file index across
// workers the way a channel-and-WaitGroup scan engine partitions files
// across its worker pool.
package scheduler

import (
	"sync"

	"github.com/toniantunovi/lucidshark-duplo/internal/index"
	"github.com/toniantunovi/lucidshark-duplo/internal/match"
	"github.com/toniantunovi/lucidshark-duplo/internal/source"
)

// Options configures the scheduled run.
type Options struct {
	NumWorkers        int
	FilesToCheck      int // number of outer indices i to compare against the rest
	IgnoreSameBasename bool
	Params            match.Params
	Progress          func(string)
}

type task struct {
	i int
}

type taskResult struct {
	i      int
	blocks []match.Block
}

// Run compares files[i] against files[i] (self) and files[j] for j > i,
// for every i in [0, FilesToCheck), using idx to skip file pairs that
// share no line hash. Results are returned concatenated in ascending i
// order, matching a single-threaded run.
func Run(files []*source.File, idx *index.Index, maxLines int, opts Options) []match.Block {
	numWorkers := opts.NumWorkers
	if numWorkers < 1 {
		numWorkers = 1
	}
	filesToCheck := opts.FilesToCheck
	if filesToCheck > len(files) {
		filesToCheck = len(files)
	}

	tasks := make(chan task, filesToCheck)
	results := make(chan taskResult, filesToCheck)

	var wg sync.WaitGroup
	for w := 0; w < numWorkers; w++ {
		wg.Add(1)
		go worker(&wg, files, idx, maxLines, opts, tasks, results)
	}

	go func() {
		for i := 0; i < filesToCheck; i++ {
			tasks <- task{i: i}
		}
		close(tasks)
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	ordered := make([][]match.Block, filesToCheck)
	for r := range results {
		ordered[r.i] = r.blocks
	}

	var all []match.Block
	for _, blocks := range ordered {
		all = append(all, blocks...)
	}
	return all
}

func worker(wg *sync.WaitGroup, files []*source.File, idx *index.Index, maxLines int, opts Options, tasks <-chan task, results chan<- taskResult) {
	defer wg.Done()

	mx := match.NewMatrix(maxLines)

	for t := range tasks {
		i := t.i
		source1 := files[i]
		matching := idx.MatchingFiles(source1)

		var blocks []match.Block
		blocks = append(blocks, match.ProcessPair(source1, source1, i, i, opts.Params, mx)...)

		for j := i + 1; j < len(files); j++ {
			source2 := files[j]
			if opts.IgnoreSameBasename && source1.HasSameBasename(source2) {
				continue
			}
			if _, ok := matching[j]; !ok {
				continue
			}
			blocks = append(blocks, match.ProcessPair(source1, source2, i, j, opts.Params, mx)...)
		}

		results <- taskResult{i: i, blocks: blocks}
	}
}
