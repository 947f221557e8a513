// Package detect orchestrates a full detection run: it wires the
// loader (with its optional cache), the inverted index, and the
// parallel scheduler together, producing the aggregated Result the
// CLI hands to a reporter. This is the Go port's equivalent of the
// original's core::process_files_with_cache plus main.rs's phase
// structure.
package detect

import (
	"runtime"

	"github.com/toniantunovi/lucidshark-duplo/internal/clean"
	"github.com/toniantunovi/lucidshark-duplo/internal/index"
	"github.com/toniantunovi/lucidshark-duplo/internal/match"
	"github.com/toniantunovi/lucidshark-duplo/internal/scheduler"
	"github.com/toniantunovi/lucidshark-duplo/internal/source"
)

// Options bundles every knob a detection run needs, assembled by the
// CLI from config.Config.
type Options struct {
	CleanConfig        clean.Config
	Params             match.Params
	NumThreads         int // 0 = runtime.NumCPU()
	FilesToCheck       int // 0 = all files
	IgnoreSameBasename bool
	Cache              *source.Cache // nil disables caching
	Progress           func(string)
}

// Run loads every file in fileList, builds the inverted index, and
// fans the pairwise match engine out across Options.NumThreads
// workers, returning the aggregated Result alongside the loaded files
// (reporters need both: the result for the blocks, the files for
// rendering their paths and text).
func Run(fileList []string, opts Options) (match.Result, []*source.File, error) {
	numWorkers := opts.NumThreads
	if numWorkers < 1 {
		numWorkers = runtime.NumCPU()
	}

	loader := &source.Loader{
		CleanConfig: opts.CleanConfig,
		Cache:       opts.Cache,
		NumThreads:  numWorkers,
		Progress:    opts.Progress,
	}

	files, maxLines, err := loader.LoadAll(fileList)
	if err != nil {
		return match.Result{}, nil, err
	}

	idx := index.Build(files)

	filesToCheck := opts.FilesToCheck
	if filesToCheck <= 0 || filesToCheck > len(files) {
		filesToCheck = len(files)
	}

	blocks := scheduler.Run(files, idx, maxLines, scheduler.Options{
		NumWorkers:         numWorkers,
		FilesToCheck:       filesToCheck,
		IgnoreSameBasename: opts.IgnoreSameBasename,
		Params:             opts.Params,
		Progress:           opts.Progress,
	})

	totalLines := 0
	for _, f := range files {
		totalLines += f.NumLines()
	}

	return match.NewResult(blocks, len(files), totalLines), files, nil
}

// FilterChangedOnly keeps only the blocks that touch at least one file
// in changed, recomputing summary counters. This implements the
// --changed-only supplemented feature (main.rs::filter_to_changed_files):
// git-mode discovery reports every tracked file (so cross-file
// duplicates against unchanged files are still detected) but the
// caller only wants to be told about duplication the change introduced
// or touched.
func FilterChangedOnly(result match.Result, files []*source.File, changed map[string]struct{}) match.Result {
	if changed == nil {
		return result
	}
	var kept []match.Block
	for _, b := range result.Blocks {
		file1 := files[b.Source1Idx].Path()
		file2 := files[b.Source2Idx].Path()
		_, c1 := changed[file1]
		_, c2 := changed[file2]
		if c1 || c2 {
			kept = append(kept, b)
		}
	}
	return match.NewResult(kept, result.FilesAnalyzed, result.TotalLines)
}
