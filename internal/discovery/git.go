package discovery

import (
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
)

// GitResult is the outcome of git-based file discovery: all tracked
// source files, plus the changed-file set when ChangedOnly filtering
// was requested.
type GitResult struct {
	Files        []string
	ChangedFiles map[string]struct{} // nil unless changed-only mode was requested
}

// IsGitRepo reports whether the current directory is inside a git
// working tree.
func IsGitRepo() bool {
	cmd := exec.Command("git", "rev-parse", "--git-dir")
	return cmd.Run() == nil
}

// RepoRoot returns the absolute path to the repository's top level.
func RepoRoot() (string, error) {
	out, err := exec.Command("git", "rev-parse", "--show-toplevel").Output()
	if err != nil {
		return "", fmt.Errorf("not a git repository: %w", err)
	}
	return strings.TrimSpace(string(out)), nil
}

// TrackedFiles returns every file `git ls-files` reports.
func TrackedFiles() ([]string, error) {
	out, err := exec.Command("git", "ls-files").Output()
	if err != nil {
		return nil, fmt.Errorf("git ls-files failed: %w", err)
	}
	return nonEmptyLines(out), nil
}

// DetectBaseBranch tries main, master, develop in order, then falls
// back to the remote origin's HEAD symbolic ref.
func DetectBaseBranch() (string, error) {
	for _, branch := range []string{"main", "master", "develop"} {
		cmd := exec.Command("git", "rev-parse", "--verify", "refs/heads/"+branch)
		if cmd.Run() == nil {
			return branch, nil
		}
	}

	out, err := exec.Command("git", "symbolic-ref", "refs/remotes/origin/HEAD", "--short").Output()
	if err == nil {
		remote := strings.TrimSpace(string(out))
		if idx := strings.LastIndex(remote, "/"); idx >= 0 {
			return remote[idx+1:], nil
		}
	}

	return "", fmt.Errorf("could not detect base branch, use --base-branch to specify")
}

// ChangedFiles returns the files that differ between the merge-base of
// HEAD and baseBranch, and HEAD itself.
func ChangedFiles(baseBranch string) ([]string, error) {
	mergeBase, err := exec.Command("git", "merge-base", "HEAD", baseBranch).Output()
	if err != nil {
		return nil, fmt.Errorf("failed to find merge base with %q: %w", baseBranch, err)
	}
	base := strings.TrimSpace(string(mergeBase))

	out, err := exec.Command("git", "diff", "--name-only", base, "HEAD").Output()
	if err != nil {
		return nil, fmt.Errorf("git diff --name-only failed: %w", err)
	}
	return nonEmptyLines(out), nil
}

var gitSupportedExtensions = []string{
	".c", ".cpp", ".cxx", ".cc", ".h", ".hpp", ".hxx", ".hh",
	".java",
	".cs",
	".py",
	".rs",
	".js", ".ts", ".jsx", ".tsx",
	".html", ".htm", ".css",
	".vb",
	".erl",
}

func isGitSupportedFile(path string) bool {
	lower := strings.ToLower(path)
	for _, ext := range gitSupportedExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

// DiscoverOptions configures git-mode discovery.
type DiscoverOptions struct {
	ChangedOnly bool
	BaseBranch  string // empty means auto-detect
}

// Discover finds source files via git. It always returns the full set
// of tracked, extension-supported files with absolute paths; when
// ChangedOnly is set it additionally returns the set of changed paths
// so callers can filter results to only those files.
func Discover(opts DiscoverOptions, progress func(string)) (GitResult, error) {
	if !IsGitRepo() {
		return GitResult{}, fmt.Errorf("not a git repository")
	}

	root, err := RepoRoot()
	if err != nil {
		return GitResult{}, err
	}

	progress("Finding git-tracked files...")
	tracked, err := TrackedFiles()
	if err != nil {
		return GitResult{}, err
	}

	files := make([]string, 0, len(tracked))
	for _, f := range tracked {
		if !isGitSupportedFile(f) {
			continue
		}
		abs := filepath.Join(root, f)
		if !pathExists(abs) {
			continue
		}
		files = append(files, abs)
	}

	var changedSet map[string]struct{}
	if opts.ChangedOnly {
		base := opts.BaseBranch
		if base == "" {
			base, err = DetectBaseBranch()
			if err != nil {
				return GitResult{}, err
			}
		}

		progress(fmt.Sprintf("Finding files changed vs '%s' branch...", base))
		changed, err := ChangedFiles(base)
		if err != nil {
			return GitResult{}, err
		}

		changedSet = make(map[string]struct{}, len(changed))
		for _, f := range changed {
			if !isGitSupportedFile(f) {
				continue
			}
			changedSet[filepath.Join(root, f)] = struct{}{}
		}
		progress(fmt.Sprintf("Found %d changed files", len(changedSet)))
	}

	progress(fmt.Sprintf("Found %d source files", len(files)))
	return GitResult{Files: files, ChangedFiles: changedSet}, nil
}

func nonEmptyLines(out []byte) []string {
	var lines []string
	for _, l := range strings.Split(string(out), "\n") {
		if l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}
