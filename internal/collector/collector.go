// Package collector walks a directory tree and concatenates the text of the
// files that pass a FilterConfig, each annotated with its relative path.
package collector

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/temirov/codic/internal/utils"
)

// FileEntry is one collected file.
type FileEntry struct {
	AbsolutePath string
	RelativePath string
	Content      ReadResult
}

// Render formats the entry as a header line, a blank line, the content and
// two trailing newlines.
func (entry FileEntry) Render() string {
	return headerPrefix + entry.RelativePath + "\n\n" + entry.Content.Render(entry.AbsolutePath) + "\n\n"
}

// CollectedOutput holds the collected files in traversal order.
type CollectedOutput struct {
	Entries []FileEntry
}

// Len returns the number of collected files.
func (output CollectedOutput) Len() int {
	return len(output.Entries)
}

// String concatenates every rendered entry. It is empty when nothing was collected.
func (output CollectedOutput) String() string {
	var builder strings.Builder
	for _, entry := range output.Entries {
		builder.WriteString(entry.Render())
	}
	return builder.String()
}

// Collector walks directory trees. The logger receives warnings about
// directories that cannot be listed below the root.
type Collector struct {
	logger *zap.Logger
}

// New returns a Collector logging to logger. A nil logger discards warnings.
func New(logger *zap.Logger) *Collector {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Collector{logger: logger}
}

// Collect walks root top-down and returns every file accepted by filter.
// Within a directory, files are handled before subdirectories and both are
// visited in name order, so the result is stable for a given filesystem state.
func (collector *Collector) Collect(root string, filter FilterConfig) (CollectedOutput, error) {
	absoluteRoot, absoluteError := filepath.Abs(root)
	if absoluteError != nil {
		return CollectedOutput{}, fmt.Errorf("failed to get absolute path for %s: %w", root, absoluteError)
	}
	cleanedRoot := filepath.Clean(absoluteRoot)

	walk := &walkState{
		root:   cleanedRoot,
		filter: filter,
		logger: collector.logger,
	}
	if walkError := walk.visitDirectory(cleanedRoot, true); walkError != nil {
		return CollectedOutput{}, walkError
	}
	return CollectedOutput{Entries: walk.entries}, nil
}

// Collect is a convenience wrapper around a Collector without a logger.
func Collect(root string, filter FilterConfig) (CollectedOutput, error) {
	return New(nil).Collect(root, filter)
}

type walkState struct {
	root    string
	filter  FilterConfig
	logger  *zap.Logger
	entries []FileEntry
}

func (walk *walkState) visitDirectory(directoryPath string, isRoot bool) error {
	directoryEntries, readError := os.ReadDir(directoryPath)
	if readError != nil {
		if isRoot {
			return fmt.Errorf("failed to read directory %s: %w", directoryPath, readError)
		}
		walk.logger.Warn("Warning: skipping unreadable directory", zap.String("path", directoryPath), zap.Error(readError))
		return nil
	}

	var subdirectories []string
	for _, directoryEntry := range directoryEntries {
		entryPath := filepath.Join(directoryPath, directoryEntry.Name())
		if isDirectoryEntry(entryPath, directoryEntry) {
			if !walk.filter.AllowsDirectory(directoryEntry.Name()) {
				continue
			}
			// directory symlinks are listed but never followed
			if directoryEntry.IsDir() {
				subdirectories = append(subdirectories, entryPath)
			}
			continue
		}
		if !walk.filter.AllowsFile(directoryEntry.Name()) {
			continue
		}
		walk.entries = append(walk.entries, FileEntry{
			AbsolutePath: entryPath,
			RelativePath: utils.RelativePathOrSelf(entryPath, walk.root),
			Content:      ReadFileContent(entryPath),
		})
	}

	if !walk.filter.Recursive() {
		return nil
	}
	for _, subdirectory := range subdirectories {
		if visitError := walk.visitDirectory(subdirectory, false); visitError != nil {
			return visitError
		}
	}
	return nil
}

// isDirectoryEntry reports whether the entry is a directory, resolving
// symbolic links to decide.
func isDirectoryEntry(entryPath string, directoryEntry fs.DirEntry) bool {
	if directoryEntry.IsDir() {
		return true
	}
	if directoryEntry.Type()&fs.ModeSymlink == 0 {
		return false
	}
	targetInfo, statError := os.Stat(entryPath)
	return statError == nil && targetInfo.IsDir()
}
