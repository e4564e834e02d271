package collector

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/temirov/codic/internal/utils"
)

// ErrInvalidPattern reports a name pattern that does not compile.
var ErrInvalidPattern = errors.New("invalid regular expression")

// FilterOptions carries raw filter input from the command line or configuration.
type FilterOptions struct {
	Recursive           bool
	Extensions          []string
	ExcludedDirectories []string
	ExcludedFiles       []string
	NamePattern         string
}

// FilterConfig decides which directories are traversed and which files are collected.
// It is immutable once built by NewFilterConfig.
type FilterConfig struct {
	recursive           bool
	extensions          []string
	excludedDirectories map[string]struct{}
	excludedFiles       map[string]struct{}
	namePattern         *regexp.Regexp
}

// NewFilterConfig validates options and builds a FilterConfig.
// An uncompilable name pattern is reported as ErrInvalidPattern.
func NewFilterConfig(options FilterOptions) (FilterConfig, error) {
	filter := FilterConfig{
		recursive:           options.Recursive,
		extensions:          utils.DeduplicatePatterns(options.Extensions),
		excludedDirectories: toSet(options.ExcludedDirectories),
		excludedFiles:       toSet(options.ExcludedFiles),
	}
	if options.NamePattern != "" {
		compiledPattern, compileError := regexp.Compile(options.NamePattern)
		if compileError != nil {
			return FilterConfig{}, fmt.Errorf("%w '%s': %v", ErrInvalidPattern, options.NamePattern, compileError)
		}
		filter.namePattern = compiledPattern
	}
	return filter, nil
}

// Recursive reports whether subdirectories are traversed.
func (filter FilterConfig) Recursive() bool {
	return filter.recursive
}

// AllowsDirectory reports whether a subdirectory with the given name may be entered.
func (filter FilterConfig) AllowsDirectory(name string) bool {
	_, excluded := filter.excludedDirectories[name]
	return !excluded
}

// AllowsFile applies the file filters in order: excluded name, extension
// allow-list, then name pattern.
func (filter FilterConfig) AllowsFile(name string) bool {
	if _, excluded := filter.excludedFiles[name]; excluded {
		return false
	}
	if len(filter.extensions) > 0 && !hasAnySuffix(name, filter.extensions) {
		return false
	}
	if filter.namePattern != nil && !filter.namePattern.MatchString(name) {
		return false
	}
	return true
}

func hasAnySuffix(name string, suffixes []string) bool {
	for _, suffix := range suffixes {
		if strings.HasSuffix(name, suffix) {
			return true
		}
	}
	return false
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, value := range values {
		set[value] = struct{}{}
	}
	return set
}
