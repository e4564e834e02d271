package cli

import (
	"errors"
	"fmt"
	"strings"
)

const (
	flagPrefix              = "-"
	missingValueErrorFormat = "%s %w"
)

// ErrMissingFlagValue reports a multi-value flag given without any value.
var ErrMissingFlagValue = errors.New("expects at least one value")

// multiValueFlags accept several space-separated values after a single
// occurrence, e.g. --filetype .go .md.
var multiValueFlags = map[string]struct{}{
	"--" + fileTypeFlagName:    {},
	"--" + excludeDirFlagName:  {},
	"--" + excludeFileFlagName: {},
}

// valueFlags take their value from the following argument.
var valueFlags = map[string]struct{}{
	"--" + outputFlagName:      {},
	"-" + outputFlagShorthand:  {},
	"--" + regexFilterFlagName: {},
	"--" + modelFlagName:       {},
	"--" + configFlagName:      {},
}

// normalizeMultiValueArguments rewrites "--filetype .go .md" into
// "--filetype=.go --filetype=.md" so pflag sees one value per occurrence.
// When every bare argument has been absorbed by a multi-value flag that took
// at least two values, the last one is handed back as the directory argument.
// A multi-value flag followed directly by another flag, or by nothing, is an
// error.
func normalizeMultiValueArguments(arguments []string) ([]string, error) {
	normalized := make([]string, 0, len(arguments))
	positionalCount := 0
	lastValueIndex := -1
	lastValue := ""
	lastGroupSize := 0

	for index := 0; index < len(arguments); index++ {
		current := arguments[index]
		if current == "--" {
			positionalCount += len(arguments) - index - 1
			normalized = append(normalized, arguments[index:]...)
			break
		}
		if _, isMultiValue := multiValueFlags[current]; isMultiValue {
			groupSize := 0
			for index+1 < len(arguments) && !strings.HasPrefix(arguments[index+1], flagPrefix) {
				index++
				normalized = append(normalized, current+"="+arguments[index])
				lastValueIndex = len(normalized) - 1
				lastValue = arguments[index]
				groupSize++
			}
			if groupSize == 0 {
				return nil, fmt.Errorf(missingValueErrorFormat, current, ErrMissingFlagValue)
			}
			lastGroupSize = groupSize
			continue
		}
		if _, takesValue := valueFlags[current]; takesValue {
			normalized = append(normalized, current)
			if index+1 < len(arguments) {
				index++
				normalized = append(normalized, arguments[index])
			}
			continue
		}
		if !strings.HasPrefix(current, flagPrefix) || current == flagPrefix {
			positionalCount++
		}
		normalized = append(normalized, current)
	}

	if positionalCount == 0 && lastValueIndex >= 0 && lastGroupSize > 1 {
		normalized = append(normalized[:lastValueIndex], normalized[lastValueIndex+1:]...)
		normalized = append(normalized, lastValue)
	}
	return normalized, nil
}
