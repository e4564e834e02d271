package dispatch

import (
	"errors"
	"strings"
)

// ErrConflictingOutputs reports more than one explicit output choice.
var ErrConflictingOutputs = errors.New("only one of --copy, --print and --output may be given")

// Sink identifies where collected text is delivered.
type Sink int

const (
	// SinkAuto copies to the clipboard on an interactive terminal and prints otherwise.
	SinkAuto Sink = iota
	// SinkFile writes to Selection.Path.
	SinkFile
	// SinkClipboard copies to the system clipboard.
	SinkClipboard
	// SinkPrint writes to standard output.
	SinkPrint
)

func (sink Sink) String() string {
	switch sink {
	case SinkFile:
		return "file"
	case SinkClipboard:
		return "clipboard"
	case SinkPrint:
		return "print"
	default:
		return "auto"
	}
}

// Selection is the validated output choice for one run.
type Selection struct {
	Sink Sink
	Path string
}

// NewSelection builds a Selection from the output flags. At most one of
// outputPath, copyToClipboard and printToStdout may be set.
func NewSelection(outputPath string, copyToClipboard bool, printToStdout bool) (Selection, error) {
	var chosen []Selection
	if strings.TrimSpace(outputPath) != "" {
		chosen = append(chosen, Selection{Sink: SinkFile, Path: outputPath})
	}
	if copyToClipboard {
		chosen = append(chosen, Selection{Sink: SinkClipboard})
	}
	if printToStdout {
		chosen = append(chosen, Selection{Sink: SinkPrint})
	}
	switch len(chosen) {
	case 0:
		return Selection{Sink: SinkAuto}, nil
	case 1:
		return chosen[0], nil
	default:
		return Selection{}, ErrConflictingOutputs
	}
}

// Resolve turns the automatic choice into a concrete sink.
func (selection Selection) Resolve(isTerminal bool) Sink {
	if selection.Sink != SinkAuto {
		return selection.Sink
	}
	if isTerminal {
		return SinkClipboard
	}
	return SinkPrint
}
