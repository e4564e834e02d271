// Package dispatch delivers collected text to exactly one sink: a file, the
// system clipboard, or standard output. Status lines go to the logger only.
package dispatch

import (
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/temirov/codic/internal/services/clipboard"
	"github.com/temirov/codic/internal/tokenizer"
)

const (
	noFilesFoundMessage        = "No files matched the specified criteria."
	savedToFileMessageFormat   = "Content saved to '%s'."
	copiedForcedMessage        = "Content copied to clipboard (forced)."
	copiedInteractiveMessage   = "Content copied to clipboard (interactive mode)."
	tokenEstimateMessageFormat = "Estimated tokens: %d (%s)"
	outputFilePermissions      = 0o644
)

// Environment holds the collaborators a Dispatcher writes through.
type Environment struct {
	Stdout     io.Writer
	Clipboard  clipboard.Copier
	IsTerminal func() bool
	// Logger receives status lines. It must not write to Stdout.
	Logger *zap.Logger
	// TokenCounter, when set, adds an estimated token count to the status lines.
	TokenCounter tokenizer.Counter
	TokenModel   string
}

// Dispatcher delivers text according to a Selection.
type Dispatcher struct {
	environment Environment
}

// New returns a Dispatcher. A nil logger discards status lines.
func New(environment Environment) *Dispatcher {
	if environment.Logger == nil {
		environment.Logger = zap.NewNop()
	}
	if environment.Stdout == nil {
		environment.Stdout = io.Discard
	}
	return &Dispatcher{environment: environment}
}

// Dispatch delivers text to the sink chosen by selection. Empty text is not
// delivered anywhere; a status line reports that nothing matched.
func (dispatcher *Dispatcher) Dispatch(text string, selection Selection) error {
	logger := dispatcher.environment.Logger
	if text == "" {
		logger.Info(noFilesFoundMessage)
		return nil
	}

	sink := selection.Resolve(dispatcher.isTerminal())
	switch sink {
	case SinkFile:
		if writeError := os.WriteFile(selection.Path, []byte(text), outputFilePermissions); writeError != nil {
			return fmt.Errorf("write output file %s: %w", selection.Path, writeError)
		}
		logger.Info(fmt.Sprintf(savedToFileMessageFormat, selection.Path))
	case SinkClipboard:
		if dispatcher.environment.Clipboard == nil {
			return fmt.Errorf("copy to clipboard: %w", clipboard.ErrUnavailable)
		}
		if copyError := dispatcher.environment.Clipboard.Copy(text); copyError != nil {
			return fmt.Errorf("copy to clipboard: %w", copyError)
		}
		if selection.Sink == SinkAuto {
			logger.Info(copiedInteractiveMessage)
		} else {
			logger.Info(copiedForcedMessage)
		}
	case SinkPrint:
		if _, printError := fmt.Fprintln(dispatcher.environment.Stdout, strings.TrimSpace(text)); printError != nil {
			return fmt.Errorf("write to standard output: %w", printError)
		}
	default:
		return fmt.Errorf("unsupported output sink %s", sink)
	}

	dispatcher.reportTokens(text)
	return nil
}

func (dispatcher *Dispatcher) isTerminal() bool {
	if dispatcher.environment.IsTerminal == nil {
		return false
	}
	return dispatcher.environment.IsTerminal()
}

func (dispatcher *Dispatcher) reportTokens(text string) {
	counter := dispatcher.environment.TokenCounter
	if counter == nil {
		return
	}
	result, countError := tokenizer.CountText(counter, text)
	if countError != nil {
		dispatcher.environment.Logger.Warn("Warning: failed to count tokens", zap.Error(countError))
		return
	}
	model := dispatcher.environment.TokenModel
	if model == "" {
		model = counter.Name()
	}
	dispatcher.environment.Logger.Info(fmt.Sprintf(tokenEstimateMessageFormat, result.Tokens, model))
}
