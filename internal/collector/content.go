package collector

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

const (
	headerPrefix       = "// "
	placeholderFormat  = "// Error reading file %s: %v"
	carriageReturnLine = "\r\n"
	carriageReturn     = "\r"
	lineFeed           = "\n"
)

// ReadResult is the outcome of reading one file: either decoded text or the
// error that prevented it.
type ReadResult struct {
	Text string
	Err  error
}

// Failed reports whether the read produced no text.
func (result ReadResult) Failed() bool {
	return result.Err != nil
}

// Render returns the text, or a one-line placeholder naming the file and
// the error when the read failed.
func (result ReadResult) Render(filePath string) string {
	if result.Failed() {
		return fmt.Sprintf(placeholderFormat, filepath.Base(filePath), result.Err)
	}
	return result.Text
}

// ReadFileContent reads the file at filePath as text. Valid UTF-8 is used
// as-is; anything else is decoded as ISO-8859-1, which accepts every byte.
// Line endings are normalized to "\n".
func ReadFileContent(filePath string) ReadResult {
	fileBytes, readError := os.ReadFile(filePath)
	if readError != nil {
		return ReadResult{Err: unwrapPathError(readError)}
	}
	if utf8.Valid(fileBytes) {
		return ReadResult{Text: normalizeLineEndings(string(fileBytes))}
	}
	decodedBytes, decodeError := charmap.ISO8859_1.NewDecoder().Bytes(fileBytes)
	if decodeError != nil {
		return ReadResult{Err: decodeError}
	}
	return ReadResult{Text: normalizeLineEndings(string(decodedBytes))}
}

func normalizeLineEndings(text string) string {
	if !strings.Contains(text, carriageReturn) {
		return text
	}
	text = strings.ReplaceAll(text, carriageReturnLine, lineFeed)
	return strings.ReplaceAll(text, carriageReturn, lineFeed)
}

// unwrapPathError drops the path from *fs.PathError so the placeholder names
// the file once.
func unwrapPathError(err error) error {
	var pathError *os.PathError
	if errors.As(err, &pathError) {
		return pathError.Err
	}
	return err
}
