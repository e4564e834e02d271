package collector_test

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/temirov/codic/internal/collector"
)

// TestReadFileContentDecoding verifies the UTF-8 path, the Latin-1 fallback and newline handling.
func TestReadFileContentDecoding(testingHandle *testing.T) {
	testCases := []struct {
		name     string
		content  []byte
		expected string
	}{
		{name: "utf8_text", content: []byte("héllo"), expected: "héllo"},
		{name: "latin1_fallback", content: []byte{'c', 'a', 'f', 0xe9}, expected: "café"},
		{name: "invalid_utf8_sequence", content: []byte{0xff, 0xfe, 'a'}, expected: "ÿþa"},
		{name: "crlf_normalized", content: []byte("a\r\nb\rc\n"), expected: "a\nb\nc\n"},
		{name: "empty_file", content: []byte{}, expected: ""},
	}
	directory := testingHandle.TempDir()
	for _, testCase := range testCases {
		testCase := testCase
		testingHandle.Run(testCase.name, func(subTest *testing.T) {
			filePath := filepath.Join(directory, testCase.name)
			if writeError := os.WriteFile(filePath, testCase.content, 0o644); writeError != nil {
				subTest.Fatalf("write: %v", writeError)
			}
			result := collector.ReadFileContent(filePath)
			if result.Failed() {
				subTest.Fatalf("unexpected failure: %v", result.Err)
			}
			if result.Text != testCase.expected {
				subTest.Fatalf("expected %q, got %q", testCase.expected, result.Text)
			}
		})
	}
}

// TestReadResultRenderPlaceholder verifies failures render as a one-line placeholder.
func TestReadResultRenderPlaceholder(testingHandle *testing.T) {
	result := collector.ReadResult{Err: errors.New("permission denied")}
	rendered := result.Render("/tmp/project/secret.txt")
	expected := "// Error reading file secret.txt: permission denied"
	if rendered != expected {
		testingHandle.Fatalf("expected %q, got %q", expected, rendered)
	}
}

// TestCollectIncludesUnreadableFileAsPlaceholder verifies a read failure does not abort the run.
func TestCollectIncludesUnreadableFileAsPlaceholder(testingHandle *testing.T) {
	if runtime.GOOS == "windows" || os.Geteuid() == 0 {
		testingHandle.Skip("permission bits are not enforced")
	}
	rootDirectory := testingHandle.TempDir()
	writeFixture(testingHandle, rootDirectory, rootFileName, rootFileContent)
	lockedPath := filepath.Join(rootDirectory, "locked.txt")
	writeFixture(testingHandle, rootDirectory, "locked.txt", "secret")
	if chmodError := os.Chmod(lockedPath, 0o000); chmodError != nil {
		testingHandle.Fatalf("chmod: %v", chmodError)
	}

	actual := collectString(testingHandle, rootDirectory, collector.FilterOptions{})
	if !strings.HasPrefix(actual, rootFileBlock) {
		testingHandle.Fatalf("expected a.py block first, got %q", actual)
	}
	if !strings.Contains(actual, "// locked.txt\n\n// Error reading file locked.txt: ") {
		testingHandle.Fatalf("expected placeholder block, got %q", actual)
	}
}

// TestCollectDecodesInvalidBytesWithFallback verifies invalid UTF-8 files are still included.
func TestCollectDecodesInvalidBytesWithFallback(testingHandle *testing.T) {
	rootDirectory := testingHandle.TempDir()
	writeFixture(testingHandle, rootDirectory, "legacy.txt", string([]byte{'n', 'a', 0xef, 'v', 'e'}))
	actual := collectString(testingHandle, rootDirectory, collector.FilterOptions{})
	if actual != "// legacy.txt\n\nnaïve\n\n" {
		testingHandle.Fatalf("unexpected output %q", actual)
	}
}
