package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/temirov/codic/internal/utils"
)

type configTestCase struct {
	name              string
	globalContent     string
	localContent      string
	explicitPath      string
	explicitContent   string
	expectRecursive   *bool
	expectQuiet       *bool
	expectExtensions  []string
	expectExcludeDirs []string
	expectPattern     string
	expectTokens      *bool
	expectModel       string
}

func boolPointer(value bool) *bool {
	pointer := value
	return &pointer
}

func TestLoadApplicationConfigurationMergesSources(t *testing.T) {
	testCases := []configTestCase{
		{
			name:              "local_overrides_global",
			globalContent:     "recursive: true\nquiet: true\nexclude_dir:\n  - node_modules\ntokens:\n  model: gpt-4\n",
			localContent:      "quiet: false\nfiletype: [.go, .md, .go]\ntokens:\n  enabled: true\n",
			expectRecursive:   boolPointer(true),
			expectQuiet:       boolPointer(false),
			expectExtensions:  []string{".go", ".md"},
			expectExcludeDirs: []string{"node_modules"},
			expectTokens:      boolPointer(true),
			expectModel:       "gpt-4",
		},
		{
			name:            "explicit_path_replaces_local",
			globalContent:   "",
			localContent:    "recursive: true\n",
			explicitPath:    "custom.yaml",
			explicitContent: "regex_filter: '^main'\n",
			expectPattern:   "^main",
		},
		{
			name: "no_files",
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			homeDir := t.TempDir()
			workingDir := t.TempDir()
			configDir := filepath.Join(homeDir, utils.GlobalConfigDirectoryName)
			if err := os.MkdirAll(configDir, 0o755); err != nil {
				t.Fatalf("create config dir: %v", err)
			}
			if testCase.globalContent != "" {
				globalPath := filepath.Join(configDir, utils.GlobalConfigFileName)
				if err := os.WriteFile(globalPath, []byte(testCase.globalContent), 0o600); err != nil {
					t.Fatalf("write global config: %v", err)
				}
			}
			if testCase.localContent != "" {
				localPath := filepath.Join(workingDir, utils.ConfigFileName)
				if err := os.WriteFile(localPath, []byte(testCase.localContent), 0o600); err != nil {
					t.Fatalf("write local config: %v", err)
				}
			}
			if testCase.explicitPath != "" {
				target := filepath.Join(workingDir, testCase.explicitPath)
				if err := os.WriteFile(target, []byte(testCase.explicitContent), 0o600); err != nil {
					t.Fatalf("write explicit config: %v", err)
				}
			}

			t.Setenv("HOME", homeDir)
			t.Setenv("USERPROFILE", homeDir)

			loadedConfig, err := LoadApplicationConfiguration(LoadOptions{
				WorkingDirectory: workingDir,
				ExplicitFilePath: testCase.explicitPath,
			})
			if err != nil {
				t.Fatalf("LoadApplicationConfiguration error: %v", err)
			}

			assertBoolPointer(t, "recursive", testCase.expectRecursive, loadedConfig.Recursive)
			assertBoolPointer(t, "quiet", testCase.expectQuiet, loadedConfig.Quiet)
			assertBoolPointer(t, "tokens.enabled", testCase.expectTokens, loadedConfig.Tokens.Enabled)
			assertStrings(t, "filetype", testCase.expectExtensions, loadedConfig.Extensions)
			assertStrings(t, "exclude_dir", testCase.expectExcludeDirs, loadedConfig.ExcludedDirectories)
			if loadedConfig.NamePattern != testCase.expectPattern {
				t.Fatalf("expected pattern %q, got %q", testCase.expectPattern, loadedConfig.NamePattern)
			}
			if loadedConfig.Tokens.Model != testCase.expectModel {
				t.Fatalf("expected model %q, got %q", testCase.expectModel, loadedConfig.Tokens.Model)
			}
		})
	}
}

func TestLoadApplicationConfigurationExplicitFileMustExist(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("USERPROFILE", t.TempDir())
	_, err := LoadApplicationConfiguration(LoadOptions{
		WorkingDirectory: t.TempDir(),
		ExplicitFilePath: "missing.yaml",
	})
	if err == nil {
		t.Fatalf("expected error for missing explicit configuration")
	}
}

func TestLoadApplicationConfigurationRejectsMalformedYAML(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("USERPROFILE", t.TempDir())
	workingDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(workingDir, utils.ConfigFileName), []byte("recursive: [unterminated\n"), 0o600); err != nil {
		t.Fatalf("write local config: %v", err)
	}
	if _, err := LoadApplicationConfiguration(LoadOptions{WorkingDirectory: workingDir}); err == nil {
		t.Fatalf("expected error for malformed configuration")
	}
}

func TestBoolValue(t *testing.T) {
	if BoolValue(nil, true) != true {
		t.Fatalf("expected default for nil")
	}
	if BoolValue(boolPointer(false), true) != false {
		t.Fatalf("expected explicit value to win")
	}
}

func assertBoolPointer(t *testing.T, label string, expected *bool, actual *bool) {
	t.Helper()
	if expected == nil {
		if actual != nil {
			t.Fatalf("expected no %s override, got %t", label, *actual)
		}
		return
	}
	if actual == nil || *actual != *expected {
		t.Fatalf("unexpected %s value", label)
	}
}

func assertStrings(t *testing.T, label string, expected []string, actual []string) {
	t.Helper()
	if len(expected) != len(actual) {
		t.Fatalf("%s: expected %v, got %v", label, expected, actual)
	}
	for index := range expected {
		if expected[index] != actual[index] {
			t.Fatalf("%s: expected %v, got %v", label, expected, actual)
		}
	}
}
