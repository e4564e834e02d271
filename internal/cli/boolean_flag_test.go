package cli

import (
	"io"
	"testing"

	"github.com/spf13/pflag"
)

func TestRegisterBooleanFlagParsesValues(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name         string
		defaultValue bool
		arguments    []string
		expected     bool
		expectError  bool
	}{
		{
			name:         "defaults_to_false",
			defaultValue: false,
			arguments:    []string{},
			expected:     false,
		},
		{
			name:         "sets_true_without_value",
			defaultValue: false,
			arguments:    []string{"--feature"},
			expected:     true,
		},
		{
			name:         "sets_true_with_shorthand",
			defaultValue: false,
			arguments:    []string{"-f"},
			expected:     true,
		},
		{
			name:         "sets_false_with_equals",
			defaultValue: true,
			arguments:    []string{"--feature=false"},
			expected:     false,
		},
		{
			name:         "sets_false_with_no_literal",
			defaultValue: true,
			arguments:    []string{"--feature=no"},
			expected:     false,
		},
		{
			name:         "sets_true_with_on_literal",
			defaultValue: false,
			arguments:    []string{"--feature=on"},
			expected:     true,
		},
		{
			name:         "does_not_consume_following_argument",
			defaultValue: false,
			arguments:    []string{"--feature", "maybe"},
			expected:     true,
		},
		{
			name:         "rejects_invalid_literal",
			defaultValue: false,
			arguments:    []string{"--feature=maybe"},
			expectError:  true,
		},
	}

	for _, testCase := range testCases {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()
			flagSet := pflag.NewFlagSet("boolean-test", pflag.ContinueOnError)
			flagSet.SetOutput(io.Discard)
			flagValue := !testCase.defaultValue
			registerBooleanFlag(flagSet, &flagValue, "feature", "f", testCase.defaultValue, "toggle feature behaviour")
			parseErr := flagSet.Parse(testCase.arguments)
			if testCase.expectError {
				if parseErr == nil {
					t.Fatalf("expected parse error for arguments %v", testCase.arguments)
				}
				return
			}
			if parseErr != nil {
				t.Fatalf("unexpected parse error: %v", parseErr)
			}
			if flagValue != testCase.expected {
				t.Fatalf("expected %t, got %t", testCase.expected, flagValue)
			}
		})
	}
}

func TestBooleanFlagsGroupAsShorthand(t *testing.T) {
	flagSet := pflag.NewFlagSet("grouped", pflag.ContinueOnError)
	flagSet.SetOutput(io.Discard)
	var recursive, quiet bool
	registerBooleanFlag(flagSet, &recursive, "recursive", "r", false, "")
	registerBooleanFlag(flagSet, &quiet, "quiet", "q", false, "")
	if err := flagSet.Parse([]string{"-rq", "dir"}); err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	if !recursive || !quiet {
		t.Fatalf("expected both flags set, got recursive=%t quiet=%t", recursive, quiet)
	}
	if flagSet.NArg() != 1 || flagSet.Arg(0) != "dir" {
		t.Fatalf("expected dir positional, got %v", flagSet.Args())
	}
}
