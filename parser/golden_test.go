package parser

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// To update golden files, set the environment variable:
//
//	UPDATE_GOLDEN=1 go test -run TestGolden ./parser/...
func updateGolden() bool {
	return os.Getenv("UPDATE_GOLDEN") == "1"
}

// TestGolden runs golden tests by comparing parser output against known-good files.
//
// Golden tests work as follows:
// 1. Read .marm files from testdata/golden/
// 2. Parse each file and get the AST's String() representation
// 3. Compare against corresponding .golden file
//
// To update golden files when the AST representation changes:
//
//	UPDATE_GOLDEN=1 go test -run TestGolden ./parser/...
func TestGolden(t *testing.T) {
	goldenDir := "testdata/golden"

	files, err := filepath.Glob(filepath.Join(goldenDir, "*.marm"))
	if err != nil {
		t.Fatalf("failed to glob golden files: %v", err)
	}
	if len(files) == 0 {
		t.Skip("no golden test files found")
	}

	for _, marmFile := range files {
		baseName := strings.TrimSuffix(filepath.Base(marmFile), ".marm")
		t.Run(baseName, func(t *testing.T) {
			input, err := os.ReadFile(marmFile)
			require.NoError(t, err)

			program, err := Parse(context.Background(), string(input), WithFilename(marmFile))
			require.NoError(t, err)

			actual := program.String()
			goldenFile := strings.TrimSuffix(marmFile, ".marm") + ".golden"

			if updateGolden() {
				err := os.WriteFile(goldenFile, []byte(actual), 0o644)
				require.NoError(t, err)
				t.Logf("updated golden file: %s", goldenFile)
				return
			}

			expected, err := os.ReadFile(goldenFile)
			if err != nil {
				if os.IsNotExist(err) {
					t.Fatalf("golden file not found: %s\nRun with UPDATE_GOLDEN=1 to create it.\nActual output:\n%s", goldenFile, actual)
				}
				t.Fatalf("failed to read golden file: %v", err)
			}
			require.Equal(t, string(expected), actual)
		})
	}
}

// TestGoldenErrors tests parsing files that should produce errors.
// These files are in testdata/golden/errors/ and their .golden files
// contain the expected error messages.
func TestGoldenErrors(t *testing.T) {
	goldenDir := "testdata/golden/errors"

	files, err := filepath.Glob(filepath.Join(goldenDir, "*.marm"))
	if err != nil {
		t.Fatalf("failed to glob golden error files: %v", err)
	}
	if len(files) == 0 {
		t.Skip("no golden error test files found")
	}

	for _, marmFile := range files {
		baseName := strings.TrimSuffix(filepath.Base(marmFile), ".marm")
		t.Run(baseName, func(t *testing.T) {
			input, err := os.ReadFile(marmFile)
			require.NoError(t, err)

			_, parseErr := Parse(context.Background(), string(input))
			require.Error(t, parseErr)

			actual := parseErr.Error()
			goldenFile := strings.TrimSuffix(marmFile, ".marm") + ".golden"

			if updateGolden() {
				err := os.WriteFile(goldenFile, []byte(actual), 0o644)
				require.NoError(t, err)
				t.Logf("updated golden file: %s", goldenFile)
				return
			}

			expected, err := os.ReadFile(goldenFile)
			if err != nil {
				if os.IsNotExist(err) {
					t.Fatalf("golden file not found: %s\nRun with UPDATE_GOLDEN=1 to create it.\nActual error:\n%s", goldenFile, actual)
				}
				t.Fatalf("failed to read golden file: %v", err)
			}
			require.Equal(t, string(expected), actual)
		})
	}
}
