package generator

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

const casesDir = "test_cases"

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

/* Copies a test case's inputs (schema and sibling Go sources, not the golden
output) into a fresh directory. */
func setupCase(t *testing.T, caseName string) string {
	t.Helper()
	dir := t.TempDir()
	entries, err := os.ReadDir(filepath.Join(casesDir, caseName))
	require.NoError(t, err)
	for _, entry := range entries {
		if isGeneratedFile(entry.Name(), DefaultSuffix) {
			continue
		}
		data, err := os.ReadFile(filepath.Join(casesDir, caseName, entry.Name()))
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(filepath.Join(dir, entry.Name()), data, 0o644))
	}
	return dir
}

func TestGenerateGolden(t *testing.T) {
	dir := setupCase(t, "1")
	require.NoError(t, Generate(dir, nil))

	got, err := os.ReadFile(filepath.Join(dir, "service_error.gen.go"))
	require.NoError(t, err)
	want, err := os.ReadFile(filepath.Join(casesDir, "1", "service_error.gen.go"))
	require.NoError(t, err)
	if diff := cmp.Diff(string(want), string(got)); diff != "" {
		t.Errorf("generated output mismatch (-want +got):\n%s", diff)
	}
}

func TestGenerateIdempotent(t *testing.T) {
	dir := setupCase(t, "1")
	require.NoError(t, Generate(dir, nil))
	first, err := os.ReadFile(filepath.Join(dir, "service_error.gen.go"))
	require.NoError(t, err)

	require.NoError(t, Generate(dir, nil))
	second, err := os.ReadFile(filepath.Join(dir, "service_error.gen.go"))
	require.NoError(t, err)
	assert.Equal(t, string(first), string(second))
}

func TestGenerateNoSchemaFiles(t *testing.T) {
	err := Generate(t.TempDir(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no schema files")
}

func TestGenerateReportsDiagnostics(t *testing.T) {
	dir := t.TempDir()
	schema := "error E {\n\tBad(@source error) [transparent, status(400)]\n}\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.httperr"), []byte(schema), 0o644))

	err := Generate(dir, &Config{Package: "bad"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "transparent conflict")
	assert.NoFileExists(t, filepath.Join(dir, "bad.gen.go"))
}

func TestGenerateSuffixOverride(t *testing.T) {
	dir := setupCase(t, "1")
	require.NoError(t, Generate(dir, &Config{Suffix: "httperrgen"}))
	assert.FileExists(t, filepath.Join(dir, "service_error.httperrgen.go"))
}

func TestIsGeneratedFile(t *testing.T) {
	type testCase struct {
		input, suffix string
		expected      bool
	}
	for testNo, test := range []testCase{
		{"some.go", "gen", false},
		{"some.gen.go", "gen", true},
		{"some.gen.go", "httperrgen", false},
		{"some.httperrgen.go", "httperrgen", true},
		{"some.httperr", "gen", false},
	} {
		t.Run(fmt.Sprint(`case `, testNo), func(t *testing.T) {
			assert.Equal(t, test.expected, isGeneratedFile(test.input, test.suffix))
		})
	}
}

func TestOutputPathFor(t *testing.T) {
	assert.Equal(t, filepath.Join("a", "b.gen.go"), outputPathFor(filepath.Join("a", "b.httperr"), "gen"))
}

func TestInferPackageName(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "doc.go"), []byte("package svc\n"), 0o644))
	assert.Equal(t, "svc", inferPackageName(dir, DefaultSuffix))
}

func TestFallbackPackageName(t *testing.T) {
	assert.Equal(t, "myerrors", fallbackPackageName(filepath.Join("x", "my-errors")))
	assert.Equal(t, "v2", fallbackPackageName("1v2"))
	assert.Equal(t, "errdefs", fallbackPackageName("123"))
}

func TestGeneratedOutputMentionsNoSchemaInternals(t *testing.T) {
	want, err := os.ReadFile(filepath.Join(casesDir, "1", "service_error.gen.go"))
	require.NoError(t, err)
	/* Placeholder aliases are parse-time only and must never leak into the
	artifact. */
	assert.False(t, strings.Contains(string(want), aliasPrefix))
}
