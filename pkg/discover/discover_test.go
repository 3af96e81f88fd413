package discover

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var exerciseFilter = Filter{
	Extension: ".jsx",
	Markers:   []string{"Beginner", "Intermediate", "Advanced", "Exercise"},
}

func testContext(t *testing.T) context.Context {
	logger := zerolog.New(zerolog.NewTestWriter(t))
	return logger.WithContext(context.Background())
}

func writeFiles(t *testing.T, root string, files ...string) {
	t.Helper()
	for _, f := range files {
		path := filepath.Join(root, filepath.FromSlash(f))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte("content"), 0o644))
	}
}

func relPaths(t *testing.T, root string, paths []string) []string {
	t.Helper()
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		rel, err := filepath.Rel(root, p)
		require.NoError(t, err)
		out = append(out, filepath.ToSlash(rel))
	}
	sort.Strings(out)
	return out
}

func TestFilter_Match(t *testing.T) {
	tests := []struct {
		name string
		file string
		want bool
	}{
		{name: "marker_and_extension", file: "PythonBeginner.jsx", want: true},
		{name: "marker_anywhere", file: "LoopsExerciseTwo.jsx", want: true},
		{name: "directory_is_not_considered", file: "Advanced/Loops.jsx", want: false},
		{name: "wrong_extension", file: "PythonBeginner.js", want: false},
		{name: "extension_not_suffix", file: "Beginner.jsx.bak", want: false},
		{name: "no_marker", file: "Layout.jsx", want: false},
		{name: "marker_is_case_sensitive", file: "beginner.jsx", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, exerciseFilter.Match(tt.file))
		})
	}
}

func TestFilter_MatchWithoutMarkers(t *testing.T) {
	f := Filter{Extension: ".jsx"}
	assert.False(t, f.Match("Beginner.jsx"))
}

func TestCandidates(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root,
		"PythonBeginner.jsx",
		"Layout.jsx",
		"notes.txt",
		"python/PythonIntermediate.jsx",
		"python/deep/nested/JavaAdvanced.jsx",
		"python/deep/Exercise.css",
		"java/JavaExerciseList.jsx",
	)

	paths, err := Candidates(testContext(t), root, exerciseFilter)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"PythonBeginner.jsx",
		"java/JavaExerciseList.jsx",
		"python/PythonIntermediate.jsx",
		"python/deep/nested/JavaAdvanced.jsx",
	}, relPaths(t, root, paths))
}

func TestCandidates_SkipsDirectoriesNamedLikeCandidates(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "Beginner.jsx"), 0o755))
	writeFiles(t, root, "Beginner.jsx/Advanced.jsx")

	paths, err := Candidates(testContext(t), root, exerciseFilter)
	require.NoError(t, err)
	assert.Equal(t, []string{"Beginner.jsx/Advanced.jsx"}, relPaths(t, root, paths))
}

func TestCandidates_MissingRoot(t *testing.T) {
	root := filepath.Join(t.TempDir(), "does-not-exist")

	paths, err := Candidates(testContext(t), root, exerciseFilter)
	require.NoError(t, err)
	assert.Empty(t, paths)
}

func TestCandidates_EmptyRoot(t *testing.T) {
	paths, err := Candidates(testContext(t), t.TempDir(), exerciseFilter)
	require.NoError(t, err)
	assert.Empty(t, paths)
}

func TestCandidates_Ignore(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root,
		"PythonBeginner.jsx",
		"archive/OldBeginner.jsx",
		"java/JavaAdvanced.test.jsx",
		"java/JavaAdvanced.jsx",
	)

	f := exerciseFilter
	f.Ignore = []string{"archive/**", "**/*.test.jsx"}

	paths, err := Candidates(testContext(t), root, f)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"PythonBeginner.jsx",
		"java/JavaAdvanced.jsx",
	}, relPaths(t, root, paths))
}

func TestCandidates_InvalidIgnorePattern(t *testing.T) {
	f := exerciseFilter
	f.Ignore = []string{"[unterminated"}

	_, err := Candidates(testContext(t), t.TempDir(), f)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid ignore pattern")
}

func TestCandidates_CancelledContext(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, "PythonBeginner.jsx")

	ctx, cancel := context.WithCancel(testContext(t))
	cancel()

	paths, err := Candidates(ctx, root, exerciseFilter)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, paths)
}

func TestCandidates_Symlinks(t *testing.T) {
	root := t.TempDir()
	target := t.TempDir()
	writeFiles(t, target, "Shared.jsx", "lessons/Inner.jsx")

	require.NoError(t, os.Symlink(filepath.Join(target, "Shared.jsx"), filepath.Join(root, "LinkedBeginner.jsx")))
	require.NoError(t, os.Symlink(filepath.Join(target, "missing.jsx"), filepath.Join(root, "BrokenAdvanced.jsx")))
	require.NoError(t, os.Symlink(filepath.Join(target, "lessons"), filepath.Join(root, "DirExercise.jsx")))
	require.NoError(t, os.Symlink(filepath.Join(target, "Shared.jsx"), filepath.Join(root, "Unrelated.jsx")))

	paths, err := Candidates(testContext(t), root, exerciseFilter)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"BrokenAdvanced.jsx",
		"LinkedBeginner.jsx",
	}, relPaths(t, root, paths))
}
