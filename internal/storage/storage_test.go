package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_DefaultLayout(t *testing.T) {
	base := t.TempDir()
	s := New(base)

	path, err := s.SaveDescription(2024, 5, "<p>desc</p>")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(base, "2024", "descriptions", "5.html"), path)

	path, err = s.SaveInput(2024, 5, 2, "1 2 3")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(base, "2024", "inputs", "5-2.txt"), path)

	path, err = s.SaveSample(2024, 5, 2, "sample")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(base, "2024", "samples", "5-2.txt"), path)

	path, err = s.SaveExpectedAnswer(2024, 5, 2, "42")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(base, "2024", "samples", "5-2-answer.txt"), path)
}

func TestStore_RoundTrip(t *testing.T) {
	s := New(t.TempDir())

	_, err := s.SaveDescription(2024, 3, "the description")
	require.NoError(t, err)
	got, err := s.LoadDescription(2024, 3)
	require.NoError(t, err)
	assert.Equal(t, "the description", got)

	_, err = s.SaveInput(2024, 3, 1, "the input")
	require.NoError(t, err)
	got, err = s.LoadInput(2024, 3, 1)
	require.NoError(t, err)
	assert.Equal(t, "the input", got)
}

func TestStore_Has(t *testing.T) {
	s := New(t.TempDir())

	assert.False(t, s.HasDescription(2024, 9))
	assert.False(t, s.HasInput(2024, 9, 1))

	_, err := s.SaveDescription(2024, 9, "x")
	require.NoError(t, err)
	_, err = s.SaveInput(2024, 9, 1, "y")
	require.NoError(t, err)

	assert.True(t, s.HasDescription(2024, 9))
	assert.True(t, s.HasInput(2024, 9, 1))
	assert.False(t, s.HasInput(2024, 9, 2))
}

func TestStore_PathOverrides(t *testing.T) {
	base := t.TempDir()
	custom := filepath.Join(base, "elsewhere", "desc.html")

	s := New(base).
		WithDescriptionPath(custom).
		WithInputPath(filepath.Join(base, "in.txt")).
		WithSamplePath(filepath.Join(base, "sample.txt")).
		WithAnswerPath(filepath.Join(base, "answer.txt"))

	path, err := s.SaveDescription(2024, 5, "custom")
	require.NoError(t, err)
	assert.Equal(t, custom, path)

	data, err := os.ReadFile(custom)
	require.NoError(t, err)
	assert.Equal(t, "custom", string(data))

	path, err = s.SaveInput(2024, 5, 1, "i")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(base, "in.txt"), path)

	path, err = s.SaveSample(2024, 5, 1, "s")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(base, "sample.txt"), path)

	path, err = s.SaveExpectedAnswer(2024, 5, 1, "a")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(base, "answer.txt"), path)
}

func TestStore_LoadMissing(t *testing.T) {
	s := New(t.TempDir())

	_, err := s.LoadDescription(2024, 1)
	assert.Error(t, err)
}
