package output

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"update-object-generator/internal/diagnostic"
)

func sample() []GeneratedFile {
	return []GeneratedFile{
		{
			Class: "com.example.Person", Package: "com.example", Name: "PersonUpdateObject",
			Path: filepath.Join("com", "example", "PersonUpdateObject.kt"), Content: []byte("a"),
		},
		{
			Class: "com.example.Person", Package: "com.example", Name: "Summary",
			Path: filepath.Join("com", "example", "Summary.kt"), Content: []byte("b"),
		},
	}
}

func TestFileSink_Write(t *testing.T) {
	root := t.TempDir()
	sink := NewFileSink(root, false)

	require.NoError(t, sink.Prepare())
	require.NoError(t, sink.Write(sample()))

	got, err := os.ReadFile(filepath.Join(root, "com", "example", "Summary.kt"))
	require.NoError(t, err)
	assert.Equal(t, "b", string(got))
}

func TestFileSink_PrepareMissingRoot(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope")

	err := NewFileSink(missing, false).Prepare()
	require.ErrorIs(t, err, diagnostic.ErrOutputRootUnavailable)

	require.NoError(t, NewFileSink(missing, true).Prepare())
	assert.DirExists(t, missing)

	err = NewFileSink("", true).Prepare()
	require.ErrorIs(t, err, diagnostic.ErrOutputRootUnavailable)
}

func TestFileSink_PrepareNotADirectory(t *testing.T) {
	file := filepath.Join(t.TempDir(), "plain")
	require.NoError(t, os.WriteFile(file, nil, filePerm))

	err := NewFileSink(file, false).Prepare()
	require.ErrorIs(t, err, diagnostic.ErrOutputRootUnavailable)
}

func TestFileSink_Collision(t *testing.T) {
	root := t.TempDir()
	files := sample()
	files = append(files, GeneratedFile{
		Class: "com.example.Employee", Package: "com.example", Name: "Summary",
		Path: filepath.Join("com", "example", "Summary.kt"),
	})

	err := NewFileSink(root, false).Write(files)
	require.ErrorIs(t, err, diagnostic.ErrDuplicateOutput)
	assert.Contains(t, err.Error(), "com.example.Summary")
	assert.NoFileExists(t, filepath.Join(root, "com", "example", "PersonUpdateObject.kt"), "nothing is written on collision")
}

func TestCheckCollisions_SamePath(t *testing.T) {
	files := []GeneratedFile{
		{Package: "a", Name: "X", Path: "out/x_gen.go"},
		{Package: "b", Name: "X", Path: "out/./x_gen.go"},
	}

	require.ErrorIs(t, CheckCollisions(files), diagnostic.ErrDuplicateOutput)
	require.NoError(t, CheckCollisions(sample()))
}

func TestMemorySink(t *testing.T) {
	sink := &MemorySink{}

	require.NoError(t, sink.Prepare())
	require.NoError(t, sink.Write(sample()))
	assert.Len(t, sink.Files(), 2)

	dup := append(sample(), sample()[0])
	require.ErrorIs(t, sink.Write(dup), diagnostic.ErrDuplicateOutput)
	assert.Len(t, sink.Files(), 2)
}
