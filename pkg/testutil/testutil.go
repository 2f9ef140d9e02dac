// Package testutil builds throwaway chest layouts for tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/enderchest/pkg/filesystem"
	"github.com/arthur-debert/enderchest/pkg/paths"
	"github.com/arthur-debert/enderchest/pkg/types"
)

// Env is a temporary root with a chest and instances under it, torn down
// with the test.
type Env struct {
	T     *testing.T
	Root  string
	Paths *paths.Paths
	FS    types.FS
}

// NewEnv creates an empty temp root.
func NewEnv(t *testing.T) *Env {
	t.Helper()
	root := t.TempDir()
	p, err := paths.New(root)
	require.NoError(t, err)
	return &Env{T: t, Root: root, Paths: p, FS: filesystem.NewOS()}
}

// MakeChest creates the bare chest structure: the four category folders,
// nothing else.
func (e *Env) MakeChest() {
	e.T.Helper()
	for _, category := range types.Categories() {
		require.NoError(e.T, os.MkdirAll(e.Paths.CategoryDir(category), 0755))
	}
}

// AddEntry writes a resource file at a chest-relative path, creating
// parents, and returns its absolute path.
func (e *Env) AddEntry(rel, content string) string {
	e.T.Helper()
	abs := filepath.Join(e.Paths.ChestDir(), filepath.FromSlash(rel))
	require.NoError(e.T, os.MkdirAll(filepath.Dir(abs), 0755))
	require.NoError(e.T, os.WriteFile(abs, []byte(content), 0644))
	return abs
}

// AddEntryLink creates a resource that is itself a symlink, the way
// chests link out to worlds and build artifacts.
func (e *Env) AddEntryLink(rel, target string) string {
	e.T.Helper()
	abs := filepath.Join(e.Paths.ChestDir(), filepath.FromSlash(rel))
	require.NoError(e.T, os.MkdirAll(filepath.Dir(abs), 0755))
	require.NoError(e.T, os.Symlink(target, abs))
	return abs
}

// AddInstance creates an instance root under the env and returns its
// descriptor.
func (e *Env) AddInstance(name string, kind types.InstanceKind) types.Instance {
	e.T.Helper()
	root := filepath.Join(e.Root, "instances", name)
	require.NoError(e.T, os.MkdirAll(root, 0755))
	return types.Instance{Name: name, Root: root, Kind: kind}
}

// WriteFile writes an arbitrary file relative to the env root.
func (e *Env) WriteFile(rel, content string) string {
	e.T.Helper()
	abs := filepath.Join(e.Root, filepath.FromSlash(rel))
	require.NoError(e.T, os.MkdirAll(filepath.Dir(abs), 0755))
	require.NoError(e.T, os.WriteFile(abs, []byte(content), 0644))
	return abs
}
