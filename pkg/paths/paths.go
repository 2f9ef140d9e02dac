// Package paths provides centralized path handling for enderchest.
// Every operation threads an explicit root through these values; nothing
// in the codebase depends on the process working directory.
package paths

import (
	"os"
	"path/filepath"

	"github.com/arthur-debert/enderchest/pkg/errors"
	"github.com/arthur-debert/enderchest/pkg/types"
)

// Environment variable names
const (
	// EnvChestRoot is the primary environment variable for the chest's
	// parent directory.
	EnvChestRoot = "ENDERCHEST_ROOT"
)

// Fixed on-disk names. These define the chest's structure and are NOT
// user-configurable: they must stay consistent across machines for the
// sync scripts to line up.
const (
	// ChestDirName is the name of the chest directory under the root.
	ChestDirName = "EnderChest"

	// ConfigFileName is the machine-local configuration file, kept under
	// local-only so it never syncs.
	ConfigFileName = "enderchest.toml"

	// InventoryFileName is the machine-local instance inventory.
	InventoryFileName = "instances.yml"

	// OpenScriptName pulls changes from remote chests.
	OpenScriptName = "open"

	// CloseScriptName pushes changes to remote chests.
	CloseScriptName = "close"

	// VCSDirName is the version-control metadata directory excluded from
	// every transfer.
	VCSDirName = ".git"
)

// Paths resolves every location enderchest touches from a single root:
// the directory that contains the EnderChest folder and the instances it
// serves.
type Paths struct {
	root string
}

// New creates a Paths anchored at the given root. An empty root falls
// back to ENDERCHEST_ROOT, then to the working directory.
func New(root string) (*Paths, error) {
	if root == "" {
		root = os.Getenv(EnvChestRoot)
	}
	if root == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrInvalidInput, "cannot determine chest root")
		}
		root = cwd
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInvalidInput, "invalid chest root %q", root)
	}
	return &Paths{root: abs}, nil
}

// Root returns the chest's parent directory.
func (p *Paths) Root() string {
	return p.root
}

// ChestDir returns the chest directory itself.
func (p *Paths) ChestDir() string {
	return filepath.Join(p.root, ChestDirName)
}

// CategoryDir returns the directory of one chest category.
func (p *Paths) CategoryDir(category types.Category) string {
	return filepath.Join(p.ChestDir(), string(category))
}

// ScriptDir returns where generated sync scripts live. They sit under
// local-only so they are excluded from the transfer set.
func (p *Paths) ScriptDir() string {
	return p.CategoryDir(types.CategoryLocalOnly)
}

// ScriptPath returns the path of a generated sync script.
func (p *Paths) ScriptPath(name string) string {
	return filepath.Join(p.ScriptDir(), name)
}

// ConfigPath returns the machine-local configuration file path.
func (p *Paths) ConfigPath() string {
	return filepath.Join(p.CategoryDir(types.CategoryLocalOnly), ConfigFileName)
}

// InventoryPath returns the machine-local instance inventory path.
func (p *Paths) InventoryPath() string {
	return filepath.Join(p.CategoryDir(types.CategoryLocalOnly), InventoryFileName)
}
