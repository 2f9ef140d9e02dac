package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/enderchest/pkg/errors"
	"github.com/arthur-debert/enderchest/pkg/logging"
	"github.com/arthur-debert/enderchest/pkg/paths"
	"github.com/arthur-debert/enderchest/pkg/types"
)

// inventoryFile is the on-disk shape of instances.yml.
type inventoryFile struct {
	Instances []inventoryEntry `yaml:"instances"`
}

type inventoryEntry struct {
	Name string `yaml:"name"`
	Root string `yaml:"root"`
	Kind string `yaml:"kind"`
}

// LoadInventory reads the instance inventory. Instances are enumerated
// here and nowhere else; the core never discovers installations on its
// own. Relative roots resolve against the chest's parent directory. A
// missing inventory is an empty one.
func LoadInventory(fsys types.FS, p *paths.Paths) ([]types.Instance, error) {
	logger := logging.GetLogger("config.inventory")

	raw, err := fsys.ReadFile(p.InventoryPath())
	if err != nil {
		if os.IsNotExist(err) {
			logger.Debug().Str("path", p.InventoryPath()).Msg("no inventory file, no instances")
			return nil, nil
		}
		return nil, errors.Wrapf(err, errors.ErrConfigLoad,
			"cannot read inventory %s", p.InventoryPath())
	}

	var inv inventoryFile
	if err := yaml.Unmarshal(raw, &inv); err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigParse,
			"invalid inventory %s", p.InventoryPath())
	}

	seen := make(map[string]bool, len(inv.Instances))
	instances := make([]types.Instance, 0, len(inv.Instances))
	for _, entry := range inv.Instances {
		if entry.Name == "" || entry.Root == "" {
			return nil, errors.Newf(errors.ErrConfigParse,
				"inventory entry %+v needs both a name and a root", entry)
		}
		if seen[entry.Name] {
			return nil, errors.Newf(errors.ErrConfigParse,
				"inventory lists instance %q twice", entry.Name)
		}
		seen[entry.Name] = true

		kind, ok := types.ParseInstanceKind(entry.Kind)
		if !ok {
			return nil, errors.Newf(errors.ErrConfigParse,
				"instance %q has kind %q, want client or server", entry.Name, entry.Kind)
		}

		root := entry.Root
		if !filepath.IsAbs(root) {
			root = filepath.Join(p.Root(), root)
		}
		instances = append(instances, types.Instance{
			Name: entry.Name,
			Root: filepath.Clean(root),
			Kind: kind,
		})
	}

	logger.Debug().Int("instances", len(instances)).Msg("inventory loaded")
	return instances, nil
}
