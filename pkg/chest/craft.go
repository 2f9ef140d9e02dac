package chest

import (
	"github.com/arthur-debert/enderchest/pkg/config"
	"github.com/arthur-debert/enderchest/pkg/errors"
	"github.com/arthur-debert/enderchest/pkg/logging"
	"github.com/arthur-debert/enderchest/pkg/paths"
	"github.com/arthur-debert/enderchest/pkg/types"
)

// Craft bootstraps a fresh chest under the root: the four category
// folders plus the starter config and inventory under local-only.
// Refuses to touch a root that already has a chest.
func Craft(fsys types.FS, p *paths.Paths) error {
	logger := logging.GetLogger("chest.craft")

	if Exists(fsys, p) {
		return errors.Newf(errors.ErrChestExists,
			"a chest already exists at %s", p.ChestDir())
	}

	for _, category := range types.Categories() {
		if err := fsys.MkdirAll(p.CategoryDir(category), 0755); err != nil {
			return errors.Wrapf(err, errors.ErrDirCreate,
				"cannot create category folder %s", p.CategoryDir(category))
		}
	}

	starter, err := config.GenerateConfigContent()
	if err != nil {
		return err
	}
	if err := fsys.WriteFile(p.ConfigPath(), []byte(starter), 0644); err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess,
			"cannot write starter config %s", p.ConfigPath())
	}
	if err := fsys.WriteFile(p.InventoryPath(), []byte(config.GenerateInventoryContent()), 0644); err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess,
			"cannot write starter inventory %s", p.InventoryPath())
	}

	logger.Info().Str("chest", p.ChestDir()).Msg("crafted new chest")
	return nil
}
