package chest_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/enderchest/pkg/chest"
	"github.com/arthur-debert/enderchest/pkg/errors"
	"github.com/arthur-debert/enderchest/pkg/testutil"
	"github.com/arthur-debert/enderchest/pkg/types"
)

func TestCraftCreatesChestStructure(t *testing.T) {
	env := testutil.NewEnv(t)

	require.NoError(t, chest.Craft(env.FS, env.Paths))

	for _, category := range types.Categories() {
		info, err := os.Stat(env.Paths.CategoryDir(category))
		require.NoError(t, err, "category %s", category)
		assert.True(t, info.IsDir())
	}

	starter, err := os.ReadFile(env.Paths.ConfigPath())
	require.NoError(t, err)
	assert.Contains(t, string(starter), "agent = 'rsync'")
	assert.Contains(t, string(starter), "[[remotes]]")

	inventory, err := os.ReadFile(env.Paths.InventoryPath())
	require.NoError(t, err)
	assert.Contains(t, string(inventory), "instances:")
}

func TestCraftRefusesExistingChest(t *testing.T) {
	env := testutil.NewEnv(t)

	require.NoError(t, chest.Craft(env.FS, env.Paths))

	err := chest.Craft(env.FS, env.Paths)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrChestExists))
}

func TestCraftedChestScansEmpty(t *testing.T) {
	env := testutil.NewEnv(t)
	require.NoError(t, chest.Craft(env.FS, env.Paths))

	result, err := chest.Scan(env.FS, env.Paths)
	require.NoError(t, err)

	// The starter config and inventory live under local-only and show
	// up as untagged entries, which address no instance.
	for _, entry := range result.Entries {
		assert.Equal(t, types.CategoryLocalOnly, entry.Category)
		assert.Empty(t, entry.Tags)
	}
	assert.Empty(t, result.Malformed)
}
