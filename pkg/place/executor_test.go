package place_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/enderchest/pkg/place"
	"github.com/arthur-debert/enderchest/pkg/testutil"
	"github.com/arthur-debert/enderchest/pkg/types"
)

func resolveOne(t *testing.T, env *testutil.Env, instance types.Instance, policy place.Policy) types.Delta {
	t.Helper()
	resolution, err := place.Resolve(env.FS, env.Paths.ChestDir(),
		scanEntries(t, env), []types.Instance{instance}, policy)
	require.NoError(t, err)
	return deltaFor(t, resolution, instance.Name)
}

func TestApplyCreatesLinksAndParents(t *testing.T) {
	env := testutil.NewEnv(t)
	env.MakeChest()

	source := env.AddEntry("global/config/nested/deep.toml@axolotl", "x = 1")
	client := env.AddInstance("axolotl", types.KindClient)

	report := place.Apply(env.FS, env.Paths.ChestDir(), resolveOne(t, env, client, place.Policy{}))

	assert.Equal(t, 1, report.Count(types.StatusCreated))
	assert.Empty(t, report.Failures())

	linkPath := filepath.Join(client.Root, "config", "nested", "deep.toml")
	target, err := os.Readlink(linkPath)
	require.NoError(t, err)
	assert.Equal(t, source, target)
}

func TestApplyIsIdempotent(t *testing.T) {
	env := testutil.NewEnv(t)
	env.MakeChest()

	env.AddEntry("global/mods/BME.jar@axolotl", "alfalfa")
	env.AddEntry("client-only/resourcepacks/stuff.zip@axolotl", "dfg")
	client := env.AddInstance("axolotl", types.KindClient)

	first := place.Apply(env.FS, env.Paths.ChestDir(), resolveOne(t, env, client, place.Policy{}))
	assert.Equal(t, 2, first.Count(types.StatusCreated))

	second := place.Apply(env.FS, env.Paths.ChestDir(), resolveOne(t, env, client, place.Policy{}))
	assert.Equal(t, 2, second.Count(types.StatusUnchanged))
	assert.False(t, second.Changed())
}

func TestApplyNeverOverwritesRealFiles(t *testing.T) {
	env := testutil.NewEnv(t)
	env.MakeChest()

	env.AddEntry("global/mods/worldsbestmod.jar@axolotl", "impostor")
	env.AddEntry("global/mods/fine.jar@axolotl", "fine")
	client := env.AddInstance("axolotl", types.KindClient)

	// The user already has a real mod file where the link would go.
	modsDir := filepath.Join(client.Root, "mods")
	require.NoError(t, os.MkdirAll(modsDir, 0755))
	realFile := filepath.Join(modsDir, "worldsbestmod.jar")
	require.NoError(t, os.WriteFile(realFile, []byte("beepboop"), 0644))

	report := place.Apply(env.FS, env.Paths.ChestDir(), resolveOne(t, env, client, place.Policy{}))

	// The conflicting slot is skipped, the other link still lands.
	assert.Equal(t, 1, report.Count(types.StatusSkippedRealFile))
	assert.Equal(t, 1, report.Count(types.StatusCreated))

	content, err := os.ReadFile(realFile)
	require.NoError(t, err)
	assert.Equal(t, "beepboop", string(content))
}

func TestApplySkipsForeignSymlinks(t *testing.T) {
	env := testutil.NewEnv(t)
	env.MakeChest()

	env.AddEntry("global/config/options.txt@axolotl", "fov=90")
	client := env.AddInstance("axolotl", types.KindClient)

	elsewhere := env.WriteFile("workspace/options.txt", "their own")
	configDir := filepath.Join(client.Root, "config")
	require.NoError(t, os.MkdirAll(configDir, 0755))
	require.NoError(t, os.Symlink(elsewhere, filepath.Join(configDir, "options.txt")))

	report := place.Apply(env.FS, env.Paths.ChestDir(), resolveOne(t, env, client, place.Policy{}))
	assert.Equal(t, 1, report.Count(types.StatusSkippedRealFile))

	target, err := os.Readlink(filepath.Join(configDir, "options.txt"))
	require.NoError(t, err)
	assert.Equal(t, elsewhere, target)
}

func TestApplyRepointsStaleManagedLinks(t *testing.T) {
	env := testutil.NewEnv(t)
	env.MakeChest()

	source := env.AddEntry("global/mods/BME.jar@axolotl", "current build")
	client := env.AddInstance("axolotl", types.KindClient)

	// A leftover link from an entry that has since been renamed.
	modsDir := filepath.Join(client.Root, "mods")
	require.NoError(t, os.MkdirAll(modsDir, 0755))
	old := filepath.Join(env.Paths.ChestDir(), "global", "mods", "BME.jar@axolotl@old")
	require.NoError(t, os.Symlink(old, filepath.Join(modsDir, "BME.jar")))

	report := place.Apply(env.FS, env.Paths.ChestDir(), resolveOne(t, env, client, place.Policy{}))
	assert.Equal(t, 1, report.Count(types.StatusReplaced))

	target, err := os.Readlink(filepath.Join(modsDir, "BME.jar"))
	require.NoError(t, err)
	assert.Equal(t, source, target)
}

func TestRunPropagatesUpstreamDeletions(t *testing.T) {
	env := testutil.NewEnv(t)
	env.MakeChest()

	doomed := env.AddEntry("global/mods/AnOkayMod.jar@bee", "beep")
	env.AddEntry("global/mods/BME.jar@bee", "can i get a bat")
	client := env.AddInstance("bee", types.KindClient)
	untouched := env.WriteFile("instances/bee/screenshots/sunrise.png", "pixels")

	instances := []types.Instance{client}

	first, err := place.Run(env.FS, env.Paths, instances, place.Policy{}, false)
	require.NoError(t, err)
	assert.Equal(t, 2, first.Reports[0].Count(types.StatusCreated))

	// Simulate a sync pull that removed the mod upstream.
	require.NoError(t, os.Remove(doomed))

	second, err := place.Run(env.FS, env.Paths, instances, place.Policy{}, false)
	require.NoError(t, err)
	assert.Equal(t, 1, second.Reports[0].Count(types.StatusRemoved))
	assert.Equal(t, 1, second.Reports[0].Count(types.StatusUnchanged))

	_, err = os.Lstat(filepath.Join(client.Root, "mods", "AnOkayMod.jar"))
	assert.True(t, os.IsNotExist(err))

	// Everything else in the instance is untouched.
	content, err := os.ReadFile(untouched)
	require.NoError(t, err)
	assert.Equal(t, "pixels", string(content))
	_, err = os.Readlink(filepath.Join(client.Root, "mods", "BME.jar"))
	assert.NoError(t, err)
}

func TestRunDryRunTouchesNothing(t *testing.T) {
	env := testutil.NewEnv(t)
	env.MakeChest()

	env.AddEntry("global/mods/BME.jar@axolotl", "alfalfa")
	client := env.AddInstance("axolotl", types.KindClient)

	result, err := place.Run(env.FS, env.Paths, []types.Instance{client}, place.Policy{}, true)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Reports[0].Count(types.StatusCreated))

	_, err = os.Lstat(filepath.Join(client.Root, "mods", "BME.jar"))
	assert.True(t, os.IsNotExist(err))
}

func TestApplyAllKeepsReportOrder(t *testing.T) {
	env := testutil.NewEnv(t)
	env.MakeChest()

	env.AddEntry("global/mods/BME.jar@axolotl@bee@cow", "everywhere")
	instances := []types.Instance{
		env.AddInstance("axolotl", types.KindClient),
		env.AddInstance("bee", types.KindClient),
		env.AddInstance("cow", types.KindServer),
	}

	resolution, err := place.Resolve(env.FS, env.Paths.ChestDir(),
		scanEntries(t, env), instances, place.Policy{})
	require.NoError(t, err)

	reports := place.ApplyAll(env.FS, env.Paths.ChestDir(), resolution.Deltas)
	require.Len(t, reports, 3)
	assert.Equal(t, "axolotl", reports[0].Instance)
	assert.Equal(t, "bee", reports[1].Instance)
	assert.Equal(t, "cow", reports[2].Instance)
	for _, report := range reports {
		assert.Equal(t, 1, report.Count(types.StatusCreated))
	}
}
