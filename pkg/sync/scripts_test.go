package sync_test

import (
	"os"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/enderchest/pkg/errors"
	"github.com/arthur-debert/enderchest/pkg/paths"
	"github.com/arthur-debert/enderchest/pkg/sync"
	"github.com/arthur-debert/enderchest/pkg/testutil"
)

func generate(t *testing.T, env *testutil.Env, remotes []sync.Remote, opts sync.GenerateOptions) []sync.ScriptResult {
	t.Helper()
	results, err := sync.GenerateScripts(env.FS, env.Paths, remotes, sync.NewAgent(""), opts)
	require.NoError(t, err)
	return results
}

// runScript executes a generated script through bash and returns its
// combined output and exit code.
func runScript(t *testing.T, path string, args ...string) (string, int) {
	t.Helper()
	if _, err := exec.LookPath("bash"); err != nil {
		t.Skip("bash not available")
	}
	cmd := exec.Command("bash", append([]string{path}, args...)...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		var exitErr *exec.ExitError
		require.ErrorAs(t, err, &exitErr, string(out))
	}
	return string(out), cmd.ProcessState.ExitCode()
}

func appendLine(t *testing.T, path, line string) {
	t.Helper()
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0)
	require.NoError(t, err)
	defer f.Close()
	_, err = f.WriteString(line + "\n")
	require.NoError(t, err)
}

func TestGenerateScriptsWritesExecutables(t *testing.T) {
	env := testutil.NewEnv(t)
	env.MakeChest()

	results := generate(t, env, testRemotes, sync.GenerateOptions{})
	require.Len(t, results, 2)
	assert.Equal(t, paths.OpenScriptName, results[0].Name)
	assert.Equal(t, paths.CloseScriptName, results[1].Name)

	for _, result := range results {
		assert.Equal(t, sync.ScriptWritten, result.Status)
		assert.Equal(t, env.Paths.ScriptPath(result.Name), result.Path)
		info, err := os.Stat(result.Path)
		require.NoError(t, err)
		assert.NotZero(t, info.Mode()&0111, "%s is not executable", result.Path)
	}
}

func TestGenerateScriptsRejectsInvalidRemotes(t *testing.T) {
	env := testutil.NewEnv(t)
	env.MakeChest()

	_, err := sync.GenerateScripts(env.FS, env.Paths,
		[]sync.Remote{{Host: "spare-pi"}}, sync.NewAgent(""), sync.GenerateOptions{})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrRemoteInvalid))
}

func TestGeneratedScriptsRefuseToRunUntilRead(t *testing.T) {
	env := testutil.NewEnv(t)
	env.MakeChest()
	generate(t, env, testRemotes, sync.GenerateOptions{})

	for _, name := range []string{paths.OpenScriptName, paths.CloseScriptName} {
		t.Run(name, func(t *testing.T) {
			path := env.Paths.ScriptPath(name)
			content, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Contains(t, string(content), "DELETE AFTER READING")
			assert.Contains(t, string(content), "Not Actually Remote")

			// Anything after the warning block must be unreachable.
			appendLine(t, path, `echo "I should not be reachable"`)

			out, code := runScript(t, path)
			assert.Equal(t, 1, code)
			assert.Contains(t, out, "DELETE AFTER READING")
			assert.NotContains(t, out, "I should not be reachable")
			assert.NotContains(t, out, "Could not pull changes")
			assert.NotContains(t, out, "Could not push changes")
		})
	}
}

func TestSkipLeavesExistingScriptIntact(t *testing.T) {
	env := testutil.NewEnv(t)
	env.MakeChest()

	prior := env.WriteFile("EnderChest/local-only/open", "#!/bin/sh\necho mine\n")
	results := generate(t, env, testRemotes, sync.GenerateOptions{})

	assert.Equal(t, sync.ScriptSkipped, results[0].Status)
	assert.Equal(t, sync.ScriptWritten, results[1].Status)

	content, err := os.ReadFile(prior)
	require.NoError(t, err)
	assert.Equal(t, "#!/bin/sh\necho mine\n", string(content))
}

func TestOverwriteReplacesExistingScripts(t *testing.T) {
	env := testutil.NewEnv(t)
	env.MakeChest()

	env.WriteFile("EnderChest/local-only/open", "stale open")
	env.WriteFile("EnderChest/local-only/close", "stale close")

	results := generate(t, env, testRemotes, sync.GenerateOptions{Overwrite: true})
	for _, result := range results {
		assert.Equal(t, sync.ScriptOverwritten, result.Status)
		content, err := os.ReadFile(result.Path)
		require.NoError(t, err)
		assert.NotContains(t, string(content), "stale")
		info, err := os.Stat(result.Path)
		require.NoError(t, err)
		assert.NotZero(t, info.Mode()&0111)
	}
}

func TestArmedOpenFailsWhenNothingCanBePulled(t *testing.T) {
	env := testutil.NewEnv(t)
	env.MakeChest()
	generate(t, env, nil, sync.GenerateOptions{OmitScareMessage: true})

	out, code := runScript(t, env.Paths.ScriptPath(paths.OpenScriptName))
	assert.Equal(t, 1, code)
	assert.Contains(t, out, "Could not pull changes")
}

func TestArmedCloseSucceedsWithNothingToPush(t *testing.T) {
	env := testutil.NewEnv(t)
	env.MakeChest()
	generate(t, env, nil, sync.GenerateOptions{OmitScareMessage: true})

	path := env.Paths.ScriptPath(paths.CloseScriptName)
	appendLine(t, path, `echo "and then do this"`)

	out, code := runScript(t, path)
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "and then do this")
}

func TestArmedScriptsMirrorLocalChests(t *testing.T) {
	if _, err := exec.LookPath("rsync"); err != nil {
		t.Skip("rsync not available")
	}

	local := testutil.NewEnv(t)
	local.MakeChest()
	local.AddEntry("global/mods/BME.jar@axolotl", "alfalfa")
	local.WriteFile("EnderChest/local-only/secret.txt", "stays here")

	other := testutil.NewEnv(t)
	other.MakeChest()
	other.AddEntry("global/mods/AnOkayMod.jar@bee", "beep")

	remote := sync.NewRemote("", other.Root, "", "the other chest")
	generate(t, local, []sync.Remote{remote}, sync.GenerateOptions{OmitScareMessage: true})

	// close mirrors the local chest onto the remote, deletions included,
	// while local-only stays put on both sides.
	out, code := runScript(t, local.Paths.ScriptPath(paths.CloseScriptName))
	require.Equal(t, 0, code, out)
	assert.Contains(t, out, "Pushing changes to the other chest")

	content, err := os.ReadFile(other.Paths.ChestDir() + "/global/mods/BME.jar@axolotl")
	require.NoError(t, err)
	assert.Equal(t, "alfalfa", string(content))
	_, err = os.Stat(other.Paths.ChestDir() + "/global/mods/AnOkayMod.jar@bee")
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(other.Paths.ChestDir() + "/local-only/secret.txt")
	assert.True(t, os.IsNotExist(err))

	// open restores the local chest from the remote.
	require.NoError(t, os.Remove(local.Paths.ChestDir()+"/global/mods/BME.jar@axolotl"))
	out, code = runScript(t, local.Paths.ScriptPath(paths.OpenScriptName))
	require.Equal(t, 0, code, out)
	assert.Contains(t, out, "Pulling changes from the other chest")

	content, err = os.ReadFile(local.Paths.ChestDir() + "/global/mods/BME.jar@axolotl")
	require.NoError(t, err)
	assert.Equal(t, "alfalfa", string(content))
	content, err = os.ReadFile(local.Root + "/EnderChest/local-only/secret.txt")
	require.NoError(t, err)
	assert.Equal(t, "stays here", string(content))
}
