package sync

import (
	"strings"

	"github.com/arthur-debert/enderchest/pkg/paths"
	"github.com/arthur-debert/enderchest/pkg/types"
)

// DefaultAgent is the transfer tool used when none is configured.
const DefaultAgent = "rsync"

// Agent describes the external mirroring tool the generated scripts
// invoke. The core only formats its command line; running it, and its
// retry and timeout behavior, belong to the script's caller. Exit status
// is the whole contract.
type Agent struct {
	Command string
}

// NewAgent returns an Agent for the given command, defaulting to rsync.
func NewAgent(command string) Agent {
	if command == "" {
		command = DefaultAgent
	}
	return Agent{Command: command}
}

// MirrorArgs returns the arguments for one delete-mirroring transfer
// from src to dst: archive mode (symlinks stay links, never
// dereferenced), compression, deletion of anything absent on the source
// side, and exclusion of VCS metadata and the machine-local area in both
// directions. Trailing slashes make the agent mirror directory contents.
func (a Agent) MirrorArgs(src, dst string) []string {
	return []string{
		"-az",
		"--delete",
		"--exclude=" + paths.VCSDirName,
		"--exclude=" + string(types.CategoryLocalOnly),
		src + "/",
		dst + "/",
	}
}

// CommandLine renders the full invocation baked into a generated script.
// $sync_flags is left unquoted on purpose: the script expands it to the
// verbose / dry-run passthrough flags collected from its own arguments.
func (a Agent) CommandLine(src, dst string) string {
	args := a.MirrorArgs(src, dst)
	endpoints := args[len(args)-2:]
	flags := args[:len(args)-2]

	parts := []string{a.Command}
	parts = append(parts, flags...)
	parts = append(parts, "$sync_flags", shellQuote(endpoints[0]), shellQuote(endpoints[1]))
	return strings.Join(parts, " ")
}

// shellQuote wraps s in single quotes, escaping embedded single quotes,
// so baked paths survive word splitting.
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
