package config

import (
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/arthur-debert/enderchest/pkg/errors"
)

// starterHeader tops the generated enderchest.toml.
const starterHeader = `# enderchest machine-local configuration.
# This file lives under local-only and never syncs to other machines.
#
# Uncomment a [[remotes]] table per machine this chest should sync with:
#
# [[remotes]]
# host = "spare-pi"
# root = "/opt/minecraft"
# user = "pi"
# alias = ""

`

// starterInventory is the generated instances.yml.
const starterInventory = `# Instances this chest places links into. Roots may be relative to the
# chest's parent directory. Kind is "client" or "server".
#
# instances:
#   - name: axolotl
#     root: instances/axolotl/.minecraft
#     kind: client
instances: []
`

// GenerateConfigContent renders the starter enderchest.toml: the current
// defaults spelled out, under a commented remotes example.
func GenerateConfigContent() (string, error) {
	defaults := Config{Agent: "rsync"}
	body, err := toml.Marshal(defaults)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrInternal, "cannot render starter config")
	}
	// go-toml serializes the empty remotes slice away, which is what we
	// want: the example stays in the header comment.
	return starterHeader + strings.TrimLeft(string(body), "\n"), nil
}

// GenerateInventoryContent renders the starter instances.yml.
func GenerateInventoryContent() string {
	return starterInventory
}
