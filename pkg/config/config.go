// Package config loads enderchest's machine-local configuration: the
// transfer agent, placement policy, sync remotes, and the instance
// inventory. Both files live under the chest's local-only folder, so
// they never cross a sync boundary.
package config

import (
	_ "embed"
	errs "errors"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/arthur-debert/enderchest/pkg/errors"
	"github.com/arthur-debert/enderchest/pkg/paths"
	"github.com/arthur-debert/enderchest/pkg/sync"
)

//go:embed embedded/defaults.toml
var defaultConfig []byte

// EnvPrefix is the prefix for environment overrides, e.g.
// ENDERCHEST_AGENT or ENDERCHEST_PLACE_BROADCAST.
const EnvPrefix = "ENDERCHEST_"

// Config is the merged machine-local configuration.
type Config struct {
	// Agent is the transfer tool invoked by generated sync scripts.
	Agent string `koanf:"agent" toml:"agent"`

	Place PlaceConfig `koanf:"place" toml:"place"`

	// Remotes are the sync endpoints, in the order the open script
	// should try them.
	Remotes []RemoteConfig `koanf:"remotes" toml:"remotes,omitempty"`
}

// PlaceConfig holds placement policy switches.
type PlaceConfig struct {
	// Broadcast makes untagged entries apply to every eligible
	// instance instead of none. See the place package for why this is
	// off by default.
	Broadcast bool `koanf:"broadcast" toml:"broadcast"`
}

// RemoteConfig is one [[remotes]] table.
type RemoteConfig struct {
	Host  string `koanf:"host" toml:"host"`
	Root  string `koanf:"root" toml:"root"`
	User  string `koanf:"user" toml:"user"`
	Alias string `koanf:"alias" toml:"alias"`
}

// rawBytesProvider feeds embedded bytes to koanf.
type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, errs.New("not implemented")
}

// Load merges, in order: embedded defaults, the chest's enderchest.toml
// if present, and ENDERCHEST_* environment variables.
func Load(p *paths.Paths) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load defaults")
	}

	configPath := p.ConfigPath()
	if _, err := os.Stat(configPath); err == nil {
		if err := k.Load(file.Provider(configPath), toml.Parser()); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigParse,
				"failed to parse %s", configPath)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "_", ".")
	}), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment overrides")
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "invalid configuration")
	}
	return &cfg, nil
}

// RemoteList converts the configured remote tables into sync descriptors,
// validating each one.
func (c *Config) RemoteList() ([]sync.Remote, error) {
	var remotes []sync.Remote
	for _, rc := range c.Remotes {
		remote := sync.NewRemote(rc.Host, rc.Root, rc.User, rc.Alias)
		if err := remote.Validate(); err != nil {
			return nil, err
		}
		remotes = append(remotes, remote)
	}
	return remotes, nil
}
