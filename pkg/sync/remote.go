package sync

import (
	"strings"

	"github.com/arthur-debert/enderchest/pkg/errors"
	"github.com/arthur-debert/enderchest/pkg/paths"
)

// Remote identifies one sync endpoint: another machine's chest root, or a
// second root on this machine. Immutable value; equality is plain
// field equality and the canonical string form round-trips through
// ParseRemote.
type Remote struct {
	// Host is the machine's address. Empty means the same machine.
	Host string

	// Root is the chest's parent directory on that machine.
	Root string

	// User is the account to connect as, when the transport needs one.
	User string

	// Alias is an optional display name. When empty, DisplayAlias falls
	// back to the host, then to the root.
	Alias string
}

// NewRemote constructs a Remote.
func NewRemote(host, root, user, alias string) Remote {
	return Remote{Host: host, Root: root, User: user, Alias: alias}
}

// Validate reports whether the remote is usable.
func (r Remote) Validate() error {
	if r.Root == "" {
		return errors.New(errors.ErrRemoteInvalid, "remote has no root path")
	}
	if r.Host == "" && r.User != "" {
		return errors.Newf(errors.ErrRemoteInvalid,
			"remote %s has a user but no host", r.Root)
	}
	return nil
}

// DisplayAlias returns the name the remote goes by in output.
func (r Remote) DisplayAlias() string {
	if r.Alias != "" {
		return r.Alias
	}
	if r.Host != "" {
		return r.Host
	}
	return r.Root
}

// RemoteFolder formats the endpoint's root the way the transfer agent
// expects an address: user@host:path, host:path, or a bare path for the
// same machine.
func (r Remote) RemoteFolder() string {
	switch {
	case r.Host != "" && r.User != "":
		return r.User + "@" + r.Host + ":" + r.Root
	case r.Host != "":
		return r.Host + ":" + r.Root
	default:
		return r.Root
	}
}

// ChestFolder returns the address of the chest directory itself under the
// remote's root. Remote paths always use forward slashes.
func (r Remote) ChestFolder() string {
	return r.RemoteFolder() + "/" + paths.ChestDirName
}

// String returns the canonical form: the agent address, with the alias
// appended in parentheses when one was set explicitly.
func (r Remote) String() string {
	if r.Alias == "" {
		return r.RemoteFolder()
	}
	return r.RemoteFolder() + " (" + r.Alias + ")"
}

// ParseRemote is the inverse of String: for any remote r,
// ParseRemote(r.String()) yields a value equal to r.
//
// The address grammar follows the transfer agent's: a colon appearing
// before the first slash separates a host from the path; an @ before
// that colon separates the user from the host. Anything else is a local
// path.
func ParseRemote(s string) (Remote, error) {
	s = strings.TrimSpace(s)

	alias := ""
	if strings.HasSuffix(s, ")") {
		if i := strings.LastIndex(s, " ("); i >= 0 {
			alias = s[i+2 : len(s)-1]
			s = s[:i]
		}
	}
	if s == "" {
		return Remote{}, errors.New(errors.ErrRemoteInvalid, "empty remote address")
	}

	colon := strings.Index(s, ":")
	slash := strings.Index(s, "/")
	if colon < 0 || (slash >= 0 && slash < colon) {
		return Remote{Root: s, Alias: alias}, nil
	}

	hostPart, root := s[:colon], s[colon+1:]
	if root == "" {
		return Remote{}, errors.Newf(errors.ErrRemoteInvalid, "remote %q has no path", s)
	}
	user := ""
	if at := strings.Index(hostPart, "@"); at >= 0 {
		user, hostPart = hostPart[:at], hostPart[at+1:]
	}
	if hostPart == "" {
		return Remote{}, errors.Newf(errors.ErrRemoteInvalid, "remote %q has no host", s)
	}
	return Remote{Host: hostPart, Root: root, User: user, Alias: alias}, nil
}
