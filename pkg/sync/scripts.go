package sync

import (
	"bytes"
	"embed"
	"os"
	"text/template"

	"github.com/arthur-debert/enderchest/pkg/errors"
	"github.com/arthur-debert/enderchest/pkg/logging"
	"github.com/arthur-debert/enderchest/pkg/paths"
	"github.com/arthur-debert/enderchest/pkg/types"
)

//go:embed templates/*.tmpl
var scriptTemplates embed.FS

// GenerateOptions controls script generation.
type GenerateOptions struct {
	// Overwrite replaces scripts that already exist. Without it an
	// existing script is left byte-for-byte untouched and reported as
	// skipped.
	Overwrite bool

	// OmitScareMessage bakes the scripts armed: they run their real
	// mirroring logic instead of printing the warning and refusing.
	OmitScareMessage bool
}

// ScriptStatus says what happened to one script name.
type ScriptStatus string

const (
	ScriptWritten     ScriptStatus = "written"
	ScriptSkipped     ScriptStatus = "skipped"
	ScriptOverwritten ScriptStatus = "overwritten"
)

// ScriptResult is the per-script outcome of a generation pass. Decisions
// are independent per script name.
type ScriptResult struct {
	Name   string
	Path   string
	Status ScriptStatus
}

// scriptData is what the templates render from.
type scriptData struct {
	Scare      bool
	LocalChest string
	Remotes    []scriptRemote
}

type scriptRemote struct {
	Alias string
	Pull  string
	Push  string
}

// GenerateScripts writes the open (pull) and close (push) scripts into
// the chest's local-only folder, marked executable. Generation performs
// no other I/O and never invokes the transfer agent; the mirroring
// happens later, out of process, when someone runs a script on purpose.
func GenerateScripts(fsys types.FS, p *paths.Paths, remotes []Remote, agent Agent, opts GenerateOptions) ([]ScriptResult, error) {
	logger := logging.GetLogger("sync.scripts")

	for _, remote := range remotes {
		if err := remote.Validate(); err != nil {
			return nil, err
		}
	}

	data := scriptData{
		Scare:      !opts.OmitScareMessage,
		LocalChest: p.ChestDir(),
	}
	for _, remote := range remotes {
		data.Remotes = append(data.Remotes, scriptRemote{
			Alias: remote.DisplayAlias(),
			Pull:  agent.CommandLine(remote.ChestFolder(), p.ChestDir()),
			Push:  agent.CommandLine(p.ChestDir(), remote.ChestFolder()),
		})
	}

	if err := fsys.MkdirAll(p.ScriptDir(), 0755); err != nil {
		return nil, errors.Wrapf(err, errors.ErrScriptWrite,
			"cannot create script folder %s", p.ScriptDir())
	}

	var results []ScriptResult
	for _, name := range []string{paths.OpenScriptName, paths.CloseScriptName} {
		result, err := generateScript(fsys, p, name, data, opts.Overwrite)
		if err != nil {
			return results, err
		}
		switch result.Status {
		case ScriptSkipped:
			logger.Warn().Str("script", name).Msg("script exists, skipping (use overwrite to replace)")
		case ScriptOverwritten:
			logger.Warn().Str("script", name).Msg("overwriting existing script")
		default:
			logger.Info().Str("script", name).Str("path", result.Path).Msg("wrote sync script")
		}
		results = append(results, result)
	}
	return results, nil
}

func generateScript(fsys types.FS, p *paths.Paths, name string, data scriptData, overwrite bool) (ScriptResult, error) {
	result := ScriptResult{Name: name, Path: p.ScriptPath(name), Status: ScriptWritten}

	if _, err := fsys.Lstat(result.Path); err == nil {
		if !overwrite {
			result.Status = ScriptSkipped
			return result, nil
		}
		result.Status = ScriptOverwritten
	} else if !os.IsNotExist(err) {
		return result, errors.Wrapf(err, errors.ErrScriptWrite, "cannot inspect %s", result.Path)
	}

	content, err := renderScript(name, data)
	if err != nil {
		return result, err
	}

	if err := fsys.WriteFile(result.Path, content, 0755); err != nil {
		return result, errors.Wrapf(err, errors.ErrScriptWrite, "cannot write %s", result.Path)
	}
	// WriteFile's mode only applies on creation; an overwritten script
	// may predate the executable bit.
	if err := fsys.Chmod(result.Path, 0755); err != nil {
		return result, errors.Wrapf(err, errors.ErrScriptWrite, "cannot mark %s executable", result.Path)
	}
	return result, nil
}

func renderScript(name string, data scriptData) ([]byte, error) {
	tmpl, err := template.ParseFS(scriptTemplates, "templates/"+name+".sh.tmpl")
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrInternal, "script template %s", name)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, errors.Wrapf(err, errors.ErrInternal, "rendering script %s", name)
	}
	return buf.Bytes(), nil
}
