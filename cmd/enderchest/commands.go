package enderchest

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/enderchest/pkg/chest"
	"github.com/arthur-debert/enderchest/pkg/config"
	"github.com/arthur-debert/enderchest/pkg/filesystem"
	"github.com/arthur-debert/enderchest/pkg/paths"
	"github.com/arthur-debert/enderchest/pkg/place"
	syncpkg "github.com/arthur-debert/enderchest/pkg/sync"
	"github.com/arthur-debert/enderchest/pkg/types"
	"github.com/arthur-debert/enderchest/pkg/ui"
	"github.com/arthur-debert/enderchest/pkg/ui/styles"
)

func newCraftCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "craft",
		Short: MsgCraftShort,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := paths.New(rootDir)
			if err != nil {
				return err
			}
			if err := chest.Craft(filesystem.NewOS(), p); err != nil {
				return err
			}
			fmt.Printf(MsgChestCrafted, p.ChestDir())
			return nil
		},
	}
}

func newPlaceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "place",
		Short: MsgPlaceShort,
		RunE: func(cmd *cobra.Command, args []string) error {
			fsys := filesystem.NewOS()
			p, err := paths.New(rootDir)
			if err != nil {
				return err
			}
			cfg, err := config.Load(p)
			if err != nil {
				return err
			}
			instances, err := config.LoadInventory(fsys, p)
			if err != nil {
				return err
			}
			if len(instances) == 0 {
				warn(MsgNoInstances)
			}

			policy := place.Policy{UntaggedBroadcast: cfg.Place.Broadcast}
			result, err := place.Run(fsys, p, instances, policy, dryRun)
			if err != nil {
				return err
			}
			renderPlaceResult(result)
			if dryRun {
				fmt.Println(MsgDryRunNotice)
			}
			return nil
		},
	}
}

func renderPlaceResult(result *place.Result) {
	for _, err := range result.Malformed {
		warn("%v", err)
	}
	for _, conflict := range result.Conflicts {
		warn("placement conflict in %s at %s: %s wins over %s",
			conflict.Instance, conflict.RelPath, conflict.Winner, conflict.Loser)
	}

	changed := false
	for _, report := range result.Reports {
		if report.Changed() || len(report.Failures()) > 0 {
			changed = true
		}
		fmt.Printf("%s: %d created, %d replaced, %d removed, %d unchanged\n",
			report.Instance,
			report.Count(types.StatusCreated),
			report.Count(types.StatusReplaced),
			report.Count(types.StatusRemoved),
			report.Count(types.StatusUnchanged))
		for _, failure := range report.Failures() {
			warn("  %s: %v", failure.Path, failure.Err)
		}
	}
	if !changed {
		fmt.Println(MsgNothingToDo)
	}
}

func newLinkCmd() *cobra.Command {
	var overwrite bool
	var omitScare bool

	cmd := &cobra.Command{
		Use:   "link",
		Short: MsgLinkShort,
		Long:  MsgLinkLong,
		RunE: func(cmd *cobra.Command, args []string) error {
			fsys := filesystem.NewOS()
			p, err := paths.New(rootDir)
			if err != nil {
				return err
			}
			cfg, err := config.Load(p)
			if err != nil {
				return err
			}
			remotes, err := cfg.RemoteList()
			if err != nil {
				return err
			}
			if len(remotes) == 0 {
				warn(MsgNoRemotes)
			}

			results, err := syncpkg.GenerateScripts(fsys, p, remotes, syncpkg.NewAgent(cfg.Agent), syncpkg.GenerateOptions{
				Overwrite:        overwrite,
				OmitScareMessage: omitScare,
			})
			if err != nil {
				return err
			}

			for _, result := range results {
				switch result.Status {
				case syncpkg.ScriptSkipped:
					warn(MsgScriptSkipped, result.Name)
				case syncpkg.ScriptOverwritten:
					warn(MsgScriptOverwrit, result.Name)
					fmt.Printf(MsgScriptWritten, result.Path)
				default:
					fmt.Printf(MsgScriptWritten, result.Path)
				}
			}
			if !omitScare {
				fmt.Println(MsgScriptsGated)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Replace existing scripts")
	cmd.Flags().BoolVar(&omitScare, "omit-scare-message", false, "Generate armed scripts that actually sync")
	return cmd
}

func newListCmd() *cobra.Command {
	var formatFlag string

	cmd := &cobra.Command{
		Use:   "list",
		Short: MsgListShort,
		RunE: func(cmd *cobra.Command, args []string) error {
			fsys := filesystem.NewOS()
			p, err := paths.New(rootDir)
			if err != nil {
				return err
			}
			format, err := ui.ParseFormat(formatFlag)
			if err != nil {
				return err
			}

			scan, err := chest.Scan(fsys, p)
			if err != nil {
				return err
			}
			for _, parseErr := range scan.Malformed {
				warn("%v", parseErr)
			}
			renderEntries(scan.Entries, format.Resolve(os.Stdout))
			return nil
		},
	}

	cmd.Flags().StringVar(&formatFlag, "format", "auto", "Output format: auto, term, or text")
	return cmd
}

func renderEntries(entries []types.Entry, format ui.Format) {
	styled := format == ui.FormatTerminal
	render := func(style, s string) string {
		if !styled {
			return s
		}
		return styles.GetStyle(style).Render(s)
	}

	var current types.Category
	for _, entry := range entries {
		if entry.Category != current {
			current = entry.Category
			fmt.Println(render("Category", string(current)))
		}
		tags := "(untagged)"
		if len(entry.Tags) > 0 {
			tags = ""
			for i, tag := range entry.Tags {
				if i > 0 {
					tags += " "
				}
				tags += render("Tag", "@"+tag)
			}
		}
		fmt.Printf("  %s  %s\n", render("Path", entry.RelPath), tags)
	}
	if len(entries) == 0 {
		fmt.Println(render("Muted", "The chest is empty."))
	}
}
