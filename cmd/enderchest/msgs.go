package enderchest

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort   = "Keep one chest of files linked into many installations"
	MsgCraftShort  = "Create a new chest under the root"
	MsgPlaceShort  = "Reconcile every instance's links against the chest"
	MsgLinkShort   = "Generate the open/close sync scripts"
	MsgListShort   = "List chest entries and where they place"
	MsgTopicsShort = "Display available documentation topics"

	// Status messages
	MsgDryRunNotice   = "\nDRY RUN MODE - No changes were made"
	MsgNothingToDo    = "Everything already in place."
	MsgChestCrafted   = "Crafted a new chest at %s\n"
	MsgScriptWritten  = "Wrote %s\n"
	MsgScriptSkipped  = "%s already exists, skipping (re-run with --overwrite to replace)"
	MsgScriptOverwrit = "Overwriting %s"
	MsgScriptsGated   = "The generated scripts refuse to run until you review them and remove the warning block."
	MsgNoRemotes      = "No remotes configured; the scripts will have nothing to sync with."
	MsgNoInstances    = "No instances in the inventory; nothing to place into."
)

// Long messages
const (
	MsgRootLong = `enderchest keeps a shared pool of files (the chest) distributed, as
symbolic links, into any number of independent installations, and keeps
chests on different machines mirrored through generated sync scripts.

Resources address their destinations through their file names: config.ini@axolotl@bee
places config.ini into the instances tagged axolotl and bee.`

	MsgLinkLong = `Writes two executable scripts into the chest's local-only folder:

  open   pulls the first reachable remote chest into this one
  close  pushes this chest onto every remote

Both mirror with deletions and never touch local-only or VCS metadata.
Freshly generated scripts only print a warning and refuse to act until
you review them; see the topics command for why.`
)
