// Package cli provides the cobra commands of the hotkeys binary.
package cli

import (
	"github.com/spf13/cobra"
)

// BuildInfo identifies the binary; main sets it from ldflags.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand builds the hotkeys command tree.
func NewRootCommand(info BuildInfo) *cobra.Command {
	root := &cobra.Command{
		Use:   "hotkeys",
		Short: "Scoped keyboard shortcut engine with a terminal demo",
		Long: `hotkeys matches key combinations against the keys currently held down
and fires the bindings whose scopes are active.

Use 'hotkeys run' to try keymaps interactively in the terminal, 'hotkeys check'
to validate keymap files and 'hotkeys list' to browse bindings.`,
		SilenceUsage: true,
	}

	root.PersistentFlags().StringP("config", "c", "", "settings file (default: ./hotkeys.toml or $XDG_CONFIG_HOME/hotkeys/hotkeys.toml)")

	root.AddCommand(
		newRunCommand(),
		newCheckCommand(),
		newListCommand(),
		newVersionCommand(info),
	)
	return root
}
