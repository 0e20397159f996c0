package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dshills/hotkeys/internal/action"
	"github.com/dshills/hotkeys/internal/app"
	"github.com/dshills/hotkeys/internal/input/key"
	"github.com/dshills/hotkeys/internal/input/keymap"
)

// ErrCheckFailed is returned by check when a file fails to load, or has
// warnings under --strict.
var ErrCheckFailed = errors.New("keymap check failed")

func newCheckCommand() *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "check <keymap-file>...",
		Short: "Validate keymap files",
		Long: `Check loads each keymap file, prints every binding with its canonical
hotkeys and reports problems: bindings that can never fire, bindings that
match any key state and actions that do not exist.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd.OutOrStdout(), args, strict)
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "treat warnings as errors")
	return cmd
}

func runCheck(out io.Writer, paths []string, strict bool) error {
	known := knownActions()
	loader := keymap.NewLoader()

	var failed, warnings, bindings int
	for _, path := range paths {
		km, err := loader.LoadFile(path)
		if err != nil {
			fmt.Fprintf(out, "%s: error: %v\n", path, err)
			failed++
			continue
		}

		fmt.Fprintf(out, "%s: keymap %q, %d bindings\n", path, km.Name, len(km.Bindings))
		for _, d := range km.Bindings {
			fmt.Fprintf(out, "  %-24s %-22s %s\n", key.NormalizeSpec(d.Keys), scopeLabel(km.ScopesFor(d), d.Element), d.Action)
		}
		bindings += len(km.Bindings)

		problems := km.Validate()
		for i, d := range km.Bindings {
			if d.Action != "" && !known.Has(d.Action) {
				problems = append(problems, fmt.Errorf("binding %d (%s): %w: %q", i, d.Keys, action.ErrUnknownAction, d.Action))
			}
		}
		for _, p := range problems {
			fmt.Fprintf(out, "  warning: %v\n", p)
		}
		warnings += len(problems)
	}

	fmt.Fprintf(out, "%d files, %d bindings, %d warnings, %d errors\n", len(paths), bindings, warnings, failed)
	if failed > 0 || (strict && warnings > 0) {
		return ErrCheckFailed
	}
	return nil
}

// knownActions returns a registry holding every action a running
// application provides. It is only queried, never built from.
func knownActions() *action.Registry {
	r := action.NewRegistry()
	action.RegisterBuiltins(r, action.Env{Quit: func() {}})
	r.RegisterFunc(app.ActionFocus, func() {})
	return r
}

func scopeLabel(scopes []string, element string) string {
	label := "[" + strings.Join(scopes, " ") + "]"
	if element != "" {
		label += " @" + element
	}
	return label
}
