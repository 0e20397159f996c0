package cli

import (
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dshills/hotkeys/internal/app"
	"github.com/dshills/hotkeys/internal/logging"
)

func newRunCommand() *cobra.Command {
	var (
		noDefault bool
		logFile   string
	)

	cmd := &cobra.Command{
		Use:   "run [keymap-file]...",
		Short: "Run the interactive terminal demo",
		Long: `Run takes over the terminal and shows which bindings fire as you type.

Keymap files given as arguments are loaded after the built-in keymap and the
files listed in the settings. Logs go to --log-file or log.file; without
either they are discarded so they do not corrupt the screen.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, err := cmd.Flags().GetString("config")
			if err != nil {
				return err
			}

			opts := app.Options{
				ConfigPath:        configPath,
				KeymapFiles:       args,
				NoDefaultKeymap:   noDefault,
				FallbackLogOutput: io.Discard,
			}
			if logFile != "" {
				f, err := logging.OpenFile(logFile)
				if err != nil {
					return err
				}
				defer f.Close()
				opts.LogOutput = f
			}

			application, err := app.New(opts)
			if err != nil {
				return err
			}
			defer application.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return application.Run(ctx)
		},
	}

	cmd.Flags().BoolVar(&noDefault, "no-default", false, "skip the built-in keymap")
	cmd.Flags().StringVar(&logFile, "log-file", "", "append logs to this file")
	return cmd
}
