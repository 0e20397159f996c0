package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/dshills/hotkeys/internal/input/fuzzy"
	"github.com/dshills/hotkeys/internal/input/key"
	"github.com/dshills/hotkeys/internal/input/keymap"
)

const (
	ansiBold  = "\x1b[1m"
	ansiReset = "\x1b[0m"
)

type listOptions struct {
	filter    string
	limit     int
	noDefault bool
	highlight bool
}

func newListCommand() *cobra.Command {
	var opts listOptions

	cmd := &cobra.Command{
		Use:   "list [keymap-file|dir]...",
		Short: "List bindings, optionally fuzzy-filtered",
		Long: `List prints the built-in bindings and those of the given keymap files,
grouped by category. A directory argument loads every keymap file in it.
With --filter the bindings are ranked by how well their keys, action and
description match the query.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd.OutOrStdout(), args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.filter, "filter", "f", "", "fuzzy query over keys, action and description")
	cmd.Flags().IntVarP(&opts.limit, "limit", "n", 0, "show at most this many matches (0 for all)")
	cmd.Flags().BoolVar(&opts.noDefault, "no-default", false, "leave out the built-in keymap")
	cmd.Flags().BoolVar(&opts.highlight, "highlight", false, "embolden matched characters")
	return cmd
}

func runList(out io.Writer, paths []string, opts listOptions) error {
	var decls []keymap.Declaration
	if !opts.noDefault {
		decls = append(decls, keymap.DefaultKeymap().Bindings...)
	}

	loader := keymap.NewLoader()
	var keymaps []*keymap.Keymap
	for _, path := range paths {
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			loader.AddSearchPath(path)
			continue
		}
		km, err := loader.LoadFile(path)
		if err != nil {
			return err
		}
		keymaps = append(keymaps, km)
	}
	found, err := loader.LoadAll()
	if err != nil {
		return err
	}
	for _, km := range append(keymaps, found...) {
		for _, d := range km.Bindings {
			d.Scopes = km.ScopesFor(d)
			decls = append(decls, d)
		}
	}

	if opts.filter == "" {
		for _, cat := range keymap.GroupByCategory(decls) {
			fmt.Fprintf(out, "%s\n", cat.Name)
			for _, d := range cat.Bindings {
				fmt.Fprintf(out, "  %-20s %s\n", key.NormalizeSpec(d.Keys), describe(d))
			}
		}
		return nil
	}

	results := fuzzy.Match(opts.filter, decls, opts.limit)
	for _, r := range results {
		text := r.Text
		if opts.highlight {
			text = fuzzy.Highlight(text, r.Matches, ansiBold, ansiReset)
		}
		fmt.Fprintf(out, "%4d  %s\n", r.Score, text)
	}
	if len(results) == 0 {
		fmt.Fprintf(out, "no bindings match %q\n", opts.filter)
	}
	return nil
}

func describe(d keymap.Declaration) string {
	if d.Description != "" {
		return d.Description
	}
	return d.Action
}
