package main

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/spf13/cobra"

	"github.com/randalmurphal/gitane/config"
)

func newConfigCmd(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change gitane configuration",
		Long: `Configuration is read from, lowest priority first:
  - built-in defaults
  - ~/.config/gitane/config.yaml
  - .gitane.yaml in the enclosing git repository
  - GITANE_* environment variables
  - command-line flags`,
	}

	cmd.AddCommand(newConfigGetCmd(flags), newConfigSetCmd(), newConfigUnsetCmd())

	return cmd
}

func newConfigGetCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "get [key]",
		Short: "Print resolved configuration values and where they came from",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _ := resolveConfig(cmd, flags)

			if len(args) == 1 {
				if !isKey(args[0]) {
					return fmt.Errorf("unknown config key: %s", args[0])
				}
				fmt.Fprintln(cmd.OutOrStdout(), cfg.Get(args[0]))
				return nil
			}

			table := newTable(cmd.OutOrStdout(), "Key", "Value", "Source")
			for _, key := range cfg.Keys() {
				if err := table.Append([]string{key, cfg.Get(key), string(cfg.Source(key))}); err != nil {
					return err
				}
			}
			return table.Render()
		},
	}
}

func newConfigSetCmd() *cobra.Command {
	var local bool

	cmd := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Save a configuration value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			sc := config.DefaultSaveConfig()
			if local {
				resolver := config.NewResolver(config.DefaultResolverConfig())
				return sc.SaveLocal(resolver.GitRoot(), args[0], args[1])
			}
			return sc.SaveGlobal(args[0], args[1])
		},
	}

	cmd.Flags().BoolVar(&local, "local", false, "write to .gitane.yaml in the current repository")

	return cmd
}

func newConfigUnsetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unset <key>",
		Short: "Remove a value from the global configuration",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return config.DefaultSaveConfig().DeleteGlobalKey(args[0])
		},
	}
}

func isKey(key string) bool {
	for _, k := range config.Keys {
		if k == key {
			return true
		}
	}
	return false
}

// newTable creates a left-aligned markdown-style table.
func newTable(w io.Writer, headers ...string) *tablewriter.Table {
	cfg := tablewriter.Config{
		Header: tw.CellConfig{
			Alignment:  tw.CellAlignment{Global: tw.AlignLeft},
			Formatting: tw.CellFormatting{AutoFormat: tw.Off},
		},
		Row: tw.CellConfig{
			Alignment: tw.CellAlignment{Global: tw.AlignLeft},
		},
	}
	return tablewriter.NewTable(w,
		tablewriter.WithConfig(cfg),
		tablewriter.WithHeader(headers),
		tablewriter.WithRenderer(renderer.NewBlueprint()),
		tablewriter.WithRendition(tw.Rendition{
			Symbols: tw.NewSymbols(tw.StyleMarkdown),
			Borders: tw.Border{
				Left:   tw.On,
				Top:    tw.Off,
				Right:  tw.On,
				Bottom: tw.Off,
			},
		}),
		tablewriter.WithRowAutoWrap(tw.WrapNone),
	)
}
