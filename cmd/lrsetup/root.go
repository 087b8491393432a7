// Package lrsetup implements the lrsetup command line interface.
package lrsetup

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/lrsetup/internal/version"
	"github.com/arthur-debert/lrsetup/pkg/app"
	"github.com/arthur-debert/lrsetup/pkg/logging"
	"github.com/arthur-debert/lrsetup/pkg/ui"
)

// AppFactory builds the App a command works with
type AppFactory func(ctx context.Context, opts app.Options) (*app.App, error)

// cli carries the global flags shared by every command
type cli struct {
	verbosity  int
	dryRun     bool
	root       string
	configFile string
	format     string

	factory AppFactory
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	return newRootCmd(app.New)
}

func newRootCmd(factory AppFactory) *cobra.Command {
	initTemplateFormatting()

	c := &cli{factory: factory}

	rootCmd := &cobra.Command{
		Use:     "lrsetup",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(c.verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return fmt.Errorf("no command specified")
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	rootCmd.PersistentFlags().CountVarP(&c.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().BoolVar(&c.dryRun, "dry-run", false, MsgFlagDryRun)
	rootCmd.PersistentFlags().StringVar(&c.root, "root", "", MsgFlagRoot)
	rootCmd.PersistentFlags().StringVar(&c.configFile, "config", "", MsgFlagConfig)
	rootCmd.PersistentFlags().StringVar(&c.format, "format", "auto", MsgFlagFormat)

	rootCmd.AddGroup(&cobra.Group{ID: "setup", Title: "SETUP:"})
	rootCmd.AddGroup(&cobra.Group{ID: "hardware", Title: "HARDWARE:"})
	rootCmd.AddGroup(&cobra.Group{ID: "misc", Title: "MISC:"})
	rootCmd.SetUsageTemplate(usageTemplate)

	rootCmd.AddCommand(c.newDetectCmd())
	rootCmd.AddCommand(c.newInstallCmd())
	rootCmd.AddCommand(c.newPatchCmd())
	rootCmd.AddCommand(c.newManifestCmd())
	rootCmd.AddCommand(c.newLoginCmd())
	rootCmd.AddCommand(c.newSetupCmd())
	rootCmd.AddCommand(c.newCamerasCmd())
	rootCmd.AddCommand(c.newPortsCmd())
	rootCmd.AddCommand(c.newShellCmd())
	rootCmd.AddCommand(c.newEnvCmd())
	rootCmd.AddCommand(c.newConfigCmd())
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())

	return rootCmd
}

// newApp builds the App for cmd from the global flags
func (c *cli) newApp(cmd *cobra.Command) (*app.App, error) {
	format, err := ui.ParseFormat(c.format)
	if err != nil {
		return nil, err
	}
	a, err := c.factory(cmd.Context(), app.Options{
		RootOverride: c.root,
		ConfigFile:   c.configFile,
		DryRun:       c.dryRun,
		Format:       format,
		Out:          cmd.OutOrStdout(),
		Err:          cmd.ErrOrStderr(),
	})
	if err != nil {
		return nil, err
	}
	if c.dryRun && a.Console.Format() != ui.FormatJSON {
		a.Console.Warn(MsgDryRunNotice)
	}
	return a, nil
}
