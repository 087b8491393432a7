package lrsetup

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/lrsetup/internal/version"
	"github.com/arthur-debert/lrsetup/pkg/app"
	"github.com/arthur-debert/lrsetup/pkg/auth"
	"github.com/arthur-debert/lrsetup/pkg/camera"
	"github.com/arthur-debert/lrsetup/pkg/config"
	"github.com/arthur-debert/lrsetup/pkg/display"
	"github.com/arthur-debert/lrsetup/pkg/errors"
	"github.com/arthur-debert/lrsetup/pkg/logging"
	"github.com/arthur-debert/lrsetup/pkg/manifest"
	"github.com/arthur-debert/lrsetup/pkg/secrets"
	"github.com/arthur-debert/lrsetup/pkg/ui"
)

func (c *cli) newDetectCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "detect",
		Short:   MsgDetectShort,
		GroupID: "setup",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.newApp(cmd)
			if err != nil {
				return err
			}
			if a.Console.Format() == ui.FormatJSON {
				return a.Console.JSON(map[string]string{
					"container": string(a.Env.Kind),
					"root_dir":  a.Env.RootDir,
					"repo_dir":  a.RepoPath(),
				})
			}
			a.Console.Info(MsgEnvironment, a.Env.Kind)
			a.Console.Info(MsgRootDir, a.Env.RootDir)
			a.Console.Info(MsgRepoDir, a.RepoPath())
			return nil
		},
	}
}

func (c *cli) newInstallCmd() *cobra.Command {
	var skipClone, skipInstall bool

	cmd := &cobra.Command{
		Use:     "install",
		Short:   MsgInstallShort,
		GroupID: "setup",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.newApp(cmd)
			if err != nil {
				return err
			}
			in := a.Installer()
			in.SkipClone = skipClone
			in.SkipInstall = skipInstall

			report, err := in.Install(cmd.Context())
			if rerr := printSummary(a, app.InstallSummary(report, a.DryRun())); rerr != nil {
				return rerr
			}
			return err
		},
	}
	cmd.Flags().BoolVar(&skipClone, "skip-clone", false, MsgFlagSkipClone)
	cmd.Flags().BoolVar(&skipInstall, "skip-install", false, MsgFlagSkipInstall)
	return cmd
}

// printSummary writes the step overview in the console's format
func printSummary(a *app.App, summary display.Summary) error {
	if a.Console.Format() == ui.FormatJSON {
		return a.Console.JSON(summary)
	}
	a.Console.Println()
	return display.NewSummaryRenderer(a.Console.Writer()).Render(summary)
}

func (c *cli) newPatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "patch [path]",
		Short:   MsgPatchShort,
		Long:    MsgPatchLong,
		GroupID: "setup",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.newApp(cmd)
			if err != nil {
				return err
			}
			path := a.ManifestPath()
			if len(args) == 1 {
				path = args[0]
			}
			_, err = a.Patcher().Apply(path)
			return err
		},
	}
}

func (c *cli) newManifestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "manifest",
		Short:   MsgManifestShort,
		GroupID: "misc",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "show [path]",
		Short: MsgManifestShowShort,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.newApp(cmd)
			if err != nil {
				return err
			}
			path := a.ManifestPath()
			if len(args) == 1 {
				path = args[0]
			}
			data, err := a.FS.ReadFile(path)
			if err != nil {
				return fmt.Errorf(MsgErrReadManifest, path, err)
			}
			decls, err := manifest.Inspect(data)
			if err != nil {
				return err
			}
			if len(decls) == 0 {
				a.Console.Info(MsgNoDeclarations, path)
				return nil
			}

			rules := a.Config.Manifest.Rules
			if a.Console.Format() == ui.FormatJSON {
				type row struct {
					Group       string `json:"group"`
					Declaration string `json:"declaration"`
					Rewrite     string `json:"rewrite,omitempty"`
				}
				rows := make([]row, 0, len(decls))
				for _, d := range decls {
					r := row{Group: d.Group, Declaration: d.Spec}
					if rule, ok := rules.Match(d.Spec); ok {
						r.Rewrite = rule.Replacement
					}
					rows = append(rows, r)
				}
				return a.Console.JSON(rows)
			}

			rows := make([][]string, 0, len(decls))
			for _, d := range decls {
				rewrite := ""
				if rule, ok := rules.Match(d.Spec); ok {
					rewrite = rule.Replacement
				}
				rows = append(rows, []string{d.Group, d.Spec, rewrite})
			}
			return a.Console.Table([]string{"GROUP", "DECLARATION", "REWRITE"}, rows)
		},
	})
	return cmd
}

func (c *cli) newLoginCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "login [hf|wandb]",
		Short:     MsgLoginShort,
		GroupID:   "setup",
		Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{auth.ServiceHF, auth.ServiceWandb},
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.newApp(cmd)
			if err != nil {
				return err
			}
			service := ""
			if len(args) == 1 {
				service = args[0]
			}
			return a.Authenticator().Login(cmd.Context(), service)
		},
	}
}

func (c *cli) newSetupCmd() *cobra.Command {
	var opts struct {
		skipClone, skipInstall, skipLogin bool
	}

	cmd := &cobra.Command{
		Use:     "setup",
		Short:   MsgSetupShort,
		Long:    MsgSetupLong,
		GroupID: "setup",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.newApp(cmd)
			if err != nil {
				return err
			}
			a.Console.Info(MsgEnvironment, a.Env.Kind)
			a.Console.Info(MsgRootDir, a.Env.RootDir)

			report, err := a.Setup(cmd.Context(), app.SetupOptions{
				SkipClone:   opts.skipClone,
				SkipInstall: opts.skipInstall,
				SkipLogin:   opts.skipLogin,
			})
			if report != nil {
				if rerr := printSummary(a, report.Summary(a.DryRun())); rerr != nil {
					return rerr
				}
			}
			if err != nil {
				a.Console.Error(MsgSetupFailed)
				return err
			}
			a.Console.Success(MsgSetupComplete)
			return nil
		},
	}
	cmd.Flags().BoolVar(&opts.skipClone, "skip-clone", false, MsgFlagSkipClone)
	cmd.Flags().BoolVar(&opts.skipInstall, "skip-install", false, MsgFlagSkipInstall)
	cmd.Flags().BoolVar(&opts.skipLogin, "skip-login", false, MsgFlagSkipLogin)
	return cmd
}

func (c *cli) newCamerasCmd() *cobra.Command {
	var top, wrist string

	cmd := &cobra.Command{
		Use:     "cameras",
		Short:   MsgCamerasShort,
		GroupID: "hardware",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.newApp(cmd)
			if err != nil {
				return err
			}
			if top == "" {
				top = a.Config.Camera.TopKeyword
			}
			if wrist == "" {
				wrist = a.Config.Camera.WristKeyword
			}

			mapping, err := a.CameraScanner().Scan(cmd.Context())
			if err != nil {
				return err
			}
			topIdx, wristIdx, idxErr := camera.LeRobotIndices(mapping, top, wrist)

			if a.Console.Format() == ui.FormatJSON {
				out := map[string]interface{}{"devices": mapping.Map()}
				if topIdx >= 0 {
					out["top"] = topIdx
				}
				if wristIdx >= 0 {
					out["wrist"] = wristIdx
				}
				if err := a.Console.JSON(out); err != nil {
					return err
				}
				return idxErr
			}

			if len(mapping) == 0 {
				a.Console.Warn(MsgNoCameras)
			} else {
				rows := make([][]string, 0, len(mapping))
				for _, d := range mapping {
					rows = append(rows, []string{d.Name, strconv.Itoa(d.Index)})
				}
				if err := a.Console.Table([]string{"DEVICE", "INDEX"}, rows); err != nil {
					return err
				}
			}
			if topIdx >= 0 {
				a.Console.Success(MsgTopCamera, topIdx)
			}
			if wristIdx >= 0 {
				a.Console.Success(MsgWristCamera, wristIdx)
			}
			return idxErr
		},
	}
	cmd.Flags().StringVar(&top, "top", "", MsgFlagTop)
	cmd.Flags().StringVar(&wrist, "wrist", "", MsgFlagWrist)
	return cmd
}

func (c *cli) newPortsCmd() *cobra.Command {
	var probe bool

	cmd := &cobra.Command{
		Use:     "ports",
		Short:   MsgPortsShort,
		GroupID: "hardware",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.newApp(cmd)
			if err != nil {
				return err
			}
			lister := a.SerialPorts()
			if !probe {
				lister.Probe = nil
			}
			ports, err := lister.ListAndProbe(cmd.Context())
			if err != nil {
				return err
			}
			if a.Console.Format() == ui.FormatJSON {
				return a.Console.JSON(ports)
			}
			if len(ports) == 0 {
				a.Console.Warn(MsgNoPorts)
				return nil
			}

			rows := make([][]string, 0, len(ports))
			for _, p := range ports {
				usb := ""
				if p.IsUSB {
					usb = p.VID + ":" + p.PID
				}
				servos := ""
				if len(p.ServoIDs) > 0 {
					ids := make([]string, 0, len(p.ServoIDs))
					for _, id := range p.ServoIDs {
						ids = append(ids, strconv.Itoa(id))
					}
					servos = strings.Join(ids, ",")
				}
				rows = append(rows, []string{p.Name, usb, p.Product, servos})
			}
			if err := a.Console.Table([]string{"PORT", "USB", "PRODUCT", "SERVOS"}, rows); err != nil {
				return err
			}
			for _, p := range ports {
				if p.IsSOArm() {
					a.Console.Success(MsgArmFound, p.Name)
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&probe, "probe", false, MsgFlagProbe)
	return cmd
}

func (c *cli) newShellCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "cmd <title> <command> [args...]",
		Short:   MsgCmdShort,
		GroupID: "misc",
		Args:    cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := ui.ParseFormat(c.format)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			return display.PrintShellMarkdown(out, display.NewRenderer(format, out), args[0], args[1], args[2:]...)
		},
	}
}

func (c *cli) newEnvCmd() *cobra.Command {
	var withSecrets, reveal bool

	cmd := &cobra.Command{
		Use:     "env",
		Short:   MsgEnvShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.newApp(cmd)
			if err != nil {
				return err
			}
			logger := logging.GetLogger("cmd.env")
			var masked []string
			if withSecrets {
				for _, key := range []string{auth.EnvHFToken, auth.EnvWandbAPIKey} {
					value, err := secrets.Require(cmd.Context(), a.Secrets, key)
					if err != nil {
						logger.Warn().Err(err).Str("key", key).Msg("Secret not exported")
						continue
					}
					a.Session.Set(key, value)
					if !reveal {
						masked = append(masked, key)
					}
				}
				a.Session.Set(auth.EnvWandbNotebookName, a.Config.Auth.NotebookName)
			}
			if a.Console.Format() == ui.FormatJSON {
				env := a.Session.Env()
				for _, k := range masked {
					env[k] = "***"
				}
				return a.Console.JSON(env)
			}
			for _, line := range a.Session.Exports(masked...) {
				a.Console.Println(line)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&withSecrets, "with-secrets", false, MsgFlagWithSecrets)
	cmd.Flags().BoolVar(&reveal, "reveal", false, MsgFlagReveal)
	return cmd
}

func (c *cli) newConfigCmd() *cobra.Command {
	var defaults bool

	cmd := &cobra.Command{
		Use:     "config",
		Short:   MsgConfigShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if defaults {
				_, err := fmt.Fprint(cmd.OutOrStdout(), config.DefaultsContent())
				return err
			}
			a, err := c.newApp(cmd)
			if err != nil {
				return err
			}
			if a.Console.Format() == ui.FormatJSON {
				return a.Console.JSON(a.Config)
			}
			data, err := a.Config.Marshal()
			if err != nil {
				return errors.Wrap(err, errors.ErrInternal, "failed to render configuration")
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	cmd.Flags().BoolVar(&defaults, "defaults", false, MsgFlagDefaults)
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "lrsetup version %s\n", version.Version)
			_, _ = fmt.Fprintf(out, "  commit: %s\n", version.Commit)
			_, _ = fmt.Fprintf(out, "  built:  %s\n", version.Date)
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		GroupID:               "misc",
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(out)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			default:
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
		},
	}
}
