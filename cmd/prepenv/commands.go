package prepenv

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/fanimeengine/prepenv/internal/version"
	"github.com/fanimeengine/prepenv/pkg/config"
	"github.com/fanimeengine/prepenv/pkg/errors"
	"github.com/fanimeengine/prepenv/pkg/filesystem"
	"github.com/fanimeengine/prepenv/pkg/injector"
	"github.com/fanimeengine/prepenv/pkg/layout"
	"github.com/fanimeengine/prepenv/pkg/logging"
	"github.com/fanimeengine/prepenv/pkg/paths"
	"github.com/fanimeengine/prepenv/pkg/templates"
	"github.com/fanimeengine/prepenv/pkg/types"
	"github.com/pterm/pterm"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// globalOptions are the persistent flags shared by every command
type globalOptions struct {
	verbosity  int
	root       string
	scriptsDir string
	configPath string
	dryRun     bool
	only       []string
	set        []string
}

// session is everything resolved before a command touches the templates
type session struct {
	env     paths.Environment
	cfg     *config.Config
	layout  layout.Layout
	targets []templates.Target
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	return newRootCmd(filesystem.NewOS())
}

func newRootCmd(fsys types.FS) *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:     "prepenv",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			initOutputStyling()
			logging.SetupLoggerWithOutput(opts.verbosity, cmd.ErrOrStderr())
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInject(cmd, opts, fsys)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.CountVarP(&opts.verbosity, "verbose", "v", MsgFlagVerbose)
	flags.StringVar(&opts.root, "root", "", MsgFlagRoot)
	flags.StringVar(&opts.scriptsDir, "scripts-dir", "", MsgFlagScriptsDir)
	flags.StringVar(&opts.configPath, "config", "", MsgFlagConfig)
	flags.BoolVar(&opts.dryRun, "dry-run", false, MsgFlagDryRun)
	flags.StringSliceVar(&opts.only, "only", nil, MsgFlagOnly)
	flags.StringArrayVar(&opts.set, "set", nil, MsgFlagSet)

	_ = rootCmd.RegisterFlagCompletionFunc("only", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return templates.Names(), cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddCommand(newRunCmd(opts, fsys))
	rootCmd.AddCommand(newPathsCmd(opts))
	rootCmd.AddCommand(newCheckCmd(opts, fsys))
	rootCmd.AddCommand(newConfigCmd(opts, fsys))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())

	return rootCmd
}

// prepare resolves the environment, loads configuration and builds targets
func prepare(cmd *cobra.Command, opts *globalOptions) (*session, error) {
	env, err := paths.Resolve(paths.Options{Root: opts.root, ScriptsDir: opts.scriptsDir})
	if err != nil {
		return nil, err
	}
	if env.UsedFallback() {
		fmt.Fprintf(cmd.ErrOrStderr(), MsgFallbackWarning, env.ProjectRoot)
	}

	overrides, err := config.ParseOverrides(opts.set)
	if err != nil {
		return nil, err
	}
	cfg, err := config.LoadWithOverrides(filepath.FromSlash(env.ProjectRoot), opts.configPath, overrides)
	if err != nil {
		return nil, err
	}

	l := layout.Compute(env, cfg.Layout)
	targets, err := templates.Build(l, cfg.Templates)
	if err != nil {
		return nil, err
	}
	targets, err = templates.Select(targets, opts.only)
	if err != nil {
		return nil, err
	}

	return &session{env: env, cfg: cfg, layout: l, targets: targets}, nil
}

func newRunCmd(opts *globalOptions, fsys types.FS) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: MsgRunShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInject(cmd, opts, fsys)
		},
	}
}

func runInject(cmd *cobra.Command, opts *globalOptions, fsys types.FS) error {
	logger := logging.GetLogger("cmd.run")

	s, err := prepare(cmd, opts)
	if err != nil {
		return err
	}

	logger.Info().
		Bool("dryRun", opts.dryRun).
		Strs("only", opts.only).
		Str("projectRoot", s.env.ProjectRoot).
		Msg("Starting run")

	inj := injector.New(fsys, injector.Options{DryRun: opts.dryRun})
	results, runErr := inj.Run(s.targets)

	out := cmd.OutOrStdout()
	printResults(out, results, opts.dryRun)
	if opts.dryRun {
		fmt.Fprintln(out, MsgDryRunNotice)
	}
	return runErr
}

func printResults(out io.Writer, results []injector.Result, showDiff bool) {
	for _, r := range results {
		line := r.Output
		if r.Status == injector.StatusWritten && !r.Changed {
			line += " " + MsgUnchangedSuffix
		}
		fmt.Fprintf(out, MsgTargetLine, statusMark(r.Status), r.Target, line)
		for _, w := range r.Warnings {
			fmt.Fprintf(out, MsgWarningLine, w)
		}
		if showDiff && r.Diff != "" {
			fmt.Fprintln(out, r.Diff)
		}
	}
}

func newPathsCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "paths",
		Short: MsgPathsShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := prepare(cmd, opts)
			if err != nil {
				return err
			}

			envTable := pterm.TableData{
				{"home", s.env.Home},
				{"local_app_data", s.env.LocalAppData},
				{"project_root", fmt.Sprintf(MsgRootSourceFormat, s.env.ProjectRoot, s.env.RootSource)},
			}
			layoutTable := pterm.TableData{}
			for _, e := range s.layout.Entries() {
				layoutTable = append(layoutTable, []string{e[0], e[1]})
			}

			out := cmd.OutOrStdout()
			for _, section := range []struct {
				title string
				data  pterm.TableData
			}{
				{MsgEnvSection, envTable},
				{MsgLayoutSection, layoutTable},
			} {
				rendered, err := pterm.DefaultTable.WithData(section.data).Srender()
				if err != nil {
					return errors.Wrap(err, errors.ErrInternal, "failed to render table")
				}
				fmt.Fprintln(out, formatBold(section.title))
				fmt.Fprintln(out, rendered)
			}
			return nil
		},
	}
}

func newCheckCmd(opts *globalOptions, fsys types.FS) *cobra.Command {
	var showDiff bool

	cmd := &cobra.Command{
		Use:   "check",
		Short: MsgCheckShort,
		Long:  MsgCheckLong,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := prepare(cmd, opts)
			if err != nil {
				return err
			}

			results, checkErr := injector.New(fsys, injector.Options{}).Check(s.targets)
			printResults(cmd.OutOrStdout(), results, showDiff)
			if checkErr == nil {
				fmt.Fprintln(cmd.OutOrStdout(), MsgAllCurrent)
			}
			return checkErr
		},
	}
	cmd.Flags().BoolVarP(&showDiff, "diff", "d", false, MsgFlagDiff)
	return cmd
}

func newConfigCmd(opts *globalOptions, fsys types.FS) *cobra.Command {
	var (
		format string
		write  bool
	)

	cmd := &cobra.Command{
		Use:   "config",
		Short: MsgConfigShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := prepare(cmd, opts)
			if err != nil {
				return err
			}

			if write {
				target := filepath.Join(filepath.FromSlash(s.env.ProjectRoot), config.ProjectConfigFiles[0])
				if _, err := fsys.Stat(target); err == nil {
					return errors.Newf(errors.ErrInvalidInput, MsgConfigExists, target)
				}
				if err := fsys.WriteFile(target, []byte(config.GenerateConfigContent()), 0644); err != nil {
					return errors.Wrapf(err, errors.ErrFileWrite, "cannot write %s", target)
				}
				fmt.Fprintf(cmd.OutOrStdout(), MsgConfigWritten, target)
				return nil
			}

			rendered, err := s.cfg.Render(format)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(rendered)
			return err
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", config.FormatTOML, MsgFlagFormat)
	cmd.Flags().BoolVarP(&write, "write", "w", false, MsgFlagWrite)
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: MsgVersionShort,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), MsgVersionFormat, version.Version, version.Commit, version.Date)
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
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
