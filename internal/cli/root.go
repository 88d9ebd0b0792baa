// Package cli provides the qmlkit command-line interface.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/katalvlaran/qmlkit/internal/config"
	"github.com/katalvlaran/qmlkit/internal/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Version information (set at build time).
var (
	Version   = "0.1.0"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// configKeyAnnotation marks a flag with the config key it overrides.
const configKeyAnnotation = "qmlkit_config_key"

type stateKey struct{}

// state is what PersistentPreRunE resolves for the running command.
type state struct {
	cfg      *config.Config
	logger   *slog.Logger
	renderer *Renderer
}

// bindFlag ties a flag to a config key; only bound flags reach the loader.
func bindFlag(fs *pflag.FlagSet, name, key string) {
	_ = fs.SetAnnotation(name, configKeyAnnotation, []string{key})
}

// flagKeys collects the flag-to-key bindings visible to cmd.
func flagKeys(fs *pflag.FlagSet) map[string]string {
	keys := make(map[string]string)
	fs.VisitAll(func(f *pflag.Flag) {
		if v := f.Annotations[configKeyAnnotation]; len(v) == 1 {
			keys[f.Name] = v[0]
		}
	})

	return keys
}

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	var cfgFile string
	rootCmd := &cobra.Command{
		Use:   "qmlkit",
		Short: "qmlkit - molecular descriptors and kernels",
		Long: `qmlkit turns molecular geometries into machine-learning descriptors
(Coulomb matrices, bag of bonds, SLATM, ACSF, FCHL19, ARAD, FCHL) and
evaluates kernel matrices between them.

Datasets are YAML files of molecules; see "qmlkit represent --help".`,
		Version: Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}
			cfg, err := config.Load(cfgFile, cmd.Flags(), flagKeys(cmd.Flags()))
			if err != nil {
				return err
			}
			logger, err := logging.New(cmd.ErrOrStderr(), cfg.Log.Level, cfg.Log.Format)
			if err != nil {
				return err
			}
			r, err := NewRenderer(cmd.OutOrStdout(), cfg.Output.Format, cfg.Output.Precision)
			if err != nil {
				return err
			}
			logger.Debug("configuration loaded", "config_file", cfgFile, "output", cfg.Output.Format, "workers", cfg.Workers)
			cmd.SetContext(context.WithValue(cmd.Context(), stateKey{}, &state{cfg: cfg, logger: logger, renderer: r}))

			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.SetVersionTemplate(`{{.Name}} {{.Version}}
`)

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (YAML)")
	pf.String("log-level", "", "log level (debug|info|warn|error)")
	pf.String("log-format", "", "log format (text|json)")
	pf.StringP("output", "o", "", "output format (table|json|csv|markdown)")
	pf.Int("precision", 0, "significant digits of printed numbers")
	pf.IntP("workers", "j", 0, "parallel workers (0 uses GOMAXPROCS)")
	bindFlag(pf, "log-level", "log.level")
	bindFlag(pf, "log-format", "log.format")
	bindFlag(pf, "output", "output.format")
	bindFlag(pf, "precision", "output.precision")
	bindFlag(pf, "workers", "workers")

	_ = rootCmd.RegisterFlagCompletionFunc("output", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return formatNames(), cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddCommand(NewVersionCommand(Version))
	rootCmd.AddCommand(NewElementsCommand())
	rootCmd.AddCommand(NewRepresentCommand())
	rootCmd.AddCommand(NewKernelCommand())

	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

// stateFrom returns the resolved state, or defaults when the pre-run hook
// did not run (commands executed on their own).
func stateFrom(cmd *cobra.Command) (*state, error) {
	if cmd.Context() != nil {
		if s, ok := cmd.Context().Value(stateKey{}).(*state); ok {
			return s, nil
		}
	}
	cfg, err := config.Load("", cmd.Flags(), flagKeys(cmd.Flags()))
	if err != nil {
		return nil, err
	}
	r, err := NewRenderer(cmd.OutOrStdout(), cfg.Output.Format, cfg.Output.Precision)
	if err != nil {
		return nil, err
	}

	return &state{cfg: cfg, logger: logging.Discard(), renderer: r}, nil
}
