package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/lookerci/contentcheck/internal/config"
	"github.com/lookerci/contentcheck/internal/faults"
	"github.com/lookerci/contentcheck/internal/gitctx"
	"github.com/lookerci/contentcheck/internal/logging"
	"github.com/lookerci/contentcheck/internal/redact"
)

const version = "0.3.0"

// Exit codes
const (
	ExitSuccess      = 0
	ExitFindings     = 1 // content errors found with --fail-on-errors
	ExitUsageError   = 2
	ExitAuthError    = 3
	ExitRuntimeError = 4
)

// Persistent flags
var (
	flagConfig   string
	flagLogEnv   string
	flagLogLevel string
)

var rootCmd = &cobra.Command{
	Use:   "contentcheck",
	Short: "Looker content validation for GitLab merge requests",
	Long: "contentcheck checks out a LookML branch in Looker, runs the content validator, " +
		"and posts the grouped errors as a single, self-updating merge request comment.",
	SilenceUsage: true,
}

// Run executes the root command and returns an exit code.
func Run() int {
	exitCode = ExitSuccess
	if err := rootCmd.Execute(); err != nil {
		// Cobra already prints the error
		return ExitUsageError
	}
	return exitCode
}

// exitCode is set by command handlers to control the process exit code.
var exitCode = ExitSuccess

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print contentcheck version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "contentcheck version %s\n", version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file (default: $CONTENTCHECK_CONFIG or ./"+config.DefaultFile+")")
	rootCmd.PersistentFlags().StringVar(&flagLogEnv, "log-env", "", "Log handler: local, dev, prod")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig merges file, environment and the given flag overrides. The
// persistent log flags are always applied.
func loadConfig(overrides map[string]string) (config.Config, error) {
	if overrides == nil {
		overrides = make(map[string]string)
	}
	if flagLogEnv != "" {
		overrides["log.env"] = flagLogEnv
	}
	if flagLogLevel != "" {
		overrides["log.level"] = flagLogLevel
	}
	path, explicit := config.ResolvePath(flagConfig)
	return config.Load(path, explicit, overrides)
}

func newLogger(cfg config.Config) *slog.Logger {
	return logging.Setup(cfg.Log.Env, cfg.Log.Level, os.Stderr, redact.New(cfg.Secrets()...).String)
}

// exitCodeFor maps a fault kind to the process exit code.
func exitCodeFor(err error) int {
	switch faults.KindOf(err) {
	case faults.KindConfiguration:
		return ExitUsageError
	case faults.KindAuth:
		return ExitAuthError
	default:
		return ExitRuntimeError
	}
}

// fail reports err on stderr with credentials scrubbed and sets the exit code.
func fail(err error, scrub *redact.Scrubber) {
	fmt.Fprintf(os.Stderr, "Error: %s\n", scrub.String(err.Error()))
	exitCode = exitCodeFor(err)
}

// fillFromGit completes settings GitLab CI normally provides from the local
// checkout. Detection failures are left for Validate to report.
func fillFromGit(cfg *config.Config, wantProject bool) {
	if cfg.Branch == "" {
		if b, err := gitctx.Branch("."); err == nil {
			cfg.Branch = b
		}
	}
	if wantProject && cfg.GitLab.ProjectID == "" {
		if p, err := gitctx.RemoteProject("."); err == nil {
			cfg.GitLab.ProjectID = p
		}
	}
}
