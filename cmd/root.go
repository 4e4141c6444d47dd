package cmd

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"alertstate/internal/app"
	"alertstate/internal/config"
)

// Exit codes for CLI commands.
const (
	// ExitCodeSuccess indicates the command completed. Abandoned mutations
	// still count as completed.
	ExitCodeSuccess = 0
	// ExitCodeError indicates a fatal error (configuration, snapshots, invalid arguments).
	ExitCodeError = 1
	// ExitCodeInterrupted indicates the command was stopped by a signal.
	ExitCodeInterrupted = 130
)

// version is injected by main.
var version = "dev"

// openRemote replaces the Datadog client in tests.
var openRemote app.RemoteOpener

// rootOptions holds the persistent flags shared by every subcommand.
type rootOptions struct {
	configPath string
	envFile    string
	logLevel   string
	logFormat  string
	noColor    bool
	quiet      bool
	project    string
	dir        string
}

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "alertstate",
		Short: "Keep Datadog monitors in sync with monitor files",
		Long: `alertstate reconciles the Datadog monitors of a project with the monitor
definitions kept in a directory, one JSON or YAML file per monitor.

Monitors are matched by name. Declared monitors missing remotely are created,
changed ones are updated and remote monitors that are no longer declared are
deleted. Only monitors tagged with the project name are managed.`,
		// SilenceUsage prevents Cobra from printing the usage message on errors that are handled by the application.
		SilenceUsage: true,
		Version:      version,
	}
	cmd.SetVersionTemplate(`{{printf "alertstate version %s\n" .Version}}`)

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "config file (default is $HOME/.config/alertstate/config.yaml)")
	flags.StringVar(&opts.envFile, "env-file", config.DefaultEnvFile, "dotenv file with DD_API_KEY, DD_APP_KEY and PROJECT_NAME")
	flags.StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn or error")
	flags.StringVar(&opts.logFormat, "log-format", "", "log format: text or json")
	flags.BoolVar(&opts.noColor, "no-color", false, "disable coloured output")
	flags.BoolVarP(&opts.quiet, "quiet", "q", false, "only print failures")
	flags.StringVar(&opts.project, "project", "", "project tag (default is $PROJECT_NAME or \"test\")")
	flags.StringVar(&opts.dir, "dir", "", "directory holding the monitor files (default is .)")

	cmd.AddCommand(newSyncCmd(opts))
	cmd.AddCommand(newPlanCmd(opts))
	cmd.AddCommand(newExportCmd(opts))
	cmd.AddCommand(newVersionCmd())
	return cmd
}

// SetVersion sets the version for the root command.
// This function is typically called from the main package to inject the application version at build time.
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// GetVersion returns the current version of the application.
func GetVersion() string {
	return version
}

// Execute is the main entry point for the CLI application.
// It is called by main.main().
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(getExitCode(err))
	}
}

// getExitCode determines the appropriate exit code based on the error type.
func getExitCode(err error) int {
	if err == nil {
		return ExitCodeSuccess
	}
	if errors.Is(err, context.Canceled) {
		return ExitCodeInterrupted
	}
	return ExitCodeError
}

// newApplication bootstraps the application for one subcommand.
func newApplication(cmd *cobra.Command, opts *rootOptions) (*app.Application, error) {
	cfg := app.NewConfig(opts.configPath, opts.envFile)
	cfg.EnvFileRequired = cmd.Flags().Changed("env-file")
	cfg.LogLevel = opts.logLevel
	cfg.LogFormat = opts.logFormat
	cfg.NoColor = opts.noColor
	cfg.Quiet = opts.quiet
	cfg.ProjectName = opts.project
	cfg.ProjectDir = opts.dir
	cfg.Stdout = cmd.OutOrStdout()
	cfg.Stderr = cmd.ErrOrStderr()
	cfg.Wait = cooldownWait(cmd.ErrOrStderr(), opts.quiet)
	cfg.OpenRemote = openRemote

	return app.NewApplication(cfg)
}
