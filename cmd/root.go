// Package cmd implements the oxio command line.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/heyvito/oxio/internal/audit"
	"github.com/heyvito/oxio/internal/configs"
	kerrors "github.com/heyvito/oxio/internal/errors"
	logger "github.com/heyvito/oxio/internal/logging"
	"github.com/heyvito/oxio/internal/ui"
	"github.com/heyvito/oxio/internal/utils"
	"github.com/heyvito/oxio/internal/workflows"
)

var (
	verbose    bool
	debug      bool
	configPath string
	printValue bool

	Logger   logger.Logger
	Settings *configs.Settings
	Env      *workflows.Env

	auditLog *audit.Log
)

var RootCmd = &cobra.Command{
	Use:   "oxio [GROUP] NAME [VALUE]",
	Short: "A simple key-value store for the command line",
	Long: `oxio is a simple key-value store inspired by Boom, originally written by
Zach Holman. Items live in groups and can be synced between machines through
a git remote.

Usage:
  oxio NAME                  Finds the item closest to NAME and copies it
  oxio GROUP NAME            Finds exactly NAME in GROUP
  oxio GROUP NAME VALUE      Sets NAME in GROUP to VALUE
  oxio GROUP NAME -          Sets NAME in GROUP to the value piped on stdin

When standard output is not a terminal, values are printed instead of being
copied to the clipboard.`,
	Args:              cobra.MaximumNArgs(3),
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	RunE:              runPositional,
}

func init() {
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	RootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug output")
	RootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to the config file")
	RootCmd.Flags().BoolVarP(&printValue, "print", "p", false, "print the value instead of copying it")
}

// setup resolves settings and builds the workflow environment shared by
// every command.
func setup(cmd *cobra.Command, args []string) error {
	Logger = logger.Logger{Verbose: verbose, Debug: debug}
	Logger.Debugf("Initializing oxio with verbose=%t, debug=%t", verbose, debug)

	s, err := configs.LoadSettings(configPath)
	if err != nil {
		return Logger.ErrorfAndReturn("failed to load settings: %w", err)
	}
	Settings = s
	Logger.Debugf("Using store at %s", s.StorePath)

	auditLog, err = audit.Open(s.AuditPath)
	if err != nil {
		Logger.Warnf("Audit log disabled: %v", err)
		auditLog = audit.Nop()
	}
	Env = workflows.NewEnv(s, Logger, auditLog)
	return nil
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	return execute(context.Background(), os.Args[1:])
}

func execute(ctx context.Context, args []string) int {
	RootCmd.SetArgs(args)
	err := RootCmd.ExecuteContext(ctx)
	if auditLog != nil {
		_ = auditLog.Close()
		auditLog = nil
	}
	if err == nil {
		return 0
	}

	var exit *exitError
	if errors.As(err, &exit) {
		return exit.code
	}
	fmt.Fprintln(RootCmd.ErrOrStderr(), errorMessage(err))
	return 1
}

func runPositional(cmd *cobra.Command, args []string) error {
	switch len(args) {
	case 0:
		return cmd.Help()
	case 1:
		return runGet(cmd, "", args[0])
	case 2:
		return runGet(cmd, args[0], args[1])
	default:
		return runSet(cmd, args[0], args[1], args[2])
	}
}

func runSet(cmd *cobra.Command, group, name, value string) error {
	if value == "-" {
		v, err := utils.ReadValue(cmd.InOrStdin())
		if err != nil {
			return kerrors.Wrap(kerrors.KindInvalidInput, "set", err)
		}
		value = v
	}
	result, err := workflows.Set(cmd.Context(), Env, workflows.SetOptions{Group: group, Name: name, Value: value})
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Ok, %s (in %s) is %s\n", result.Item.Name, result.Item.Group, ui.Preview(result.Item.Value))
	return nil
}

// exitError ends the process with code after the command has already
// reported its outcome.
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}
