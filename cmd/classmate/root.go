package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"classmate/internal/app"
	"classmate/internal/config"

	"github.com/spf13/cobra"
)

// options are the flags shared by every subcommand.
type options struct {
	configPath string
	dbPath     string
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "classmate",
		Short: "Keep track of students, tutorials, labs and consultations",
		Long: `classmate is a teaching-assistant shell. Without a subcommand it reads
commands from standard input until "exit" or end of input, saving the class
state after every change. Type "help" inside the shell to list the commands.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShell(cmd.Context(), opts, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "JSON config file (default $"+config.ConfigFileEnv+")")
	flags.StringVar(&opts.dbPath, "db", "", "SQLite database path, overrides the config")

	rootCmd.AddCommand(newExecCmd(opts), newExportCmd(opts), newImportCmd(opts))
	return rootCmd
}

// loadApplication resolves configuration (flags > file > env > defaults) and
// opens the application.
func loadApplication(opts *options) (*app.Application, error) {
	if err := config.LoadDotEnv(); err != nil {
		return nil, err
	}

	path := opts.configPath
	if path == "" {
		path = os.Getenv(config.ConfigFileEnv)
	}
	cfg, err := config.LoadConfigWithPrecedence(path)
	if err != nil {
		return nil, err
	}
	if opts.dbPath != "" {
		cfg.Database.Path = opts.dbPath
	}

	application, err := app.NewApplication(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create application: %w", err)
	}
	return application, nil
}

// runShell drives the interactive loop. SIGINT and SIGTERM end it; every
// completed command was already saved, so an interrupt only releases the
// store.
func runShell(ctx context.Context, opts *options, in io.Reader, out io.Writer) error {
	application, err := loadApplication(opts)
	if err != nil {
		return err
	}

	signalCh := make(chan os.Signal, 1)
	signal.Notify(signalCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(signalCh)

	shellErrCh := make(chan error, 1)
	go func() {
		shellErrCh <- application.Run(ctx, in, out)
	}()

	select {
	case err := <-shellErrCh:
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if stopErr := application.Stop(shutdownCtx); stopErr != nil && err == nil {
			err = stopErr
		}
		return err
	case sig := <-signalCh:
		log.Printf("Received signal %v, shutting down", sig)
		return application.Close()
	}
}
