package main

import (
	"context"
	"fmt"
	"strings"

	"classmate/internal/app"

	"github.com/spf13/cobra"
)

func newExecCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "exec LINE",
		Short: "Run one command line and save the result",
		Example: `  classmate exec "add n/Alice e/alice@uni.edu"
  classmate exec addStudent 1 T1 tut/`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := loadApplication(opts)
			if err != nil {
				return err
			}

			res, execErr := application.Exec(cmd.Context(), strings.Join(args, " "))
			if execErr == nil && res.Feedback != "" {
				fmt.Fprintln(cmd.OutOrStdout(), res.Feedback)
			}
			return firstErr(execErr, application.Stop(cmd.Context()))
		},
	}
}

func newExportCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "export FILE",
		Short: "Write the stored class state to a YAML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApplication(cmd.Context(), opts, func(ctx context.Context, application *app.Application) error {
				if err := application.Export(args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Exported to %s\n", args[0])
				return nil
			})
		},
	}
}

func newImportCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Replace the stored class state with a YAML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApplication(cmd.Context(), opts, func(ctx context.Context, application *app.Application) error {
				if err := application.Import(ctx, args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Imported %s\n", args[0])
				return nil
			})
		},
	}
}

// withApplication opens the application, runs fn and always stops it.
func withApplication(ctx context.Context, opts *options, fn func(context.Context, *app.Application) error) error {
	application, err := loadApplication(opts)
	if err != nil {
		return err
	}
	return firstErr(fn(ctx, application), application.Stop(ctx))
}

func firstErr(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
