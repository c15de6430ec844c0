// Package cmd implements the sync-readme command line interface.
package cmd

import (
	_ "embed"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

//go:embed help/root.md
var rootHelp string

// Exit codes, matching the original cargo-sync-readme contract: 1 for
// errors, 2 when the run completed but produced warnings.
const (
	exitOK       = 0
	exitError    = 1
	exitWarnings = 2
)

type options struct {
	showHidden bool
	preferFrom string
	crlf       bool
	check      bool

	stdout      io.Writer
	stderr      io.Writer
	hadWarnings bool
}

// Execute runs the sync-readme command and returns the process exit code.
func Execute(args []string, stdout, stderr io.Writer) int {
	opts := &options{stdout: stdout, stderr: stderr}

	cmd := rootCmd(opts)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(stderr, err)

		return exitError
	}

	if opts.hadWarnings {
		return exitWarnings
	}

	return exitOK
}

func rootCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync-readme",
		Short: "Generate a Markdown section in your README from your crate's documentation",
		Long:  rootHelp,
		Args:  cobra.NoArgs,

		SilenceUsage:  true,
		SilenceErrors: true,

		RunE: func(cmd *cobra.Command, _ []string) error {
			cwd, err := os.Getwd()
			if err != nil {
				return err
			}

			return opts.run(cwd)
		},

		DisableAutoGenTag: true,
	}

	cmd.Flags().BoolVarP(&opts.showHidden, "show-hidden-doc", "z", false, "show hidden documentation lines in the generated README")
	cmd.Flags().StringVarP(&opts.preferFrom, "prefer-doc-from", "f", "", "read documentation from `lib` or `bin` when the crate has both")
	cmd.Flags().BoolVar(&opts.crlf, "crlf", false, "generate CRLF line endings inside the synchronized region")
	cmd.Flags().BoolVarP(&opts.check, "check", "c", false, "check whether the README is synchronized instead of writing it")

	return cmd
}

// warnf reports a recoverable anomaly without failing the run.
func (o *options) warnf(format string, args ...any) {
	fmt.Fprintf(o.stderr, "warning: "+format+"\n", args...)

	o.hadWarnings = true
}
