// Package cli implements the formvalidate command tree.
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formvalidator/internal/logging"
)

// Exit codes returned by Execute.
const (
	ExitOK         = 0
	ExitError      = 1
	ExitViolations = 2
)

// errViolations signals a submission that validated with violations. The
// report has already been written.
var errViolations = errors.New("submission is invalid")

type globalFlags struct {
	verbose bool
	quiet   bool
}

// NewRootCmd builds a fresh command tree.
func NewRootCmd() *cobra.Command {
	return newRootCmd(surveyDriver{})
}

func newRootCmd(driver PromptDriver) *cobra.Command {
	globals := &globalFlags{}
	cmd := &cobra.Command{
		Use:   "formvalidate",
		Short: "Validate form submissions against form definitions",
		Long: `formvalidate binds a submission to a form tree built from a definition
file or an OpenAPI operation, resolves the validation groups of every node
and reports the resulting violations.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("verbose") && os.Getenv("FORMVALIDATOR_VERBOSE") != "" {
				globals.verbose = true
			}
			if !cmd.Flags().Changed("quiet") && os.Getenv("FORMVALIDATOR_QUIET") != "" {
				globals.quiet = true
			}
			jsonFormat := os.Getenv("FORMVALIDATOR_LOG_FORMAT") == "json"
			logging.Setup(globals.verbose, globals.quiet, jsonFormat)
			return nil
		},
	}
	cmd.PersistentFlags().BoolVarP(&globals.verbose, "verbose", "v", false, "Enable verbose (debug) output (env: FORMVALIDATOR_VERBOSE)")
	cmd.PersistentFlags().BoolVarP(&globals.quiet, "quiet", "q", false, "Suppress all logs except errors (env: FORMVALIDATOR_QUIET)")

	cmd.AddCommand(newCheckCmd(driver))
	cmd.AddCommand(newGroupsCmd())
	return cmd
}

// Execute runs the root command and returns the exit code.
func Execute() int {
	err := NewRootCmd().Execute()
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, errViolations):
		return ExitViolations
	default:
		fmt.Fprintln(os.Stderr, err)
		return ExitError
	}
}
