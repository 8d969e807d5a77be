package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formvalidator/internal/logging"
	"github.com/goliatone/go-formvalidator/pkg/engine"
	"github.com/goliatone/go-formvalidator/pkg/orchestrator"
	"github.com/goliatone/go-formvalidator/pkg/report"
	"github.com/goliatone/go-formvalidator/pkg/validator"
)

type checkFlags struct {
	source      sourceFlags
	submission  string
	interactive bool
	format      string
	template    string
	sanitize    bool
}

func newCheckCmd(driver PromptDriver) *cobra.Command {
	flags := &checkFlags{}
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate a submission",
		Long: `Validate a JSON or YAML submission against a form. Use --submission -
to read the submission from stdin, or --interactive to be prompted for every
field. Exits with status 2 when the submission has violations.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, flags, driver)
		},
	}
	flags.source.register(cmd)
	cmd.Flags().StringVarP(&flags.submission, "submission", "s", "", "Submission file, or - for stdin")
	cmd.Flags().BoolVarP(&flags.interactive, "interactive", "i", false, "Prompt for every field")
	cmd.Flags().StringVar(&flags.format, "format", "text", "Output format: text, json or template")
	cmd.Flags().StringVar(&flags.template, "template", "", "pongo2 template file used with --format template")
	cmd.Flags().BoolVar(&flags.sanitize, "sanitize", false, "Strip markup from submitted text quoted in messages")
	return cmd
}

func runCheck(cmd *cobra.Command, flags *checkFlags, driver PromptDriver) error {
	switch flags.format {
	case "text", "json":
	case "template":
		if flags.template == "" {
			return fmt.Errorf("--template is required with --format template")
		}
	default:
		return fmt.Errorf("unknown format %q", flags.format)
	}
	if flags.interactive == (flags.submission != "") {
		return fmt.Errorf("exactly one of --submission or --interactive is required")
	}

	logger := logging.New("check")
	var extra []orchestrator.Option
	if flags.sanitize {
		v := validator.New(validator.WithLogger(logger), validator.WithSanitizer(validator.StrictSanitizer))
		extra = append(extra, orchestrator.WithEngine(engine.New(engine.WithLogger(logger), engine.WithValidator(v))))
	}
	o, req, err := flags.source.setup(logger, extra...)
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	if flags.interactive {
		root, err := o.Build(ctx, req)
		if err != nil {
			return err
		}
		values, err := collectSubmission(ctx, driver, root)
		if err != nil {
			return err
		}
		req.Submission = values
	} else {
		raw, err := readSubmission(cmd.InOrStdin(), flags.submission)
		if err != nil {
			return err
		}
		req.RawSubmission = raw
	}

	result, err := o.Validate(ctx, req)
	if err != nil {
		return err
	}
	logger.Debug("check finished", "form", result.Form.Name(), "violations", len(result.Violations))

	if err := writeReport(cmd.OutOrStdout(), flags, result); err != nil {
		return err
	}
	if !result.Valid() {
		return errViolations
	}
	return nil
}

func readSubmission(stdin io.Reader, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(stdin)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading submission: %w", err)
	}
	return data, nil
}

func writeReport(w io.Writer, flags *checkFlags, result orchestrator.Result) error {
	out := report.New(result.Form.Name(), result.Violations)
	switch flags.format {
	case "json":
		return report.WriteJSON(w, out)
	case "template":
		tpl, err := report.LoadTemplate(os.DirFS(filepath.Dir(flags.template)), filepath.Base(flags.template))
		if err != nil {
			return err
		}
		return tpl.Write(w, out)
	default:
		return report.WriteText(w, out)
	}
}
