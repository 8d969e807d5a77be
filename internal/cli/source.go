package cli

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	formvalidator "github.com/goliatone/go-formvalidator"
	"github.com/goliatone/go-formvalidator/pkg/openapi"
	"github.com/goliatone/go-formvalidator/pkg/orchestrator"
)

const httpTimeout = 30 * time.Second

// sourceFlags select the form a command works on.
type sourceFlags struct {
	definitions string
	form        string
	openapi     string
	operation   string
}

func (f *sourceFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.definitions, "definitions", "d", "", "Directory of form definitions (default: bundled examples)")
	cmd.Flags().StringVarP(&f.form, "form", "f", "", "Form id inside the definitions")
	cmd.Flags().StringVar(&f.openapi, "openapi", "", "OpenAPI document path or URL")
	cmd.Flags().StringVar(&f.operation, "operation", "", "OpenAPI operation id")
}

// setup returns an orchestrator and the request selecting the form.
func (f *sourceFlags) setup(logger *log.Logger, extra ...orchestrator.Option) (*orchestrator.Orchestrator, orchestrator.Request, error) {
	options := append([]orchestrator.Option{orchestrator.WithLogger(logger)}, extra...)

	if strings.TrimSpace(f.openapi) != "" {
		if strings.TrimSpace(f.operation) == "" {
			return nil, orchestrator.Request{}, errors.New("--operation is required with --openapi")
		}
		src, err := parseSource(f.openapi)
		if err != nil {
			return nil, orchestrator.Request{}, err
		}
		loader := openapi.NewLoader(openapi.WithHTTPClient(&http.Client{}, httpTimeout))
		options = append(options, orchestrator.WithLoader(loader))
		return orchestrator.New(options...), orchestrator.Request{Source: src, OperationID: f.operation}, nil
	}

	if strings.TrimSpace(f.form) == "" {
		return nil, orchestrator.Request{}, errors.New("--form is required (or use --openapi with --operation)")
	}
	if f.definitions == "" {
		options = append(options, orchestrator.WithDefinitionFS(formvalidator.ExampleDefinitionsFS()))
	} else {
		info, err := os.Stat(f.definitions)
		if err != nil {
			return nil, orchestrator.Request{}, fmt.Errorf("definitions: %w", err)
		}
		if !info.IsDir() {
			return nil, orchestrator.Request{}, fmt.Errorf("definitions: %s is not a directory", f.definitions)
		}
		options = append(options, orchestrator.WithDefinitionFS(os.DirFS(f.definitions)))
	}
	return orchestrator.New(options...), orchestrator.Request{FormID: f.form}, nil
}

func parseSource(raw string) (openapi.Source, error) {
	path := strings.TrimSpace(raw)
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return openapi.SourceFromURL(path)
	}
	return openapi.SourceFromFile(path), nil
}
