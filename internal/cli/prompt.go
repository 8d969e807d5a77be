package cli

import (
	"context"
	"errors"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"

	"github.com/goliatone/go-formvalidator/internal/binding"
	"github.com/goliatone/go-formvalidator/pkg/form"
)

// ErrAborted is returned when the user interrupts a prompt.
var ErrAborted = errors.New("cli: prompt aborted")

const noButton = "(no button)"

// InputConfig configures a text prompt.
type InputConfig struct {
	Message string
	Help    string
}

// SelectConfig configures a single-choice prompt.
type SelectConfig struct {
	Message string
	Options []string
	Help    string
}

// PromptDriver abstracts the terminal so interactive collection can be tested
// without one.
type PromptDriver interface {
	Input(ctx context.Context, cfg InputConfig) (string, error)
	Select(ctx context.Context, cfg SelectConfig) (int, error)
}

type surveyDriver struct{}

func (surveyDriver) Input(ctx context.Context, cfg InputConfig) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	var out string
	prompt := &survey.Input{Message: cfg.Message, Help: cfg.Help}
	if err := survey.AskOne(prompt, &out); err != nil {
		return "", translateSurveyErr(err)
	}
	return out, nil
}

func (surveyDriver) Select(ctx context.Context, cfg SelectConfig) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	var out int
	prompt := &survey.Select{Message: cfg.Message, Options: cfg.Options, Help: cfg.Help}
	if err := survey.AskOne(prompt, &out); err != nil {
		return 0, translateSurveyErr(err)
	}
	return out, nil
}

func translateSurveyErr(err error) error {
	if errors.Is(err, terminal.InterruptErr) {
		return ErrAborted
	}
	return err
}

// collectSubmission prompts for every leaf of root, depth-first, and for the
// clicked button when the tree has any.
func collectSubmission(ctx context.Context, driver PromptDriver, root *form.Node) (*binding.Map, error) {
	values, err := collectNode(ctx, driver, root)
	if err != nil {
		return nil, err
	}

	var buttons []*form.Button
	root.Walk(func(n *form.Node) bool {
		buttons = append(buttons, n.Buttons()...)
		return true
	})
	if len(buttons) == 0 {
		return values, nil
	}

	options := []string{noButton}
	for _, b := range buttons {
		options = append(options, b.Name())
	}
	idx, err := driver.Select(ctx, SelectConfig{
		Message: "Submit with",
		Options: options,
		Help:    "The clicked button's validation groups override the form's.",
	})
	if err != nil {
		return nil, err
	}
	if idx > 0 && idx < len(options) {
		target := buttons[idx-1].Parent()
		if target == root {
			values.Set(options[idx], "")
		} else {
			nested := lookupMap(values, target, root)
			if nested != nil {
				nested.Set(options[idx], "")
			}
		}
	}
	return values, nil
}

func collectNode(ctx context.Context, driver PromptDriver, node *form.Node) (*binding.Map, error) {
	values := binding.NewMap()
	for _, child := range node.Children() {
		if child.Compound() {
			nested, err := collectNode(ctx, driver, child)
			if err != nil {
				return nil, err
			}
			values.Set(child.Name(), nested)
			continue
		}
		answer, err := driver.Input(ctx, InputConfig{
			Message: child.Path(),
			Help:    constraintSummary(child),
		})
		if err != nil {
			return nil, err
		}
		values.Set(child.Name(), answer)
	}
	return values, nil
}

func lookupMap(values *binding.Map, target, root *form.Node) *binding.Map {
	var chain []string
	for cur := target; cur != nil && cur != root; cur = cur.Parent() {
		chain = append([]string{cur.Name()}, chain...)
	}
	current := values
	for _, name := range chain {
		next, ok := current.Get(name)
		if !ok {
			return nil
		}
		nested, ok := next.(*binding.Map)
		if !ok {
			return nil
		}
		current = nested
	}
	return current
}

func constraintSummary(node *form.Node) string {
	var summary string
	for i, c := range node.Constraints() {
		if i > 0 {
			summary += ", "
		}
		summary += c.Constraint.Name() + " (" + c.Group + ")"
	}
	return summary
}
