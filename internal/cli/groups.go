package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formvalidator/internal/logging"
	"github.com/goliatone/go-formvalidator/pkg/form"
	"github.com/goliatone/go-formvalidator/pkg/groups"
	"github.com/goliatone/go-formvalidator/pkg/report"
)

type groupsFlags struct {
	source sourceFlags
	click  string
	format string
}

func newGroupsCmd() *cobra.Command {
	flags := &groupsFlags{}
	cmd := &cobra.Command{
		Use:   "groups",
		Short: "Print the resolved validation groups of every node",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGroups(cmd, flags)
		},
	}
	flags.source.register(cmd)
	cmd.Flags().StringVar(&flags.click, "click", "", "Resolve as if this button was clicked")
	cmd.Flags().StringVar(&flags.format, "format", "text", "Output format: text or json")
	return cmd
}

type resolutionReport struct {
	Path   string   `json:"path"`
	Kind   string   `json:"kind"`
	Groups []string `json:"groups"`
	Source string   `json:"source"`
	Origin string   `json:"origin,omitempty"`
}

func runGroups(cmd *cobra.Command, flags *groupsFlags) error {
	if flags.format != "text" && flags.format != "json" {
		return fmt.Errorf("unknown format %q", flags.format)
	}
	o, req, err := flags.source.setup(logging.New("groups"))
	if err != nil {
		return err
	}
	root, err := o.Build(cmd.Context(), req)
	if err != nil {
		return err
	}
	if flags.click != "" {
		button := findButton(root, flags.click)
		if button == nil {
			return fmt.Errorf("%w: %q", form.ErrUnknownButton, flags.click)
		}
		if err := root.Click(button); err != nil {
			return err
		}
	}

	resolutions, err := groups.All(root)
	if err != nil {
		return err
	}
	reports := make([]resolutionReport, 0, len(resolutions))
	for _, res := range resolutions {
		reports = append(reports, resolutionReport{
			Path:   res.Path,
			Kind:   res.Groups.Kind().String(),
			Groups: res.Groups.Names(),
			Source: string(res.Source),
			Origin: res.Origin,
		})
	}

	w := cmd.OutOrStdout()
	if flags.format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(reports)
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PATH\tGROUPS\tSOURCE")
	for i, res := range resolutions {
		path := res.Path
		if path == "" {
			path = report.FormPath
		}
		source := reports[i].Source
		if res.Origin != "" {
			source += " (" + res.Origin + ")"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", path, res.Groups.String(), source)
	}
	return tw.Flush()
}

func findButton(root *form.Node, name string) *form.Button {
	var found *form.Button
	root.Walk(func(n *form.Node) bool {
		if found != nil {
			return false
		}
		if b := n.Button(name); b != nil {
			found = b
			return false
		}
		return true
	})
	return found
}
