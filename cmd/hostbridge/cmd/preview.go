package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/go-drift/hostbridge/internal/showcase"
	"github.com/go-drift/hostbridge/pkg/core"
	"github.com/go-drift/hostbridge/pkg/host/memory"
)

type previewOptions struct {
	clicks int
	target string
	format string
}

// previewReport is the YAML form of a preview.
type previewReport struct {
	Demo      string            `yaml:"demo"`
	Container string            `yaml:"container"`
	Clicks    int               `yaml:"clicks"`
	Renders   int               `yaml:"renders"`
	Nodes     []*memory.Outline `yaml:"nodes,omitempty"`
}

func newPreviewCmd(s *session) *cobra.Command {
	opts := &previewOptions{}

	cmd := &cobra.Command{
		Use:   "preview <demo>",
		Short: "Render a demo and print the committed document",
		Long: `Render one of the bundled demos into an in-memory document, click its
target element the requested number of times and print the result.

Examples:
  hostbridge preview counter
  hostbridge preview counter --clicks 2
  hostbridge preview todo --clicks 1 --format yaml
  hostbridge preview todo --target shift --clicks 1`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPreview(cmd.OutOrStdout(), s, args[0], opts)
		},
	}

	cmd.Flags().IntVarP(&opts.clicks, "clicks", "n", 0, "number of clicks to replay")
	cmd.Flags().StringVarP(&opts.target, "target", "t", "", "id of the element to click (default: the demo's target)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "html", "output format: html or yaml")

	return cmd
}

func runPreview(out io.Writer, s *session, name string, opts *previewOptions) error {
	demo, ok := showcase.Lookup(name)
	if !ok {
		return fmt.Errorf("unknown demo %q (available: %s)", name, strings.Join(showcase.Names(), ", "))
	}
	if opts.clicks < 0 {
		return fmt.Errorf("--clicks must not be negative")
	}
	format := strings.ToLower(opts.format)
	if format != "html" && format != "yaml" {
		return fmt.Errorf("--format must be html or yaml (got %q)", opts.format)
	}
	target := opts.target
	if target == "" {
		target = demo.Target
	}

	doc := memory.NewDocument()
	container := doc.CreateContainer(s.cfg.Container)
	rt := memory.NewRuntime(doc,
		memory.WithLogger(s.logger),
		memory.WithStrictSlots(s.cfg.StrictSlots),
	)

	if err := core.Render(rt, demo.Root(), container); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}
	s.logger.Debug("mounted", "demo", name, "renders", rt.Renders())

	for i := 0; i < opts.clicks; i++ {
		node, ok := doc.GetElementByID(target)
		if !ok {
			return fmt.Errorf("click %d: no element with id %q", i+1, target)
		}
		if !rt.DispatchEvent(node, "click", nil) {
			return fmt.Errorf("click %d: element %q has no click handler", i+1, target)
		}
		if err := rt.Flush(); err != nil {
			return fmt.Errorf("click %d: %w", i+1, err)
		}
		s.logger.Debug("clicked", "target", target, "renders", rt.Renders())
	}

	if format == "yaml" {
		data, err := yaml.Marshal(previewReport{
			Demo:      name,
			Container: container.ContainerID(),
			Clicks:    opts.clicks,
			Renders:   rt.Renders(),
			Nodes:     container.Outline(),
		})
		if err != nil {
			return err
		}
		_, err = out.Write(data)
		return err
	}

	_, err := fmt.Fprintln(out, doc.HTML())
	return err
}
