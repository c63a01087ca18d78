package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pepsighan/ruukh-ui/pkg/memdom"
	"github.com/pepsighan/ruukh-ui/pkg/treedef"
)

func renderCmd() *cobra.Command {
	var showOps bool

	cmd := &cobra.Command{
		Use:   "render <tree.yaml>",
		Short: "Mount a tree definition and print the result",
		Long: `Mount a YAML tree definition into an in-memory target and print
the resulting markup.

Examples:
  ruukh-ui render page.yaml
  ruukh-ui render page.yaml --ops`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(args[0], showOps)
		},
	}

	cmd.Flags().BoolVar(&showOps, "ops", false, "Also print the mutation log of the mount")

	return cmd
}

func runRender(path string, showOps bool) error {
	tree, err := treedef.LoadFile(path)
	if err != nil {
		return err
	}

	d := memdom.New()
	if err := tree.Mount(d, d.Root(), nil); err != nil {
		return fmt.Errorf("mount: %w", err)
	}

	fmt.Println(d.Render())
	if showOps {
		fmt.Println()
		for _, op := range d.Ops() {
			fmt.Println(op)
		}
	}
	return nil
}
