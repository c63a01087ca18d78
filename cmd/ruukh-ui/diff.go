package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pepsighan/ruukh-ui/pkg/memdom"
	"github.com/pepsighan/ruukh-ui/pkg/treedef"
)

func diffCmd() *cobra.Command {
	var quiet bool

	cmd := &cobra.Command{
		Use:   "diff <old.yaml> <new.yaml>",
		Short: "Reconcile two tree definitions and print the mutations",
		Long: `Mount the old tree, patch it into the new tree, and print the
mutations the reconciliation produced. The mount itself is not
shown; only the patch pass is.

Examples:
  ruukh-ui diff before.yaml after.yaml
  ruukh-ui diff before.yaml after.yaml --quiet`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDiff(args[0], args[1], quiet)
		},
	}

	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Print only the op count summary")

	return cmd
}

func runDiff(oldPath, newPath string, quiet bool) error {
	old, err := treedef.LoadFile(oldPath)
	if err != nil {
		return err
	}
	next, err := treedef.LoadFile(newPath)
	if err != nil {
		return err
	}

	d := memdom.New()
	if err := old.Mount(d, d.Root(), nil); err != nil {
		return fmt.Errorf("mount %s: %w", oldPath, err)
	}
	d.ResetOps()

	if err := next.Patch(old, d, d.Root(), nil); err != nil {
		return fmt.Errorf("patch %s: %w", newPath, err)
	}

	ops := d.Ops()
	if !quiet {
		for _, op := range ops {
			fmt.Println(op)
		}
		if len(ops) > 0 {
			fmt.Println()
		}
	}
	fmt.Printf("%d ops (%d creates, %d moves, %d removes)\n",
		len(ops),
		d.CountOps(memdom.OpCreateElement, memdom.OpCreateText),
		d.CountOps(memdom.OpMove),
		d.CountOps(memdom.OpRemove))
	fmt.Println(d.Render())
	return nil
}
