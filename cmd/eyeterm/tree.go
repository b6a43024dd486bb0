package main

import (
	"fmt"

	"eyeterm/internal/content"
	"eyeterm/internal/vfs"

	"github.com/spf13/cobra"
)

func treeCmd() *cobra.Command {
	var depth int

	cmd := &cobra.Command{
		Use:   "tree [path]",
		Short: "Print the virtual filesystem",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := content.Default().Root()
			start := vfs.Path{}
			if len(args) == 1 {
				p, err := vfs.Change(root, start, args[0])
				if err != nil {
					return err
				}
				start = p
			}
			fmt.Fprintln(cmd.OutOrStdout(), vfs.Format(start))
			fmt.Fprintln(cmd.OutOrStdout(), vfs.RenderTree(vfs.Resolve(root, start), depth))
			return nil
		},
	}

	cmd.Flags().IntVar(&depth, "depth", vfs.DefaultTreeDepth, "maximum depth to expand")
	return cmd
}
