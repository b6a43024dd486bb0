package main

import (
	"eyeterm/internal/content"
	"eyeterm/internal/fusefs"
	"eyeterm/internal/log"

	"github.com/spf13/cobra"
)

func mountCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mount <mountpoint>",
		Short: "Serve the virtual filesystem read-only over FUSE",
		Long: `Serve the virtual filesystem read-only over FUSE until interrupted.
Only available on Linux.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log.LogWithFields(log.F("mountpoint", args[0])).Info("mounting")
			return fusefs.Mount(cmd.Context(), args[0], content.Default().Root())
		},
	}
}
