package main

import (
	"github.com/spf13/cobra"

	"github.com/rgehrsitz/inmocalc/internal/tui"
)

func tuiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Interactive mortgage and purchase-cost calculator",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, cleanup, err := engineFor(cmd)
			if err != nil {
				return err
			}
			defer cleanup()
			return tui.Run(engine)
		},
	}
}
