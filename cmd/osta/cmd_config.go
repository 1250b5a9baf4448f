package main

import (
	"github.com/spf13/cobra"

	"github.com/osta-lang/osta/project"
)

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config [dir]",
		Short: "Print the effective project settings as osta.toml",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rootDir := "."
			if len(args) == 1 {
				rootDir = args[0]
			}
			proj, err := project.LoadFrom(rootDir)
			if err != nil {
				return err
			}
			text, err := project.Marshal(proj.Config)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(text)
			return err
		},
	}
}
