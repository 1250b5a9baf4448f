package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/osta-lang/osta/project"
	"github.com/osta-lang/osta/workspace"
)

var (
	errorLabel = color.New(color.FgRed, color.Bold).SprintFunc()
	okLabel    = color.New(color.FgGreen).SprintFunc()
	pathLabel  = color.New(color.Bold).SprintFunc()
)

func newCheckCmd() *cobra.Command {
	var watch bool

	cmd := &cobra.Command{
		Use:          "check [dir]",
		Short:        "Parse every source file of a project and report syntax errors",
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			rootDir := "."
			if len(args) == 1 {
				rootDir = args[0]
			}

			proj, err := project.LoadFrom(rootDir)
			if err != nil {
				return err
			}
			w, err := workspace.New(proj)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if watch {
				return watchProject(out, w)
			}

			if err := w.ScanAll(); err != nil {
				return err
			}
			diags := w.Diagnostics()
			printDiagnostics(out, diags)
			if len(diags) > 0 {
				return fmt.Errorf("%d of %d files failed to parse", len(diags), len(w.Paths()))
			}
			fmt.Fprintf(out, "%s %d files\n", okLabel("ok"), len(w.Paths()))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "keep running and check files as they change")

	return cmd
}

func printDiagnostics(out io.Writer, diags []workspace.Diagnostic) {
	for _, d := range diags {
		fmt.Fprintf(out, "%s %s\n", errorLabel("error"), d.Message)
	}
}

func watchProject(out io.Writer, w *workspace.Workspace) error {
	fw := workspace.NewFileWatcher(w)
	fw.OnChange = func(path string, removed bool) {
		if removed {
			fmt.Fprintf(out, "%s removed\n", pathLabel(path))
			return
		}
		diags := w.FileDiagnostics(path)
		if len(diags) == 0 {
			fmt.Fprintf(out, "%s %s\n", okLabel("ok"), pathLabel(path))
			return
		}
		printDiagnostics(out, diags)
	}
	fw.Start()
	defer fw.Stop()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	<-interrupt
	return nil
}
