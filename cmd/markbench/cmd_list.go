package main

import (
	"fmt"
	"strings"

	"github.com/Swind/markbench/workloads"
	"github.com/spf13/cobra"
)

func (a *app) newListCmd() *cobra.Command {
	var suite string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List suite versions and their workloads",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			names := workloads.Names()
			if cmd.Flags().Changed("suite") {
				names = []string{suite}
			}
			for _, name := range names {
				entries, err := workloads.Lookup(name)
				if err != nil {
					return err
				}
				fmt.Fprintf(a.out, "%s:\n", name)
				for _, id := range entries.IDs() {
					fmt.Fprintf(a.out, "\t- %s\n", id)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&suite, "suite", "", "only list this suite")
	return cmd
}

func joinNames() string {
	return strings.Join(workloads.Names(), ", ")
}
