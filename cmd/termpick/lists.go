package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"termpick/internal/source"
)

func newListsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lists",
		Short: "Show saved lists",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			names := a.cfg.ListNames()
			if len(names) == 0 {
				a.stderr.Hint("No lists saved. Add one with: termpick lists add NAME ITEM...")
				return nil
			}
			for _, name := range names {
				fmt.Fprintf(cmd.OutOrStdout(), "%s (%d items)\n", name, len(a.cfg.Lists[name]))
			}
			return nil
		},
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "add NAME [items...]",
			Short: "Save a list, reading items from stdin when none are given",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				items := source.Args(args[1:])
				if len(args) == 1 {
					var err error
					if items, err = source.Stdin(); err != nil {
						return err
					}
				}
				if err := a.cfg.AddList(args[0], items); err != nil {
					return err
				}
				if err := a.cfg.Save(); err != nil {
					return err
				}
				a.log.Info("list saved", "name", args[0], "items", len(items))
				fmt.Fprintf(cmd.OutOrStdout(), "Saved list '%s' with %d items\n", args[0], len(items))
				return nil
			},
		},
		&cobra.Command{
			Use:     "rm NAME",
			Aliases: []string{"remove"},
			Short:   "Remove a saved list",
			Args:    cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := a.cfg.RemoveList(args[0]); err != nil {
					return err
				}
				if err := a.cfg.Save(); err != nil {
					return err
				}
				a.log.Info("list removed", "name", args[0])
				fmt.Fprintf(cmd.OutOrStdout(), "Removed list '%s'\n", args[0])
				return nil
			},
		},
		&cobra.Command{
			Use:   "show NAME",
			Short: "Print the items of a saved list",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				items, err := a.cfg.GetList(args[0])
				if err != nil {
					return err
				}
				for _, it := range items {
					fmt.Fprintln(cmd.OutOrStdout(), it)
				}
				return nil
			},
		},
	)
	return cmd
}

func newConfigCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Show the config file path and its effective values",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := a.cfg.Marshal()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "# %s\n%s", a.cfg.Path(), data)
			return nil
		},
	}
}
