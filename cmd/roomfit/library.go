package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/piwi3910/roomfit/internal/model"
	"github.com/piwi3910/roomfit/internal/project"
)

func (a *app) libraryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "library",
		Short: "Manage saved boundaries",
	}
	cmd.AddCommand(a.libraryAddCmd(), a.libraryListCmd(), a.libraryRemoveCmd())
	return cmd
}

func (a *app) libraryAddCmd() *cobra.Command {
	var name string
	var opts searchOptions

	cmd := &cobra.Command{
		Use:   "add <boundary>",
		Short: "Save a boundary under a name for later fits",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			boundary, saved, err := a.loadBoundary(args[0])
			if err != nil {
				return err
			}
			if name == "" {
				name = boundary.Name
			}
			if name == "" {
				return fmt.Errorf("boundary has no name, use --name")
			}
			_, settings, err := a.resolveSearch(cmd, opts, saved)
			if err != nil {
				return err
			}

			lib, err := project.LoadLibrary(a.libraryPath())
			if err != nil {
				return err
			}
			lib.Put(model.NewSavedBoundary(name, boundary.Outline, settings))
			if err := project.SaveLibrary(a.libraryPath(), lib); err != nil {
				return fmt.Errorf("saving boundary library: %w", err)
			}

			a.log.WithField("name", name).Info("saved boundary")
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "library name (default: the boundary's name)")
	addSearchFlags(cmd, &opts)
	return cmd
}

func (a *app) libraryListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List saved boundaries",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			lib, err := project.LoadLibrary(a.libraryPath())
			if err != nil {
				return err
			}
			if len(lib.Boundaries) == 0 {
				fmt.Fprintln(a.out, "No saved boundaries.")
				return nil
			}
			for _, s := range lib.Boundaries {
				fmt.Fprintf(a.out, "  %-20s %3d vertices  %10.2f m²  %s\n",
					s.Boundary.Name, len(s.Boundary.Outline), s.Boundary.Outline.Area(), s.UpdatedAt)
			}
			return nil
		},
	}
}

func (a *app) libraryRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <name>",
		Short: "Delete a saved boundary",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			lib, err := project.LoadLibrary(a.libraryPath())
			if err != nil {
				return err
			}
			if !lib.Remove(args[0]) {
				return fmt.Errorf("no saved boundary named %q", args[0])
			}
			return project.SaveLibrary(a.libraryPath(), lib)
		},
	}
}
