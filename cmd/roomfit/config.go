package main

import (
	"encoding/json"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/piwi3910/roomfit/internal/model"
	"github.com/piwi3910/roomfit/internal/project"
)

func (a *app) configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change application settings",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the current configuration",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			data, err := json.MarshalIndent(a.config, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "# %s\n%s\n", a.configPath, data)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "reset",
		Short: "Restore the default configuration",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			a.config = model.DefaultAppConfig()
			if err := a.saveConfig(); err != nil {
				return err
			}
			a.log.WithField("path", a.configPath).Info("configuration reset")
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "export <backup.json>",
		Short: "Back up the configuration and boundary library",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			lib, err := project.LoadLibrary(a.libraryPath())
			if err != nil {
				return err
			}
			if err := project.ExportAllData(args[0], a.config, lib); err != nil {
				return err
			}
			a.log.WithField("path", args[0]).Info("backup written")
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "import <backup.json>",
		Short: "Restore the configuration and boundary library from a backup",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			backup, err := project.ImportAllData(args[0])
			if err != nil {
				return err
			}
			a.config = backup.Config
			if err := a.saveConfig(); err != nil {
				return err
			}
			if err := project.SaveLibrary(a.libraryPath(), backup.Library); err != nil {
				return fmt.Errorf("saving boundary library: %w", err)
			}
			a.log.WithFields(logrus.Fields{
				"path":       args[0],
				"version":    backup.Version,
				"boundaries": len(backup.Library.Boundaries),
			}).Info("backup restored")
			return nil
		},
	})

	return cmd
}
