package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/netwalker-io/netwalker/pkg/settings"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage persistent user settings",
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := settings.Load()
		if err != nil {
			return err
		}
		fmt.Printf("inventory:     %s\n", s.GetInventoryPath())
		fmt.Printf("default-group: %s\n", s.DefaultGroup)
		fmt.Printf("log-level:     %s\n", s.LogLevel)
		return nil
	},
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a setting (inventory, default-group, log-level)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := settings.Load()
		if err != nil {
			return err
		}
		switch args[0] {
		case "inventory":
			s.InventoryPath = args[1]
		case "default-group":
			s.DefaultGroup = args[1]
		case "log-level":
			s.LogLevel = args[1]
		default:
			return fmt.Errorf("unknown setting '%s' (inventory, default-group, log-level)", args[0])
		}
		if err := s.Save(); err != nil {
			return err
		}
		fmt.Printf("%s = %s\n", args[0], args[1])
		return nil
	},
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
}
