package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/netwalker-io/netwalker/pkg/cli"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List inventory objects",
}

var listDevicesCmd = &cobra.Command{
	Use:   "devices",
	Short: "List devices in the inventory",
	RunE: func(cmd *cobra.Command, args []string) error {
		table := cli.NewTable("DEVICE", "HOST", "TYPE", "TAGS", "GROUPS")
		for _, name := range cfg.DeviceNames() {
			dev := cfg.Devices[name]
			table.Row(name, dev.Host, dev.DeviceType,
				strings.Join(dev.Tags, ","),
				strings.Join(cfg.GetDeviceGroups(name), ","))
		}
		table.Flush()
		return nil
	},
}

var listGroupsCmd = &cobra.Command{
	Use:   "groups",
	Short: "List device groups and their members",
	RunE: func(cmd *cobra.Command, args []string) error {
		table := cli.NewTable("GROUP", "DESCRIPTION", "MEMBERS")
		for _, name := range cfg.GroupNames() {
			group := cfg.DeviceGroups[name]
			members, err := cfg.GetGroupMembers(name)
			if err != nil {
				return err
			}
			table.Row(name, group.Description, fmt.Sprint(len(members)))
		}
		table.Flush()
		return nil
	},
}

var listSequencesCmd = &cobra.Command{
	Use:   "sequences",
	Short: "List known command sequences",
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, name := range cfg.SequenceNames() {
			fmt.Println(name)
		}
		return nil
	},
}

func init() {
	listCmd.AddCommand(listDevicesCmd)
	listCmd.AddCommand(listGroupsCmd)
	listCmd.AddCommand(listSequencesCmd)
}
