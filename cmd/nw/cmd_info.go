package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/netwalker-io/netwalker/pkg/cli"
)

var infoCmd = &cobra.Command{
	Use:   "info <device>",
	Short: "Show a device's resolved connection parameters and credential sources",
	Long: `Show the device record, its group membership, the fully resolved
connection parameters, and the provenance of the resolved credentials:
which precedence tier (override, device record, environment variable,
group, default) supplied each value.

Examples:
  nw info core-sw1
  nw --ask-user info core-sw1`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		deviceName := args[0]
		user, pass, err := credentialOverrides()
		if err != nil {
			return err
		}

		params, err := builder.BuildParams(deviceName, user, pass)
		if err != nil {
			return err
		}
		userSrc, passSrc, err := builder.Resolver().ResolveCredentialsWithSource(deviceName, user, pass)
		if err != nil {
			return err
		}

		dev := cfg.Devices[deviceName]
		fmt.Printf("%s (%s)\n", bold(deviceName), dev.Host)
		fmt.Println(strings.Repeat("=", 50))
		fmt.Printf("device_type: %s\n", dev.DeviceType)
		if dev.Platform != "" {
			fmt.Printf("platform:    %s\n", dev.Platform)
		}
		if len(dev.Tags) > 0 {
			fmt.Printf("tags:        %s\n", strings.Join(dev.Tags, ", "))
		}
		if groups := cfg.GetDeviceGroups(deviceName); len(groups) > 0 {
			fmt.Printf("groups:      %s\n", strings.Join(groups, ", "))
		}

		fmt.Println()
		fmt.Println(bold("Credentials"))
		credTable := cli.NewTable("KIND", "VALUE", "SOURCE")
		credTable.Row("username", userSrc.Value, userSrc.String())
		credTable.Row("password", strings.Repeat("*", 8), passSrc.String())
		credTable.Flush()

		fmt.Println()
		fmt.Println(bold("Connection parameters"))
		keys := make([]string, 0, len(params))
		for k := range params {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		paramTable := cli.NewTable("PARAMETER", "VALUE")
		for _, k := range keys {
			v := params[k]
			if k == "auth_password" {
				v = strings.Repeat("*", 8)
			}
			paramTable.Row(k, fmt.Sprint(v))
		}
		paramTable.Flush()
		return nil
	},
}
