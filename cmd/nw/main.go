// nw - bulk SSH automation for heterogeneous network devices
//
// A CLI/TUI toolkit for running commands, pushing firmware, and backing up
// configuration across fleets of MikroTik, Cisco, and generic Linux devices:
//   - YAML inventory with device groups (explicit members and tag matching)
//   - Credential resolution with provenance (see `nw info`)
//   - Bounded-concurrency bulk execution with retries and result storage
//
// Target selection:
//
//	nw -d sw1,sw2 run "/system identity print"     # explicit devices
//	nw -g lab run --sequence health-check          # a device group
//	nw tui                                          # interactive picker
//
// Credentials resolve per device through a precedence chain: interactive
// overrides (--ask-user/--ask-password), the device record, device
// environment variables (NW_USER_SW1), group credentials (NW_USER_LAB),
// then the defaults (NW_USER_DEFAULT, NW_PASSWORD_DEFAULT). A .env file
// next to the inventory is loaded automatically.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/netwalker-io/netwalker/pkg/config"
	"github.com/netwalker-io/netwalker/pkg/connect"
	"github.com/netwalker-io/netwalker/pkg/settings"
	"github.com/netwalker-io/netwalker/pkg/util"
	"github.com/netwalker-io/netwalker/pkg/version"
)

var (
	// Target selection flags
	inventoryPath string // -c, --inventory
	groupName     string // -g, --group
	deviceArg     string // -d, --devices (comma-separated)

	// Credential override flags
	askUser     bool
	askPassword bool

	// Output flags
	verbose    bool
	noProgress bool

	// Global state, initialized in PersistentPreRunE
	userSettings *settings.Settings
	cfg          *config.NetworkConfig
	builder      *connect.Builder
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, red("Error:")+" "+err.Error())
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:               "nw",
	Short:             "Bulk SSH automation for network devices",
	SilenceUsage:      true,
	SilenceErrors:     true,
	CompletionOptions: cobra.CompletionOptions{HiddenDefaultCmd: true},
	Long: `nw runs commands, pushes firmware, and backs up configuration across
fleets of network devices over SSH.

Devices are described in a YAML inventory; credentials resolve per device
from the inventory, environment variables (NW_USER_*, NW_PASSWORD_*), or
interactive prompts. Use 'nw info <device>' to see where each value comes
from.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if isSettingsOrHelp(cmd) {
			return nil
		}

		var err error
		userSettings, err = settings.Load()
		if err != nil {
			util.Warnf("Could not load settings: %v", err)
			userSettings = &settings.Settings{}
		}

		if inventoryPath == "" {
			inventoryPath = userSettings.GetInventoryPath()
		}
		if groupName == "" && deviceArg == "" {
			groupName = userSettings.DefaultGroup
		}

		level := "warn"
		if verbose {
			level = "debug"
		}
		if userSettings.LogLevel != "" && !verbose {
			level = userSettings.LogLevel
		}
		if err := util.SetLogLevel(level); err != nil {
			return err
		}

		cfg, err = config.Load(inventoryPath)
		if err != nil {
			return err
		}
		builder = connect.NewBuilder(cfg, nil)
		return nil
	},
}

// isSettingsOrHelp reports commands that run without an inventory.
func isSettingsOrHelp(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		switch c.Name() {
		case "settings", "help", "version", "completion":
			return true
		}
	}
	return false
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("nw " + version.Info())
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&inventoryPath, "inventory", "c", "", "Inventory file (default from settings, else inventory.yaml)")
	pf.StringVarP(&groupName, "group", "g", "", "Target device group")
	pf.StringVarP(&deviceArg, "devices", "d", "", "Target devices (comma-separated)")
	pf.BoolVar(&askUser, "ask-user", false, "Prompt for a username overriding all configured sources")
	pf.BoolVar(&askPassword, "ask-password", false, "Prompt for a password overriding all configured sources")
	pf.BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	pf.BoolVar(&noProgress, "no-progress", false, "Disable the progress bar")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(backupCmd)
	rootCmd.AddCommand(upgradeCmd)
	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(pingCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(settingsCmd)
	rootCmd.AddCommand(tuiCmd)
}
