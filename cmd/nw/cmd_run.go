package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/netwalker-io/netwalker/pkg/util"
)

var runSequence string

var runCmd = &cobra.Command{
	Use:   "run [command]...",
	Short: "Run commands on the target devices",
	Long: `Run one or more commands on every target device.

Commands are given as arguments, or taken from a named sequence with
--sequence. Sequences resolve through three tiers: global definitions in
the inventory, vendor sequences matching the device's device_type, then
device-local definitions.

Examples:
  nw -g lab run "/system identity print"
  nw -d rtr1,rtr2 run "show version" "show inventory"
  nw -g branch run --sequence health-check`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if runSequence == "" && len(args) == 0 {
			return fmt.Errorf("provide commands or --sequence")
		}

		devices, err := targetDevices()
		if err != nil {
			return err
		}
		user, pass, err := credentialOverrides()
		if err != nil {
			return err
		}

		ctx := context.Background()
		results, err := newRunner().Run(ctx, devices, user, pass, func(ctx context.Context, device string, params map[string]interface{}) (string, error) {
			commands := args
			if runSequence != "" {
				commands = cfg.ResolveSequenceCommands(runSequence, device)
				if commands == nil {
					return "", util.NewUnknownSequenceError(runSequence, device)
				}
			}
			return execTask(commands)(ctx, device, params)
		})
		if err != nil {
			return err
		}

		saveResults(ctx, "run", results)
		return printSummary(results)
	},
}

func init() {
	runCmd.Flags().StringVarP(&runSequence, "sequence", "s", "", "Run a named command sequence instead of argument commands")
}
