package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/netwalker-io/netwalker/pkg/connect"
)

// exportCommands maps a driver platform to the command that prints the
// device's full configuration. Generic/unknown platforms have no export
// command and are skipped with a per-device error.
var exportCommands = map[string]string{
	"mikrotik_routeros": "/export",
	"cisco_iosxe":       "show running-config",
	"cisco_nxos":        "show running-config",
	"juniper_junos":     "show configuration | display set",
}

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Back up device configuration",
	Long: `Export the running configuration of every target device and write it
under the backup directory (general.backup_dir), one timestamped file per
device.

Examples:
  nw -g lab backup
  nw -d core-sw1 backup`,
	RunE: func(cmd *cobra.Command, args []string) error {
		devices, err := targetDevices()
		if err != nil {
			return err
		}
		user, pass, err := credentialOverrides()
		if err != nil {
			return err
		}

		if err := os.MkdirAll(cfg.General.BackupDir, 0755); err != nil {
			return fmt.Errorf("creating backup dir: %w", err)
		}
		stamp := time.Now().Format("20060102-150405")

		ctx := context.Background()
		results, err := newRunner().Run(ctx, devices, user, pass, func(ctx context.Context, device string, params map[string]interface{}) (string, error) {
			platform := connect.MapPlatform(cfg.Devices[device].DeviceType)
			exportCmd, ok := exportCommands[platform]
			if !ok {
				return "", fmt.Errorf("no export command for device_type '%s'", cfg.Devices[device].DeviceType)
			}

			output, err := execTask([]string{exportCmd})(ctx, device, params)
			if err != nil {
				return output, err
			}

			path := filepath.Join(cfg.General.BackupDir, fmt.Sprintf("%s-%s.cfg", device, stamp))
			if err := os.WriteFile(path, []byte(output), 0600); err != nil {
				return "", fmt.Errorf("writing backup: %w", err)
			}
			return "saved " + path, nil
		})
		if err != nil {
			return err
		}

		saveResults(ctx, "backup", results)
		return printSummary(results)
	},
}
