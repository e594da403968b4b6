package main

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/netwalker-io/netwalker/pkg/connect"
	"github.com/netwalker-io/netwalker/pkg/transport"
)

var (
	upgradeFile   string
	upgradeReboot bool
)

// rebootCommands maps a driver platform to its reboot command. MikroTik
// installs uploaded packages during reboot; other platforms may need a
// manual install step first.
var rebootCommands = map[string]string{
	"mikrotik_routeros": "/system reboot",
	"cisco_iosxe":       "reload",
}

var upgradeCmd = &cobra.Command{
	Use:   "upgrade",
	Short: "Push a firmware image to the target devices",
	Long: `Upload a firmware image to every target device over SFTP.

With --reboot, devices are rebooted after a successful upload; on MikroTik
the uploaded package installs during the reboot.

Examples:
  nw -g branch upgrade --file routeros-7.16-arm64.npk
  nw -d core-sw1 upgrade --file routeros-7.16-arm64.npk --reboot`,
	RunE: func(cmd *cobra.Command, args []string) error {
		devices, err := targetDevices()
		if err != nil {
			return err
		}
		user, pass, err := credentialOverrides()
		if err != nil {
			return err
		}

		remoteName := filepath.Base(upgradeFile)

		ctx := context.Background()
		results, err := newRunner().Run(ctx, devices, user, pass, func(ctx context.Context, device string, params map[string]interface{}) (string, error) {
			client, err := transport.NewClient(params)
			if err != nil {
				return "", err
			}
			if err := client.Dial(ctx); err != nil {
				return "", err
			}
			defer client.Close()

			n, err := client.Push(upgradeFile, remoteName)
			if err != nil {
				return "", err
			}
			out := fmt.Sprintf("uploaded %s (%d bytes)", remoteName, n)

			if upgradeReboot {
				platform := connect.MapPlatform(cfg.Devices[device].DeviceType)
				rebootCmd, ok := rebootCommands[platform]
				if !ok {
					return out, fmt.Errorf("no reboot command for device_type '%s'", cfg.Devices[device].DeviceType)
				}
				// Reboot drops the connection; ignore the exec error.
				client.Exec(ctx, rebootCmd)
				out += ", reboot issued"
			}
			return out, nil
		})
		if err != nil {
			return err
		}

		saveResults(ctx, "upgrade", results)
		return printSummary(results)
	},
}

func init() {
	upgradeCmd.Flags().StringVar(&upgradeFile, "file", "", "Firmware image to upload (required)")
	upgradeCmd.Flags().BoolVar(&upgradeReboot, "reboot", false, "Reboot devices after upload")
	upgradeCmd.MarkFlagRequired("file")
}
