package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var importOutput string

var importCmd = &cobra.Command{
	Use:   "import <file.csv>",
	Short: "Import devices from a CSV inventory",
	Long: `Merge devices from a CSV file into the inventory. Expected columns:
name,host,device_type,tags,group. Tags are space-separated; group is optional.

Every imported device is checked for ambiguous group credentials: a device
whose groups each define a group environment variable for the same
credential kind is rejected, since resolution would otherwise depend on
iteration order.

With -o the merged inventory is written out; without it the import is a
validation dry run.

Examples:
  nw import switches.csv
  nw import switches.csv -o inventory.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		imported, err := cfg.ImportCSV(args[0])
		if err != nil {
			return err
		}

		resolver := builder.Resolver()
		for _, device := range imported {
			if err := resolver.CheckDevice(device); err != nil {
				return fmt.Errorf("import rejected: %w", err)
			}
		}

		fmt.Printf("Imported %d devices\n", len(imported))
		for _, device := range imported {
			fmt.Printf("  %s (%s)\n", device, cfg.Devices[device].Host)
		}

		if importOutput == "" {
			fmt.Println(dim("\nDry run; use -o to write the merged inventory"))
			return nil
		}

		data, err := yaml.Marshal(cfg)
		if err != nil {
			return fmt.Errorf("encoding inventory: %w", err)
		}
		if err := os.WriteFile(importOutput, data, 0600); err != nil {
			return fmt.Errorf("writing inventory: %w", err)
		}
		fmt.Printf("\nMerged inventory written to %s\n", bold(importOutput))
		return nil
	},
}

func init() {
	importCmd.Flags().StringVarP(&importOutput, "output", "o", "", "Write the merged inventory to this file")
}
