package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/netwalker-io/netwalker/pkg/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Pick devices interactively and run a command on them",
	Long: `Open the interactive device picker, then prompt for a command to run
on the selected devices. Selection supports filtering by name and tags.

Examples:
  nw tui`,
	RunE: func(cmd *cobra.Command, args []string) error {
		devices, err := tui.PickDevices(cfg)
		if err != nil {
			return err
		}
		if len(devices) == 0 {
			fmt.Println("No devices selected.")
			return nil
		}

		fmt.Printf("Selected: %s\n", strings.Join(devices, ", "))
		fmt.Print("Command: ")
		reader := bufio.NewReader(os.Stdin)
		line, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("reading command: %w", err)
		}
		line = strings.TrimSpace(line)
		if line == "" {
			return fmt.Errorf("no command given")
		}

		user, pass, err := credentialOverrides()
		if err != nil {
			return err
		}

		ctx := context.Background()
		results, err := newRunner().Run(ctx, devices, user, pass, execTask([]string{line}))
		if err != nil {
			return err
		}
		saveResults(ctx, "tui-run", results)
		return printSummary(results)
	},
}
