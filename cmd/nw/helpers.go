package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"syscall"
	"time"

	"golang.org/x/term"

	"github.com/netwalker-io/netwalker/pkg/cli"
	"github.com/netwalker-io/netwalker/pkg/runner"
	"github.com/netwalker-io/netwalker/pkg/transport"
	"github.com/netwalker-io/netwalker/pkg/util"
)

func green(s string) string { return cli.Green(s) }
func red(s string) string   { return cli.Red(s) }
func bold(s string) string  { return cli.Bold(s) }
func dim(s string) string   { return cli.Dim(s) }

// targetDevices resolves the -d/-g flags to a device list. Explicit -d
// names must exist; -g expands through group membership.
func targetDevices() ([]string, error) {
	if deviceArg != "" {
		var devices []string
		for _, name := range strings.Split(deviceArg, ",") {
			name = strings.TrimSpace(name)
			if name == "" {
				continue
			}
			if _, ok := cfg.Devices[name]; !ok {
				return nil, util.NewUnknownDeviceError(name)
			}
			devices = append(devices, name)
		}
		if len(devices) > 0 {
			return devices, nil
		}
	}
	if groupName != "" {
		return cfg.GetGroupMembers(groupName)
	}
	return nil, fmt.Errorf("no targets: use -d <devices>, -g <group>, or 'nw tui'")
}

// credentialOverrides prompts for interactive overrides when requested.
// Prompted values win over every configured credential source.
func credentialOverrides() (user, pass string, err error) {
	if askUser {
		fmt.Print("Username: ")
		if _, err := fmt.Scanln(&user); err != nil {
			return "", "", fmt.Errorf("reading username: %w", err)
		}
	}
	if askPassword {
		fmt.Print("Password: ")
		raw, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Println()
		if err != nil {
			return "", "", fmt.Errorf("reading password: %w", err)
		}
		pass = string(raw)
	}
	return user, pass, nil
}

// newRunner builds the bulk runner with progress display wired to the
// --no-progress flag and terminal detection.
func newRunner() *runner.Runner {
	r := runner.New(cfg, builder)
	r.Progress = !noProgress && term.IsTerminal(int(os.Stdout.Fd()))
	return r
}

// execTask returns a runner task that dials the device and executes the
// given commands in order, concatenating their output.
func execTask(commands []string) runner.Task {
	return func(ctx context.Context, device string, params map[string]interface{}) (string, error) {
		client, err := transport.NewClient(params)
		if err != nil {
			return "", err
		}
		if err := client.Dial(ctx); err != nil {
			return "", err
		}
		defer client.Close()

		var out strings.Builder
		for _, cmd := range commands {
			output, err := client.Exec(ctx, cmd)
			if err != nil {
				return out.String(), err
			}
			out.WriteString(output)
		}
		return out.String(), nil
	}
}

// printSummary renders per-device outcomes and returns an error when any
// device failed, so the process exit code reflects the run.
func printSummary(results []runner.Result) error {
	fmt.Println()
	failed := 0
	for _, res := range results {
		status := green("ok")
		if res.Err != nil {
			status = red("failed")
			failed++
		}
		fmt.Printf("%s %s %s\n", cli.DotPad(res.Device, 30), status, dim(res.Duration.Round(time.Millisecond).String()))
		if res.Err != nil {
			fmt.Printf("    %s\n", res.Err)
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d devices failed", failed, len(results))
	}
	return nil
}

// saveResults persists run results using the configured backend and prints
// where they went.
func saveResults(ctx context.Context, operation string, results []runner.Result) {
	store := runner.NewStore(&cfg.General)
	runID := runner.NewRunID(operation)
	if err := store.Save(ctx, runID, results); err != nil {
		util.Errorf("saving results: %v", err)
		return
	}
	fmt.Printf("\nResults saved as %s\n", bold(runID))
}
