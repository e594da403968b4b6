package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/netwalker-io/netwalker/pkg/cli"
	"github.com/netwalker-io/netwalker/pkg/transport"
)

var pingTimeout time.Duration

var pingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Check ICMP reachability of the target devices",
	Long: `Probe every target device with ICMP before committing to a bulk
operation. No credentials are needed.

Examples:
  nw -g lab ping
  nw -d core-sw1,lab-rtr1 ping --timeout 2s`,
	RunE: func(cmd *cobra.Command, args []string) error {
		devices, err := targetDevices()
		if err != nil {
			return err
		}

		type outcome struct {
			rtt time.Duration
			err error
		}
		outcomes := make([]outcome, len(devices))

		g, ctx := errgroup.WithContext(context.Background())
		g.SetLimit(cfg.General.Concurrency)
		for i, device := range devices {
			g.Go(func() error {
				rtt, err := transport.Probe(ctx, cfg.Devices[device].Host, pingTimeout)
				outcomes[i] = outcome{rtt: rtt, err: err}
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}

		unreachable := 0
		for i, device := range devices {
			if outcomes[i].err != nil {
				unreachable++
				fmt.Printf("%s %s\n", cli.DotPad(device, 30), red("unreachable"))
				continue
			}
			fmt.Printf("%s %s %s\n", cli.DotPad(device, 30), green("ok"), dim(outcomes[i].rtt.Round(time.Millisecond).String()))
		}
		if unreachable > 0 {
			return fmt.Errorf("%d of %d devices unreachable", unreachable, len(devices))
		}
		return nil
	},
}

func init() {
	pingCmd.Flags().DurationVar(&pingTimeout, "timeout", 3*time.Second, "Per-device probe timeout")
}
