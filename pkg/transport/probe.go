package transport

import (
	"context"
	"fmt"
	"time"

	probing "github.com/prometheus-community/pro-bing"

	"github.com/netwalker-io/netwalker/pkg/util"
)

// Probe checks ICMP reachability of a host before bulk operations commit
// to it. Unprivileged UDP ping, three packets.
func Probe(ctx context.Context, host string, timeout time.Duration) (time.Duration, error) {
	pinger, err := probing.NewPinger(host)
	if err != nil {
		return 0, fmt.Errorf("probe %s: %w", host, err)
	}
	pinger.SetPrivileged(false)
	pinger.Count = 3
	pinger.Timeout = timeout

	if err := pinger.RunWithContext(ctx); err != nil {
		return 0, fmt.Errorf("probe %s: %w", host, err)
	}

	stats := pinger.Statistics()
	if stats.PacketsRecv == 0 {
		return 0, fmt.Errorf("probe %s: no reply to %d packets: %w", host, stats.PacketsSent, util.ErrUnreachable)
	}
	return stats.AvgRtt, nil
}
