package runner

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/netwalker-io/netwalker/pkg/config"
)

// Store persists the results of a bulk run under a run identifier.
type Store interface {
	Save(ctx context.Context, runID string, results []Result) error
}

// NewStore selects the store implied by the general config:
// results_backend "redis" when configured, file output otherwise.
func NewStore(g *config.GeneralConfig) Store {
	if g.ResultsBackend == "redis" {
		return newRedisStore(g.RedisAddr)
	}
	return &fileStore{dir: g.ResultsDir, format: g.ResultsFormat}
}

// NewRunID derives a run identifier from the operation name and the clock.
func NewRunID(operation string) string {
	return fmt.Sprintf("%s-%s", operation, time.Now().Format("20060102-150405"))
}

// fileStore writes one file per run into the results directory, in the
// configured format.
type fileStore struct {
	dir    string
	format string // txt, json, csv
}

func (s *fileStore) Save(_ context.Context, runID string, results []Result) error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("creating results dir: %w", err)
	}

	path := filepath.Join(s.dir, runID+"."+s.format)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating results file: %w", err)
	}
	defer f.Close()

	switch s.format {
	case "json":
		enc := json.NewEncoder(f)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	case "csv":
		w := csv.NewWriter(f)
		if err := w.Write([]string{"device", "attempts", "duration", "error", "output"}); err != nil {
			return err
		}
		for _, r := range results {
			row := []string{r.Device, fmt.Sprint(r.Attempts), r.Duration.String(), r.Error, r.Output}
			if err := w.Write(row); err != nil {
				return err
			}
		}
		w.Flush()
		return w.Error()
	default:
		for _, r := range results {
			fmt.Fprintf(f, "=== %s (attempts: %d, %s)\n", r.Device, r.Attempts, r.Duration.Round(time.Millisecond))
			if r.Error != "" {
				fmt.Fprintf(f, "ERROR: %s\n", r.Error)
			}
			if r.Output != "" {
				fmt.Fprintln(f, r.Output)
			}
			fmt.Fprintln(f)
		}
		return nil
	}
}
