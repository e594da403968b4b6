package runner

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/netwalker-io/netwalker/pkg/config"
)

func sampleResults() []Result {
	return []Result{
		{Device: "sw1", Output: "/system resource print\nuptime: 4w2d", Attempts: 1, Duration: 120 * time.Millisecond},
		{Device: "sw2", Error: "connection refused", Attempts: 3, Duration: 9 * time.Second},
	}
}

func TestNewStore(t *testing.T) {
	if _, ok := NewStore(&config.GeneralConfig{ResultsBackend: "file"}).(*fileStore); !ok {
		t.Error("file backend should select the file store")
	}
	if _, ok := NewStore(&config.GeneralConfig{ResultsBackend: "redis", RedisAddr: "localhost:6379"}).(*redisStore); !ok {
		t.Error("redis backend should select the redis store")
	}
}

func TestFileStore_Txt(t *testing.T) {
	dir := t.TempDir()
	s := &fileStore{dir: dir, format: "txt"}

	if err := s.Save(context.Background(), "run-1", sampleResults()); err != nil {
		t.Fatalf("Save: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "run-1.txt"))
	if err != nil {
		t.Fatal(err)
	}
	text := string(data)
	for _, want := range []string{"=== sw1", "uptime: 4w2d", "=== sw2", "ERROR: connection refused"} {
		if !strings.Contains(text, want) {
			t.Errorf("txt output missing %q:\n%s", want, text)
		}
	}
}

func TestFileStore_JSON(t *testing.T) {
	dir := t.TempDir()
	s := &fileStore{dir: dir, format: "json"}

	if err := s.Save(context.Background(), "run-2", sampleResults()); err != nil {
		t.Fatalf("Save: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "run-2.json"))
	if err != nil {
		t.Fatal(err)
	}
	var decoded []Result
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("decoding: %v", err)
	}
	if len(decoded) != 2 || decoded[0].Device != "sw1" || decoded[1].Error != "connection refused" {
		t.Errorf("decoded = %+v", decoded)
	}
}

func TestFileStore_CSV(t *testing.T) {
	dir := t.TempDir()
	s := &fileStore{dir: dir, format: "csv"}

	if err := s.Save(context.Background(), "run-3", sampleResults()); err != nil {
		t.Fatalf("Save: %v", err)
	}

	f, err := os.Open(filepath.Join(dir, "run-3.csv"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("parsing: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("rows = %d", len(rows))
	}
	if rows[0][0] != "device" {
		t.Errorf("header = %v", rows[0])
	}
	if rows[1][0] != "sw1" || rows[2][3] != "connection refused" {
		t.Errorf("rows = %v", rows[1:])
	}
}

func TestFileStore_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "results")
	s := &fileStore{dir: dir, format: "txt"}
	if err := s.Save(context.Background(), "run-4", nil); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "run-4.txt")); err != nil {
		t.Errorf("results file not created: %v", err)
	}
}
