package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/netwalker-io/netwalker/pkg/util"
)

const sampleInventory = `
general:
  port: 2200
devices:
  sw1:
    host: 10.0.0.1
    tags: [lab]
  rtr1:
    host: 10.0.0.2
    device_type: cisco_ios
device_groups:
  lab:
    match_tags: [lab]
`

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse([]byte(sampleInventory))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	g := cfg.General
	if g.Port != 2200 {
		t.Errorf("port = %d, explicit value must survive defaulting", g.Port)
	}
	if g.Transport != TransportSSH {
		t.Errorf("transport = %q", g.Transport)
	}
	if g.Timeout != 30 {
		t.Errorf("timeout = %d", g.Timeout)
	}
	if g.DefaultTransportType != "system" {
		t.Errorf("default_transport_type = %q", g.DefaultTransportType)
	}
	if g.RetryAttempts != 1 || g.Concurrency != 5 {
		t.Errorf("retry_attempts = %d, concurrency = %d", g.RetryAttempts, g.Concurrency)
	}
	if g.ResultsFormat != "txt" || g.ResultsBackend != "file" {
		t.Errorf("results = %q/%q", g.ResultsFormat, g.ResultsBackend)
	}
	if cfg.Devices["sw1"].DeviceType != DefaultDeviceType {
		t.Errorf("device_type = %q, want default", cfg.Devices["sw1"].DeviceType)
	}
	if cfg.Devices["rtr1"].DeviceType != "cisco_ios" {
		t.Errorf("device_type = %q", cfg.Devices["rtr1"].DeviceType)
	}
}

func TestParse_Validation(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantMsg string
	}{
		{
			name:    "bad transport",
			doc:     "general:\n  transport: carrier-pigeon\ndevices: {}\n",
			wantMsg: "general.transport",
		},
		{
			name:    "bad results format",
			doc:     "general:\n  results_format: xml\ndevices: {}\n",
			wantMsg: "general.results_format",
		},
		{
			name:    "redis backend without address",
			doc:     "general:\n  results_backend: redis\ndevices: {}\n",
			wantMsg: "redis_addr",
		},
		{
			name:    "device without host",
			doc:     "devices:\n  sw1: {}\n",
			wantMsg: "host is required",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !errors.Is(err, util.ErrValidationFailed) {
				t.Errorf("should unwrap to ErrValidationFailed: %v", err)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error %q should mention %q", err, tt.wantMsg)
			}
		})
	}
}

func TestParse_Malformed(t *testing.T) {
	if _, err := Parse([]byte("devices: [not, a, map]")); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "inventory.yaml")
	if err := os.WriteFile(path, []byte(sampleInventory), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(cfg.Devices) != 2 {
		t.Errorf("devices = %d", len(cfg.Devices))
	}

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestImportCSV(t *testing.T) {
	writeCSV := func(t *testing.T, content string) string {
		t.Helper()
		path := filepath.Join(t.TempDir(), "devices.csv")
		if err := os.WriteFile(path, []byte(content), 0600); err != nil {
			t.Fatal(err)
		}
		return path
	}

	t.Run("merge with tags and group", func(t *testing.T) {
		cfg, err := Parse([]byte(sampleInventory))
		if err != nil {
			t.Fatal(err)
		}
		path := writeCSV(t, "name,host,device_type,tags,group\n"+
			"sw3,10.0.0.3,mikrotik_ros,lab edge,lab\n"+
			"srv1,10.0.0.4,,,\n")

		imported, err := cfg.ImportCSV(path)
		if err != nil {
			t.Fatalf("ImportCSV: %v", err)
		}
		if !reflect.DeepEqual(imported, []string{"sw3", "srv1"}) {
			t.Errorf("imported = %v", imported)
		}

		sw3 := cfg.Devices["sw3"]
		if sw3 == nil || sw3.Host != "10.0.0.3" || sw3.DeviceType != "mikrotik_ros" {
			t.Fatalf("sw3 = %+v", sw3)
		}
		if !reflect.DeepEqual(sw3.Tags, []string{"lab", "edge"}) {
			t.Errorf("tags = %v", sw3.Tags)
		}
		if cfg.Devices["srv1"].DeviceType != DefaultDeviceType {
			t.Errorf("srv1 device_type = %q", cfg.Devices["srv1"].DeviceType)
		}

		members := cfg.DeviceGroups["lab"].Members
		if !reflect.DeepEqual(members, []string{"sw3"}) {
			t.Errorf("lab members = %v", members)
		}
	})

	t.Run("duplicate group membership is not repeated", func(t *testing.T) {
		cfg, err := Parse([]byte(sampleInventory))
		if err != nil {
			t.Fatal(err)
		}
		path := writeCSV(t, "name,host,group\nsw3,10.0.0.3,lab\n")
		if _, err := cfg.ImportCSV(path); err != nil {
			t.Fatal(err)
		}
		if _, err := cfg.ImportCSV(path); err != nil {
			t.Fatal(err)
		}
		if members := cfg.DeviceGroups["lab"].Members; len(members) != 1 {
			t.Errorf("members = %v", members)
		}
	})

	t.Run("missing required column", func(t *testing.T) {
		cfg, _ := Parse([]byte(sampleInventory))
		path := writeCSV(t, "name,device_type\nsw3,mikrotik_ros\n")
		if _, err := cfg.ImportCSV(path); !errors.Is(err, util.ErrValidationFailed) {
			t.Errorf("expected ErrValidationFailed, got %v", err)
		}
	})

	t.Run("row without host", func(t *testing.T) {
		cfg, _ := Parse([]byte(sampleInventory))
		path := writeCSV(t, "name,host\nsw3,\n")
		_, err := cfg.ImportCSV(path)
		if !errors.Is(err, util.ErrValidationFailed) {
			t.Fatalf("expected ErrValidationFailed, got %v", err)
		}
		if !strings.Contains(err.Error(), "row 2") {
			t.Errorf("error should locate the row: %v", err)
		}
	})

	t.Run("no data rows", func(t *testing.T) {
		cfg, _ := Parse([]byte(sampleInventory))
		path := writeCSV(t, "name,host\n")
		if _, err := cfg.ImportCSV(path); err == nil {
			t.Error("expected error for header-only file")
		}
	})
}
