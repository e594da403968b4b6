package transport

import (
	"context"
	"strings"
	"testing"
	"time"
)

func TestNewClient(t *testing.T) {
	t.Run("basic params", func(t *testing.T) {
		c, err := NewClient(map[string]interface{}{
			"host":           "10.0.0.1",
			"port":           2222,
			"auth_username":  "admin",
			"auth_password":  "secret",
			"timeout_socket": 5 * time.Second,
			"transport":      "ssh",
		})
		if err != nil {
			t.Fatalf("NewClient: %v", err)
		}
		if c.Addr() != "10.0.0.1:2222" {
			t.Errorf("Addr = %q", c.Addr())
		}
		if c.config.User != "admin" {
			t.Errorf("user = %q", c.config.User)
		}
		if c.config.Timeout != 5*time.Second {
			t.Errorf("timeout = %v", c.config.Timeout)
		}
	})

	t.Run("defaults for missing port and timeout", func(t *testing.T) {
		c, err := NewClient(map[string]interface{}{"host": "10.0.0.1"})
		if err != nil {
			t.Fatalf("NewClient: %v", err)
		}
		if c.Addr() != "10.0.0.1:22" {
			t.Errorf("Addr = %q", c.Addr())
		}
		if c.config.Timeout != 30*time.Second {
			t.Errorf("timeout = %v", c.config.Timeout)
		}
	})

	t.Run("telnet rejected", func(t *testing.T) {
		_, err := NewClient(map[string]interface{}{
			"host":      "10.0.0.1",
			"transport": "telnet",
		})
		if err == nil || !strings.Contains(err.Error(), "telnet") {
			t.Errorf("expected telnet rejection, got %v", err)
		}
	})

	t.Run("missing host", func(t *testing.T) {
		if _, err := NewClient(map[string]interface{}{}); err == nil {
			t.Error("expected error for missing host")
		}
	})
}

func TestExec_NotConnected(t *testing.T) {
	c, err := NewClient(map[string]interface{}{"host": "10.0.0.1"})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := c.Exec(context.Background(), "uname -a"); err == nil {
		t.Error("Exec before Dial should fail")
	}
}

func TestClose_Idempotent(t *testing.T) {
	c, err := NewClient(map[string]interface{}{"host": "10.0.0.1"})
	if err != nil {
		t.Fatal(err)
	}
	if err := c.Close(); err != nil {
		t.Errorf("Close on unconnected client: %v", err)
	}
	if err := c.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
}
