package config

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/netwalker-io/netwalker/pkg/util"
)

func mapLookup(env map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func sampleConfig() *NetworkConfig {
	cfg := &NetworkConfig{
		General: GeneralConfig{
			Transport:            TransportSSH,
			Port:                 22,
			Timeout:              30,
			DefaultTransportType: "system",
		},
		Devices: map[string]*DeviceRecord{
			"sw1":  {Host: "10.0.0.1", DeviceType: "mikrotik_routeros", Tags: []string{"lab", "edge"}},
			"sw2":  {Host: "10.0.0.2", DeviceType: "mikrotik_routeros", Tags: []string{"lab"}},
			"rtr1": {Host: "10.0.0.3", DeviceType: "cisco_ios", TransportType: "telnet"},
		},
		DeviceGroups: map[string]*DeviceGroup{
			"lab":  {MatchTags: []string{"lab"}},
			"core": {Members: []string{"rtr1", "ghost"}},
			"mix":  {Members: []string{"rtr1"}, MatchTags: []string{"edge"}},
		},
	}
	return cfg
}

func TestGetGroupMembers(t *testing.T) {
	cfg := sampleConfig()

	t.Run("tag match", func(t *testing.T) {
		members, err := cfg.GetGroupMembers("lab")
		if err != nil {
			t.Fatalf("GetGroupMembers: %v", err)
		}
		want := []string{"sw1", "sw2"}
		if !reflect.DeepEqual(members, want) {
			t.Errorf("members = %v, want %v", members, want)
		}
	})

	t.Run("explicit members filtered to existing devices", func(t *testing.T) {
		members, err := cfg.GetGroupMembers("core")
		if err != nil {
			t.Fatalf("GetGroupMembers: %v", err)
		}
		want := []string{"rtr1"}
		if !reflect.DeepEqual(members, want) {
			t.Errorf("members = %v, want %v", members, want)
		}
	})

	t.Run("union of explicit and tag match, sorted, no duplicates", func(t *testing.T) {
		members, err := cfg.GetGroupMembers("mix")
		if err != nil {
			t.Fatalf("GetGroupMembers: %v", err)
		}
		want := []string{"rtr1", "sw1"}
		if !reflect.DeepEqual(members, want) {
			t.Errorf("members = %v, want %v", members, want)
		}
	})

	t.Run("unknown group", func(t *testing.T) {
		_, err := cfg.GetGroupMembers("nope")
		if err == nil {
			t.Fatal("expected error")
		}
		var unknown *util.UnknownGroupError
		if !errors.As(err, &unknown) {
			t.Fatalf("expected UnknownGroupError, got %T", err)
		}
		want := []string{"core", "lab", "mix"}
		if !reflect.DeepEqual(unknown.Known, want) {
			t.Errorf("Known = %v, want %v", unknown.Known, want)
		}
	})
}

func TestGetDeviceGroups(t *testing.T) {
	cfg := sampleConfig()
	groups := cfg.GetDeviceGroups("sw1")
	want := []string{"lab", "mix"}
	if !reflect.DeepEqual(groups, want) {
		t.Errorf("groups = %v, want %v", groups, want)
	}
	if got := cfg.GetDeviceGroups("ghost"); got != nil {
		t.Errorf("groups for unknown device = %v, want nil", got)
	}
}

func TestGetTransportType(t *testing.T) {
	cfg := sampleConfig()
	if got := cfg.GetTransportType("rtr1"); got != "telnet" {
		t.Errorf("rtr1 transport = %q", got)
	}
	if got := cfg.GetTransportType("sw1"); got != "system" {
		t.Errorf("sw1 transport = %q, want general default", got)
	}
	if got := cfg.GetTransportType("unregistered"); got != "system" {
		t.Errorf("unknown device transport = %q, want general default", got)
	}
}

func TestResolveSequenceCommands(t *testing.T) {
	cfg := sampleConfig()
	cfg.Sequences = map[string][]string{
		"health": {"/system resource print"},
	}
	cfg.VendorSequences = map[string]map[string][]string{
		"cisco_ios": {
			"health": {"show version"},
			"vlans":  {"show vlan brief"},
		},
	}
	cfg.Devices["sw2"].CommandSequences = map[string][]string{
		"local-only": {"/ip address print"},
	}

	t.Run("global wins over vendor", func(t *testing.T) {
		got := cfg.ResolveSequenceCommands("health", "rtr1")
		if !reflect.DeepEqual(got, []string{"/system resource print"}) {
			t.Errorf("commands = %v", got)
		}
	})

	t.Run("vendor tier by device_type", func(t *testing.T) {
		got := cfg.ResolveSequenceCommands("vlans", "rtr1")
		if !reflect.DeepEqual(got, []string{"show vlan brief"}) {
			t.Errorf("commands = %v", got)
		}
	})

	t.Run("vendor tier misses for other device types", func(t *testing.T) {
		if got := cfg.ResolveSequenceCommands("vlans", "sw1"); got != nil {
			t.Errorf("commands = %v, want nil", got)
		}
	})

	t.Run("device-local tier", func(t *testing.T) {
		got := cfg.ResolveSequenceCommands("local-only", "sw1")
		if !reflect.DeepEqual(got, []string{"/ip address print"}) {
			t.Errorf("commands = %v", got)
		}
	})

	t.Run("unknown sequence", func(t *testing.T) {
		if got := cfg.ResolveSequenceCommands("nope", "sw1"); got != nil {
			t.Errorf("commands = %v, want nil", got)
		}
	})
}

func TestSequenceNames(t *testing.T) {
	cfg := sampleConfig()
	cfg.Sequences = map[string][]string{"health": nil}
	cfg.VendorSequences = map[string]map[string][]string{"cisco_ios": {"vlans": nil}}
	cfg.Devices["sw1"].CommandSequences = map[string][]string{"local": nil}

	want := []string{"health", "local", "vlans"}
	if got := cfg.SequenceNames(); !reflect.DeepEqual(got, want) {
		t.Errorf("SequenceNames = %v, want %v", got, want)
	}
}

func TestGetDeviceConnectionParams(t *testing.T) {
	t.Run("basic params with device env credential", func(t *testing.T) {
		cfg := sampleConfig()
		cfg.General.SetEnvLookup(mapLookup(map[string]string{
			"NW_USER_SW1":         "envuser",
			"NW_PASSWORD_DEFAULT": "defpass",
		}))

		params, err := cfg.GetDeviceConnectionParams("sw1", "", "")
		if err != nil {
			t.Fatalf("GetDeviceConnectionParams: %v", err)
		}
		if params["host"] != "10.0.0.1" {
			t.Errorf("host = %v", params["host"])
		}
		if params["auth_username"] != "envuser" {
			t.Errorf("auth_username = %v", params["auth_username"])
		}
		if params["auth_password"] != "defpass" {
			t.Errorf("auth_password = %v", params["auth_password"])
		}
		if params["port"] != 22 {
			t.Errorf("port = %v", params["port"])
		}
		if params["timeout_socket"] != 30*time.Second {
			t.Errorf("timeout_socket = %v", params["timeout_socket"])
		}
	})

	t.Run("overrides block applied last", func(t *testing.T) {
		cfg := sampleConfig()
		cfg.General.SetEnvLookup(mapLookup(map[string]string{
			"NW_USER_DEFAULT":     "defuser",
			"NW_PASSWORD_DEFAULT": "defpass",
		}))
		port := 2222
		timeout := 5
		user := "ovuser"
		cfg.Devices["sw1"].Overrides = &Overrides{User: &user, Port: &port, Timeout: &timeout}

		params, err := cfg.GetDeviceConnectionParams("sw1", "cli-user", "")
		if err != nil {
			t.Fatalf("GetDeviceConnectionParams: %v", err)
		}
		if params["auth_username"] != "ovuser" {
			t.Errorf("auth_username = %v, inventory overrides must win over the override argument", params["auth_username"])
		}
		if params["port"] != 2222 {
			t.Errorf("port = %v", params["port"])
		}
		if params["timeout_socket"] != 5*time.Second || params["timeout_transport"] != 5*time.Second {
			t.Errorf("timeouts = %v / %v", params["timeout_socket"], params["timeout_transport"])
		}
	})

	t.Run("missing default surfaces the variable name", func(t *testing.T) {
		cfg := sampleConfig()
		cfg.General.SetEnvLookup(mapLookup(nil))
		_, err := cfg.GetDeviceConnectionParams("sw1", "", "")
		if !errors.Is(err, util.ErrMissingCredential) {
			t.Fatalf("expected ErrMissingCredential, got %v", err)
		}
	})

	t.Run("unknown device", func(t *testing.T) {
		cfg := sampleConfig()
		_, err := cfg.GetDeviceConnectionParams("nope", "", "")
		if !errors.Is(err, util.ErrUnknownDevice) {
			t.Fatalf("expected ErrUnknownDevice, got %v", err)
		}
	})
}

func TestLegacyEnvCredential(t *testing.T) {
	cfg := sampleConfig()
	cfg.General.SetEnvLookup(mapLookup(map[string]string{
		"NT_SW1_USER":         "legacy-user",
		"NT_DEFAULT_PASSWORD": "legacy-pass",
	}))

	if v, ok := cfg.GetEnvCredential("sw1", "user"); !ok || v != "legacy-user" {
		t.Errorf("GetEnvCredential(sw1, user) = %q, %v", v, ok)
	}
	if v, ok := cfg.GetEnvCredential("sw2", "password"); !ok || v != "legacy-pass" {
		t.Errorf("GetEnvCredential(sw2, password) = %q, %v", v, ok)
	}
	if _, ok := cfg.GetEnvCredential("sw2", "user"); ok {
		t.Error("expected no legacy user for sw2")
	}
}
