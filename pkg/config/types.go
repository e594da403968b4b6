// Package config holds the in-memory inventory tree: process-wide defaults,
// per-device records, device groups, and command sequences. The tree is
// loaded once per invocation and treated as immutable afterwards; credential
// and parameter resolution over it lives in pkg/creds and pkg/connect.
package config

import (
	"os"

	"github.com/netwalker-io/netwalker/pkg/util"
)

// Default environment variables consulted by the computed credential
// accessors on GeneralConfig. NW_ is the canonical prefix; see
// GetEnvCredential for the deprecated NT_ variant.
const (
	DefaultUserEnv     = "NW_USER_DEFAULT"
	DefaultPasswordEnv = "NW_PASSWORD_DEFAULT"
)

// Transport kinds accepted by GeneralConfig.Transport and
// DeviceRecord.TransportType.
const (
	TransportSSH    = "ssh"
	TransportTelnet = "telnet"
)

// DefaultDeviceType is assumed when a device record does not name one.
const DefaultDeviceType = "mikrotik_routeros"

// GeneralConfig holds process-wide defaults for every device that does not
// override them. DefaultUser/DefaultPassword are computed accessors, not
// stored fields: they read the fallback environment variables lazily so the
// variables only need to exist when a device actually falls through to them.
type GeneralConfig struct {
	Transport            string `yaml:"transport"`
	Port                 int    `yaml:"port"`
	Timeout              int    `yaml:"timeout"` // seconds
	DefaultTransportType string `yaml:"default_transport_type"`
	RetryAttempts        int    `yaml:"retry_attempts"`
	RetryDelay           int    `yaml:"retry_delay"` // seconds between attempts
	Concurrency          int    `yaml:"concurrency"`
	BackupDir            string `yaml:"backup_dir"`
	ResultsDir           string `yaml:"results_dir"`
	ResultsFormat        string `yaml:"results_format"`  // txt, json, csv
	ResultsBackend       string `yaml:"results_backend"` // file, redis
	RedisAddr            string `yaml:"redis_addr"`
	SSHConfigFile        string `yaml:"ssh_config_file"`

	env func(string) (string, bool) // nil means os.LookupEnv
}

// SetEnvLookup replaces the environment lookup used by the credential
// accessors. Tests supply a map-backed lookup instead of mutating the
// process environment.
func (g *GeneralConfig) SetEnvLookup(lookup func(string) (string, bool)) {
	g.env = lookup
}

func (g *GeneralConfig) lookupEnv(key string) (string, bool) {
	if g.env != nil {
		return g.env(key)
	}
	return os.LookupEnv(key)
}

// DefaultUser returns the fallback username from NW_USER_DEFAULT.
// The error names the exact variable so the user knows what to set.
func (g *GeneralConfig) DefaultUser() (string, error) {
	if v, ok := g.lookupEnv(DefaultUserEnv); ok && v != "" {
		return v, nil
	}
	return "", util.NewMissingCredentialError("user", DefaultUserEnv)
}

// DefaultPassword returns the fallback password from NW_PASSWORD_DEFAULT.
func (g *GeneralConfig) DefaultPassword() (string, error) {
	if v, ok := g.lookupEnv(DefaultPasswordEnv); ok && v != "" {
		return v, nil
	}
	return "", util.NewMissingCredentialError("password", DefaultPasswordEnv)
}

// Overrides is a device-specific connection override block. Every field is
// optional; a nil pointer means "not set" and leaves the resolved value
// alone. Timeout overwrites both the socket and transport timeouts.
type Overrides struct {
	User          *string `yaml:"user,omitempty"`
	Password      *string `yaml:"password,omitempty"`
	Port          *int    `yaml:"port,omitempty"`
	Timeout       *int    `yaml:"timeout,omitempty"`
	TransportType *string `yaml:"transport_type,omitempty"`
}

// DeviceRecord describes one manageable network device.
//
// DeviceType selects the driver/platform dialect (e.g. mikrotik_routeros,
// cisco_ios). Platform is a free-form hardware tag (e.g. "RB4011", "C2960")
// and never participates in driver selection.
type DeviceRecord struct {
	Host             string              `yaml:"host"`
	DeviceType       string              `yaml:"device_type"`
	User             string              `yaml:"user,omitempty"`
	Password         string              `yaml:"password,omitempty"`
	Port             int                 `yaml:"port,omitempty"`
	TransportType    string              `yaml:"transport_type,omitempty"`
	Platform         string              `yaml:"platform,omitempty"`
	Tags             []string            `yaml:"tags,omitempty"`
	Overrides        *Overrides          `yaml:"overrides,omitempty"`
	CommandSequences map[string][]string `yaml:"command_sequences,omitempty"`
}

// HasTag reports whether the device carries the given tag.
func (d *DeviceRecord) HasTag(tag string) bool {
	for _, t := range d.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// GroupCredentials is an optional credential block on a device group.
type GroupCredentials struct {
	User     string `yaml:"user,omitempty"`
	Password string `yaml:"password,omitempty"`
}

// DeviceGroup is a named collection of devices, by explicit membership
// and/or tag matching. A device belongs to the group if it is listed in
// Members or if any of its tags appears in MatchTags.
type DeviceGroup struct {
	Description string            `yaml:"description,omitempty"`
	Members     []string          `yaml:"members,omitempty"`
	MatchTags   []string          `yaml:"match_tags,omitempty"`
	Credentials *GroupCredentials `yaml:"credentials,omitempty"`
}

// NetworkConfig is the root of the configuration tree.
type NetworkConfig struct {
	General      GeneralConfig            `yaml:"general"`
	Devices      map[string]*DeviceRecord `yaml:"devices"`
	DeviceGroups map[string]*DeviceGroup  `yaml:"device_groups,omitempty"`

	// Sequences are global command sequences, highest priority during
	// sequence resolution. VendorSequences maps a device_type to its
	// vendor-specific sequences.
	Sequences       map[string][]string            `yaml:"sequences,omitempty"`
	VendorSequences map[string]map[string][]string `yaml:"vendor_sequences,omitempty"`
}
