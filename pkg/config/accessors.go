package config

import (
	"sort"
	"strings"
	"time"

	"github.com/netwalker-io/netwalker/pkg/util"
)

// GetGroupMembers returns the union of a group's explicit members (filtered
// to devices that still exist) and every device whose tags intersect the
// group's match_tags, sorted and without duplicates.
func (c *NetworkConfig) GetGroupMembers(groupName string) ([]string, error) {
	group, ok := c.DeviceGroups[groupName]
	if !ok {
		return nil, util.NewUnknownGroupError(groupName, c.GroupNames())
	}

	seen := make(map[string]struct{})
	for _, name := range group.Members {
		if _, exists := c.Devices[name]; exists {
			seen[name] = struct{}{}
		}
	}
	for name, dev := range c.Devices {
		for _, tag := range group.MatchTags {
			if dev.HasTag(tag) {
				seen[name] = struct{}{}
				break
			}
		}
	}

	members := make([]string, 0, len(seen))
	for name := range seen {
		members = append(members, name)
	}
	sort.Strings(members)
	return members, nil
}

// GetDeviceGroups is the inverse lookup: every group the device belongs to,
// by explicit membership or tag match, sorted for deterministic iteration.
func (c *NetworkConfig) GetDeviceGroups(deviceName string) []string {
	var groups []string
	for groupName := range c.DeviceGroups {
		members, err := c.GetGroupMembers(groupName)
		if err != nil {
			continue
		}
		for _, m := range members {
			if m == deviceName {
				groups = append(groups, groupName)
				break
			}
		}
	}
	sort.Strings(groups)
	return groups
}

// GroupNames returns all group names, sorted.
func (c *NetworkConfig) GroupNames() []string {
	names := make([]string, 0, len(c.DeviceGroups))
	for name := range c.DeviceGroups {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DeviceNames returns all device names, sorted.
func (c *NetworkConfig) DeviceNames() []string {
	names := make([]string, 0, len(c.Devices))
	for name := range c.Devices {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetTransportType returns the device's explicit transport type, falling
// back to the general default. Unknown devices get the general default too;
// this accessor never errors.
func (c *NetworkConfig) GetTransportType(deviceName string) string {
	if dev, ok := c.Devices[deviceName]; ok && dev.TransportType != "" {
		return dev.TransportType
	}
	return c.General.DefaultTransportType
}

// ResolveSequenceCommands resolves a named command sequence with three-tier
// fallback: global sequences win, then vendor sequences matching the
// device's device_type, then any device-local definition (first across
// sorted device names). Returns nil when nothing matches.
func (c *NetworkConfig) ResolveSequenceCommands(sequenceName, deviceName string) []string {
	if cmds, ok := c.Sequences[sequenceName]; ok {
		return cmds
	}

	if deviceName != "" {
		if dev, ok := c.Devices[deviceName]; ok {
			if vendor, ok := c.VendorSequences[dev.DeviceType]; ok {
				if cmds, ok := vendor[sequenceName]; ok {
					return cmds
				}
			}
		}
	}

	for _, name := range c.DeviceNames() {
		if cmds, ok := c.Devices[name].CommandSequences[sequenceName]; ok {
			return cmds
		}
	}
	return nil
}

// SequenceNames returns the names of all known sequences across the global,
// vendor, and device tiers, sorted.
func (c *NetworkConfig) SequenceNames() []string {
	seen := make(map[string]struct{})
	for name := range c.Sequences {
		seen[name] = struct{}{}
	}
	for _, vendor := range c.VendorSequences {
		for name := range vendor {
			seen[name] = struct{}{}
		}
	}
	for _, dev := range c.Devices {
		for name := range dev.CommandSequences {
			seen[name] = struct{}{}
		}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetDeviceConnectionParams builds a connection-parameter map directly on
// the config tree, applying the same credential precedence as the resolver.
//
// Deprecated: this is the older variant kept for callers that predate
// pkg/connect.Builder. It does not apply platform mapping; new code should
// use connect.NewBuilder.
func (c *NetworkConfig) GetDeviceConnectionParams(deviceName, usernameOverride, passwordOverride string) (map[string]interface{}, error) {
	dev, ok := c.Devices[deviceName]
	if !ok {
		return nil, util.NewUnknownDeviceError(deviceName)
	}

	user, err := c.legacyResolve(deviceName, dev, "USER", usernameOverride, dev.User, c.General.DefaultUser)
	if err != nil {
		return nil, err
	}
	pass, err := c.legacyResolve(deviceName, dev, "PASSWORD", passwordOverride, dev.Password, c.General.DefaultPassword)
	if err != nil {
		return nil, err
	}

	port := dev.Port
	if port == 0 {
		port = c.General.Port
	}
	timeout := time.Duration(c.General.Timeout) * time.Second

	params := map[string]interface{}{
		"host":              dev.Host,
		"auth_username":     user,
		"auth_password":     pass,
		"port":              port,
		"timeout_socket":    timeout,
		"timeout_transport": timeout,
		"transport":         c.GetTransportType(deviceName),
		"ssh_config_file":   c.General.SSHConfigFile,
	}

	if ov := dev.Overrides; ov != nil {
		if ov.User != nil {
			params["auth_username"] = *ov.User
		}
		if ov.Password != nil {
			params["auth_password"] = *ov.Password
		}
		if ov.Port != nil {
			params["port"] = *ov.Port
		}
		if ov.Timeout != nil {
			d := time.Duration(*ov.Timeout) * time.Second
			params["timeout_socket"] = d
			params["timeout_transport"] = d
		}
		if ov.TransportType != nil {
			params["transport"] = *ov.TransportType
		}
	}

	return params, nil
}

// legacyResolve walks the credential precedence chain without provenance:
// override, device record, device env var, group credential block or group
// env var, then the general default accessor.
func (c *NetworkConfig) legacyResolve(deviceName string, dev *DeviceRecord, kind, override, recordValue string, fallback func() (string, error)) (string, error) {
	if override != "" {
		return override, nil
	}
	if recordValue != "" {
		return recordValue, nil
	}
	if v, ok := c.General.lookupEnv(nwEnvName(kind, deviceName)); ok && v != "" {
		return v, nil
	}
	for _, groupName := range c.GetDeviceGroups(deviceName) {
		group := c.DeviceGroups[groupName]
		if group.Credentials != nil {
			if kind == "USER" && group.Credentials.User != "" {
				return group.Credentials.User, nil
			}
			if kind == "PASSWORD" && group.Credentials.Password != "" {
				return group.Credentials.Password, nil
			}
		}
		if v, ok := c.General.lookupEnv(nwEnvName(kind, groupName)); ok && v != "" {
			return v, nil
		}
	}
	return fallback()
}

// nwEnvName builds the canonical NW_{KIND}_{TARGET} variable name; target
// names are uppercased with hyphens mapped to underscores.
func nwEnvName(kind, target string) string {
	return "NW_" + kind + "_" + strings.ReplaceAll(strings.ToUpper(target), "-", "_")
}

// GetEnvCredential looks up a device credential using the legacy NT_ naming
// (NT_{DEVICE}_{KIND}, falling back to NT_DEFAULT_{KIND}).
//
// Deprecated: the NW_ convention (see pkg/creds) is canonical. This lookup
// survives so environments provisioned against the old prefix keep working;
// a hit logs a migration warning.
func (c *NetworkConfig) GetEnvCredential(deviceName, kind string) (string, bool) {
	kind = strings.ToUpper(kind)
	target := strings.ReplaceAll(strings.ToUpper(deviceName), "-", "_")
	for _, name := range []string{"NT_" + target + "_" + kind, "NT_DEFAULT_" + kind} {
		if v, ok := c.General.lookupEnv(name); ok && v != "" {
			util.Warnf("credential read from legacy variable %s; rename it to the NW_%s_... form", name, kind)
			return v, true
		}
	}
	return "", false
}
