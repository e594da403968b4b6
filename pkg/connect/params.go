// Package connect composes resolved credentials, inventory defaults, and
// device overrides into the flat parameter map consumed by the transport
// layer.
package connect

import (
	"time"

	"github.com/netwalker-io/netwalker/pkg/config"
	"github.com/netwalker-io/netwalker/pkg/creds"
	"github.com/netwalker-io/netwalker/pkg/util"
)

// platformMap translates inventory device_type values to the driver
// platform names the transport layer expects. Types not listed pass
// through unchanged.
var platformMap = map[string]string{
	"cisco_ios":    "cisco_iosxe",
	"cisco_xe":     "cisco_iosxe",
	"mikrotik_ros": "mikrotik_routeros",
}

// genericTypes map to an empty platform: the transport layer then uses a
// generic driver with explicit prompt matching and a longer operation
// timeout instead of a named platform dialect.
var genericTypes = map[string]bool{
	"linux":   true,
	"generic": true,
}

// GenericPromptPattern matches common shell prompts (user@host paths ending
// in #, $, % or >) for devices driven without a platform dialect.
const GenericPromptPattern = `^\S+[@:][\w\-./~]+[#$%>]\s*$`

// GenericOpsTimeout is the per-operation timeout for generic-driver devices,
// which tend to run longer commands than network OS dialects.
const GenericOpsTimeout = 60 * time.Second

// Builder produces connection-parameter maps for inventory devices.
type Builder struct {
	cfg      *config.NetworkConfig
	resolver *creds.Resolver
}

// NewBuilder creates a builder over the loaded inventory. The lookup seam
// is passed through to the credential resolver; nil means the process
// environment.
func NewBuilder(cfg *config.NetworkConfig, lookup creds.LookupFunc) *Builder {
	return &Builder{cfg: cfg, resolver: creds.NewResolver(cfg, lookup)}
}

// Resolver exposes the builder's credential resolver, for provenance
// display and preflight checks.
func (b *Builder) Resolver() *creds.Resolver {
	return b.resolver
}

// BuildParams resolves credentials and composes the final parameter map:
// base values from the device record and general defaults, platform
// mapping from device_type, and the device override block applied last.
func (b *Builder) BuildParams(deviceName, usernameOverride, passwordOverride string) (map[string]interface{}, error) {
	dev, ok := b.cfg.Devices[deviceName]
	if !ok {
		return nil, util.NewUnknownDeviceError(deviceName)
	}

	user, pass, err := b.resolver.ResolveCredentials(deviceName, usernameOverride, passwordOverride)
	if err != nil {
		return nil, err
	}

	port := dev.Port
	if port == 0 {
		port = b.cfg.General.Port
	}
	timeout := time.Duration(b.cfg.General.Timeout) * time.Second

	params := map[string]interface{}{
		"host":              dev.Host,
		"auth_username":     user,
		"auth_password":     pass,
		"port":              port,
		"timeout_socket":    timeout,
		"timeout_transport": timeout,
		"transport":         b.cfg.GetTransportType(deviceName),
		"ssh_config_file":   b.cfg.General.SSHConfigFile,
	}

	switch {
	case genericTypes[dev.DeviceType]:
		params["platform"] = ""
		params["comms_prompt_pattern"] = GenericPromptPattern
		params["timeout_ops"] = GenericOpsTimeout
	default:
		params["platform"] = MapPlatform(dev.DeviceType)
	}

	applyOverrides(params, dev.Overrides)
	return params, nil
}

// MapPlatform translates a device_type to its driver platform name.
// Generic types map to the empty string; unknown types pass through.
func MapPlatform(deviceType string) string {
	if genericTypes[deviceType] {
		return ""
	}
	if mapped, ok := platformMap[deviceType]; ok {
		return mapped
	}
	return deviceType
}

// applyOverrides applies the device override block last, each field only
// when explicitly set. Timeout overwrites both timeout parameters.
func applyOverrides(params map[string]interface{}, ov *config.Overrides) {
	if ov == nil {
		return
	}
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
