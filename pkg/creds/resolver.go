package creds

import (
	"github.com/netwalker-io/netwalker/pkg/config"
	"github.com/netwalker-io/netwalker/pkg/util"
)

// Resolver resolves usernames and passwords for inventory devices.
//
// Resolution always runs the provenance-threading pipeline; the plain API
// is a projection that discards the sources. Precedence, highest first:
//
//  1. caller-supplied override
//  2. value on the device record
//  3. device-specific environment variable (NW_{KIND}_{DEVICE})
//  4. group credential: the group's inventory block, else the group's
//     environment variable (NW_{KIND}_{GROUP}); groups are visited in
//     sorted name order and the first provider wins
//  5. default environment variable via the GeneralConfig accessors, which
//     fail with the variable name when unset
type Resolver struct {
	cfg *config.NetworkConfig
	env *Manager
}

// NewResolver creates a resolver over the loaded inventory. A non-nil
// lookup replaces os.LookupEnv and is also wired into the GeneralConfig
// default accessors, so the whole chain sees a single environment.
func NewResolver(cfg *config.NetworkConfig, lookup LookupFunc) *Resolver {
	if lookup != nil {
		cfg.General.SetEnvLookup(func(key string) (string, bool) { return lookup(key) })
	}
	return &Resolver{cfg: cfg, env: NewManager(lookup)}
}

// Env exposes the underlying environment credential manager.
func (r *Resolver) Env() *Manager {
	return r.env
}

// ResolveCredentials resolves (username, password) for a device. Overrides
// always win when non-empty. Both values resolve or the call fails; partial
// resolution is not a state.
func (r *Resolver) ResolveCredentials(deviceName, usernameOverride, passwordOverride string) (string, string, error) {
	userSrc, passSrc, err := r.ResolveCredentialsWithSource(deviceName, usernameOverride, passwordOverride)
	if err != nil {
		return "", "", err
	}
	return userSrc.Value, passSrc.Value, nil
}

// ResolveCredentialsWithSource resolves identically to ResolveCredentials
// and pairs each value with the tier and identifier that supplied it.
func (r *Resolver) ResolveCredentialsWithSource(deviceName, usernameOverride, passwordOverride string) (Source, Source, error) {
	dev, ok := r.cfg.Devices[deviceName]
	if !ok {
		return Source{}, Source{}, util.NewUnknownDeviceError(deviceName)
	}

	userSrc, err := r.resolveOne(deviceName, dev, KindUser, usernameOverride)
	if err != nil {
		return Source{}, Source{}, err
	}
	passSrc, err := r.resolveOne(deviceName, dev, KindPassword, passwordOverride)
	if err != nil {
		return Source{}, Source{}, err
	}
	return userSrc, passSrc, nil
}

// tierFunc is one step of the precedence chain. A nil Source means "this
// tier has no value, try the next"; an error terminates resolution.
type tierFunc func() (*Source, error)

func (r *Resolver) resolveOne(deviceName string, dev *config.DeviceRecord, kind, override string) (Source, error) {
	tiers := []tierFunc{
		func() (*Source, error) { return overrideTier(override), nil },
		func() (*Source, error) { return recordTier(deviceName, dev, kind), nil },
		func() (*Source, error) { return r.deviceEnvTier(deviceName, kind), nil },
		func() (*Source, error) { return r.groupTier(deviceName, kind), nil },
		func() (*Source, error) { return r.defaultTier(kind) },
	}
	for _, tier := range tiers {
		src, err := tier()
		if err != nil {
			return Source{}, err
		}
		if src != nil {
			return *src, nil
		}
	}
	// The default tier either yields a value or errors.
	panic("creds: precedence chain fell through")
}

func overrideTier(override string) *Source {
	if override == "" {
		return nil
	}
	return &Source{Value: override, Kind: SourceInteractive, Identifier: "cli"}
}

func recordTier(deviceName string, dev *config.DeviceRecord, kind string) *Source {
	var value string
	switch kind {
	case KindUser:
		value = dev.User
	case KindPassword:
		value = dev.Password
	}
	if value == "" {
		return nil
	}
	return &Source{Value: value, Kind: SourceConfigFile, Identifier: deviceName}
}

func (r *Resolver) deviceEnvTier(deviceName, kind string) *Source {
	value, envVar, ok := r.env.DeviceSpecific(deviceName, kind)
	if !ok {
		return nil
	}
	return &Source{Value: value, Kind: SourceEnvVar, Identifier: envVar}
}

// groupTier visits the device's groups in sorted name order. Within a
// group the inventory credential block wins over the group's environment
// variable, mirroring the device-level ordering of record before env.
func (r *Resolver) groupTier(deviceName, kind string) *Source {
	for _, groupName := range r.cfg.GetDeviceGroups(deviceName) {
		group := r.cfg.DeviceGroups[groupName]
		if group.Credentials != nil {
			var value string
			switch kind {
			case KindUser:
				value = group.Credentials.User
			case KindPassword:
				value = group.Credentials.Password
			}
			if value != "" {
				return &Source{Value: value, Kind: SourceConfigFile, Identifier: "group/" + groupName}
			}
		}
		if value, _, ok := r.env.GroupSpecific(groupName, kind); ok {
			return &Source{Value: value, Kind: SourceGroup, Identifier: groupName}
		}
	}
	return nil
}

func (r *Resolver) defaultTier(kind string) (*Source, error) {
	var value string
	var err error
	switch kind {
	case KindUser:
		value, err = r.cfg.General.DefaultUser()
	case KindPassword:
		value, err = r.cfg.General.DefaultPassword()
	}
	if err != nil {
		return nil, err
	}
	return &Source{Value: value, Kind: SourceDefault, Identifier: DefaultEnvVarName(kind)}, nil
}
