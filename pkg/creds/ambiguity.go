package creds

import (
	"errors"
	"fmt"
	"strings"
)

// ErrAmbiguousCredential is the sentinel for multi-group environment
// credential conflicts.
var ErrAmbiguousCredential = errors.New("ambiguous group credential")

// AmbiguousCredentialError reports that more than one of a device's groups
// supplies an environment-variable credential of the same kind. Silently
// picking one would make resolution depend on iteration order, so bulk
// flows treat this as a hard configuration error.
type AmbiguousCredentialError struct {
	Device string
	Kind   string
	Groups []string
}

func (e *AmbiguousCredentialError) Error() string {
	var vars []string
	for _, g := range e.Groups {
		vars = append(vars, EnvVarName(e.Kind, g))
	}
	return fmt.Sprintf(
		"ambiguous %s credential for device '%s': groups %s all provide one (%s); "+
			"set a device-specific variable (%s), consolidate group membership, or move the credential into the inventory file",
		strings.ToLower(e.Kind), e.Device,
		strings.Join(e.Groups, ", "), strings.Join(vars, ", "),
		EnvVarName(e.Kind, e.Device))
}

func (e *AmbiguousCredentialError) Unwrap() error {
	return ErrAmbiguousCredential
}

// CheckGroupEnvCredentials verifies that a device which would resolve the
// given credential kind through the environment channel is unambiguous:
// at most one of its groups may define the group-specific variable.
//
// Devices with a higher-tier source (record value or device-specific
// variable) pass unconditionally, since the group tier is never consulted
// for them. Invoked by inventory import and bulk-run preflight, not by the
// resolver itself.
func (r *Resolver) CheckGroupEnvCredentials(deviceName, kind string) error {
	dev, ok := r.cfg.Devices[deviceName]
	if ok {
		switch kind {
		case KindUser:
			if dev.User != "" {
				return nil
			}
		case KindPassword:
			if dev.Password != "" {
				return nil
			}
		}
	}
	if _, _, ok := r.env.DeviceSpecific(deviceName, kind); ok {
		return nil
	}

	var conflicting []string
	for _, groupName := range r.cfg.GetDeviceGroups(deviceName) {
		if _, _, ok := r.env.GroupSpecific(groupName, kind); ok {
			conflicting = append(conflicting, groupName)
		}
	}
	if len(conflicting) > 1 {
		return &AmbiguousCredentialError{Device: deviceName, Kind: kind, Groups: conflicting}
	}
	return nil
}

// CheckDevice runs the ambiguity guard for both credential kinds.
func (r *Resolver) CheckDevice(deviceName string) error {
	for _, kind := range []string{KindUser, KindPassword} {
		if err := r.CheckGroupEnvCredentials(deviceName, kind); err != nil {
			return err
		}
	}
	return nil
}
