// Package creds resolves device credentials through the precedence chain:
// caller override, device record, device environment variable, group
// credential (inventory block or group environment variable), then the
// default environment variable. Every resolution carries provenance so
// `nw info` can show where each value came from.
package creds

import (
	"os"
	"strings"
)

// Credential kinds. The kind is embedded verbatim in environment variable
// names, so these are uppercase by contract.
const (
	KindUser     = "USER"
	KindPassword = "PASSWORD"
)

// LookupFunc is the environment lookup seam. Production code uses
// os.LookupEnv; tests supply a map-backed lookup.
type LookupFunc func(key string) (string, bool)

// MapLookup adapts a plain map to a LookupFunc, for tests and for callers
// that snapshot the environment.
func MapLookup(env map[string]string) LookupFunc {
	return func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

// EnvVarName builds the canonical credential variable name for a target:
// NW_{KIND}_{TARGET}, target uppercased with hyphens mapped to underscores.
// The convention is bit-exact; nothing else may normalize differently.
func EnvVarName(kind, target string) string {
	return "NW_" + kind + "_" + strings.ReplaceAll(strings.ToUpper(target), "-", "_")
}

// DefaultEnvVarName builds the default fallback variable name for a kind.
func DefaultEnvVarName(kind string) string {
	return "NW_" + kind + "_DEFAULT"
}

// Manager is the stateless environment-variable credential lookup.
type Manager struct {
	lookup LookupFunc
}

// NewManager creates a manager; a nil lookup means os.LookupEnv.
func NewManager(lookup LookupFunc) *Manager {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	return &Manager{lookup: lookup}
}

// Credential looks up the target-specific variable and falls back to the
// kind's default variable. Returns the value, the variable that supplied
// it, and whether either was set.
func (m *Manager) Credential(target, kind string) (value, envVar string, ok bool) {
	if v, name, ok := m.TargetSpecific(target, kind); ok {
		return v, name, true
	}
	name := DefaultEnvVarName(kind)
	if v, ok := m.lookup(name); ok && v != "" {
		return v, name, true
	}
	return "", "", false
}

// TargetSpecific looks up only the target-specific variable, with no
// default fallback. Callers that must distinguish "this target defines it"
// from "the default provides it" (the ambiguity guard) use this form.
func (m *Manager) TargetSpecific(target, kind string) (value, envVar string, ok bool) {
	name := EnvVarName(kind, target)
	if v, ok := m.lookup(name); ok && v != "" {
		return v, name, true
	}
	return "", "", false
}

// DeviceSpecific looks up the device's own variable, no default fallback.
func (m *Manager) DeviceSpecific(device, kind string) (value, envVar string, ok bool) {
	return m.TargetSpecific(device, kind)
}

// GroupSpecific looks up a group's variable, no default fallback.
func (m *Manager) GroupSpecific(group, kind string) (value, envVar string, ok bool) {
	return m.TargetSpecific(group, kind)
}
