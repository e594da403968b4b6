package creds

import "fmt"

// SourceKind identifies the precedence tier that supplied a credential.
type SourceKind string

const (
	// SourceInteractive is a caller-supplied override (prompt or flag).
	SourceInteractive SourceKind = "INTERACTIVE"
	// SourceCLI is an override passed on the command line.
	SourceCLI SourceKind = "CLI"
	// SourceConfigFile is a value set in the inventory file, on a device
	// record or a group credential block.
	SourceConfigFile SourceKind = "CONFIG_FILE"
	// SourceEnvVar is a device-specific environment variable.
	SourceEnvVar SourceKind = "ENV_VAR"
	// SourceGroup is a group-level credential (the identifier is the group).
	SourceGroup SourceKind = "GROUP"
	// SourceDefault is the default fallback environment variable.
	SourceDefault SourceKind = "DEFAULT"
)

// Source records where a resolved credential came from. It is display-only
// metadata: resolution never consults it.
type Source struct {
	Value      string
	Kind       SourceKind
	Identifier string // env var name, group name, device name, or "cli"
}

// String renders the tier and identifier, e.g. "GROUP:lab" or
// "ENV_VAR:NW_PASSWORD_SW1".
func (s Source) String() string {
	if s.Identifier == "" {
		return string(s.Kind)
	}
	return fmt.Sprintf("%s:%s", s.Kind, s.Identifier)
}
