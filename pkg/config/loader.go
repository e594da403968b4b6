package config

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/netwalker-io/netwalker/pkg/util"
)

// Load reads the inventory YAML at path, loads any .env file sitting next
// to it (without overriding variables already exported), applies defaults,
// and validates cross-references.
func Load(path string) (*NetworkConfig, error) {
	if envFile := filepath.Join(filepath.Dir(path), ".env"); fileExists(envFile) {
		if err := godotenv.Load(envFile); err != nil {
			return nil, fmt.Errorf("loading %s: %w", envFile, err)
		}
		util.Debugf("loaded environment from %s", envFile)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading inventory: %w", err)
	}
	return Parse(data)
}

// Parse unmarshals an inventory document, applies defaults, and validates.
func Parse(data []byte) (*NetworkConfig, error) {
	cfg := &NetworkConfig{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing inventory: %w", err)
	}

	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *NetworkConfig) applyDefaults() {
	g := &c.General
	if g.Transport == "" {
		g.Transport = TransportSSH
	}
	if g.Port == 0 {
		g.Port = 22
	}
	if g.Timeout == 0 {
		g.Timeout = 30
	}
	if g.DefaultTransportType == "" {
		g.DefaultTransportType = "system"
	}
	if g.RetryAttempts == 0 {
		g.RetryAttempts = 1
	}
	if g.Concurrency == 0 {
		g.Concurrency = 5
	}
	if g.BackupDir == "" {
		g.BackupDir = "backups"
	}
	if g.ResultsDir == "" {
		g.ResultsDir = "results"
	}
	if g.ResultsFormat == "" {
		g.ResultsFormat = "txt"
	}
	if g.ResultsBackend == "" {
		g.ResultsBackend = "file"
	}

	if c.Devices == nil {
		c.Devices = make(map[string]*DeviceRecord)
	}
	for _, dev := range c.Devices {
		if dev.DeviceType == "" {
			dev.DeviceType = DefaultDeviceType
		}
	}
}

func (c *NetworkConfig) validate() error {
	v := &util.ValidationBuilder{}

	switch c.General.Transport {
	case TransportSSH, TransportTelnet:
	default:
		v.AddErrorf("general.transport must be '%s' or '%s', got '%s'", TransportSSH, TransportTelnet, c.General.Transport)
	}
	switch c.General.ResultsFormat {
	case "txt", "json", "csv":
	default:
		v.AddErrorf("general.results_format must be txt, json, or csv, got '%s'", c.General.ResultsFormat)
	}
	switch c.General.ResultsBackend {
	case "file", "redis":
		if c.General.ResultsBackend == "redis" && c.General.RedisAddr == "" {
			v.AddError("general.redis_addr is required when results_backend is redis")
		}
	default:
		v.AddErrorf("general.results_backend must be file or redis, got '%s'", c.General.ResultsBackend)
	}

	for name, dev := range c.Devices {
		v.Add(dev.Host != "", fmt.Sprintf("device '%s': host is required", name))
	}

	// Unknown explicit members are filtered at lookup time, not fatal here,
	// but warn so stale entries don't go unnoticed.
	for groupName, group := range c.DeviceGroups {
		for _, member := range group.Members {
			if _, ok := c.Devices[member]; !ok {
				util.Warnf("group '%s' lists unknown device '%s'", groupName, member)
			}
		}
	}

	return v.Build()
}

// ImportCSV merges devices from a CSV inventory into the tree. Expected
// header: name,host,device_type,tags,group. Tags are space-separated
// within the cell, group (optional) adds the device to an explicit group.
// Returns the names of imported devices in row order.
func (c *NetworkConfig) ImportCSV(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening CSV inventory: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing CSV inventory: %w", err)
	}
	if len(records) < 2 {
		return nil, util.NewValidationError("CSV inventory has no data rows")
	}

	col := make(map[string]int)
	for i, h := range records[0] {
		col[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, required := range []string{"name", "host"} {
		if _, ok := col[required]; !ok {
			return nil, util.NewValidationError(fmt.Sprintf("CSV inventory is missing the '%s' column", required))
		}
	}

	cell := func(row []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var imported []string
	for n, row := range records[1:] {
		name := cell(row, "name")
		host := cell(row, "host")
		if name == "" || host == "" {
			return nil, util.NewValidationError(fmt.Sprintf("CSV row %d: name and host are required", n+2))
		}

		dev := &DeviceRecord{
			Host:       host,
			DeviceType: cell(row, "device_type"),
		}
		if dev.DeviceType == "" {
			dev.DeviceType = DefaultDeviceType
		}
		if tags := cell(row, "tags"); tags != "" {
			dev.Tags = strings.Fields(tags)
		}
		c.Devices[name] = dev
		imported = append(imported, name)

		if groupName := cell(row, "group"); groupName != "" {
			if c.DeviceGroups == nil {
				c.DeviceGroups = make(map[string]*DeviceGroup)
			}
			group, ok := c.DeviceGroups[groupName]
			if !ok {
				group = &DeviceGroup{}
				c.DeviceGroups[groupName] = group
			}
			group.Members = appendUnique(group.Members, name)
		}
	}
	return imported, nil
}

func appendUnique(list []string, value string) []string {
	for _, v := range list {
		if v == value {
			return list
		}
	}
	return append(list, value)
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
