// Package config loads a node's SystemConfig from YAML or JSON,
// overlays APPMESH_* environment variables, and validates the result.
// It knows the SystemConfig schema explicitly: file decoding is strict
// (unknown keys are errors) and every environment override is listed
// by name rather than derived through reflection, so the full set of
// recognized variables is readable in one place.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// DefaultEnvPrefix is the environment-variable prefix LoadSystemConfig
// and ApplyEnvOverrides fall back to when the caller does not name one
// explicitly, e.g. APPMESH_REMOTE_NODE_ID overriding Remote.NodeID.
const DefaultEnvPrefix = "APPMESH"

// Validator validates a loaded configuration value.
type Validator interface {
	Validate(config interface{}) error
}

// ValidatorFunc adapts a plain function to Validator.
type ValidatorFunc func(config interface{}) error

func (f ValidatorFunc) Validate(config interface{}) error {
	return f(config)
}

// Validate runs every validator against config, stopping at the first
// failure.
func Validate(config interface{}, validators ...Validator) error {
	for _, validator := range validators {
		if err := validator.Validate(config); err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}
	}
	return nil
}

// loadFile picks the decoder by file extension, defaulting to YAML.
func loadFile(path string, cfg *SystemConfig) error {
	if strings.HasSuffix(path, ".json") {
		return LoadJSON(path, cfg)
	}
	return LoadYAML(path, cfg)
}

// ApplyEnvOverrides overlays environment variables onto cfg. Variable
// names follow the yaml key path, uppercased with dots as underscores,
// so the file and the environment spell a setting the same way:
// APPMESH_DEFAULT_MAILBOX_CAPACITY, APPMESH_REMOTE_NODE_ID,
// APPMESH_REMOTE_SEED_ADDRS (comma-separated), and so on. An empty
// prefix falls back to DefaultEnvPrefix. A variable that is set but
// empty is ignored, the same as one that is unset.
func ApplyEnvOverrides(prefix string, cfg *SystemConfig) error {
	if prefix == "" {
		prefix = DefaultEnvPrefix
	}

	overrides := []struct {
		key string
		set func(v string) error
	}{
		{"DEFAULT_MAILBOX_CAPACITY", func(v string) error { return setInt(&cfg.DefaultMailboxCapacity, v) }},
		{"LOG_LEVEL", func(v string) error { cfg.LogLevel = strings.ToUpper(v); return nil }},
		{"LOG_JSON", func(v string) error { return setBool(&cfg.LogJSON, v) }},
		{"REMOTE_NODE_ID", func(v string) error { cfg.Remote.NodeID = v; return nil }},
		{"REMOTE_LISTEN_ADDR", func(v string) error { cfg.Remote.ListenAddr = v; return nil }},
		{"REMOTE_SEED_ADDRS", func(v string) error { cfg.Remote.SeedAddrs = splitList(v); return nil }},
		{"REMOTE_JWT_SECRET", func(v string) error { cfg.Remote.JWTSecret = v; return nil }},
		{"REMOTE_NATS_URL", func(v string) error { cfg.Remote.NATSURL = v; return nil }},
		{"REMOTE_NATS_EMBEDDED", func(v string) error { return setBool(&cfg.Remote.NATSEmbedded, v) }},
	}

	for _, o := range overrides {
		envKey := prefix + "_" + o.key
		v := os.Getenv(envKey)
		if v == "" {
			continue
		}
		if err := o.set(v); err != nil {
			return fmt.Errorf("config: bad value for %s: %w", envKey, err)
		}
	}
	return nil
}

func setInt(dst *int, v string) error {
	n, err := strconv.Atoi(v)
	if err != nil {
		return err
	}
	*dst = n
	return nil
}

func setBool(dst *bool, v string) error {
	b, err := strconv.ParseBool(v)
	if err != nil {
		return err
	}
	*dst = b
	return nil
}

// splitList splits a comma-separated value, trimming whitespace and
// dropping empty elements, so "a, b,,c" parses the way an operator
// writing a one-line env var expects.
func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
