package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadYAML decodes a SystemConfig from a YAML file. Decoding is
// strict: a key the schema does not know is an error, so a typo like
// "default_mailbox_capcity" fails at load time instead of silently
// leaving the default in place. An empty file is not an error and
// leaves cfg unchanged.
func LoadYAML(path string, cfg *SystemConfig) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("config: decode %s: %w", path, err)
	}
	return nil
}

// SaveYAML writes cfg to path as YAML, with a header naming the env
// override convention so a dumped file documents itself. Written 0600
// because the file may carry the remote JWT secret.
func SaveYAML(path string, cfg SystemConfig) error {
	body, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("config: marshal: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString("# actormesh node configuration\n")
	buf.WriteString("# every key can be overridden with " + DefaultEnvPrefix + "_<KEY_PATH>,\n")
	buf.WriteString("# e.g. " + DefaultEnvPrefix + "_REMOTE_NODE_ID or " + DefaultEnvPrefix + "_REMOTE_SEED_ADDRS (comma-separated)\n")
	buf.Write(body)

	if err := os.WriteFile(path, buf.Bytes(), 0600); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}
