package config_test

import (
	"os"
	"testing"

	"github.com/fluxorio/actormesh/config"
)

func TestLoadSystemConfigWithEnvOverrides(t *testing.T) {
	yamlContent := `
default_mailbox_capacity: 64
log_level: "INFO"
remote:
  node_id: "node-a"
  listen_addr: ":9000"
`
	tmpFile := "test_system_config_integration.yaml"
	if err := os.WriteFile(tmpFile, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	defer os.Remove(tmpFile)

	os.Setenv("APPMESH_REMOTE_NODE_ID", "node-from-env")
	os.Setenv("APPMESH_DEFAULT_MAILBOX_CAPACITY", "256")
	defer os.Unsetenv("APPMESH_REMOTE_NODE_ID")
	defer os.Unsetenv("APPMESH_DEFAULT_MAILBOX_CAPACITY")

	cfg, err := config.LoadSystemConfig(tmpFile)
	if err != nil {
		t.Fatalf("LoadSystemConfig failed: %v", err)
	}

	if cfg.Remote.NodeID != "node-from-env" {
		t.Errorf("Remote.NodeID = %v, want node-from-env", cfg.Remote.NodeID)
	}
	if cfg.DefaultMailboxCapacity != 256 {
		t.Errorf("DefaultMailboxCapacity = %v, want 256", cfg.DefaultMailboxCapacity)
	}
	// APPMESH_REMOTE_LISTEN_ADDR is not set, so ListenAddr should remain from file.
	if cfg.Remote.ListenAddr != ":9000" {
		t.Errorf("Remote.ListenAddr = %v, want :9000", cfg.Remote.ListenAddr)
	}
}

func TestLoadSystemConfigRejectsConflictingNATSSettings(t *testing.T) {
	yamlContent := `
default_mailbox_capacity: 64
log_level: "INFO"
remote:
  node_id: "node-a"
  nats_embedded: true
  nats_url: "nats://cluster:4222"
`
	tmpFile := "test_system_config_conflict.yaml"
	if err := os.WriteFile(tmpFile, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	defer os.Remove(tmpFile)

	if _, err := config.LoadSystemConfig(tmpFile); err == nil {
		t.Error("LoadSystemConfig should reject a config with both Remote.NATSEmbedded and Remote.NATSURL set")
	}
}

func TestLoadSystemConfigRejectsBadLogLevel(t *testing.T) {
	yamlContent := `
default_mailbox_capacity: 64
log_level: "VERBOSE"
remote:
  node_id: "node-a"
`
	tmpFile := "test_system_config_badlevel.yaml"
	if err := os.WriteFile(tmpFile, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	defer os.Remove(tmpFile)

	if _, err := config.LoadSystemConfig(tmpFile); err == nil {
		t.Error("LoadSystemConfig should reject an unrecognized log_level")
	}
}
