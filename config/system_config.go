package config

import (
	"github.com/google/uuid"

	"github.com/fluxorio/actormesh/actorlog"
	"github.com/fluxorio/actormesh/remote"
)

// SystemConfig is the on-disk shape of an actor System's tunables.
// LoadSystemConfig resolves it from file, environment, and defaults;
// ActorOptions/Logger then turn it into what actor.NewSystem expects
// without actor importing config (config depends on actor's neighbour
// actorlog only, never on actor itself, to avoid an import cycle
// between the two).
type SystemConfig struct {
	DefaultMailboxCapacity int    `yaml:"default_mailbox_capacity" json:"default_mailbox_capacity"`
	LogLevel               string `yaml:"log_level" json:"log_level"`
	LogJSON                bool   `yaml:"log_json" json:"log_json"`

	Remote RemoteConfig `yaml:"remote" json:"remote"`
}

// RemoteConfig configures the mesh transport layer.
type RemoteConfig struct {
	NodeID       string   `yaml:"node_id" json:"node_id"`
	ListenAddr   string   `yaml:"listen_addr" json:"listen_addr"`
	SeedAddrs    []string `yaml:"seed_addrs" json:"seed_addrs"`
	JWTSecret    string   `yaml:"jwt_secret" json:"jwt_secret"`
	NATSURL      string   `yaml:"nats_url" json:"nats_url"`
	NATSEmbedded bool     `yaml:"nats_embedded" json:"nats_embedded"`
}

// DefaultSystemConfig returns the configuration NewSystem itself falls
// back to when no config is loaded. Remote.NodeID is seeded with a
// random uuid so a node never has to join the mesh under an empty
// identity; an operator who wants a stable name sets node_id explicitly
// and the loaded value overrides this default.
func DefaultSystemConfig() SystemConfig {
	return SystemConfig{
		DefaultMailboxCapacity: 64,
		LogLevel:               "DEBUG",
		LogJSON:                false,
		Remote: RemoteConfig{
			NodeID: uuid.NewString(),
		},
	}
}

// LoadSystemConfig loads a SystemConfig from path, applying APPMESH_*
// environment overrides, and validates it.
func LoadSystemConfig(path string) (SystemConfig, error) {
	cfg := DefaultSystemConfig()
	if err := loadFile(path, &cfg); err != nil {
		return cfg, err
	}
	if err := ApplyEnvOverrides(DefaultEnvPrefix, &cfg); err != nil {
		return cfg, err
	}
	if err := Validate(&cfg,
		RangeValidator("DefaultMailboxCapacity", 1, 1<<20),
		OneOfValidator("LogLevel", "DEBUG", "INFO", "WARN", "ERROR"),
		MutuallyExclusiveValidator("Remote.NATSEmbedded", "Remote.NATSURL"),
	); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// NodeConfig converts this config's Remote section into the shape
// remote.NewNode expects, so loading a SystemConfig is the one place
// an operator needs to touch to stand up both the actor system and its
// remote adapter.
func (r RemoteConfig) NodeConfig() remote.NodeConfig {
	return remote.NodeConfig{
		NodeID:     r.NodeID,
		ListenAddr: r.ListenAddr,
		SeedAddrs:  r.SeedAddrs,
		JWTSecret:  r.JWTSecret,
	}
}

// Logger builds the actorlog.Logger this config describes: LogLevel
// becomes the emission threshold and LogJSON picks the encoding. A
// non-nil tee additionally keeps every emitted entry in a ring the
// admin surface can serve back.
func (c SystemConfig) Logger(tee *actorlog.Ring) actorlog.Logger {
	return actorlog.New(actorlog.Config{
		Level: actorlog.ParseLevel(c.LogLevel),
		JSON:  c.LogJSON,
		Tee:   tee,
	})
}

// ActorOptions returns the actor.Options this config describes, ready
// to pass to actor.NewSystem. Diagnostics and Metrics are left nil for
// the caller to set, since which backend to use (memory, Postgres,
// SQLite, prometheus) is an operational choice this config does not
// carry; it only carries the tunables.
func (c SystemConfig) ActorOptions() ActorOptions {
	return ActorOptions{
		DefaultMailboxCapacity: c.DefaultMailboxCapacity,
		Log:                    c.Logger(nil),
	}
}

// ActorOptions mirrors actor.Options's field names so config never
// needs to import the actor package (which would create an import
// cycle, since actor's own tests would want to load a SystemConfig).
// Callers assign these fields onto an actor.Options literal directly.
type ActorOptions struct {
	DefaultMailboxCapacity int
	Log                    actorlog.Logger
}
