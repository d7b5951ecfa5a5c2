package tmstore

import "time"

type Config struct {
	ConnectionURL  string        `env:"REDIS_URL" yaml:"url"`                                          // ConnectionURL enables snapshots when set, e.g. "redis://:password@localhost:6379/0".
	Prefix         string        `env:"REDIS_PREFIX" envDefault:"jsonloc" yaml:"prefix"`               // Prefix namespaces snapshot keys.
	Snapshot       string        `env:"REDIS_SNAPSHOT" envDefault:"pool" yaml:"snapshot"`              // Snapshot is the name of the pool snapshot read before localizing.
	RetryAttempts  int           `env:"REDIS_RETRY_ATTEMPTS" envDefault:"3" yaml:"retry_attempts"`     // RetryAttempts is the number of connection attempts.
	RetryInterval  time.Duration `env:"REDIS_RETRY_INTERVAL" envDefault:"5s" yaml:"retry_interval"`    // RetryInterval is the pause between connection attempts.
	ConnectTimeout time.Duration `env:"REDIS_CONNECT_TIMEOUT" envDefault:"30s" yaml:"connect_timeout"` // ConnectTimeout bounds all connection attempts together.
}

// Enabled reports whether a Redis server is configured.
func (c Config) Enabled() bool {
	return c.ConnectionURL != ""
}
