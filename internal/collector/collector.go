// Package collector obtains device configurations over SSH and discovers
// manageable devices on the network. It feeds the loader and repository
// layers; the analysis engine itself never performs I/O.
package collector

import (
	"log"
	"time"
)

// Credentials holds the authentication material for device access. A key
// file takes precedence over a password when both are set.
type Credentials struct {
	Username      string
	Password      string
	KeyFile       string
	KeyPassphrase string
}

// Collector fetches running configurations from devices and scans for new
// ones.
type Collector struct {
	creds          Credentials
	port           int
	connectTimeout time.Duration
	commandTimeout time.Duration
	command        string
	logger         *log.Logger
}

// Option configures a Collector.
type Option func(*Collector)

// WithPort sets the SSH port.
func WithPort(port int) Option {
	return func(c *Collector) { c.port = port }
}

// WithConnectTimeout sets the dial and handshake timeout.
func WithConnectTimeout(d time.Duration) Option {
	return func(c *Collector) { c.connectTimeout = d }
}

// WithCommandTimeout bounds a single remote command.
func WithCommandTimeout(d time.Duration) Option {
	return func(c *Collector) { c.commandTimeout = d }
}

// WithCommand overrides the command used to read the running config.
func WithCommand(cmd string) Option {
	return func(c *Collector) { c.command = cmd }
}

// WithLogger sets the collector's logger.
func WithLogger(logger *log.Logger) Option {
	return func(c *Collector) { c.logger = logger }
}

// NewCollector creates a collector with sensible defaults: SSH on port 22,
// 10 second connects, 30 second commands, "show running-config".
func NewCollector(creds Credentials, opts ...Option) *Collector {
	c := &Collector{
		creds:          creds,
		port:           22,
		connectTimeout: 10 * time.Second,
		commandTimeout: 30 * time.Second,
		command:        "show running-config",
		logger:         log.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}
