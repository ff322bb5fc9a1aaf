package tspro

import (
	"io"
	"log/slog"
	"time"
)

// Config holds Client configuration. The zero timeouts mean the client
// blocks without limit, which is the controller's expected mode.
type Config struct {
	Logger       *slog.Logger
	Port         int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

func defaultConfig() Config {
	return Config{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		Port:   Port,
	}
}

// Option is a functional option for configuring a Client.
type Option func(*Config)

// WithPort sets the port used when Connect is given an address without one.
func WithPort(port int) Option {
	return func(c *Config) { c.Port = port }
}

// WithDialTimeout bounds how long Connect waits for the TCP handshake.
func WithDialTimeout(d time.Duration) Option {
	return func(c *Config) { c.DialTimeout = d }
}

// WithReadTimeout sets an idle read deadline. A controller that stays silent
// for longer than d is treated as disconnected.
func WithReadTimeout(d time.Duration) Option {
	return func(c *Config) { c.ReadTimeout = d }
}

// WithWriteTimeout bounds each request write.
func WithWriteTimeout(d time.Duration) Option {
	return func(c *Config) { c.WriteTimeout = d }
}

// WithLogger sets the structured logger. Sent and received lines are logged
// at debug level.
func WithLogger(l *slog.Logger) Option {
	return func(c *Config) {
		if l != nil {
			c.Logger = l
		}
	}
}
