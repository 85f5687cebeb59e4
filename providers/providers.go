package providers

import (
	"github.com/metallike/metallike-di/config"
	"github.com/metallike/metallike-di/container"
	"github.com/metallike/metallike-di/routing"
)

// ── ConfigServiceProvider ─────────────────────────────────────────────────────

// ConfigServiceProvider loads the application configuration from .env, binds
// it into the container as the "config" service, and seeds the parameter
// store with its leaf values ("app.name", "server.port", ...).
type ConfigServiceProvider struct {
	container.BaseProvider
	EnvFiles []string
}

func (p *ConfigServiceProvider) Register(c *container.Container) error {
	cfg := config.Load(p.EnvFiles...)
	if err := c.Set("config", container.Value(cfg), false); err != nil {
		return err
	}
	return cfg.Bind(c)
}

// ── RoutingServiceProvider ────────────────────────────────────────────────────

// RoutingServiceProvider registers the HTTP router as a lazily-constructed
// service under the id "router".
type RoutingServiceProvider struct {
	container.BaseProvider
}

func (p *RoutingServiceProvider) Register(c *container.Container) error {
	return c.Set("router", container.Constructor(routing.New), false)
}
