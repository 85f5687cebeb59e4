package app

import (
	"github.com/metallike/metallike-di/config"
	"github.com/metallike/metallike-di/container"
	"github.com/metallike/metallike-di/providers"
)

// Application is the top-level kernel: one container plus the provider
// registry that populates it. There is no ambient singleton — the host
// creates an Application at process start and passes it (or its container)
// to whatever needs it.
type Application struct {
	*container.Container
	Providers *container.ProviderRegistry
}

// New creates the application and registers the configuration provider.
//
//	application, err := app.New()        // loads .env
//	application, err := app.New("testdata/app.env")
func New(envFiles ...string) (*Application, error) {
	c := container.New()
	registry := container.NewProviderRegistry(c)

	a := &Application{
		Container: c,
		Providers: registry,
	}

	if err := registry.Register(&providers.ConfigServiceProvider{EnvFiles: envFiles}); err != nil {
		return nil, err
	}
	return a, nil
}

// Register adds a ServiceProvider to the application.
func (a *Application) Register(provider container.ServiceProvider) error {
	return a.Providers.Register(provider)
}

// Boot runs the Boot() phase on all registered providers.
func (a *Application) Boot() error {
	return a.Providers.Boot()
}

// Load resolves a service through the provider registry, waking deferred
// providers on first use. Prefer it over Container.Get when deferred
// providers are in play.
func (a *Application) Load(id string) (any, error) {
	return a.Providers.Load(id)
}

// Config resolves *config.Config from the container.
func (a *Application) Config() *config.Config {
	return container.MustResolve[*config.Config](a.Container, "config")
}

// Environment returns the APP_ENV value.
func (a *Application) Environment() string { return a.Config().App.Env }
func (a *Application) IsLocal() bool       { return a.Environment() == "local" }
func (a *Application) IsProduction() bool  { return a.Environment() == "production" }
func (a *Application) IsTesting() bool     { return a.Environment() == "testing" }
func (a *Application) IsDebug() bool       { return a.Config().App.Debug }
