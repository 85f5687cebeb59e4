package container

// ── ServiceProvider interface ─────────────────────────────────────────────────

// ServiceProvider populates the container before first Get — the hosting
// application's side of the contract.
//
// Every provider must implement at minimum Register().
// Boot() is called after ALL providers have been registered, making it safe
// to resolve other services inside Boot().
//
//	type MailServiceProvider struct{ container.BaseProvider }
//
//	func (p *MailServiceProvider) Register(c *container.Container) error {
//	    return c.Set("mailer", container.Constructor(NewMailer), false)
//	}
//
//	func (p *MailServiceProvider) Boot(c *container.Container) error {
//	    mailer, err := container.Resolve[*Mailer](c, "mailer")
//	    ...
//	}
type ServiceProvider interface {
	// Register adds services and parameters to the container.
	// Do NOT resolve other services here — use Boot() for that.
	Register(c *Container) error

	// Boot is called after all providers are registered.
	// Safe to resolve and use any service here.
	Boot(c *Container) error

	// Provides returns the service ids this provider registers.
	// Used for deferred (lazy) provider loading.
	// Return nil / empty slice if the provider is always eager.
	Provides() []string

	// IsDeferred returns true if this provider should be loaded lazily —
	// only when one of its Provides() ids is first looked up through the
	// ProviderRegistry.
	IsDeferred() bool
}

// ── BaseProvider ──────────────────────────────────────────────────────────────

// BaseProvider is an embeddable struct that provides no-op implementations
// of Boot(), Provides(), and IsDeferred().
// Embed it in your provider and only override what you need.
type BaseProvider struct{}

func (p *BaseProvider) Boot(_ *Container) error { return nil }
func (p *BaseProvider) Provides() []string      { return nil }
func (p *BaseProvider) IsDeferred() bool        { return false }

// ── ProviderRegistry ──────────────────────────────────────────────────────────

// ProviderRegistry manages registration and booting of ServiceProviders,
// including deferred (lazy) providers.
//
// The container's descriptors are inert data, so deferral lives here rather
// than in the container: a deferred provider's ids are remembered, and the
// first Load() of one of them registers (and, once booted, boots) the
// provider before delegating to Container.Get.
type ProviderRegistry struct {
	container  *Container
	eager      []ServiceProvider
	deferred   map[string]ServiceProvider // service id → provider
	booted     bool
	registered map[ServiceProvider]bool
}

// NewProviderRegistry creates a registry bound to c.
func NewProviderRegistry(c *Container) *ProviderRegistry {
	return &ProviderRegistry{
		container:  c,
		deferred:   make(map[string]ServiceProvider),
		registered: make(map[ServiceProvider]bool),
	}
}

// Register adds a provider and calls its Register() method (unless deferred).
func (r *ProviderRegistry) Register(provider ServiceProvider) error {
	if r.registered[provider] {
		return nil
	}
	r.registered[provider] = true

	if provider.IsDeferred() {
		for _, id := range provider.Provides() {
			r.deferred[id] = provider
		}
		return nil
	}

	if err := provider.Register(r.container); err != nil {
		return err
	}
	r.eager = append(r.eager, provider)

	// If already booted, boot this provider immediately
	if r.booted {
		return provider.Boot(r.container)
	}
	return nil
}

// Load resolves a service, registering its deferred provider first if the
// id belongs to one. Use it wherever a lookup must be able to wake deferred
// providers; plain Container.Get only sees what is already registered.
func (r *ProviderRegistry) Load(id string) (any, error) {
	if provider, ok := r.deferred[id]; ok && !r.container.Has(id) {
		if err := provider.Register(r.container); err != nil {
			return nil, err
		}
		for _, provided := range provider.Provides() {
			delete(r.deferred, provided)
		}
		if r.booted {
			if err := provider.Boot(r.container); err != nil {
				return nil, err
			}
		}
		r.eager = append(r.eager, provider)
	}
	return r.container.Get(id)
}

// Boot calls Boot() on all eager providers.
// Must be called after ALL providers have been registered.
func (r *ProviderRegistry) Boot() error {
	if r.booted {
		return nil
	}
	r.booted = true
	for _, provider := range r.eager {
		if err := provider.Boot(r.container); err != nil {
			return err
		}
	}
	return nil
}

// Booted returns true if Boot() has been called.
func (r *ProviderRegistry) Booted() bool { return r.booted }

// Providers returns all providers registered so far (deferred ones only
// after they have been loaded).
func (r *ProviderRegistry) Providers() []ServiceProvider { return r.eager }
