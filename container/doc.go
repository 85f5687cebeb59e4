// Package container provides a Symfony-style service container for Go:
// a string-keyed registry of services and configuration parameters, with
// constructor autowiring.
//
// # Overview
//
// A Container owns two independent stores. The service store maps ids to
// descriptors — either pre-built values or constructor functions resolved
// lazily on first Get. The parameter store maps ids to arbitrary
// configuration values. Each entry can be locked at registration time, after
// which it can never be replaced or removed.
//
// Because Go exposes no constructor metadata on types, the constructor
// function itself stands in for the class name: its formal parameter list,
// read via reflection, is the wiring specification.
//
// # Registration
//
//	c := container.New()
//
//	// Pre-built value — every Get returns the same handle
//	// Symfony: $container->setService('config', $config)
//	c.Set("config", container.Value(cfg), false)
//
//	// Lazily constructed — dependencies autowired on every Get
//	// Symfony: service definition resolved by the container
//	c.Set("mailer", container.Constructor(NewMailer), false)
//
//	// Locked — frozen against replacement and removal
//	c.Set("kernel.clock", container.Value(clock), true)
//
//	// Unset — nil removes an (unlocked) entry
//	c.Set("mailer", nil, false)
//
//	// Parameters — a separate namespace, same lock discipline
//	c.SetParameter("mailer.transport", "smtp", false)
//
// The id "service_container" is reserved and can never be registered.
//
// # Autowiring
//
// Get walks the constructor's parameters in declaration order. A parameter
// of pointer, interface, or struct kind is matched against the registered
// descriptors' produced types and resolved recursively; any other kind
// (string, int, slice, ...) takes the default declared on the descriptor:
//
//	func NewNewsletter(m *Mailer, batchSize int) *Newsletter { ... }
//
//	c.Set("mailer", container.Constructor(NewMailer), false)
//	c.Set("newsletter", container.Constructor(NewNewsletter).WithDefault(1, 100), false)
//
//	n, err := container.Resolve[*Newsletter](c, "newsletter")
//
// A class-typed parameter with no registered match fails with NotFound; a
// non-class parameter with no default fails with ContainerError; a circular
// constructor chain fails fast with CyclicDependencyError.
//
// # Explicit bindings
//
// The type index requires one id per concrete type. When that does not hold,
// or a parameter is an interface, bind the parameter explicitly:
//
//	c.When("newsletter").Needs(container.TypeOf[*Mailer]()).Use("smtp.mailer")
//	c.When("newsletter").Needs(container.TypeOf[int]()).UseValue(500)
//
// # Service providers
//
//	type AppServiceProvider struct{ container.BaseProvider }
//
//	func (p *AppServiceProvider) Register(c *container.Container) error {
//	    return c.Set("mailer", container.Constructor(NewMailer), false)
//	}
//
//	registry := container.NewProviderRegistry(c)
//	registry.Register(&AppServiceProvider{})
//	registry.Boot()
package container
