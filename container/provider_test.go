package container_test

import (
	"errors"
	"testing"

	"github.com/metallike/metallike-di/container"
)

// ── stub providers ────────────────────────────────────────────────────────────

type eagerProvider struct {
	container.BaseProvider
	registerCalled bool
	bootCalled     bool
}

func (p *eagerProvider) Register(c *container.Container) error {
	p.registerCalled = true
	return c.Set("eager-svc", container.Value("eager"), false)
}

func (p *eagerProvider) Boot(c *container.Container) error {
	p.bootCalled = true
	return nil
}

// deferredProvider is lazy — only registered when "deferred-svc" is first loaded.
type deferredProvider struct {
	container.BaseProvider
	registerCalled bool
	bootCalled     bool
}

func (p *deferredProvider) Register(c *container.Container) error {
	p.registerCalled = true
	return c.Set("deferred-svc", container.Value("deferred-value"), false)
}

func (p *deferredProvider) Boot(c *container.Container) error {
	p.bootCalled = true
	return nil
}

func (p *deferredProvider) IsDeferred() bool   { return true }
func (p *deferredProvider) Provides() []string { return []string{"deferred-svc"} }

// failingProvider surfaces a registration error.
type failingProvider struct {
	container.BaseProvider
}

func (p *failingProvider) Register(c *container.Container) error {
	// Illegal: the reserved id
	return c.Set("service_container", container.Value(1), false)
}

// ── ProviderRegistry ──────────────────────────────────────────────────────────

func TestRegistry_EagerProvider_RegisterCalled(t *testing.T) {
	c := container.New()
	reg := container.NewProviderRegistry(c)

	p := &eagerProvider{}
	if err := reg.Register(p); err != nil {
		t.Fatalf("Register: %v", err)
	}

	if !p.registerCalled {
		t.Error("Register() should be called immediately for eager providers")
	}
	if !c.Has("eager-svc") {
		t.Error("eager provider's services should be registered")
	}
}

func TestRegistry_Boot_CallsBootOnce(t *testing.T) {
	c := container.New()
	reg := container.NewProviderRegistry(c)

	p := &eagerProvider{}
	_ = reg.Register(p)

	if p.bootCalled {
		t.Error("Boot() should NOT be called before registry.Boot()")
	}

	if err := reg.Boot(); err != nil {
		t.Fatalf("Boot: %v", err)
	}
	if !p.bootCalled {
		t.Error("Boot() should be called after registry.Boot()")
	}

	if err := reg.Boot(); err != nil { // second call is a no-op
		t.Fatalf("second Boot: %v", err)
	}
	if !reg.Booted() {
		t.Error("Booted() should be true after Boot()")
	}
}

func TestRegistry_RegisterAfterBoot_BootsImmediately(t *testing.T) {
	c := container.New()
	reg := container.NewProviderRegistry(c)
	_ = reg.Boot()

	p := &eagerProvider{}
	if err := reg.Register(p); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if !p.bootCalled {
		t.Error("provider registered after Boot() should be booted immediately")
	}
}

func TestRegistry_DuplicateRegister_Ignored(t *testing.T) {
	c := container.New()
	reg := container.NewProviderRegistry(c)

	p := &eagerProvider{}
	_ = reg.Register(p)
	if err := reg.Register(p); err != nil {
		t.Fatalf("second Register of the same instance: %v", err)
	}
	if len(reg.Providers()) != 1 {
		t.Errorf("Providers(): got %d, want 1", len(reg.Providers()))
	}
}

func TestRegistry_RegisterError_Surfaced(t *testing.T) {
	c := container.New()
	reg := container.NewProviderRegistry(c)

	var want *container.InvalidArgumentError
	if err := reg.Register(&failingProvider{}); !errors.As(err, &want) {
		t.Errorf("Register: got %v, want InvalidArgumentError", err)
	}
}

// ── Deferred providers ────────────────────────────────────────────────────────

func TestRegistry_DeferredProvider_NotRegisteredEagerly(t *testing.T) {
	c := container.New()
	reg := container.NewProviderRegistry(c)

	p := &deferredProvider{}
	_ = reg.Register(p)
	_ = reg.Boot()

	if p.registerCalled {
		t.Error("deferred provider Register() should not be called until Load()")
	}
	if c.Has("deferred-svc") {
		t.Error("deferred provider's services should not exist before Load()")
	}
}

func TestRegistry_DeferredProvider_LoadedOnFirstLookup(t *testing.T) {
	c := container.New()
	reg := container.NewProviderRegistry(c)

	p := &deferredProvider{}
	_ = reg.Register(p)
	_ = reg.Boot()

	got, err := reg.Load("deferred-svc")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got != "deferred-value" {
		t.Errorf("deferred-svc: got %v, want \"deferred-value\"", got)
	}
	if !p.bootCalled {
		t.Error("a deferred provider loaded after Boot() should be booted")
	}

	// Second Load goes straight to the container.
	if _, err := reg.Load("deferred-svc"); err != nil {
		t.Fatalf("second Load: %v", err)
	}
}

func TestRegistry_Load_UnknownID_NotFound(t *testing.T) {
	c := container.New()
	reg := container.NewProviderRegistry(c)

	var want *container.NotFoundError
	if _, err := reg.Load("missing"); !errors.As(err, &want) {
		t.Errorf("Load(missing): got %v, want NotFoundError", err)
	}
}

// ── BaseProvider defaults ─────────────────────────────────────────────────────

func TestBaseProvider_Defaults(t *testing.T) {
	var p container.BaseProvider
	c := container.New()

	if err := p.Boot(c); err != nil {
		t.Errorf("BaseProvider.Boot: %v", err)
	}
	if p.IsDeferred() {
		t.Error("BaseProvider.IsDeferred() should be false")
	}
	if len(p.Provides()) != 0 {
		t.Error("BaseProvider.Provides() should return an empty slice")
	}
}
