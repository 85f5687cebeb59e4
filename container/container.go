package container

import (
	"fmt"
	"reflect"
	"sync"
)

// ReservedID is the one service id that can never be registered. The
// container itself is not a service; it is constructed once by the host and
// passed explicitly, never injected.
//
//	// Symfony: 'service_container' is reserved by sfServiceContainer
const ReservedID = "service_container"

// ── Container ─────────────────────────────────────────────────────────────────

// Container is the service registry and autowiring resolver.
//
// It owns two independent string-keyed stores — services and parameters —
// each paired with a lock-flag store. A locked entry can never be replaced
// or removed. Resolution (Get) never mutates the registry; only Set and
// SetParameter do.
//
// All operations are safe for concurrent use: a single RWMutex guards both
// stores, which is enough because registrations are expected to be rare
// relative to lookups.
type Container struct {
	mu sync.RWMutex

	// id → descriptor
	services map[string]*Descriptor

	// id → arbitrary configuration value
	parameters map[string]any

	// ids whose entry is frozen (absent means unlocked)
	lockedServices   map[string]bool
	lockedParameters map[string]bool

	// produced type → ids registered under it, in registration order.
	// Maintained incrementally on Set/unset so the resolver never scans
	// descriptor values.
	typeIndex map[reflect.Type][]string

	// service id → parameter type → explicit argument binding
	bindings map[string]map[reflect.Type]argBinding
}

// New creates an empty container.
func New() *Container {
	return &Container{
		services:         make(map[string]*Descriptor),
		parameters:       make(map[string]any),
		lockedServices:   make(map[string]bool),
		lockedParameters: make(map[string]bool),
		typeIndex:        make(map[reflect.Type][]string),
		bindings:         make(map[string]map[reflect.Type]argBinding),
	}
}

// ── Registration ──────────────────────────────────────────────────────────────

// Set registers, replaces, or unsets a service.
//
//	// Symfony: $container->setService('mailer', $mailer)
//	c.Set("mailer", container.Value(mailer), false)
//
// A nil descriptor unsets the entry. Set fails with *InvalidArgumentError
// when id is the reserved name, when the existing entry is locked, or when
// unsetting an id that was never registered.
func (c *Container) Set(id string, value *Descriptor, lock bool) error {
	if id == ReservedID {
		return invalidArgumentf("the id '%s' is reserved", ReservedID)
	}
	if id == "" {
		return invalidArgumentf("service id must not be empty")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if existing, ok := c.services[id]; ok {
		if c.lockedServices[id] {
			return invalidArgumentf("the service '%s' is locked and cannot be replaced or unset", id)
		}
		c.unindex(id, existing)
		if value == nil {
			delete(c.services, id)
			delete(c.lockedServices, id)
			return nil
		}
		c.services[id] = value
		c.setLockFlag(c.lockedServices, id, lock)
		c.index(id, value)
		return nil
	}

	if value == nil {
		return invalidArgumentf("cannot unset the service '%s': it was never registered", id)
	}

	c.services[id] = value
	c.setLockFlag(c.lockedServices, id, lock)
	c.index(id, value)
	return nil
}

// SetParameter registers, replaces, or unsets a configuration parameter.
// Same contract as Set, minus the reserved-name restriction; a nil value
// unsets the entry.
//
//	// Symfony: $container->setParameter('mailer.transport', 'smtp')
//	c.SetParameter("mailer.transport", "smtp", false)
func (c *Container) SetParameter(id string, value any, lock bool) error {
	if id == "" {
		return invalidArgumentf("parameter id must not be empty")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.parameters[id]; ok {
		if c.lockedParameters[id] {
			return invalidArgumentf("the parameter '%s' is locked and cannot be replaced or unset", id)
		}
		if value == nil {
			delete(c.parameters, id)
			delete(c.lockedParameters, id)
			return nil
		}
		c.parameters[id] = value
		c.setLockFlag(c.lockedParameters, id, lock)
		return nil
	}

	if value == nil {
		return invalidArgumentf("cannot unset the parameter '%s': it was never registered", id)
	}

	c.parameters[id] = value
	c.setLockFlag(c.lockedParameters, id, lock)
	return nil
}

// ── Membership & lock queries ─────────────────────────────────────────────────

// Has reports whether a service is currently registered. Never fails;
// an unset entry is gone for good (no tombstones).
func (c *Container) Has(id string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.services[id]
	return ok
}

// HasParameter reports whether a parameter is currently registered.
func (c *Container) HasParameter(id string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.parameters[id]
	return ok
}

// IsLocked reports whether a service entry exists and is locked.
// A missing entry is explicitly not-locked: the id stays open for later
// registration, which is intentional rather than a zero-value accident.
func (c *Container) IsLocked(id string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if _, ok := c.services[id]; !ok {
		return false
	}
	return c.lockedServices[id]
}

// IsLockedParameter reports whether a parameter entry exists and is locked.
func (c *Container) IsLockedParameter(id string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if _, ok := c.parameters[id]; !ok {
		return false
	}
	return c.lockedParameters[id]
}

// IDs returns all registered service ids (for debugging / introspection).
func (c *Container) IDs() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]string, 0, len(c.services))
	for id := range c.services {
		out = append(out, id)
	}
	return out
}

// ── Resolution ────────────────────────────────────────────────────────────────

// Get resolves a service: a pre-built value is returned as-is, a
// constructor-backed entry is instantiated with its dependencies autowired
// (see resolver.go). Fails with *NotFoundError when the id is unregistered,
// and with *ContainerError or *CyclicDependencyError when construction is
// impossible.
//
//	// Symfony: $container->getService('mailer')
//	mailer, err := c.Get("mailer")
func (c *Container) Get(id string) (any, error) {
	r := &resolution{container: c}
	return r.get(id)
}

// GetParameter returns a parameter value, or *NotFoundError.
//
//	// Symfony: $container->getParameter('mailer.transport')
func (c *Container) GetParameter(id string) (any, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.parameters[id]
	if !ok {
		return nil, &NotFoundError{ID: id, Message: "parameter is not registered"}
	}
	return v, nil
}

// ── Internals (must hold mu) ──────────────────────────────────────────────────

func (c *Container) setLockFlag(store map[string]bool, id string, lock bool) {
	if lock {
		store[id] = true
	} else {
		delete(store, id)
	}
}

func (c *Container) index(id string, d *Descriptor) {
	t, ok := d.producedType()
	if !ok {
		return
	}
	for _, existing := range c.typeIndex[t] {
		if existing == id {
			return
		}
	}
	c.typeIndex[t] = append(c.typeIndex[t], id)
}

func (c *Container) unindex(id string, d *Descriptor) {
	t, ok := d.producedType()
	if !ok {
		return
	}
	ids := c.typeIndex[t]
	for i, existing := range ids {
		if existing == id {
			c.typeIndex[t] = append(ids[:i:i], ids[i+1:]...)
			break
		}
	}
	if len(c.typeIndex[t]) == 0 {
		delete(c.typeIndex, t)
	}
}

// idsForType returns a snapshot of the ids registered under a produced type.
func (c *Container) idsForType(t reflect.Type) []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	ids := c.typeIndex[t]
	if len(ids) == 0 {
		return nil
	}
	out := make([]string, len(ids))
	copy(out, ids)
	return out
}

func (c *Container) descriptor(id string) (*Descriptor, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	d, ok := c.services[id]
	return d, ok
}

// ── Reflect helper ────────────────────────────────────────────────────────────

// TypeOf returns the reflect.Type for T, including interface types.
//
//	c.When("newsletter").Needs(container.TypeOf[Transport]()).Use("smtp")
func TypeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// ── Generics helpers ──────────────────────────────────────────────────────────

// Resolve is a generic helper that calls Get and type-asserts the result.
//
//	// Instead of: m, err := c.Get("mailer"); mailer := m.(*Mailer)
//	// Write:      mailer, err := container.Resolve[*Mailer](c, "mailer")
func Resolve[T any](c *Container, id string) (T, error) {
	var zero T
	v, err := c.Get(id)
	if err != nil {
		return zero, err
	}
	typed, ok := v.(T)
	if !ok {
		return zero, containerErrorf("the service '%s' resolved to %T, not %v", id, v, TypeOf[T]())
	}
	return typed, nil
}

// MustResolve is like Resolve but panics on failure. Reserve it for
// bootstrap code where a missing service is a programming error.
func MustResolve[T any](c *Container, id string) T {
	v, err := Resolve[T](c, id)
	if err != nil {
		panic(fmt.Sprintf("container: %v", err))
	}
	return v
}

// Parameter is a generic helper that calls GetParameter and type-asserts
// the result.
//
//	port, err := container.Parameter[string](c, "server.port")
func Parameter[T any](c *Container, id string) (T, error) {
	var zero T
	v, err := c.GetParameter(id)
	if err != nil {
		return zero, err
	}
	typed, ok := v.(T)
	if !ok {
		return zero, containerErrorf("the parameter '%s' holds %T, not %v", id, v, TypeOf[T]())
	}
	return typed, nil
}
