package container

import (
	"fmt"
	"reflect"
)

// argBinding pins one constructor parameter of one service to a specific
// registered id (or a literal value), overriding the type index.
type argBinding struct {
	serviceID string
	value     any
	literal   bool
}

// BindingBuilder implements the fluent explicit-binding API.
//
// The resolver normally matches a class-typed parameter against the type
// index, which requires exactly one id per concrete type. When several ids
// produce the same type — or when a parameter is an interface whose
// implementation is registered under a concrete type — bind the parameter
// explicitly:
//
//	c.When("newsletter").Needs(container.TypeOf[*Mailer]()).Use("smtp.mailer")
//	c.When("newsletter").Needs(container.TypeOf[string]()).UseValue("no-reply@example.org")
type BindingBuilder struct {
	container *Container
	id        string
	needs     reflect.Type
}

// When starts an explicit binding chain for the named service.
func (c *Container) When(id string) *BindingBuilder {
	return &BindingBuilder{container: c, id: id}
}

// Needs selects which constructor parameter type the binding applies to.
func (b *BindingBuilder) Needs(t reflect.Type) *BindingBuilder {
	b.needs = t
	return b
}

// Use resolves the selected parameter from the given service id.
func (b *BindingBuilder) Use(serviceID string) {
	b.store(argBinding{serviceID: serviceID})
}

// UseValue supplies the selected parameter directly, no registry lookup.
func (b *BindingBuilder) UseValue(v any) {
	b.store(argBinding{value: v, literal: true})
}

func (b *BindingBuilder) store(binding argBinding) {
	if b.needs == nil {
		panic(fmt.Sprintf("container: When(%q) binding stored without Needs()", b.id))
	}

	b.container.mu.Lock()
	defer b.container.mu.Unlock()

	if _, ok := b.container.bindings[b.id]; !ok {
		b.container.bindings[b.id] = make(map[reflect.Type]argBinding)
	}
	b.container.bindings[b.id][b.needs] = binding
}

// lookupBinding returns the explicit binding for (service id, parameter
// type), if any. Bindings are resolver hints, not registry entries: they are
// not subject to the lock flag and Set never touches them.
func (c *Container) lookupBinding(id string, paramType reflect.Type) (argBinding, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	m, ok := c.bindings[id]
	if !ok {
		return argBinding{}, false
	}
	b, ok := m[paramType]
	return b, ok
}
