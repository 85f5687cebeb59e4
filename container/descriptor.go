package container

import (
	"reflect"
)

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// ── Descriptor ────────────────────────────────────────────────────────────────

// Descriptor describes a registered service: either an already-constructed
// value, or a constructor function invoked lazily on first Get. The two forms
// are mutually exclusive per entry.
//
//	// Symfony: $container->setService('mailer', $mailer);
//	c.Set("mailer", container.Value(mailer), false)
//
//	// Symfony: new sfServiceDefinition(Mailer::class) — resolved on first get
//	c.Set("mailer", container.Constructor(NewMailer), false)
type Descriptor struct {
	value    any
	hasValue bool

	ctor reflect.Value

	// defaults maps a constructor parameter index to the value used when
	// that parameter cannot be autowired. Only consulted for non-class
	// parameters (scalars, slices, maps, ...): a class-typed parameter
	// without a registered match fails resolution regardless of defaults.
	defaults map[int]any
}

// Value declares a pre-built service. Every Get returns the same handle.
func Value(v any) *Descriptor {
	return &Descriptor{value: v, hasValue: true}
}

// Constructor declares a lazily-built service. fn must be a function
// returning the service, or the service and an error; its parameters are
// resolved from the container on every Get (no memoization — each Get of a
// constructor-backed id produces a new instance).
//
// The function's signature is checked at resolution time, not registration
// time, so an invalid descriptor only surfaces when the service is first
// requested.
func Constructor(fn any) *Descriptor {
	return &Descriptor{ctor: reflect.ValueOf(fn)}
}

// WithDefault declares a fallback value for the constructor parameter at
// the given index, used when that parameter is not class-typed and cannot
// be autowired.
//
//	c.Set("paginator", container.Constructor(NewPaginator).WithDefault(1, 25), false)
func (d *Descriptor) WithDefault(index int, value any) *Descriptor {
	if d.defaults == nil {
		d.defaults = make(map[int]any)
	}
	d.defaults[index] = value
	return d
}

// producedType reports the concrete type this descriptor yields: the value's
// dynamic type, or the constructor's first return type. Used to maintain the
// type index; descriptors with an unusable constructor are simply not indexed.
func (d *Descriptor) producedType() (reflect.Type, bool) {
	if d.hasValue {
		if d.value == nil {
			return nil, false
		}
		return reflect.TypeOf(d.value), true
	}
	if !d.ctor.IsValid() {
		return nil, false
	}
	t := d.ctor.Type()
	if t.Kind() != reflect.Func {
		return nil, false
	}
	switch t.NumOut() {
	case 1:
		return t.Out(0), true
	case 2:
		if t.Out(1).Implements(errorType) {
			return t.Out(0), true
		}
	}
	return nil, false
}
