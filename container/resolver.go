package container

import (
	"reflect"
	"slices"
	"strings"
)

// ── Resolution ────────────────────────────────────────────────────────────────

// resolution tracks one Get call: the ordered stack of ids currently being
// constructed, used both for cycle detection and for readable error chains.
// A fresh resolution is created per top-level Get; it never outlives the call
// and never holds the container's mutex across a constructor invocation.
type resolution struct {
	container *Container
	stack     []string
}

func (r *resolution) get(id string) (any, error) {
	d, ok := r.container.descriptor(id)
	if !ok {
		return nil, &NotFoundError{ID: id, Message: "service is not registered"}
	}
	return r.resolve(id, d)
}

// resolve constructs the service registered under id.
//
// Pre-built values are returned as-is. For constructor descriptors it walks
// the formal parameter list in declaration order: class-typed parameters
// (pointer, interface, or struct kinds) are matched against the type index
// and resolved recursively, everything else falls back to a declared default.
// Arguments are then passed positionally to the constructor.
func (r *resolution) resolve(id string, d *Descriptor) (any, error) {
	if slices.Contains(r.stack, id) {
		return nil, &CyclicDependencyError{Chain: append(append([]string{}, r.stack...), id)}
	}

	if d.hasValue {
		return d.value, nil
	}

	if !d.ctor.IsValid() {
		return nil, &NotFoundError{ID: id, Message: "descriptor names no value and no constructor"}
	}
	ct := d.ctor.Type()
	if ct.Kind() != reflect.Func {
		return nil, containerErrorf("the service '%s' is not instantiable: constructor is %v, not a function", id, ct)
	}
	if n := ct.NumOut(); n < 1 || n > 2 || (n == 2 && !ct.Out(1).Implements(errorType)) {
		return nil, containerErrorf("the service '%s' is not instantiable: constructor must return a value or (value, error)", id)
	}

	r.stack = append(r.stack, id)
	defer func() { r.stack = r.stack[:len(r.stack)-1] }()

	args := make([]reflect.Value, ct.NumIn())
	for i := 0; i < ct.NumIn(); i++ {
		arg, err := r.argument(id, d, i, ct.In(i))
		if err != nil {
			return nil, err
		}
		args[i] = arg
	}

	out := d.ctor.Call(args)
	if len(out) == 2 && !out[1].IsNil() {
		return nil, containerErrorf("the constructor for '%s' failed: %v", id, out[1].Interface())
	}
	return out[0].Interface(), nil
}

// argument resolves one constructor parameter.
func (r *resolution) argument(id string, d *Descriptor, index int, paramType reflect.Type) (reflect.Value, error) {
	// Explicit bindings beat everything, including the type index.
	if b, ok := r.container.lookupBinding(id, paramType); ok {
		if b.literal {
			return coerce(b.value, paramType, id, index)
		}
		dep, err := r.get(b.serviceID)
		if err != nil {
			return reflect.Value{}, err
		}
		return coerce(dep, paramType, id, index)
	}

	if !isClassType(paramType) {
		if def, ok := d.defaults[index]; ok {
			return coerce(def, paramType, id, index)
		}
		return reflect.Value{}, containerErrorf(
			"cannot resolve non-class dependency: parameter %d (%v) of '%s' has no default",
			index, paramType, id)
	}

	ids := r.container.idsForType(paramType)
	switch len(ids) {
	case 0:
		return reflect.Value{}, &NotFoundError{
			ID:      paramType.String(),
			Message: "no service registered for the type required by '" + id + "'",
		}
	case 1:
		dep, err := r.get(ids[0])
		if err != nil {
			return reflect.Value{}, err
		}
		return coerce(dep, paramType, id, index)
	default:
		return reflect.Value{}, containerErrorf(
			"ambiguous dependency: %v is registered under [%s]; disambiguate with When(%q).Needs(...).Use(...)",
			paramType, strings.Join(ids, ", "), id)
	}
}

// isClassType reports whether a constructor parameter counts as a service
// dependency. Pointers, interfaces, and structs are autowired from the
// registry; scalars, slices, maps, funcs, and channels are configuration
// and must carry a default.
func isClassType(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Struct:
		return true
	default:
		return false
	}
}

// coerce adapts a resolved value to the parameter's type, converting where
// the types are convertible (an int default for an int64 parameter, say).
func coerce(v any, paramType reflect.Type, id string, index int) (reflect.Value, error) {
	if v == nil {
		switch paramType.Kind() {
		case reflect.Pointer, reflect.Interface, reflect.Slice, reflect.Map, reflect.Func, reflect.Chan:
			return reflect.Zero(paramType), nil
		}
		return reflect.Value{}, containerErrorf(
			"parameter %d of '%s' is %v and cannot take a nil value", index, id, paramType)
	}
	rv := reflect.ValueOf(v)
	if rv.Type().AssignableTo(paramType) {
		return rv, nil
	}
	if rv.Type().ConvertibleTo(paramType) {
		return rv.Convert(paramType), nil
	}
	return reflect.Value{}, containerErrorf(
		"parameter %d of '%s' is %v, but the resolved value is %T", index, id, paramType, v)
}
