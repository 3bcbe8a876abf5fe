package lifecycle

import (
	"fmt"

	"github.com/c360/retain/errors"
)

// Context carries the information an identity resolver derives a stable key
// from: a slot name, a position, a caller-supplied id. It is supplied by the
// host at create time and must describe the logical slot, never the instance
// itself, since the instance is recreated with a fresh memory identity.
type Context map[string]any

// Resolver maps a transient consumer instance's context to a stable store
// key that survives destroy/recreate cycles. Resolve must be deterministic
// and free of side effects.
type Resolver interface {
	Resolve(ctx Context) (string, error)
}

// ResolverFunc adapts a plain function to the Resolver interface.
type ResolverFunc func(ctx Context) (string, error)

// Resolve implements Resolver.
func (f ResolverFunc) Resolve(ctx Context) (string, error) {
	return f(ctx)
}

// DefaultSlotField is the context field SlotResolver reads when no field
// name is configured.
const DefaultSlotField = "slot"

// SlotResolver derives the key from a single named context field. Each
// logical slot gets its own key, so two simultaneously live instances in
// different slots never overwrite each other's state.
type SlotResolver struct {
	// Field is the context field holding the slot identifier.
	// Empty means DefaultSlotField.
	Field string
}

// Resolve implements Resolver. String, integer, and fmt.Stringer values are
// accepted; anything else, or a missing or empty value, fails with
// ErrUnresolvedIdentity.
func (r SlotResolver) Resolve(ctx Context) (string, error) {
	field := r.Field
	if field == "" {
		field = DefaultSlotField
	}

	raw, ok := ctx[field]
	if !ok {
		return "", errors.WrapInvalid(errors.ErrUnresolvedIdentity, "lifecycle", "Resolve",
			fmt.Sprintf("context field %q missing", field))
	}

	var key string
	switch v := raw.(type) {
	case string:
		key = v
	case int:
		key = fmt.Sprintf("%d", v)
	case int64:
		key = fmt.Sprintf("%d", v)
	case uint64:
		key = fmt.Sprintf("%d", v)
	case fmt.Stringer:
		key = v.String()
	default:
		return "", errors.WrapInvalid(errors.ErrUnresolvedIdentity, "lifecycle", "Resolve",
			fmt.Sprintf("context field %q has unsupported type %T", field, raw))
	}

	if key == "" {
		return "", errors.WrapInvalid(errors.ErrUnresolvedIdentity, "lifecycle", "Resolve",
			fmt.Sprintf("context field %q is empty", field))
	}

	return key, nil
}

// PrefixResolver wraps another resolver and namespaces its keys, so that
// multiple consumer types sharing one store cannot collide on slot names.
type PrefixResolver struct {
	Prefix string
	Next   Resolver
}

// Resolve implements Resolver.
func (r PrefixResolver) Resolve(ctx Context) (string, error) {
	if r.Next == nil {
		return "", errors.WrapInvalid(errors.ErrUnresolvedIdentity, "lifecycle", "Resolve",
			"prefix resolver has no inner resolver")
	}
	key, err := r.Next.Resolve(ctx)
	if err != nil {
		return "", err
	}
	if r.Prefix == "" {
		return key, nil
	}
	return r.Prefix + "/" + key, nil
}
