package lifecycle

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/c360/retain/errors"
	"github.com/c360/retain/store"
)

// State represents the current lifecycle state of a binding
type State int

const (
	// StateUninitialized indicates the binding exists but has seen no create signal
	StateUninitialized State = iota
	// StateBound indicates the binding is live: key resolved, subscription active
	StateBound
	// StateDetached indicates identity resolution failed; the binding is
	// inert and state is simply not preserved for this instance
	StateDetached
	// StateTerminated indicates the destroy signal was handled and working
	// state captured; the state is absorbing
	StateTerminated
)

// String returns a string representation of the binding state
func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateBound:
		return "bound"
	case StateDetached:
		return "detached"
	case StateTerminated:
		return "terminated"
	default:
		return "unknown"
	}
}

// RestoreFunc applies restored or live-updated state to a consumer
// instance's working state. It is called synchronously: once during OnCreate
// if a stored value exists, and again for every later write to the bound key
// while the binding is live.
type RestoreFunc[V any] func(state V)

// Binder creates lifecycle bindings against one store and one identity
// resolver. The store reference is explicit; there is no ambient or global
// store lookup.
type Binder[V any] struct {
	store    *store.Store[V]
	resolver Resolver
	logger   *slog.Logger
}

// NewBinder creates a binder. A nil logger disables logging.
func NewBinder[V any](st *store.Store[V], resolver Resolver, logger *slog.Logger) *Binder[V] {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Binder[V]{
		store:    st,
		resolver: resolver,
		logger:   logger,
	}
}

// NewBinding creates an uninitialized binding for one consumer instance.
// The instance id is for observability only; identity in the store comes
// exclusively from the resolver.
func (b *Binder[V]) NewBinding() *Binding[V] {
	return &Binding[V]{
		id:     uuid.NewString(),
		binder: b,
	}
}

// OnCreate creates a binding and immediately delivers the create signal.
// See Binding.OnCreate for semantics. The binding is returned even when the
// error is ErrUnresolvedIdentity, so the host can hand it the destroy signal
// later without special-casing.
func (b *Binder[V]) OnCreate(ctx Context, restore RestoreFunc[V]) (*Binding[V], error) {
	binding := b.NewBinding()
	err := binding.OnCreate(ctx, restore)
	return binding, err
}

// Binding associates one ephemeral consumer instance with a stable store
// key for the duration of that instance's existence. It is a small state
// machine: Uninitialized, then Bound on the create signal, then Terminated
// on the destroy signal. A resolution failure parks it in Detached instead,
// where both signals are inert (fail-open: the host keeps running, the
// instance's state is simply not preserved).
type Binding[V any] struct {
	id     string
	binder *Binder[V]

	mu    sync.Mutex
	state State
	key   string
	sub   *store.Subscription[V]
}

// ID returns the binding's instance id. It changes on every recreation;
// never use it as a store key.
func (b *Binding[V]) ID() string {
	return b.id
}

// State returns the binding's current lifecycle state.
func (b *Binding[V]) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// Key returns the resolved store key, or "" before binding or after a
// resolution failure.
func (b *Binding[V]) Key() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.key
}

// OnCreate handles the consumer instance's create signal. It resolves the
// stable key from ctx, subscribes to it, and if a stored value exists,
// applies it through restore before returning, so the instance is never
// considered ready with stale-empty state. While the binding stays bound,
// restore also receives every later write to the key.
//
// A resolution failure returns ErrUnresolvedIdentity and detaches the
// binding; any other lifecycle signal on it becomes a no-op. Calling
// OnCreate on a binding that already left Uninitialized is a programming
// error and fails with ErrBindingTerminated.
//
// restore must not call back into the binding.
func (b *Binding[V]) OnCreate(ctx Context, restore RestoreFunc[V]) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state != StateUninitialized {
		return errors.WrapInvalid(errors.ErrBindingTerminated, "lifecycle", "OnCreate",
			"create signal on a "+b.state.String()+" binding")
	}
	if restore == nil {
		return errors.WrapInvalid(fmt.Errorf("restore callback cannot be nil"),
			"lifecycle", "OnCreate", "validate callback")
	}

	key, err := b.binder.resolver.Resolve(ctx)
	if err != nil {
		b.state = StateDetached
		b.binder.logger.Warn("identity unresolved, state will not be preserved",
			"binding", b.id, "error", err)
		return errors.Wrap(err, "lifecycle", "OnCreate", "resolve identity")
	}

	sub, err := b.binder.store.Observe(key, store.Callback[V](restore))
	if err != nil {
		b.state = StateDetached
		return errors.Wrap(err, "lifecycle", "OnCreate", "observe key")
	}

	b.key = key
	b.sub = sub
	b.state = StateBound
	b.binder.logger.Debug("binding bound", "binding", b.id, "key", key)
	return nil
}

// OnDestroy handles the consumer instance's destroy signal. On a bound
// binding it tears the binding's own subscription down, captures
// workingState into the store under the resolved key for other observers
// and future lookups, and terminates the binding. The dying instance never
// receives its own capture.
//
// Destroying an already Terminated or Detached binding is a benign no-op
// and does not re-write state; host frameworks may invoke teardown hooks
// more than once. Destroying a binding that never saw a create signal is a
// programming error.
func (b *Binding[V]) OnDestroy(workingState V) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.state {
	case StateTerminated, StateDetached:
		return nil
	case StateUninitialized:
		return errors.WrapInvalid(errors.ErrBindingTerminated, "lifecycle", "OnDestroy",
			"destroy signal on a binding that was never bound")
	}

	// End our own subscription before capturing, so the capture write fans
	// out to every other observer of the key but never re-enters this
	// binding's restore callback while the binding lock is held.
	b.sub.Unsubscribe()
	b.sub = nil
	b.state = StateTerminated

	err := b.binder.store.Upsert(b.key, workingState)

	if err != nil {
		b.binder.logger.Warn("state capture failed",
			"binding", b.id, "key", b.key, "error", err)
		return errors.Wrap(err, "lifecycle", "OnDestroy", "capture state")
	}

	b.binder.logger.Debug("binding captured", "binding", b.id, "key", b.key)
	return nil
}
