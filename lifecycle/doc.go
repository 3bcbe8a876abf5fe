// Package lifecycle binds ephemeral consumer instances to stable store
// keys, so that an instance destroyed and recreated by its host recovers
// its logical state transparently.
//
// # Model
//
// A Binder is configured once with a store, an identity Resolver, and an
// optional logger. For every consumer instance the host creates a Binding
// and forwards the host framework's two lifecycle signals:
//
//   - OnCreate(ctx, restore): resolves the stable key from the instance's
//     context, subscribes to it, and applies any stored state through
//     restore before returning.
//   - OnDestroy(workingState): captures the instance's final working state
//     into the store and tears the subscription down.
//
// The key comes from context external to the instance (slot name, position,
// caller id), never from the instance's memory identity, so recreated
// instances of the same logical slot always land on the same record.
//
// # Failure semantics
//
// Identity resolution failure is fail-open: OnCreate returns
// ErrUnresolvedIdentity, the binding detaches, and the host continues with
// state simply not preserved for that instance. Double destroy is tolerated
// as a no-op, since host frameworks may invoke teardown hooks more than
// once. Any create signal after the binding left its initial state is a
// hard ErrBindingTerminated error.
package lifecycle
