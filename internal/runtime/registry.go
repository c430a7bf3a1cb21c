// Package runtime is the Go-side reference implementation of the
// runtime support library the emitted C program links against
// (spec.md §4.1, §9 "Ad-hoc garbage collector"): operator dispatch
// that tracks every freshly allocated Par result in a registry, and a
// single critical section protecting it, cleared at phrase boundaries.
//
// The original ships a process-wide pointer registry
// (wave_garbage_alloc/register/clean/destroy) guarded by a single
// `#pragma omp critical` block, used to free strings and Par-element
// arrays between phrases. Go has no manual free, so Registry tracks
// live Par allocations instead of raw pointers — the part of the
// original's contract worth keeping is the single critical section
// guarding concurrent registration from parallel operator dispatch,
// and the phrase-boundary clearing discipline, not the memory
// reclamation itself.
package runtime

import (
	"sync"

	"wavec/internal/atom"
	"wavec/internal/value"
)

// Registry tracks every Par value allocated by operator dispatch
// during the evaluation of one or more phrases, mirroring the
// original's process-wide pointer list. A zero Registry is ready to
// use.
type Registry struct {
	mu   sync.Mutex
	live []value.Value
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// track registers a freshly produced value for later Clean, protected
// by the registry's single critical section (the Go analogue of the
// original's `#pragma omp critical` around wave_garbage_register).
func (r *Registry) track(v value.Value) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.live = append(r.live, v)
}

// Count reports how many values are currently registered.
func (r *Registry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.live)
}

// Clean drops every tracked value, mirroring wave_garbage_clean; safe
// to call from inside a parallel region since it shares the same
// critical section as track.
func (r *Registry) Clean() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.live = nil
}

// Unary evaluates value.Unary and registers the result if it is a
// freshly allocated Par (spec.md §6: "collection-valued operators
// return newly allocated element arrays registered with the runtime
// garbage-collector").
func (r *Registry) Unary(x value.Value, op atom.OpCode) (value.Value, error) {
	v, err := value.Unary(x, op)
	if err != nil {
		return value.Value{}, err
	}
	if v.Kind() == value.KindPar {
		r.track(v)
	}
	return v, nil
}

// Binary evaluates value.Binary and registers the result if it is a
// freshly allocated Par.
func (r *Registry) Binary(l, rhs value.Value, op atom.OpCode) (value.Value, error) {
	v, err := value.Binary(l, rhs, op)
	if err != nil {
		return value.Value{}, err
	}
	if v.Kind() == value.KindPar {
		r.track(v)
	}
	return v, nil
}

// RunPhrase runs fn and clears the registry afterward regardless of
// outcome, the Go equivalent of the original clearing the garbage
// collector between phrases: each phrase's Par allocations are live
// only for that phrase's evaluation.
func RunPhrase(r *Registry, fn func() error) error {
	defer r.Clean()
	return fn()
}
