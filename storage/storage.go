// Package storage implements the uniform byte-blob façade (spec component
// K): a logical path is resolved by trying each mounted provider in
// registration order and returning the first hit. Grounded on spec 4.K
// directly; the concrete provider kinds (zip archive, plain directory,
// embedded filesystem) are resolved from original_source/Kamilo's own
// storage layer, which mounts a ".dat"/zip package and a plain directory
// side by side (see SPEC_FULL.md 3.3).
package storage

import "log"

// Provider resolves a logical path to a byte blob. Implementations never
// error: a miss is reported by ok=false, matching spec 4.K's "returns
// empty blob and logs" failure policy — the façade does the logging, not
// individual providers, so a provider miss during fallback to the next
// mount stays silent.
type Provider interface {
	// Open returns path's contents and true if this provider has it.
	Open(path string) (data []byte, ok bool)
	// Name identifies the provider for logging (e.g. "zip:assets.dat").
	Name() string
}

// Facade is a uniform lookup over an ordered list of providers. The zero
// value is a Facade with no mounts (every Open call logs a miss and
// returns an empty, non-nil blob).
type Facade struct {
	providers []Provider
}

// New creates an empty Facade. Mount providers with Mount before the
// first Open call.
func New() *Facade {
	return &Facade{}
}

// Mount appends p to the end of the provider list. Providers are tried in
// mount order; the first one to report a hit wins (spec 4.K: "try each
// mounted provider in registration order; first hit wins").
func (f *Facade) Mount(p Provider) {
	f.providers = append(f.providers, p)
}

// Providers returns the mounted providers in registration order. The
// returned slice must not be mutated by the caller.
func (f *Facade) Providers() []Provider { return f.providers }

// Open resolves path against every mounted provider in order, returning
// the first hit's bytes. A path present in no provider logs a miss and
// returns an empty, non-nil blob (spec 4.K: "Failure: returns empty blob
// and logs").
func (f *Facade) Open(path string) []byte {
	for _, p := range f.providers {
		if data, ok := p.Open(path); ok {
			return data
		}
	}
	log.Printf("storage: %q not found in any of %d mounted provider(s)", path, len(f.providers))
	return []byte{}
}

// Exists reports whether path resolves in any mounted provider, without
// logging a miss.
func (f *Facade) Exists(path string) bool {
	for _, p := range f.providers {
		if _, ok := p.Open(path); ok {
			return true
		}
	}
	return false
}
