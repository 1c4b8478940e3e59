// Package registry resolves, at process start, which concrete implementation
// backs each external capability. Selectors come from configuration; an
// unknown or missing selector is a fatal configuration error unless the
// capability is explicitly disabled for the deployment. Resolution happens
// once in the builder and the resulting handles live for the process
// lifetime.
package registry

import (
	"fmt"

	"github.com/sakhi-dev/sakhi-backend/internal/entity"
)

// Capability names an external dependency slot of the engine.
type Capability string

const (
	CapabilityChatModel   Capability = "chat_model"
	CapabilityTranslation Capability = "translation"
	CapabilityStorage     Capability = "storage"
	CapabilityVectorStore Capability = "vector_store"
)

var allCapabilities = map[Capability]struct{}{
	CapabilityChatModel:   {},
	CapabilityTranslation: {},
	CapabilityStorage:     {},
	CapabilityVectorStore: {},
}

// DisabledSet is the set of capabilities a deployment has explicitly opted
// out of.
type DisabledSet map[Capability]struct{}

func (d DisabledSet) Has(c Capability) bool {
	_, ok := d[c]
	return ok
}

// ParseDisabled validates the configured disabled-services list. Unknown
// names are a configuration error: a typo here must not silently disable
// provider validation.
func ParseDisabled(names []string) (DisabledSet, error) {
	set := make(DisabledSet, len(names))
	for _, name := range names {
		c := Capability(name)
		if _, ok := allCapabilities[c]; !ok {
			return nil, fmt.Errorf("%w: unknown service %q in disabled services", entity.ErrUnknownProvider, name)
		}
		set[c] = struct{}{}
	}
	return set, nil
}

// Builders maps selector keys to constructor closures for one capability.
type Builders[T any] map[string]func() (T, error)

// Resolve picks the implementation for a capability.
//
//   - A non-empty selector must name a registered builder; anything else is
//     fatal at startup.
//   - An empty selector is only legal when the capability is disabled; the
//     zero T (a nil interface) is returned as the null provider.
func Resolve[T any](capability Capability, selector string, disabled DisabledSet, builders Builders[T]) (T, error) {
	var zero T

	if selector == "" {
		if disabled.Has(capability) {
			return zero, nil
		}
		return zero, fmt.Errorf("%w: %s has no provider selected and is not disabled", entity.ErrProviderNotConfigured, capability)
	}

	build, ok := builders[selector]
	if !ok {
		return zero, fmt.Errorf("%w: %s=%q", entity.ErrUnknownProvider, capability, selector)
	}

	impl, err := build()
	if err != nil {
		return zero, fmt.Errorf("construct %s provider %q: %w", capability, selector, err)
	}

	return impl, nil
}
