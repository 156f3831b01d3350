package protocol

import (
	"fmt"
	"sort"
	"strings"
)

// Registry resolves protocol names to implementations. Names are matched
// case-insensitively and stored lowercase.
type Registry struct {
	protocols map[string]Protocol
}

// UnknownProtocolError reports a lookup for a name with no registered
// implementation. Known lists the available names sorted.
type UnknownProtocolError struct {
	Name  string
	Known []string
}

func (e *UnknownProtocolError) Error() string {
	return fmt.Sprintf("unknown protocol %q: must be one of %v", e.Name, e.Known)
}

// NewRegistry creates a registry with the given protocols.
// Panics on duplicate names; registrations are static wiring, not input.
func NewRegistry(protocols ...Protocol) *Registry {
	r := &Registry{protocols: make(map[string]Protocol, len(protocols))}
	for _, p := range protocols {
		name := strings.ToLower(p.Name())
		if _, dup := r.protocols[name]; dup {
			panic(fmt.Sprintf("protocol registered twice: %s", name))
		}
		r.protocols[name] = p
	}
	return r
}

// Lookup returns the protocol registered under name.
func (r *Registry) Lookup(name string) (Protocol, error) {
	p, ok := r.protocols[strings.ToLower(name)]
	if !ok {
		return nil, &UnknownProtocolError{Name: name, Known: r.Names()}
	}
	return p, nil
}

// Names returns the registered protocol names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.protocols))
	for name := range r.protocols {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
