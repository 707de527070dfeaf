// Package options defines the shared option schema for the proxyforge tool
// family: typed option descriptors and the registry every argument surface
// is wired from.
package options

import "fmt"

// Kind is the value type of an option.
type Kind int

const (
	// Bool options generate a toggle flag whose sense is the complement of
	// the registered default.
	Bool Kind = iota
	// Int options take a single integer argument.
	Int
	// String options take a single string argument.
	String
	// Size options take a byte size with an optional k/m/g suffix. The raw
	// string is kept until resolution so parse failures can name the option.
	Size
	// StringList options may be passed multiple times; order and duplicates
	// are preserved.
	StringList
)

func (k Kind) String() string {
	switch k {
	case Bool:
		return "bool"
	case Int:
		return "int"
	case String:
		return "string"
	case Size:
		return "size"
	case StringList:
		return "string-list"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Descriptor is one named, typed configuration option. Name is the stable
// key used for CLI wiring, config-file keys, and resolution.
type Descriptor struct {
	Name    string
	Kind    Kind
	Default any
	Help    string
}

// Registry is a read-mostly table of descriptors. It is populated once at
// startup, before any argument surface is built; there is no locking because
// registration and lookup never overlap.
type Registry struct {
	byName map[string]Descriptor
	order  []string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]Descriptor)}
}

// Register adds a descriptor. Registering the same name twice is a wiring
// defect, reported as a DuplicateOptionError.
func (r *Registry) Register(d Descriptor) error {
	if _, exists := r.byName[d.Name]; exists {
		return &DuplicateOptionError{Name: d.Name}
	}
	r.byName[d.Name] = d
	r.order = append(r.order, d.Name)
	return nil
}

// MustRegister is Register for startup tables, where a duplicate is fatal.
func (r *Registry) MustRegister(d Descriptor) {
	if err := r.Register(d); err != nil {
		panic(err)
	}
}

// Get looks up a descriptor by name. A missing name means a surface
// references an option that was never registered, reported as an
// UnknownOptionError.
func (r *Registry) Get(name string) (Descriptor, error) {
	d, ok := r.byName[name]
	if !ok {
		return Descriptor{}, &UnknownOptionError{Name: name}
	}
	return d, nil
}

// MustGet is Get for surface wiring, where an unknown name is fatal.
func (r *Registry) MustGet(name string) Descriptor {
	d, err := r.Get(name)
	if err != nil {
		panic(err)
	}
	return d
}

// Names returns all registered names in registration order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}
