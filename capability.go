package space

// CapabilityKind is the spatial variant an entity resolved to when it was
// initialized.
type CapabilityKind uint8

const (
	KindNeither CapabilityKind = iota
	KindPositional
	KindEmbodied
)

func (k CapabilityKind) String() string {
	switch k {
	case KindPositional:
		return "positional"
	case KindEmbodied:
		return "embodied"
	}
	return "neither"
}

// Capability is resolved once and stored on the entity. An embodied capability
// is also positional.
type Capability struct {
	kind       CapabilityKind
	embodied   Embodied
	positional Positional
}

func EmbodiedCapability(e Embodied) Capability {
	return Capability{kind: KindEmbodied, embodied: e, positional: e}
}

func PositionalCapability(p Positional) Capability {
	return Capability{kind: KindPositional, positional: p}
}

func (c Capability) Kind() CapabilityKind {
	return c.kind
}

func (c Capability) Embodied() (Embodied, bool) {
	return c.embodied, c.kind == KindEmbodied
}

func (c Capability) Positional() (Positional, bool) {
	return c.positional, c.kind != KindNeither
}
