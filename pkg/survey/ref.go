package survey

import "strings"

// Ref identifies a node for lookup and selection. The root sentinel is a
// distinct value rather than a reserved name, so a page or element called
// "survey" never collides with it.
type Ref struct {
	root bool
	name string
}

// RootRef returns the document root sentinel.
func RootRef() Ref {
	return Ref{root: true}
}

// NameRef references a page or element by name.
func NameRef(name string) Ref {
	return Ref{name: strings.TrimSpace(name)}
}

// RefOf returns the reference that selects the supplied node.
func RefOf(node Node) Ref {
	if node == nil {
		return Ref{}
	}
	if node.Kind() == KindRoot {
		return RootRef()
	}
	return NameRef(node.NodeName())
}

// IsRoot reports whether r is the root sentinel.
func (r Ref) IsRoot() bool { return r.root }

// Name returns the referenced name, empty for the root.
func (r Ref) Name() string { return r.name }

// IsZero reports whether r references nothing.
func (r Ref) IsZero() bool { return !r.root && r.name == "" }

func (r Ref) String() string {
	if r.root {
		return "<" + RootType + ">"
	}
	return r.name
}
