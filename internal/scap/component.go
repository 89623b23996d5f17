package scap

import "aqwari.net/xml/xmltree"

// Component is a resolved, integrity-checked document from the catalog.
// Components are created by the Resolver on first reference and cached for
// the lifetime of the collection; they are read-only after construction.
type Component struct {
	id       string
	kind     ComponentKind
	raw      []byte
	root     *xmltree.Element
	verified bool
}

func (c *Component) ID() string          { return c.id }
func (c *Component) Kind() ComponentKind { return c.kind }

// Raw returns the component's owned byte content, exactly as digested.
func (c *Component) Raw() []byte { return c.raw }

// Root returns the component's document element with the collection's
// namespace scope intact.
func (c *Component) Root() *xmltree.Element { return c.root }

// Verified reports whether the content matched its catalog digest. A
// component whose entry declares no digest is never verified.
func (c *Component) Verified() bool { return c.verified }
