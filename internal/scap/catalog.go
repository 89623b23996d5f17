package scap

import (
	"fmt"

	"aqwari.net/xml/xmltree"
)

// ComponentKind classifies the document embedded in a catalog entry.
type ComponentKind string

const (
	KindBenchmark       ComponentKind = "benchmark"
	KindOVALDefinitions ComponentKind = "oval-definitions"
	KindCPEDictionary   ComponentKind = "cpe-dictionary"
	KindOther           ComponentKind = "other"
)

// CatalogEntry records one declared component: its identity, integrity
// metadata, and the embedded content. The element tree is retained so the
// checklist parser can work on the already-resolved namespace scope
// instead of re-parsing the raw bytes.
type CatalogEntry struct {
	id        string
	timestamp string
	kind      ComponentKind
	digestAlg string
	digestVal string
	body      []byte
	root      *xmltree.Element
}

func (e *CatalogEntry) ID() string          { return e.id }
func (e *CatalogEntry) Timestamp() string   { return e.timestamp }
func (e *CatalogEntry) Kind() ComponentKind { return e.kind }

// HasDigest reports whether the entry declares integrity metadata.
func (e *CatalogEntry) HasDigest() bool { return e.digestAlg != "" || e.digestVal != "" }

// DigestAlgorithm returns the declared algorithm name, verbatim.
func (e *CatalogEntry) DigestAlgorithm() string { return e.digestAlg }

// DigestValue returns the declared hex digest, verbatim.
func (e *CatalogEntry) DigestValue() string { return e.digestVal }

// Body returns the raw bytes the digest covers.
func (e *CatalogEntry) Body() []byte { return e.body }

// Catalog is the identifier-keyed index of declared components, built in
// one pass before any reference is followed.
type Catalog struct {
	entries map[string]*CatalogEntry
	order   []string
}

func newCatalog() *Catalog {
	return &Catalog{entries: make(map[string]*CatalogEntry)}
}

func (c *Catalog) add(entry *CatalogEntry) error {
	if _, ok := c.entries[entry.id]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateComponentID, entry.id)
	}
	c.entries[entry.id] = entry
	c.order = append(c.order, entry.id)
	return nil
}

// Lookup returns the entry for the given component id, or nil.
func (c *Catalog) Lookup(id string) *CatalogEntry {
	return c.entries[id]
}

// Len returns the number of declared components.
func (c *Catalog) Len() int { return len(c.order) }

// Entries returns the catalog entries in declaration order.
func (c *Catalog) Entries() []*CatalogEntry {
	out := make([]*CatalogEntry, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.entries[id])
	}
	return out
}

func classifyComponent(el *xmltree.Element) ComponentKind {
	switch {
	case el.Name.Space == nsXCCDF && el.Name.Local == "Benchmark":
		return KindBenchmark
	case el.Name.Local == "oval_definitions":
		return KindOVALDefinitions
	case el.Name.Local == "cpe-list":
		return KindCPEDictionary
	}
	return KindOther
}
