// Package scap models SCAP 1.2 source data streams: the top-level
// collection container, its component catalog, and the resolver that turns
// catalog references into verified components.
package scap

import (
	"fmt"
	"strings"

	"aqwari.net/xml/xmltree"

	"github.com/khanhnv2901/sds-cli/internal/xmlutil"
)

// Namespaces of the source data stream container and the documents it
// references.
const (
	nsSource  = "http://scap.nist.gov/schema/scap/source/1.2"
	nsDsig    = "http://scap.nist.gov/schema/xml-dsig/1.0"
	nsCatalog = "urn:oasis:names:tc:entity:xmlns:xml:catalog"
	nsXlink   = "http://www.w3.org/1999/xlink"
	nsXCCDF   = "http://checklists.nist.gov/xccdf/1.2"
)

// XCCDFNamespace is the benchmark namespace, exported for the checklist
// parser.
const XCCDFNamespace = nsXCCDF

// Collection is the parsed data-stream-collection document. It owns every
// data stream and catalog entry and is immutable after ParseCollection
// returns.
type Collection struct {
	id                string
	schematronVersion string
	streams           []*DataStream
	catalog           *Catalog
	extended          []ExtendedComponent
	signatures        []Signature
}

// ExtendedComponent indexes a non-standard component declaration. Its body
// is not interpreted.
type ExtendedComponent struct {
	ID        string
	Timestamp string
}

// Signature indexes an enveloped XML signature element. Verification of
// the document happens out of band (see the sigverify package).
type Signature struct {
	ID string
}

// DataStream is one deployable bundle of component references, grouped the
// way the schema groups them.
type DataStream struct {
	id          string
	useCase     string
	scapVersion string
	timestamp   string

	dictionaries []ComponentRef
	checklists   []ComponentRef
	checks       []ComponentRef
	extendedRefs []ComponentRef
}

func (ds *DataStream) ID() string          { return ds.id }
func (ds *DataStream) UseCase() string     { return ds.useCase }
func (ds *DataStream) ScapVersion() string { return ds.scapVersion }
func (ds *DataStream) Timestamp() string   { return ds.timestamp }

func (ds *DataStream) Dictionaries() []ComponentRef { return ds.dictionaries }
func (ds *DataStream) Checklists() []ComponentRef   { return ds.checklists }
func (ds *DataStream) Checks() []ComponentRef       { return ds.checks }
func (ds *DataStream) ExtendedRefs() []ComponentRef { return ds.extendedRefs }

// DefaultChecklist returns the first declared checklist reference, or nil
// when the stream carries none.
func (ds *DataStream) DefaultChecklist() *ComponentRef {
	if len(ds.checklists) == 0 {
		return nil
	}
	return &ds.checklists[0]
}

// ComponentRef is an unresolved pointer from a data stream to a catalog
// entry. Resolution is deferred to the Resolver.
type ComponentRef struct {
	ID   string
	Type string
	Href string
	URIs []URIMapping
}

// URIMapping is one oasis catalog uri entry carried by a component-ref.
type URIMapping struct {
	Name string
	URI  string
}

// Local reports whether the reference points into the containing document.
func (r ComponentRef) Local() bool { return strings.HasPrefix(r.Href, "#") }

// TargetID returns the catalog identifier a local reference points at.
func (r ComponentRef) TargetID() string { return strings.TrimPrefix(r.Href, "#") }

func (c *Collection) ID() string                              { return c.id }
func (c *Collection) SchematronVersion() string               { return c.schematronVersion }
func (c *Collection) Streams() []*DataStream                  { return c.streams }
func (c *Collection) Catalog() *Catalog                       { return c.catalog }
func (c *Collection) ExtendedComponents() []ExtendedComponent { return c.extended }
func (c *Collection) Signatures() []Signature                 { return c.signatures }

// DefaultStream returns the first declared data stream.
func (c *Collection) DefaultStream() *DataStream { return c.streams[0] }

// Stream returns the data stream with the given id.
func (c *Collection) Stream(id string) (*DataStream, error) {
	for _, ds := range c.streams {
		if ds.id == id {
			return ds, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrStreamNotFound, id)
}

// ParseCollection walks an already-parsed document tree and builds the
// collection model: the stream index, the component catalog, and the
// unresolved references between them. Local references are checked for
// existence here even though content resolution is lazy.
func ParseCollection(root *xmltree.Element) (*Collection, error) {
	if !xmlutil.Is(root, nsSource, "data-stream-collection") {
		return nil, fmt.Errorf("%w: got %s (namespace %q), expected data-stream-collection (namespace %q)",
			ErrUnexpectedRoot, root.Name.Local, root.Name.Space, nsSource)
	}

	id, err := xmlutil.RequireAttr(root, "id")
	if err != nil {
		return nil, err
	}
	schematronVersion, err := xmlutil.RequireAttr(root, "schematron-version")
	if err != nil {
		return nil, err
	}

	col := &Collection{
		id:                id,
		schematronVersion: schematronVersion,
		catalog:           newCatalog(),
	}

	for i := range root.Children {
		child := &root.Children[i]
		switch {
		case xmlutil.Is(child, nsSource, "data-stream"):
			ds, err := parseDataStream(child)
			if err != nil {
				return nil, err
			}
			col.streams = append(col.streams, ds)
		case xmlutil.Is(child, nsSource, "component"):
			entry, err := parseComponentEntry(child)
			if err != nil {
				return nil, err
			}
			if err := col.catalog.add(entry); err != nil {
				return nil, err
			}
		case xmlutil.Is(child, nsSource, "extended-component"):
			ext, err := parseExtendedComponent(child)
			if err != nil {
				return nil, err
			}
			col.extended = append(col.extended, ext)
		case xmlutil.Is(child, nsDsig, "Signature"):
			sigID, err := xmlutil.RequireAttr(child, "id")
			if err != nil {
				return nil, err
			}
			col.signatures = append(col.signatures, Signature{ID: sigID})
		}
	}

	if len(col.streams) == 0 {
		return nil, fmt.Errorf("collection %s declares no data-stream elements", col.id)
	}
	if col.catalog.Len() == 0 {
		return nil, fmt.Errorf("collection %s declares no component elements", col.id)
	}

	if err := col.checkReferences(); err != nil {
		return nil, err
	}
	return col, nil
}

// checkReferences validates that every local reference has a catalog
// entry, so forward references never surface as late resolve failures.
func (c *Collection) checkReferences() error {
	extended := make(map[string]bool, len(c.extended))
	for _, ext := range c.extended {
		extended[ext.ID] = true
	}
	for _, ds := range c.streams {
		for _, group := range [][]ComponentRef{ds.dictionaries, ds.checklists, ds.checks, ds.extendedRefs} {
			for _, ref := range group {
				if !ref.Local() {
					continue
				}
				target := ref.TargetID()
				if c.catalog.Lookup(target) == nil && !extended[target] {
					return fmt.Errorf("%w: %s points at %q", ErrDanglingReference, ref.ID, target)
				}
			}
		}
	}
	return nil
}

func parseDataStream(el *xmltree.Element) (*DataStream, error) {
	id, err := xmlutil.RequireAttr(el, "id")
	if err != nil {
		return nil, err
	}
	useCase, err := xmlutil.RequireEnumAttr(el, "use-case",
		"CONFIGURATION", "VULNERABILITY", "INVENTORY", "OTHER")
	if err != nil {
		return nil, err
	}
	scapVersion, err := xmlutil.RequireEnumAttr(el, "scap-version", "1.0", "1.1", "1.2", "1.3")
	if err != nil {
		return nil, err
	}

	ds := &DataStream{
		id:          id,
		useCase:     useCase,
		scapVersion: scapVersion,
		timestamp:   xmlutil.Attr(el, "timestamp"),
	}

	groups := []struct {
		name string
		dst  *[]ComponentRef
	}{
		{"dictionaries", &ds.dictionaries},
		{"checklists", &ds.checklists},
		{"checks", &ds.checks},
		{"extended-components", &ds.extendedRefs},
	}
	for _, g := range groups {
		container := xmlutil.Child(el, nsSource, g.name)
		if container == nil {
			continue
		}
		for i := range container.Children {
			ref, err := parseComponentRef(&container.Children[i])
			if err != nil {
				return nil, fmt.Errorf("data-stream %s: %w", id, err)
			}
			*g.dst = append(*g.dst, ref)
		}
	}
	return ds, nil
}

func parseComponentRef(el *xmltree.Element) (ComponentRef, error) {
	if !xmlutil.Is(el, nsSource, "component-ref") {
		return ComponentRef{}, fmt.Errorf("unexpected element %q, expected component-ref", el.Name.Local)
	}
	id, err := xmlutil.RequireAttr(el, "id")
	if err != nil {
		return ComponentRef{}, err
	}
	href, err := xmlutil.RequireAttrNS(el, nsXlink, "href")
	if err != nil {
		return ComponentRef{}, err
	}
	ref := ComponentRef{
		ID:   id,
		Href: href,
		Type: el.Attr(nsXlink, "type"),
	}
	if cat := xmlutil.Child(el, nsCatalog, "catalog"); cat != nil {
		for i := range cat.Children {
			entry := &cat.Children[i]
			if !xmlutil.Is(entry, nsCatalog, "uri") {
				continue
			}
			name, err := xmlutil.RequireAttr(entry, "name")
			if err != nil {
				return ComponentRef{}, err
			}
			uri, err := xmlutil.RequireAttr(entry, "uri")
			if err != nil {
				return ComponentRef{}, err
			}
			ref.URIs = append(ref.URIs, URIMapping{Name: name, URI: uri})
		}
	}
	return ref, nil
}

func parseComponentEntry(el *xmltree.Element) (*CatalogEntry, error) {
	id, err := xmlutil.RequireAttr(el, "id")
	if err != nil {
		return nil, err
	}
	timestamp, err := xmlutil.RequireAttr(el, "timestamp")
	if err != nil {
		return nil, err
	}
	if len(el.Children) == 0 {
		return nil, fmt.Errorf("component %s has no embedded document", id)
	}

	digestAlg := xmlutil.Attr(el, "digest-algorithm")
	digestVal := xmlutil.Attr(el, "digest-value")
	if (digestAlg == "") != (digestVal == "") {
		return nil, fmt.Errorf("component %s declares an incomplete digest (need both digest-algorithm and digest-value)", id)
	}

	embedded := &el.Children[0]
	return &CatalogEntry{
		id:        id,
		timestamp: timestamp,
		kind:      classifyComponent(embedded),
		digestAlg: digestAlg,
		digestVal: digestVal,
		body:      el.Content,
		root:      embedded,
	}, nil
}

func parseExtendedComponent(el *xmltree.Element) (ExtendedComponent, error) {
	id, err := xmlutil.RequireAttr(el, "id")
	if err != nil {
		return ExtendedComponent{}, err
	}
	timestamp, err := xmlutil.RequireAttr(el, "timestamp")
	if err != nil {
		return ExtendedComponent{}, err
	}
	return ExtendedComponent{ID: id, Timestamp: timestamp}, nil
}
