// Package xmlutil provides attribute and text helpers over xmltree elements.
package xmlutil

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"aqwari.net/xml/xmltree"
)

// ErrMissingAttr indicates a required attribute is absent from an element.
var ErrMissingAttr = errors.New("missing required attribute")

// ErrBadAttrValue indicates an attribute value outside its allowed set or type.
var ErrBadAttrValue = errors.New("invalid attribute value")

// Attr returns the value of the named unprefixed attribute, or "" when absent.
func Attr(el *xmltree.Element, name string) string {
	return el.Attr("", name)
}

// HasAttr reports whether the named unprefixed attribute is present.
func HasAttr(el *xmltree.Element, name string) bool {
	for _, a := range el.StartElement.Attr {
		if a.Name.Local == name {
			return true
		}
	}
	return false
}

// RequireAttr returns the value of the named attribute or an error naming
// the element and attribute when it is absent.
func RequireAttr(el *xmltree.Element, name string) (string, error) {
	if !HasAttr(el, name) {
		return "", fmt.Errorf("%w: element %q attribute %q", ErrMissingAttr, el.Name.Local, name)
	}
	return el.Attr("", name), nil
}

// RequireAttrNS is RequireAttr for a namespace-qualified attribute such as
// xlink:href.
func RequireAttrNS(el *xmltree.Element, space, name string) (string, error) {
	for _, a := range el.StartElement.Attr {
		if a.Name.Local == name && a.Name.Space == space {
			return a.Value, nil
		}
	}
	return "", fmt.Errorf("%w: element %q attribute %q (%s)", ErrMissingAttr, el.Name.Local, name, space)
}

// RequireEnumAttr returns the attribute value after checking it against the
// allowed set.
func RequireEnumAttr(el *xmltree.Element, name string, allowed ...string) (string, error) {
	val, err := RequireAttr(el, name)
	if err != nil {
		return "", err
	}
	for _, opt := range allowed {
		if val == opt {
			return val, nil
		}
	}
	return "", fmt.Errorf("%w: element %q attribute %q=%q, expected one of %v",
		ErrBadAttrValue, el.Name.Local, name, val, allowed)
}

// BoolAttr parses the named attribute as an xsd:boolean, returning def when
// the attribute is absent.
func BoolAttr(el *xmltree.Element, name string, def bool) (bool, error) {
	if !HasAttr(el, name) {
		return def, nil
	}
	val := el.Attr("", name)
	switch val {
	case "1":
		return true, nil
	case "0":
		return false, nil
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		return false, fmt.Errorf("%w: element %q attribute %q=%q is not a boolean",
			ErrBadAttrValue, el.Name.Local, name, val)
	}
	return b, nil
}

// Is reports whether the element has the given namespace and local name.
func Is(el *xmltree.Element, space, local string) bool {
	return el.Name.Space == space && el.Name.Local == local
}

// Child returns the first direct child matching the namespace and local
// name, or nil.
func Child(el *xmltree.Element, space, local string) *xmltree.Element {
	for i := range el.Children {
		if Is(&el.Children[i], space, local) {
			return &el.Children[i]
		}
	}
	return nil
}

// Text returns the character data of an element with markup stripped and
// newlines inside text runs collapsed to spaces. A <br/> becomes a
// newline. This mirrors how XCCDF description bodies embed XHTML.
func Text(el *xmltree.Element) string {
	var sb strings.Builder
	dec := xml.NewDecoder(bytes.NewReader(el.Content))
	for {
		tok, err := dec.Token()
		if err != nil {
			break
		}
		switch t := tok.(type) {
		case xml.CharData:
			sb.WriteString(strings.ReplaceAll(string(t), "\n", " "))
		case xml.StartElement:
			if t.Name.Local == "br" {
				sb.WriteString("\n")
			}
		}
	}
	return sb.String()
}
