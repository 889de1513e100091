package host

import (
	"sort"
	"strings"
)

// IDAttr is the attribute carrying node IDs when serializing with IDs.
const IDAttr = "data-mf-id"

// voidElements are elements that cannot have children.
var voidElements = map[string]bool{
	"area":   true,
	"base":   true,
	"br":     true,
	"col":    true,
	"embed":  true,
	"hr":     true,
	"img":    true,
	"input":  true,
	"link":   true,
	"meta":   true,
	"param":  true,
	"source": true,
	"track":  true,
	"wbr":    true,
}

// IsVoidElement returns true if the tag is a void element.
func IsVoidElement(tag string) bool {
	return voidElements[tag]
}

// HTML returns the outer HTML of node.
func (d *Document) HTML(node Node) string {
	return d.serialize(node, false, true)
}

// InnerHTML returns the HTML of node's children.
func (d *Document) InnerHTML(node Node) string {
	return d.serialize(node, false, false)
}

// HTMLWithIDs returns the outer HTML of node with every element carrying
// its node ID in IDAttr, so a remote client can address it later.
func (d *Document) HTMLWithIDs(node Node) string {
	return d.serialize(node, true, true)
}

func (d *Document) serialize(node Node, ids, outer bool) string {
	d.mu.Lock()
	defer d.mu.Unlock()

	el := d.element(node)
	if el == nil {
		return ""
	}
	var b strings.Builder
	if outer {
		writeNode(&b, el, ids)
	} else {
		for _, c := range el.children {
			writeNode(&b, c, ids)
		}
	}
	return b.String()
}

func writeNode(b *strings.Builder, el *Element, ids bool) {
	if el.isText {
		b.WriteString(escapeHTML(el.text))
		return
	}

	b.WriteByte('<')
	b.WriteString(el.tag)
	if ids {
		b.WriteString(" " + IDAttr + `="`)
		b.WriteString(el.id)
		b.WriteByte('"')
	}

	keys := make([]string, 0, len(el.attrs))
	for k := range el.attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		b.WriteByte(' ')
		b.WriteString(k)
		if v := el.attrs[k]; v != "" {
			b.WriteString(`="`)
			b.WriteString(escapeAttr(v))
			b.WriteByte('"')
		}
	}
	b.WriteByte('>')

	if IsVoidElement(el.tag) {
		return
	}
	for _, c := range el.children {
		writeNode(b, c, ids)
	}
	b.WriteString("</")
	b.WriteString(el.tag)
	b.WriteByte('>')
}
