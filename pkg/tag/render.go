package tag

import (
	"html"
	"strings"
)

var selfClosing = map[string]struct{}{
	"area":   {},
	"base":   {},
	"br":     {},
	"col":    {},
	"embed":  {},
	"hr":     {},
	"img":    {},
	"input":  {},
	"link":   {},
	"meta":   {},
	"param":  {},
	"source": {},
	"track":  {},
	"wbr":    {},
}

// IsSelfClosing reports whether name is rendered without a closing tag.
func IsSelfClosing(name string) bool {
	_, ok := selfClosing[strings.ToLower(name)]
	return ok
}

// String serializes the node and its descendants.
func (n *Node) String() string {
	if n == nil {
		return ""
	}
	var b strings.Builder
	n.write(&b)
	return b.String()
}

func (n *Node) write(b *strings.Builder) {
	if n.raw {
		b.WriteString(n.inner)
		return
	}
	n.writeOpen(b)
	if IsSelfClosing(n.name) {
		return
	}
	n.writeInner(b)
	b.WriteString("</")
	b.WriteString(n.name)
	b.WriteByte('>')
}

func (n *Node) writeOpen(b *strings.Builder) {
	b.WriteByte('<')
	b.WriteString(n.name)
	for _, attr := range n.attrs {
		value := attr.value
		if attr.key == classKey {
			if len(n.classes) == 0 {
				continue
			}
			value = strings.Join(n.classes, " ")
		}
		b.WriteByte(' ')
		b.WriteString(attr.key)
		b.WriteString(`="`)
		b.WriteString(html.EscapeString(value))
		b.WriteByte('"')
	}
	if IsSelfClosing(n.name) {
		b.WriteString(" />")
		return
	}
	b.WriteByte('>')
}

func (n *Node) writeInner(b *strings.Builder) {
	if len(n.children) == 0 {
		b.WriteString(n.inner)
		return
	}
	for _, child := range n.children {
		child.write(b)
	}
}

// InnerHTML returns the serialized content of n without its own opening and
// closing tags. The tags are removed by their computed lengths. Self-closing
// and anonymous nodes return their full serialization.
func InnerHTML(n *Node) string {
	if n == nil {
		return ""
	}
	out := n.String()
	if n.raw || IsSelfClosing(n.name) {
		return out
	}
	var open strings.Builder
	n.writeOpen(&open)
	openLen := open.Len()
	closeLen := len(n.name) + len("</>")
	if len(out) < openLen+closeLen {
		return ""
	}
	return out[openLen : len(out)-closeLen]
}
