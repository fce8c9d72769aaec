package memory

import (
	"bytes"

	"golang.org/x/net/html"
)

// HTML serializes n as markup. Event listeners are omitted.
func (n *Node) HTML() string {
	var buf bytes.Buffer
	if err := html.Render(&buf, toHTMLNode(n)); err != nil {
		return ""
	}
	return buf.String()
}

// HTML serializes every container in creation order.
func (d *Document) HTML() string {
	var buf bytes.Buffer
	for _, c := range d.Containers() {
		buf.WriteString(c.Node.HTML())
	}
	return buf.String()
}

func toHTMLNode(n *Node) *html.Node {
	if n.Type == TextNode {
		return &html.Node{Type: html.TextNode, Data: n.Text}
	}
	out := &html.Node{Type: html.ElementNode, Data: n.Tag}
	for _, key := range n.AttrKeys() {
		attr, ok := htmlAttr(key, n.Attrs[key])
		if !ok {
			continue
		}
		out.Attr = append(out.Attr, attr)
	}
	for _, child := range n.Children {
		out.AppendChild(toHTMLNode(child))
	}
	return out
}

// htmlAttr maps a prop to an attribute. False booleans are dropped and
// className is written as class.
func htmlAttr(key string, value any) (html.Attribute, bool) {
	if key == "className" {
		key = "class"
	}
	switch v := value.(type) {
	case bool:
		if !v {
			return html.Attribute{}, false
		}
		return html.Attribute{Key: key}, true
	case nil:
		return html.Attribute{}, false
	default:
		return html.Attribute{Key: key, Val: formatValue(v)}, true
	}
}
