package memory

import "sort"

// Outline is a serializable view of a committed node tree. Attribute values
// are printed as text and listeners are recorded by property name only.
type Outline struct {
	Tag       string            `yaml:"tag,omitempty" json:"tag,omitempty"`
	Text      string            `yaml:"text,omitempty" json:"text,omitempty"`
	Attrs     map[string]string `yaml:"attrs,omitempty" json:"attrs,omitempty"`
	Listeners []string          `yaml:"listeners,omitempty" json:"listeners,omitempty"`
	Children  []*Outline        `yaml:"children,omitempty" json:"children,omitempty"`
}

// Outline returns the outline of n and its descendants.
func (n *Node) Outline() *Outline {
	if n.Type == TextNode {
		return &Outline{Text: n.Text}
	}
	out := &Outline{Tag: n.Tag}
	for _, key := range n.AttrKeys() {
		if out.Attrs == nil {
			out.Attrs = make(map[string]string, len(n.Attrs))
		}
		out.Attrs[key] = formatValue(n.Attrs[key])
	}
	for name := range n.Listeners {
		out.Listeners = append(out.Listeners, name)
	}
	sort.Strings(out.Listeners)
	for _, child := range n.Children {
		out.Children = append(out.Children, child.Outline())
	}
	return out
}

// Outline returns the outlines of the nodes mounted in c.
func (c *Container) Outline() []*Outline {
	var out []*Outline
	for _, child := range c.Node.Children {
		out = append(out, child.Outline())
	}
	return out
}
