package memory

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/go-drift/hostbridge/pkg/host"
)

// NodeType distinguishes element nodes from text nodes.
type NodeType int

const (
	ElementNode NodeType = iota
	TextNode
)

// Node is a committed node in a Document.
type Node struct {
	Type NodeType
	// Tag is the element's tag name. Empty for text nodes.
	Tag string
	// Text is the content of a text node.
	Text string
	// Attrs holds every non-handler property of an element.
	Attrs map[string]host.Value
	// Listeners holds event handlers keyed by property name ("onClick").
	Listeners map[string]host.EventHandler
	Children  []*Node
	Parent    *Node
}

func newElementNode(tag string) *Node {
	return &Node{
		Type:      ElementNode,
		Tag:       tag,
		Attrs:     map[string]host.Value{},
		Listeners: map[string]host.EventHandler{},
	}
}

func newTextNode(text string) *Node {
	return &Node{Type: TextNode, Text: text}
}

// Attr returns the attribute stored under key.
func (n *Node) Attr(key string) (host.Value, bool) {
	if n == nil || n.Attrs == nil {
		return nil, false
	}
	v, ok := n.Attrs[key]
	return v, ok
}

// ID returns the node's "id" attribute as text.
func (n *Node) ID() string {
	v, ok := n.Attr("id")
	if !ok {
		return ""
	}
	return formatValue(v)
}

// AttrKeys returns the node's attribute keys in sorted order.
func (n *Node) AttrKeys() []string {
	keys := make([]string, 0, len(n.Attrs))
	for k := range n.Attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// TextContent returns the concatenated text of n and its descendants.
func (n *Node) TextContent() string {
	if n == nil {
		return ""
	}
	if n.Type == TextNode {
		return n.Text
	}
	var sb strings.Builder
	for _, child := range n.Children {
		sb.WriteString(child.TextContent())
	}
	return sb.String()
}

// Walk visits n and its descendants depth-first, pre-order. Returning false
// from visit skips the node's children.
func (n *Node) Walk(visit func(*Node) bool) {
	if n == nil {
		return
	}
	if !visit(n) {
		return
	}
	for _, child := range n.Children {
		child.Walk(visit)
	}
}

// Find returns every descendant of n (including n) matching pred.
func (n *Node) Find(pred func(*Node) bool) []*Node {
	var out []*Node
	n.Walk(func(node *Node) bool {
		if pred(node) {
			out = append(out, node)
		}
		return true
	})
	return out
}

func (n *Node) setChildren(children []*Node) {
	for _, child := range children {
		child.Parent = n
	}
	n.Children = children
}

// Container is a mount point inside a Document.
type Container struct {
	id   string
	doc  *Document
	Node *Node
}

// ContainerID implements host.Container.
func (c *Container) ContainerID() string { return c.id }

// Document is an in-memory host document holding mount containers.
type Document struct {
	containers map[string]*Container
	order      []string
}

// NewDocument returns an empty document.
func NewDocument() *Document {
	return &Document{containers: map[string]*Container{}}
}

// CreateContainer adds a <div id=id> mount point, or returns the existing one.
func (d *Document) CreateContainer(id string) *Container {
	if c, ok := d.containers[id]; ok {
		return c
	}
	node := newElementNode("div")
	node.Attrs["id"] = id
	c := &Container{id: id, doc: d, Node: node}
	d.containers[id] = c
	d.order = append(d.order, id)
	return c
}

// Container returns the mount point with the given id.
func (d *Document) Container(id string) (*Container, bool) {
	c, ok := d.containers[id]
	return c, ok
}

// Containers returns all mount points in creation order.
func (d *Document) Containers() []*Container {
	out := make([]*Container, 0, len(d.order))
	for _, id := range d.order {
		out = append(out, d.containers[id])
	}
	return out
}

// GetElementByID returns the first node whose id attribute equals id.
func (d *Document) GetElementByID(id string) (*Node, bool) {
	for _, c := range d.Containers() {
		found := c.Node.Find(func(n *Node) bool {
			return n.Type == ElementNode && n.ID() == id
		})
		if len(found) > 0 {
			return found[0], true
		}
	}
	return nil, false
}

// formatValue renders a prop or child value as text.
func formatValue(v host.Value) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case json.Number:
		return val.String()
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprint(val)
	}
}
