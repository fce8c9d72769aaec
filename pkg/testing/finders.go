package testing

import (
	"fmt"
	"strings"

	"github.com/go-drift/hostbridge/pkg/host"
	"github.com/go-drift/hostbridge/pkg/host/memory"
)

// Finder locates nodes in a mounted document.
type Finder interface {
	// Evaluate returns all matching nodes under root (depth-first pre-order).
	Evaluate(root *memory.Node) []*memory.Node
	// Description returns a human-readable description for error messages.
	Description() string
}

// FinderResult wraps finder results with convenient accessors.
type FinderResult struct {
	nodes  []*memory.Node
	finder Finder
}

// First returns the first match. Panics if no matches.
func (r FinderResult) First() *memory.Node {
	if len(r.nodes) == 0 {
		panic(fmt.Sprintf("Finder found no nodes: %s", r.describe()))
	}
	return r.nodes[0]
}

// FirstOrNil returns the first match, or nil if none.
func (r FinderResult) FirstOrNil() *memory.Node {
	if len(r.nodes) == 0 {
		return nil
	}
	return r.nodes[0]
}

// At returns the match at index. Panics if out of range.
func (r FinderResult) At(index int) *memory.Node {
	if index < 0 || index >= len(r.nodes) {
		panic(fmt.Sprintf("Finder index %d out of range (found %d): %s", index, len(r.nodes), r.describe()))
	}
	return r.nodes[index]
}

// All returns all matches in traversal order.
func (r FinderResult) All() []*memory.Node {
	return r.nodes
}

// Count returns the number of matches.
func (r FinderResult) Count() int {
	return len(r.nodes)
}

// Exists returns true if at least one match was found.
func (r FinderResult) Exists() bool {
	return len(r.nodes) > 0
}

// Text returns the text content of the first match. Panics if no matches.
func (r FinderResult) Text() string {
	return r.First().TextContent()
}

// Attr returns an attribute of the first match. Panics if no matches.
func (r FinderResult) Attr(key string) (host.Value, bool) {
	return r.First().Attr(key)
}

func (r FinderResult) describe() string {
	if r.finder == nil {
		return "unknown"
	}
	return r.finder.Description()
}

// --- Concrete finders ---

type tagFinder struct {
	tag string
}

func (f *tagFinder) Evaluate(root *memory.Node) []*memory.Node {
	return collectMatches(root, func(n *memory.Node) bool {
		return n.Type == memory.ElementNode && n.Tag == f.tag
	})
}

func (f *tagFinder) Description() string {
	return fmt.Sprintf("ByTag(%s)", f.tag)
}

// ByTag returns a finder that matches elements with the given tag.
func ByTag(tag string) Finder {
	return &tagFinder{tag: tag}
}

type idFinder struct {
	id string
}

func (f *idFinder) Evaluate(root *memory.Node) []*memory.Node {
	return collectMatches(root, func(n *memory.Node) bool {
		return n.Type == memory.ElementNode && n.ID() == f.id
	})
}

func (f *idFinder) Description() string {
	return fmt.Sprintf("ByID(%s)", f.id)
}

// ByID returns a finder that matches elements whose id attribute equals id.
func ByID(id string) Finder {
	return &idFinder{id: id}
}

type attrFinder struct {
	key   string
	value any
}

func (f *attrFinder) Evaluate(root *memory.Node) []*memory.Node {
	want := fmt.Sprint(f.value)
	return collectMatches(root, func(n *memory.Node) bool {
		v, ok := n.Attr(f.key)
		return ok && fmt.Sprint(v) == want
	})
}

func (f *attrFinder) Description() string {
	return fmt.Sprintf("ByAttr(%s=%v)", f.key, f.value)
}

// ByAttr returns a finder that matches elements whose attribute key prints
// the same as value.
func ByAttr(key string, value any) Finder {
	return &attrFinder{key: key, value: value}
}

type textFinder struct {
	match func(string) bool
	desc  string
}

func (f *textFinder) Evaluate(root *memory.Node) []*memory.Node {
	return collectMatches(root, func(n *memory.Node) bool {
		if n.Type != memory.ElementNode || !f.match(n.TextContent()) {
			return false
		}
		// Report the innermost element carrying the text.
		for _, child := range n.Children {
			if child.Type == memory.ElementNode && f.match(child.TextContent()) {
				return false
			}
		}
		return true
	})
}

func (f *textFinder) Description() string {
	return f.desc
}

// ByText returns a finder that matches the innermost elements whose text
// content equals text exactly.
func ByText(text string) Finder {
	return &textFinder{
		match: func(s string) bool { return s == text },
		desc:  fmt.Sprintf("ByText(%q)", text),
	}
}

// ByTextContaining returns a finder that matches the innermost elements
// whose text content contains substring.
func ByTextContaining(substring string) Finder {
	return &textFinder{
		match: func(s string) bool { return strings.Contains(s, substring) },
		desc:  fmt.Sprintf("ByTextContaining(%q)", substring),
	}
}

type predicateFinder struct {
	fn   func(*memory.Node) bool
	desc string
}

func (f *predicateFinder) Evaluate(root *memory.Node) []*memory.Node {
	return collectMatches(root, f.fn)
}

func (f *predicateFinder) Description() string {
	return f.desc
}

// ByPredicate returns a finder that matches nodes satisfying fn.
func ByPredicate(fn func(*memory.Node) bool) Finder {
	return &predicateFinder{fn: fn, desc: "ByPredicate(...)"}
}

// descendantFinder finds nodes matching 'matching' that are descendants of
// nodes matching 'of'.
type descendantFinder struct {
	of       Finder
	matching Finder
}

func (f *descendantFinder) Evaluate(root *memory.Node) []*memory.Node {
	var results []*memory.Node
	seen := make(map[*memory.Node]bool)
	for _, ancestor := range f.of.Evaluate(root) {
		for _, child := range ancestor.Children {
			for _, match := range f.matching.Evaluate(child) {
				if !seen[match] {
					seen[match] = true
					results = append(results, match)
				}
			}
		}
	}
	return results
}

func (f *descendantFinder) Description() string {
	return fmt.Sprintf("Descendant(of: %s, matching: %s)", f.of.Description(), f.matching.Description())
}

// Descendant returns a finder that matches nodes satisfying 'matching' that
// are descendants of nodes matching 'of'.
func Descendant(of, matching Finder) Finder {
	return &descendantFinder{of: of, matching: matching}
}

// collectMatches performs depth-first pre-order traversal, collecting nodes
// that satisfy the predicate.
func collectMatches(root *memory.Node, predicate func(*memory.Node) bool) []*memory.Node {
	var results []*memory.Node
	root.Walk(func(n *memory.Node) bool {
		if predicate(n) {
			results = append(results, n)
		}
		return true
	})
	return results
}
