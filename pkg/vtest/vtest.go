package vtest

import (
	"strings"
	"sync"
	"testing"

	"github.com/vango-dev/storebridge/pkg/reactive"
)

// NodeKind identifies the kind of a Node.
type NodeKind int

const (
	KindText NodeKind = iota
	KindButton
	KindGroup
)

// Component builds a node tree. It runs once, under the screen's owner.
type Component func() *Node

// Node is an element of a rendered tree.
type Node struct {
	kind     NodeKind
	testID   string
	label    string
	content  func() string
	onClick  func()
	children []*Node

	mu     sync.Mutex
	text   string
	effect *reactive.Effect
}

// Text creates a text node whose content is fn's result. fn is tracked: the
// node re-renders when a signal it reads changes.
func Text(testID string, fn func() string) *Node {
	return &Node{kind: KindText, testID: testID, content: fn}
}

// Button creates a button with a static label and a click handler.
func Button(testID, label string, onClick func()) *Node {
	return &Node{kind: KindButton, testID: testID, label: label, onClick: onClick}
}

// Group creates a container node.
func Group(children ...*Node) *Node {
	return &Node{kind: KindGroup, children: children}
}

// Kind returns the node kind.
func (n *Node) Kind() NodeKind {
	return n.kind
}

// TestID returns the node's test identifier.
func (n *Node) TestID() string {
	return n.testID
}

// TextContent returns the rendered text of the node and its children.
func (n *Node) TextContent() string {
	switch n.kind {
	case KindText:
		n.mu.Lock()
		defer n.mu.Unlock()
		return n.text
	case KindButton:
		return n.label
	default:
		var b strings.Builder
		for _, c := range n.children {
			b.WriteString(c.TextContent())
		}
		return b.String()
	}
}

// Click runs the button's handler inside a batch. Clicking other nodes does
// nothing.
func (n *Node) Click() {
	if n.kind != KindButton || n.onClick == nil {
		return
	}
	reactive.Batch(n.onClick)
}

// Renders reports how many times a text node has rendered.
func (n *Node) Renders() int {
	if n.effect == nil {
		return 0
	}
	return n.effect.Runs()
}

func (n *Node) mount() {
	switch n.kind {
	case KindText:
		n.effect = reactive.CreateEffect(func() reactive.Cleanup {
			text := n.content()
			n.mu.Lock()
			n.text = text
			n.mu.Unlock()
			return nil
		})
	case KindGroup:
		for _, c := range n.children {
			c.mount()
		}
	}
}

func (n *Node) find(testID string) *Node {
	if n.testID == testID {
		return n
	}
	for _, c := range n.children {
		if found := c.find(testID); found != nil {
			return found
		}
	}
	return nil
}

// Screen is a rendered component.
type Screen struct {
	owner *reactive.Owner
	root  *Node
}

// Render runs c under a new root owner and mounts the tree it returns.
func Render(c Component) *Screen {
	s := &Screen{owner: reactive.NewOwner(nil)}
	s.owner.Run(func() {
		reactive.Untracked(func() {
			s.root = c()
		})
		if s.root != nil {
			s.root.mount()
		}
	})
	return s
}

// Owner returns the owner the component runs under.
func (s *Screen) Owner() *reactive.Owner {
	return s.owner
}

// Root returns the component's root node.
func (s *Screen) Root() *Node {
	return s.root
}

// FindByTestID returns the first node with the given test ID, or nil.
func (s *Screen) FindByTestID(testID string) *Node {
	if s.root == nil {
		return nil
	}
	return s.root.find(testID)
}

// TextContent returns the text of the whole tree.
func (s *Screen) TextContent() string {
	if s.root == nil {
		return ""
	}
	return s.root.TextContent()
}

// Cleanup disposes the component's owner: effects stop and cleanups run.
// Calling it more than once is harmless.
func (s *Screen) Cleanup() {
	s.owner.Dispose()
}

// Disposed reports whether Cleanup has run.
func (s *Screen) Disposed() bool {
	return s.owner.IsDisposed()
}

// Mount renders c and cleans it up when the test ends.
func Mount(t testing.TB, c Component) *Screen {
	t.Helper()
	s := Render(c)
	t.Cleanup(s.Cleanup)
	return s
}

// ExpectText asserts that the node with testID renders want.
//
// Example:
//
//	vtest.ExpectText(t, screen, "value", "2")
func ExpectText(t testing.TB, s *Screen, testID, want string) {
	t.Helper()
	n := s.FindByTestID(testID)
	if n == nil {
		t.Errorf("no node with test ID %q in:\n%s", testID, truncate(s.TextContent(), 500))
		return
	}
	if got := n.TextContent(); got != want {
		t.Errorf("node %q: expected text %q, got %q", testID, want, got)
	}
}

// truncate truncates a string to max length with ellipsis.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
