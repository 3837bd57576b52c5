// Package snapshot implements the versioned JSON layout-snapshot format
// of spec.md §6: save/restore of a workspace.LayoutState, including the
// pane split tree, recency order, and active selections. The JSON schema
// is fixed by the spec itself, so encoding/json is used rather than a
// third-party serialization library: no library choice would change the
// wire format.
package snapshot

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/patrick-goecommerce/ttx/internal/layout"
	"github.com/patrick-goecommerce/ttx/internal/workspace"
)

// MaxLayoutPrecision is the whole that Node.RelativeSize is a fraction
// of on the wire (spec.md §6), distinct from workspace.MaxLayoutPrecision
// which governs popup sizing.
const MaxLayoutPrecision = 100000

// ErrUnknownVariant is returned when a Document's top-level variant tag
// isn't one this reader understands (spec.md §6: "readers must reject
// unknown top-level variants").
var ErrUnknownVariant = errors.New("snapshot: unknown top-level variant")

// Document is the versioned top-level envelope.
type Document struct {
	LayoutStateV1 *LayoutStateV1 `json:"LayoutState v1,omitempty"`
}

// LayoutStateV1 mirrors workspace.LayoutState for the v1 wire format.
type LayoutStateV1 struct {
	Sessions        []Session `json:"sessions"`
	ActiveSessionID string    `json:"active_session_id"`
}

// Session mirrors workspace.Session.
type Session struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Tabs      []Tab  `json:"tabs"`
	ActiveTab string `json:"active_tab_id"`
}

// Tab mirrors workspace.Tab.
type Tab struct {
	ID                string   `json:"id"`
	Name              string   `json:"name"`
	PaneLayout         Node     `json:"pane_layout"`
	PaneIDsByRecency  []string `json:"pane_ids_by_recency"`
	ActivePaneID      string   `json:"active_pane_id"`
	FullScreenPaneID  string   `json:"full_screen_pane_id,omitempty"`
}

// Node is the tagged union `Pane | Internal` from spec.md §6. Exactly
// one of Pane/Internal is populated after decode; encode sets one kind
// via NewPaneNode/NewInternalNode.
type Node struct {
	Kind     string   `json:"kind"` // "pane" or "internal"
	RelativeSize int  `json:"relative_size"`

	// Pane fields
	ID  string `json:"id,omitempty"`
	Cwd string `json:"cwd,omitempty"`

	// Internal fields
	Children  []Node `json:"children,omitempty"`
	Direction string `json:"direction,omitempty"` // "horizontal" | "vertical"
}

// NewPaneNode builds a leaf Node.
func NewPaneNode(id, cwd string, relativeSize int) Node {
	return Node{Kind: "pane", ID: id, Cwd: cwd, RelativeSize: relativeSize}
}

// NewInternalNode builds a group Node.
func NewInternalNode(direction string, relativeSize int, children []Node) Node {
	return Node{Kind: "internal", Direction: direction, RelativeSize: relativeSize, Children: children}
}

// FromLayoutState converts an in-memory workspace.LayoutState into the
// wire Document, distributing layout.LayoutEntry.Weight proportionally
// into MaxLayoutPrecision-denominated RelativeSize fields.
func FromLayoutState(ls *workspace.LayoutState, activeSessionID string) Document {
	doc := Document{LayoutStateV1: &LayoutStateV1{ActiveSessionID: activeSessionID}}
	for _, s := range ls.Sessions {
		doc.LayoutStateV1.Sessions = append(doc.LayoutStateV1.Sessions, sessionToWire(s))
	}
	return doc
}

func sessionToWire(s *workspace.Session) Session {
	out := Session{ID: s.ID, Name: s.Name}
	if t := s.ActiveTab(); t != nil {
		out.ActiveTab = t.ID
	}
	for _, t := range s.Tabs {
		out.Tabs = append(out.Tabs, tabToWire(t))
	}
	return out
}

func tabToWire(t *workspace.Tab) Tab {
	return Tab{
		ID:               t.ID,
		Name:             t.Name,
		PaneLayout:       groupToWire(t.Root, MaxLayoutPrecision),
		PaneIDsByRecency: t.PaneIDs(),
		ActivePaneID:     t.Active(),
		FullScreenPaneID: t.FullScreen,
	}
}

func groupToWire(g *layout.LayoutGroup, totalSize int) Node {
	if len(g.Children) == 1 {
		return nodeToWire(g.Children[0].Node, totalSize)
	}
	totalWeight := 0
	for _, e := range g.Children {
		totalWeight += e.Weight
	}
	dir := "horizontal"
	if g.Direction == layout.DirVertical {
		dir = "vertical"
	}
	var children []Node
	for _, e := range g.Children {
		share := totalSize
		if totalWeight > 0 {
			share = totalSize * e.Weight / totalWeight
		}
		children = append(children, nodeToWire(e.Node, share))
	}
	return NewInternalNode(dir, totalSize, children)
}

func nodeToWire(n *layout.LayoutNode, size int) Node {
	if n.Group != nil {
		return groupToWire(n.Group, size)
	}
	return NewPaneNode(n.PaneID, "", size)
}

// ToLayoutState rebuilds a workspace.LayoutState from a decoded
// Document, spawning each tab's split tree with pane identities
// preserved (spec.md §6: "Restoring spawns panes with id preserved and
// replays the tree"). paneStarter is called once per leaf pane id in
// tree order so the caller can actually fork/exec the pane's process.
func ToLayoutState(doc Document, paneStarter func(id, cwd string)) (*LayoutState, error) {
	if doc.LayoutStateV1 == nil {
		return nil, fmt.Errorf("%w: document has no known variant", ErrUnknownVariant)
	}
	out := &LayoutState{ActiveSessionID: doc.LayoutStateV1.ActiveSessionID}
	for _, s := range doc.LayoutStateV1.Sessions {
		rs := RestoredSession{ID: s.ID, Name: s.Name, ActiveTabID: s.ActiveTab}
		for _, t := range s.Tabs {
			rt := RestoredTab{
				ID:               t.ID,
				Name:             t.Name,
				PaneIDsByRecency: t.PaneIDsByRecency,
				ActivePaneID:     t.ActivePaneID,
				FullScreenPaneID: t.FullScreenPaneID,
			}
			root, err := wireToGroup(t.PaneLayout, "", paneStarter)
			if err != nil {
				return nil, err
			}
			rt.Root = root
			rs.Tabs = append(rs.Tabs, rt)
		}
		out.Sessions = append(out.Sessions, rs)
	}
	return out, nil
}

func wireToGroup(n Node, refID string, paneStarter func(id, cwd string)) (*layout.LayoutGroup, error) {
	root := layout.NewLayoutGroup()
	switch n.Kind {
	case "pane":
		paneStarter(n.ID, n.Cwd)
		root.Split(n.ID, "", layout.DirNone)
		return root, nil
	case "internal":
		dir := layout.DirHorizontal
		if n.Direction == "vertical" {
			dir = layout.DirVertical
		}
		for _, child := range n.Children {
			switch child.Kind {
			case "pane":
				paneStarter(child.ID, child.Cwd)
				root.Children = append(root.Children, &layout.LayoutEntry{Node: &layout.LayoutNode{PaneID: child.ID}, Weight: 100})
			case "internal":
				sub, err := wireToGroup(child, "", paneStarter)
				if err != nil {
					return nil, err
				}
				root.Children = append(root.Children, &layout.LayoutEntry{Node: &layout.LayoutNode{Group: sub}, Weight: 100})
			default:
				return nil, fmt.Errorf("%w: node kind %q", ErrUnknownVariant, child.Kind)
			}
		}
		if len(root.Children) > 1 {
			root.Direction = dir
		}
		return root, nil
	default:
		return nil, fmt.Errorf("%w: node kind %q", ErrUnknownVariant, n.Kind)
	}
}

// LayoutState is the in-memory result of restoring a Document; a caller
// (the app layer) adapts it into real workspace.Session/Tab objects once
// panes have actually been spawned by paneStarter.
type LayoutState struct {
	ActiveSessionID string
	Sessions        []RestoredSession
}

// RestoredSession is one decoded session, pre-attachment to live panes.
type RestoredSession struct {
	ID          string
	Name        string
	ActiveTabID string
	Tabs        []RestoredTab
}

// RestoredTab is one decoded tab.
type RestoredTab struct {
	ID               string
	Name             string
	Root             *layout.LayoutGroup
	PaneIDsByRecency []string
	ActivePaneID     string
	FullScreenPaneID string
}

// Marshal renders doc as indented JSON (spec.md §6 schema).
func Marshal(doc Document) ([]byte, error) {
	return json.MarshalIndent(doc, "", "  ")
}

// Unmarshal parses data into a Document, rejecting unknown top-level
// variants.
func Unmarshal(data []byte) (Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return Document{}, fmt.Errorf("snapshot: decode: %w", err)
	}
	if doc.LayoutStateV1 == nil {
		return Document{}, ErrUnknownVariant
	}
	return doc, nil
}
