package workspace

import "github.com/google/uuid"

// Session groups tabs under one identity (spec.md §4.12). A program may
// hold several sessions at once (e.g. attached/detached, or one per
// project); LayoutState owns the set.
type Session struct {
	ID   string
	Name string
	Tabs []*Tab

	activeTab int
}

// NewSession returns a session with a fresh id and no tabs.
func NewSession(name string) *Session {
	return &Session{ID: uuid.NewString(), Name: name}
}

// AddTab appends a tab and makes it active.
func (s *Session) AddTab(t *Tab) {
	s.Tabs = append(s.Tabs, t)
	s.activeTab = len(s.Tabs) - 1
}

// RemoveTab deletes the tab at index i, adjusting the active index
// (spec.md §4.12: "if the tab is empty, its session removes it").
func (s *Session) RemoveTab(i int) {
	if i < 0 || i >= len(s.Tabs) {
		return
	}
	s.Tabs = append(s.Tabs[:i], s.Tabs[i+1:]...)
	if s.activeTab >= len(s.Tabs) {
		s.activeTab = len(s.Tabs) - 1
	}
}

// ActiveTab returns the session's current tab, or nil if it holds none.
func (s *Session) ActiveTab() *Tab {
	if s.activeTab < 0 || s.activeTab >= len(s.Tabs) {
		return nil
	}
	return s.Tabs[s.activeTab]
}

// SetActiveTab selects the tab at index i if in range.
func (s *Session) SetActiveTab(i int) {
	if i >= 0 && i < len(s.Tabs) {
		s.activeTab = i
	}
}

// IsEmpty reports whether the session holds no tabs.
func (s *Session) IsEmpty() bool { return len(s.Tabs) == 0 }

// LayoutState owns every session in the program (spec.md §4.12, §4.13:
// "single mutex guards the entire tree", though the mutex itself lives
// with whatever caller embeds LayoutState — this type holds only the
// data, leaving locking to the concurrency spine per spec.md §5).
type LayoutState struct {
	Sessions     []*Session
	activeSession int
}

// NewLayoutState returns an empty state.
func NewLayoutState() *LayoutState {
	return &LayoutState{}
}

// AddSession appends a session and makes it active.
func (ls *LayoutState) AddSession(s *Session) {
	ls.Sessions = append(ls.Sessions, s)
	ls.activeSession = len(ls.Sessions) - 1
}

// RemoveSession deletes the session at index i (spec.md §4.12: "if the
// session is empty, the state removes it").
func (ls *LayoutState) RemoveSession(i int) {
	if i < 0 || i >= len(ls.Sessions) {
		return
	}
	ls.Sessions = append(ls.Sessions[:i], ls.Sessions[i+1:]...)
	if ls.activeSession >= len(ls.Sessions) {
		ls.activeSession = len(ls.Sessions) - 1
	}
}

// ActiveSession returns the current session, or nil if none exist.
func (ls *LayoutState) ActiveSession() *Session {
	if ls.activeSession < 0 || ls.activeSession >= len(ls.Sessions) {
		return nil
	}
	return ls.Sessions[ls.activeSession]
}

// IsEmpty reports whether the state holds no sessions — per spec.md
// §4.12, this is the condition under which "the program exits".
func (ls *LayoutState) IsEmpty() bool { return len(ls.Sessions) == 0 }

// Prune removes any session left empty by a pane/tab removal, cascading
// per spec.md §4.12's three-level fallback (tab -> session -> program).
func (ls *LayoutState) Prune() {
	for i := 0; i < len(ls.Sessions); i++ {
		s := ls.Sessions[i]
		for j := 0; j < len(s.Tabs); j++ {
			if len(s.Tabs[j].PaneIDs()) == 0 {
				s.RemoveTab(j)
				j--
			}
		}
		if s.IsEmpty() {
			ls.RemoveSession(i)
			i--
		}
	}
}
