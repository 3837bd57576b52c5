package snapshot

import (
	"testing"

	"github.com/patrick-goecommerce/ttx/internal/layout"
	"github.com/patrick-goecommerce/ttx/internal/workspace"
)

func TestRoundTripSaveAndRestore(t *testing.T) {
	ls := workspace.NewLayoutState()
	s := workspace.NewSession("main")
	tab := workspace.NewTab("editor", "/tmp")
	if err := tab.AddPane("p1", "", layout.DirNone); err != nil {
		t.Fatal(err)
	}
	if err := tab.AddPane("p2", "p1", layout.DirHorizontal); err != nil {
		t.Fatal(err)
	}
	s.AddTab(tab)
	ls.AddSession(s)

	doc := FromLayoutState(ls, s.ID)
	data, err := Marshal(doc)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	decoded, err := Unmarshal(data)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	var spawned []string
	restored, err := ToLayoutState(decoded, func(id, cwd string) {
		spawned = append(spawned, id)
	})
	if err != nil {
		t.Fatalf("to layout state: %v", err)
	}
	if len(spawned) != 2 {
		t.Fatalf("spawned = %v, want 2 panes", spawned)
	}
	if len(restored.Sessions) != 1 || len(restored.Sessions[0].Tabs) != 1 {
		t.Fatalf("restored = %+v", restored)
	}
	ids := restored.Sessions[0].Tabs[0].Root.Children
	if len(ids) != 2 {
		t.Fatalf("restored tree children = %d, want 2", len(ids))
	}
}

func TestUnmarshalRejectsUnknownVariant(t *testing.T) {
	_, err := Unmarshal([]byte(`{"SomeOtherVariant": {}}`))
	if err != ErrUnknownVariant {
		t.Fatalf("err = %v, want ErrUnknownVariant", err)
	}
}
