package profile

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"completiond/pkg/types"
)

func testProfile(name string) types.Profile {
	return types.Profile{
		Name:    name,
		Kind:    types.ProviderOllama,
		BaseURL: "http://localhost:11434",
		Model:   "qwen2.5-coder:1.5b",
	}
}

func TestOpenMissingFileStartsEmpty(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "profiles.yaml"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if ps, active := s.List(); len(ps) != 0 || active != "" {
		t.Fatalf("expected empty store, got %d profiles active=%q", len(ps), active)
	}
	if s.Active() != nil {
		t.Fatalf("expected nil active profile")
	}
}

func TestAddMintsIDAndPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profiles.yaml")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	p, err := s.Add(testProfile("local ollama"))
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if p.ID == "" {
		t.Fatalf("expected minted id")
	}
	if err := s.SetActive(p.ID); err != nil {
		t.Fatalf("SetActive: %v", err)
	}

	// reopen from disk
	s2, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	active := s2.Active()
	if active == nil || active.ID != p.ID {
		t.Fatalf("active not persisted: %+v", active)
	}
}

func TestRoundTripFormats(t *testing.T) {
	for _, name := range []string{"profiles.yaml", "profiles.json", "profiles.toml"} {
		path := filepath.Join(t.TempDir(), name)
		s, err := Open(path)
		if err != nil {
			t.Fatalf("%s: Open: %v", name, err)
		}
		p, err := s.Add(testProfile("p"))
		if err != nil {
			t.Fatalf("%s: Add: %v", name, err)
		}
		s2, err := Open(path)
		if err != nil {
			t.Fatalf("%s: reopen: %v", name, err)
		}
		ps, _ := s2.List()
		if len(ps) != 1 || ps[0].ID != p.ID {
			t.Fatalf("%s: round trip lost profile: %+v", name, ps)
		}
	}
}

func TestOpenRejectsUnknownKind(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profiles.yaml")
	body := "profiles:\n  - id: x\n    kind: mystery\n    model: m\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Open(path); err == nil {
		t.Fatalf("expected error for unknown kind")
	}
}

func TestOpenRejectsDanglingActiveID(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profiles.yaml")
	body := "profiles: []\nactive_id: ghost\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Open(path); err == nil {
		t.Fatalf("expected error for dangling active_id")
	}
}

func TestSetActiveUnknownID(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "profiles.yaml"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	err = s.SetActive("ghost")
	if err == nil {
		t.Fatalf("expected error for unknown id")
	}
	if !IsUnknown(err) {
		t.Fatalf("expected unknown-profile error, got %v", err)
	}
	// the error carries its own status for the HTTP layer
	he, ok := err.(interface{ StatusCode() int })
	if !ok || he.StatusCode() != http.StatusNotFound {
		t.Fatalf("expected 404 status on error, got %v", err)
	}
	if IsUnknown(errors.New("unknown profile")) {
		t.Fatalf("plain errors must not match")
	}
}

func TestSubscribeFiresOnActiveChanges(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "profiles.yaml"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	var fired int
	s.Subscribe(func() { fired++ })

	a, _ := s.Add(testProfile("a"))
	b, _ := s.Add(testProfile("b"))
	if fired != 0 {
		t.Fatalf("Add must not notify, got %d", fired)
	}
	if err := s.SetActive(a.ID); err != nil {
		t.Fatalf("SetActive: %v", err)
	}
	if fired != 1 {
		t.Fatalf("expected 1 notification, got %d", fired)
	}
	// no-op switch
	if err := s.SetActive(a.ID); err != nil {
		t.Fatalf("SetActive: %v", err)
	}
	if fired != 1 {
		t.Fatalf("no-op switch must not notify, got %d", fired)
	}
	// editing the inactive profile is silent
	b.Name = "b2"
	if err := s.Update(b); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if fired != 1 {
		t.Fatalf("inactive update must not notify, got %d", fired)
	}
	// editing the active profile notifies
	a.Model = "other"
	if err := s.Update(a); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if fired != 2 {
		t.Fatalf("expected 2 notifications, got %d", fired)
	}
	// removing the active profile clears the selection and notifies
	if err := s.Remove(a.ID); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if fired != 3 {
		t.Fatalf("expected 3 notifications, got %d", fired)
	}
	if s.Active() != nil {
		t.Fatalf("expected no active profile after removal")
	}
}

func TestSubscriberMayReadStore(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "profiles.yaml"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	var seen *types.Profile
	s.Subscribe(func() { seen = s.Active() })
	p, _ := s.Add(testProfile("a"))
	if err := s.SetActive(p.ID); err != nil {
		t.Fatalf("SetActive: %v", err)
	}
	if seen == nil || seen.ID != p.ID {
		t.Fatalf("subscriber could not read store: %+v", seen)
	}
}
