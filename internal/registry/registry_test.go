package registry

import (
	"os"
	"path/filepath"
	"testing"
)

func testRegistry(t *testing.T) *Registry {
	t.Helper()
	return New(filepath.Join(t.TempDir(), "saved_clients.json"))
}

func TestLoadMissingFileIsEmpty(t *testing.T) {
	r := testRegistry(t)
	if got := r.Load(); len(got) != 0 {
		t.Errorf("Load on missing file = %v, want empty", got)
	}
}

func TestLoadCorruptFileIsEmpty(t *testing.T) {
	r := testRegistry(t)
	if err := os.WriteFile(r.path, []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}
	if got := r.Load(); len(got) != 0 {
		t.Errorf("Load on corrupt file = %v, want empty", got)
	}
}

func TestAddDeduplicatesIgnoringPassword(t *testing.T) {
	r := testRegistry(t)

	if err := r.Add(Profile{Hostname: "web01", Username: "alice", Port: 22, Password: "first"}); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if err := r.Add(Profile{Hostname: "web01", Username: "alice", Port: 22, Password: "second"}); err != nil {
		t.Fatalf("Add: %v", err)
	}

	profiles := r.Load()
	if len(profiles) != 1 {
		t.Fatalf("got %d profiles, want 1: %+v", len(profiles), profiles)
	}
	// The first save wins; the differing password does not create a new entry.
	if profiles[0].Password != "first" {
		t.Errorf("password = %q, want %q", profiles[0].Password, "first")
	}
}

func TestAddDistinguishesPortAndUser(t *testing.T) {
	r := testRegistry(t)

	base := Profile{Hostname: "web01", Username: "alice", Port: 22}
	otherPort := Profile{Hostname: "web01", Username: "alice", Port: 2222}
	otherUser := Profile{Hostname: "web01", Username: "bob", Port: 22}

	for _, p := range []Profile{base, otherPort, otherUser} {
		if err := r.Add(p); err != nil {
			t.Fatalf("Add(%+v): %v", p, err)
		}
	}

	if got := len(r.Load()); got != 3 {
		t.Errorf("got %d profiles, want 3", got)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	r := testRegistry(t)

	want := []Profile{
		{Hostname: "a", Username: "u", Port: 22, Password: "pw"},
		{Hostname: "b", Username: "v", Port: 2222},
	}
	if err := r.Save(want); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got := r.Load()
	if len(got) != len(want) {
		t.Fatalf("got %d profiles, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("profile %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}
