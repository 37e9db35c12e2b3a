// Package registry persists connection profiles so known hosts can be
// reconnected without retyping credentials.
package registry

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
)

// Profile identifies a saved connection. The password is optional and is
// ignored when deduplicating.
type Profile struct {
	Hostname string `json:"hostname"`
	Username string `json:"username"`
	Port     int    `json:"port"`
	Password string `json:"password,omitempty"`
}

// key is the dedup identity of a profile: everything except the password.
func (p Profile) key() string {
	return fmt.Sprintf("%s|%s|%d", p.Hostname, p.Username, p.Port)
}

// Registry is a JSON-file-backed store of connection profiles.
type Registry struct {
	path string
}

// Open returns the registry backed by the default per-user data file,
// $XDG_DATA_HOME/sshwomper/saved_clients.json.
func Open() (*Registry, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		dataHome = filepath.Join(home, ".local", "share")
	}
	dir := filepath.Join(dataHome, "sshwomper")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Registry{path: filepath.Join(dir, "saved_clients.json")}, nil
}

// New returns a registry backed by an explicit file path.
func New(path string) *Registry {
	return &Registry{path: path}
}

// Load reads the saved profiles. A missing file or unparsable content yields
// an empty list, never an error.
func (r *Registry) Load() []Profile {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("reading %s: %v", r.path, err)
		}
		return nil
	}
	var profiles []Profile
	if err := json.Unmarshal(data, &profiles); err != nil {
		log.Printf("parsing %s: %v", r.path, err)
		return nil
	}
	return profiles
}

// Save writes the profiles with stable indented formatting.
func (r *Registry) Save(profiles []Profile) error {
	data, err := json.MarshalIndent(profiles, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(r.path, append(data, '\n'), 0o600)
}

// Add persists p unless an equivalent profile (password ignored) is already
// stored.
func (r *Registry) Add(p Profile) error {
	profiles := r.Load()
	for _, existing := range profiles {
		if existing.key() == p.key() {
			return nil
		}
	}
	return r.Save(append(profiles, p))
}
