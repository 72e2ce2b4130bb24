// Package profile persists completion backend profiles and tracks which one
// is active. Changing or removing the active profile notifies subscribers so
// dependent state (built models, cached suggestions) can be invalidated.
package profile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"
	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"completiond/internal/common/fsutil"
	"completiond/pkg/types"
)

// fileFormat is the persisted document shape.
type fileFormat struct {
	Profiles []types.Profile `json:"profiles" yaml:"profiles" toml:"profiles"`
	ActiveID string          `json:"active_id" yaml:"active_id" toml:"active_id"`
}

// Store is a file-backed profile registry. All methods are safe for
// concurrent use. Subscribers are invoked after the store's lock is
// released, so they may call back into methods that read the store.
type Store struct {
	mu       sync.RWMutex
	path     string
	profiles []types.Profile
	activeID string
	subs     []func()
}

// Open loads the store from path, creating an empty store if the file does
// not exist yet. The format is chosen by extension: .yaml/.yml, .json, .toml.
func Open(path string) (*Store, error) {
	expanded, err := fsutil.ExpandHome(path)
	if err != nil {
		return nil, err
	}
	s := &Store{path: expanded}
	if !fsutil.PathExists(expanded) {
		return s, nil
	}
	b, err := os.ReadFile(expanded)
	if err != nil {
		return nil, err
	}
	var doc fileFormat
	switch ext := strings.ToLower(filepath.Ext(expanded)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(b, &doc)
	case ".json":
		err = json.Unmarshal(b, &doc)
	case ".toml":
		err = toml.Unmarshal(b, &doc)
	default:
		return nil, fmt.Errorf("unsupported profiles extension: %s", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", expanded, err)
	}
	for _, p := range doc.Profiles {
		if err := validate(p); err != nil {
			return nil, fmt.Errorf("profile %q: %w", p.ID, err)
		}
	}
	if doc.ActiveID != "" && findByID(doc.Profiles, doc.ActiveID) < 0 {
		return nil, fmt.Errorf("active profile %q not in profile list", doc.ActiveID)
	}
	s.profiles = doc.Profiles
	s.activeID = doc.ActiveID
	return s, nil
}

func validate(p types.Profile) error {
	if p.ID == "" {
		return fmt.Errorf("missing id")
	}
	switch p.Kind {
	case types.ProviderOpenAI, types.ProviderOllama, types.ProviderLocal:
	default:
		return fmt.Errorf("unknown provider kind %q", p.Kind)
	}
	if p.Model == "" {
		return fmt.Errorf("missing model")
	}
	return nil
}

func findByID(ps []types.Profile, id string) int {
	for i, p := range ps {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// List returns a copy of all profiles and the active id.
func (s *Store) List() ([]types.Profile, string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]types.Profile, len(s.profiles))
	copy(out, s.profiles)
	return out, s.activeID
}

// Active returns the active profile, or nil when none is selected.
func (s *Store) Active() *types.Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := findByID(s.profiles, s.activeID)
	if i < 0 {
		return nil
	}
	p := s.profiles[i]
	return &p
}

// SetActive switches the active profile and persists the change.
// Subscribers are notified when the selection actually changes.
func (s *Store) SetActive(id string) error {
	s.mu.Lock()
	if id != "" && findByID(s.profiles, id) < 0 {
		s.mu.Unlock()
		return &unknownProfileError{id: id}
	}
	changed := s.activeID != id
	s.activeID = id
	err := s.saveLocked()
	subs := s.snapshotSubsLocked()
	s.mu.Unlock()
	if err != nil {
		return err
	}
	if changed {
		notify(subs)
	}
	return nil
}

// Add stores a new profile, minting an id when the caller left it empty,
// and returns the stored copy.
func (s *Store) Add(p types.Profile) (types.Profile, error) {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if err := validate(p); err != nil {
		return types.Profile{}, err
	}
	s.mu.Lock()
	if findByID(s.profiles, p.ID) >= 0 {
		s.mu.Unlock()
		return types.Profile{}, fmt.Errorf("profile %q already exists", p.ID)
	}
	s.profiles = append(s.profiles, p)
	err := s.saveLocked()
	s.mu.Unlock()
	if err != nil {
		return types.Profile{}, err
	}
	return p, nil
}

// Update replaces an existing profile in place. Updating the active profile
// notifies subscribers.
func (s *Store) Update(p types.Profile) error {
	if err := validate(p); err != nil {
		return err
	}
	s.mu.Lock()
	i := findByID(s.profiles, p.ID)
	if i < 0 {
		s.mu.Unlock()
		return &unknownProfileError{id: p.ID}
	}
	s.profiles[i] = p
	wasActive := s.activeID == p.ID
	err := s.saveLocked()
	subs := s.snapshotSubsLocked()
	s.mu.Unlock()
	if err != nil {
		return err
	}
	if wasActive {
		notify(subs)
	}
	return nil
}

// Remove deletes a profile. Removing the active profile clears the
// selection and notifies subscribers.
func (s *Store) Remove(id string) error {
	s.mu.Lock()
	i := findByID(s.profiles, id)
	if i < 0 {
		s.mu.Unlock()
		return &unknownProfileError{id: id}
	}
	s.profiles = append(s.profiles[:i], s.profiles[i+1:]...)
	wasActive := s.activeID == id
	if wasActive {
		s.activeID = ""
	}
	err := s.saveLocked()
	subs := s.snapshotSubsLocked()
	s.mu.Unlock()
	if err != nil {
		return err
	}
	if wasActive {
		notify(subs)
	}
	return nil
}

// Subscribe registers fn to run after the active profile changes. fn must
// not block; long work belongs in a goroutine.
func (s *Store) Subscribe(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}

func (s *Store) snapshotSubsLocked() []func() {
	out := make([]func(), len(s.subs))
	copy(out, s.subs)
	return out
}

func notify(subs []func()) {
	for _, fn := range subs {
		fn()
	}
}

func (s *Store) saveLocked() error {
	if s.path == "" {
		return nil
	}
	doc := fileFormat{Profiles: s.profiles, ActiveID: s.activeID}
	var (
		b   []byte
		err error
	)
	switch ext := strings.ToLower(filepath.Ext(s.path)); ext {
	case ".yaml", ".yml":
		b, err = yaml.Marshal(doc)
	case ".json":
		b, err = json.MarshalIndent(doc, "", "  ")
	case ".toml":
		b, err = toml.Marshal(doc)
	default:
		return fmt.Errorf("unsupported profiles extension: %s", ext)
	}
	if err != nil {
		return err
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return fsutil.WriteFileAtomic(s.path, b, 0o600)
}
