// Package catalog resolves component datasheets by name.
//
// A set of JSON datasheets ships embedded with the binary; a registry
// may overlay a directory of user datasheets on top, which replace
// embedded entries of the same name and add new ones. Categories are
// discovered lazily and cached.
package catalog

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

//go:embed defaults
var defaultsFS embed.FS

// ErrNotFound marks a lookup for a name no datasheet carries.
var ErrNotFound = errors.New("component not found")

// Categories mirror the defaults/ directory layout.
const (
	categoryTransceivers   = "transceivers"
	categoryAntennas       = "antennas"
	categoryGroundStations = "groundstations"
	categoryBands          = "bands"
	categoryMissions       = "missions"
)

// Registry resolves datasheets by category and name. Construct with New
// or NewWithOverlay; safe for concurrent use.
type Registry struct {
	overlayDir string

	mu    sync.Mutex
	cache map[string]map[string][]byte
}

// New returns a registry over the embedded defaults only.
func New() *Registry {
	return &Registry{cache: make(map[string]map[string][]byte)}
}

// NewWithOverlay returns a registry that overlays dir on the embedded
// defaults. dir holds the same per-category subdirectories the embedded
// defaults use; a missing directory is an empty overlay.
func NewWithOverlay(dir string) *Registry {
	return &Registry{overlayDir: dir, cache: make(map[string]map[string][]byte)}
}

// entries returns the raw datasheet bytes for one category, keyed by
// file stem. The returned map is cached and must not be mutated.
func (r *Registry) entries(category string) (map[string][]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if m, ok := r.cache[category]; ok {
		return m, nil
	}

	m := make(map[string][]byte)
	if err := readCategory(m, defaultsFS, path.Join("defaults", category)); err != nil {
		return nil, fmt.Errorf("embedded %s datasheets: %w", category, err)
	}
	if r.overlayDir != "" {
		dir := filepath.Join(r.overlayDir, category)
		if _, err := os.Stat(dir); err == nil {
			if err := readCategory(m, os.DirFS(dir), "."); err != nil {
				return nil, fmt.Errorf("overlay %s datasheets: %w", category, err)
			}
		}
	}

	r.cache[category] = m
	return m, nil
}

func readCategory(dst map[string][]byte, fsys fs.FS, dir string) error {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return err
	}
	for _, e := range entries {
		name := e.Name()
		ext := path.Ext(name)
		if e.IsDir() || (ext != ".json" && ext != ".yaml") {
			continue
		}
		raw, err := fs.ReadFile(fsys, path.Join(dir, name))
		if err != nil {
			return err
		}
		dst[strings.TrimSuffix(name, ext)] = raw
	}
	return nil
}

func (r *Registry) names(category string) ([]string, error) {
	m, err := r.entries(category)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (r *Registry) raw(category, kind, name string) ([]byte, error) {
	m, err := r.entries(category)
	if err != nil {
		return nil, err
	}
	raw, ok := m[name]
	if !ok {
		names, _ := r.names(category)
		return nil, fmt.Errorf("%w: %s %q (available: %s)", ErrNotFound, kind, name, strings.Join(names, ", "))
	}
	return raw, nil
}

// Transceivers lists the known transceiver datasheets.
func (r *Registry) Transceivers() ([]string, error) {
	return r.names(categoryTransceivers)
}

// Antennas lists the known antenna datasheets.
func (r *Registry) Antennas() ([]string, error) {
	return r.names(categoryAntennas)
}

// GroundStations lists the known ground station datasheets.
func (r *Registry) GroundStations() ([]string, error) {
	return r.names(categoryGroundStations)
}

// Bands lists the known frequency band datasheets.
func (r *Registry) Bands() ([]string, error) {
	return r.names(categoryBands)
}

// Missions lists the bundled mission presets.
func (r *Registry) Missions() ([]string, error) {
	return r.names(categoryMissions)
}

// Mission returns the raw bytes of a mission preset. Presets stay opaque
// here; the mission package owns their schema.
func (r *Registry) Mission(name string) ([]byte, error) {
	return r.raw(categoryMissions, "mission", name)
}
