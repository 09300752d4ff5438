package preset

import (
	"errors"
	"fmt"
	"sort"

	"github.com/gdamore/tcell/v2"
)

// ErrUnknown is returned when a preset ID is not in the registry.
var ErrUnknown = errors.New("unknown preset")

// Preset is a named maze configuration loaded from JSON.
type Preset struct {
	ID          string `json:"id"`          // Unique identifier (e.g., "classic")
	Name        string `json:"name"`        // Display name
	Size        int    `json:"size"`        // Edge length of the maze
	Seed        int64  `json:"seed"`        // Fixed seed; 0 means pick one at random
	WallColor   string `json:"wallColor"`   // Hex color for walls
	WalkerColor string `json:"walkerColor"` // Hex color for the walker
	GoalColor   string `json:"goalColor"`   // Hex color for the goal marker
}

// Theme holds the terminal colors of a preset.
type Theme struct {
	Wall   tcell.Color
	Walker tcell.Color
	Goal   tcell.Color
}

// DefaultTheme is used when no preset is selected.
var DefaultTheme = Theme{
	Wall:   tcell.ColorDarkGray,
	Walker: tcell.ColorYellow,
	Goal:   tcell.ColorGreen,
}

// Theme returns the preset's colors, using DefaultTheme for missing entries.
func (p *Preset) Theme() Theme {
	return Theme{
		Wall:   colorOr(p.WallColor, DefaultTheme.Wall),
		Walker: colorOr(p.WalkerColor, DefaultTheme.Walker),
		Goal:   colorOr(p.GoalColor, DefaultTheme.Goal),
	}
}

// presetsFile represents the structure of presets.json.
type presetsFile struct {
	Presets []Preset `json:"presets"`
}

// Registry holds loaded presets indexed by ID.
type Registry struct {
	byID map[string]*Preset
	all  []Preset
}

// NewRegistry creates a registry from preset definitions.
func NewRegistry(presets []Preset) *Registry {
	r := &Registry{
		byID: make(map[string]*Preset),
		all:  presets,
	}
	for i := range presets {
		r.byID[presets[i].ID] = &presets[i]
	}
	return r
}

// LoadRegistry loads and validates the embedded presets.json.
func LoadRegistry() (*Registry, error) {
	var file presetsFile
	if err := decodeEmbedded("presets.json", &file); err != nil {
		return nil, err
	}
	if err := validate(file.Presets); err != nil {
		return nil, fmt.Errorf("presets.json: %w", err)
	}
	return NewRegistry(file.Presets), nil
}

// GetByID returns the preset with the given ID, or nil if not found.
func (r *Registry) GetByID(id string) *Preset {
	return r.byID[id]
}

// Lookup is GetByID with an error for unknown IDs.
func (r *Registry) Lookup(id string) (*Preset, error) {
	p := r.GetByID(id)
	if p == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknown, id)
	}
	return p, nil
}

// IDs returns the sorted preset IDs.
func (r *Registry) IDs() []string {
	ids := make([]string, 0, len(r.all))
	for _, p := range r.all {
		ids = append(ids, p.ID)
	}
	sort.Strings(ids)
	return ids
}

// Count returns the number of presets in the registry.
func (r *Registry) Count() int {
	return len(r.all)
}

// Apply resolves the size, seed and theme for a request. An empty id keeps
// size and seed as given; otherwise the preset's size replaces size and its
// seed replaces seed when the preset fixes one.
func (r *Registry) Apply(id string, size int, seed int64) (int, int64, Theme, error) {
	if id == "" {
		return size, seed, DefaultTheme, nil
	}
	p, err := r.Lookup(id)
	if err != nil {
		return 0, 0, Theme{}, err
	}
	if p.Seed != 0 {
		seed = p.Seed
	}
	return p.Size, seed, p.Theme(), nil
}
