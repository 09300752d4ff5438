package preset

import (
	"encoding/json"
	"errors"
	"fmt"
)

// decodeEmbedded parses the embedded JSON file name into v. Unknown keys are
// rejected so a typo in presets.json fails at startup instead of being ignored.
func decodeEmbedded(name string, v any) error {
	f, err := dataFS.Open(name)
	if err != nil {
		return fmt.Errorf("open %s: %w", name, err)
	}
	defer f.Close()

	dec := json.NewDecoder(f)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("decode %s: %w", name, err)
	}
	return nil
}

// validate checks a preset list before it is indexed.
func validate(presets []Preset) error {
	if len(presets) == 0 {
		return errors.New("no presets defined")
	}
	seen := make(map[string]bool, len(presets))
	for i, p := range presets {
		switch {
		case p.ID == "":
			return fmt.Errorf("preset %d has no id", i)
		case seen[p.ID]:
			return fmt.Errorf("preset %q defined twice", p.ID)
		case p.Size < 1:
			return fmt.Errorf("preset %q: size must be at least 1, got %d", p.ID, p.Size)
		}
		seen[p.ID] = true
		for _, hex := range []string{p.WallColor, p.WalkerColor, p.GoalColor} {
			if hex == "" {
				continue
			}
			if _, err := ParseHexColor(hex); err != nil {
				return fmt.Errorf("preset %q: %w", p.ID, err)
			}
		}
	}
	return nil
}
