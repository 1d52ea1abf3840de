package workouts

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed data/workouts.yaml
var builtInYAML []byte

type catalogFile struct {
	Workouts []Workout `yaml:"workouts"`
}

// LoadBuiltIn parses the built-in workout catalog shipped with the binary.
func LoadBuiltIn() ([]Workout, error) {
	return parseCatalog(builtInYAML)
}

func parseCatalog(raw []byte) ([]Workout, error) {
	var f catalogFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse workouts catalog: %w", err)
	}

	seen := make(map[string]bool, len(f.Workouts))
	for _, w := range f.Workouts {
		if w.ID == "" || w.Title == "" {
			return nil, fmt.Errorf("catalog workout without id or title: %+v", w)
		}
		if seen[w.ID] {
			return nil, fmt.Errorf("duplicate catalog workout id %s", w.ID)
		}
		if w.Category != "" && !w.Category.IsValid() {
			return nil, fmt.Errorf("catalog workout %s: %w", w.ID, ErrInvalidCategory)
		}
		if len(w.Exercises) == 0 {
			return nil, fmt.Errorf("catalog workout %s has no exercises", w.ID)
		}
		seen[w.ID] = true
	}
	return f.Workouts, nil
}
