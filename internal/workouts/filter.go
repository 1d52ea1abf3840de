package workouts

import "strings"

// Merge returns built-ins followed by custom workouts, both in their given order.
func Merge(builtIn, custom []Workout) []Workout {
	merged := make([]Workout, 0, len(builtIn)+len(custom))
	merged = append(merged, builtIn...)
	return append(merged, custom...)
}

// Filter keeps workouts of the given category (a workout without a category
// counts as home) whose muscle group contains the search term, case
// insensitive. An empty or blank term matches everything. Order is kept.
func Filter(all []Workout, category Category, searchTerm string) []Workout {
	term := strings.ToLower(strings.TrimSpace(searchTerm))
	filtered := make([]Workout, 0, len(all))
	for _, w := range all {
		if w.Category.OrDefault() != category {
			continue
		}
		if term != "" && !strings.Contains(strings.ToLower(w.MuscleGroup), term) {
			continue
		}
		filtered = append(filtered, w)
	}
	return filtered
}

// Find returns the workout with the given id.
func Find(all []Workout, id string) (Workout, bool) {
	for _, w := range all {
		if w.ID == id {
			return w, true
		}
	}
	return Workout{}, false
}
