package diets

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

var ErrNoMeals = errors.New("diet plan has no meals")

// NoMealsMessage is shown to users submitting an empty plan.
const NoMealsMessage = "Please enter at least one meal to create your diet plan."

//go:embed data/diets.yaml
var builtInYAML []byte

type Meals struct {
	Breakfast string `json:"breakfast" yaml:"breakfast"`
	Lunch     string `json:"lunch" yaml:"lunch"`
	Snack     string `json:"snack" yaml:"snack"`
	Dinner    string `json:"dinner" yaml:"dinner"`
}

func (m Meals) Normalize() Meals {
	return Meals{
		Breakfast: strings.TrimSpace(m.Breakfast),
		Lunch:     strings.TrimSpace(m.Lunch),
		Snack:     strings.TrimSpace(m.Snack),
		Dinner:    strings.TrimSpace(m.Dinner),
	}
}

func (m Meals) Empty() bool {
	n := m.Normalize()
	return n.Breakfast == "" && n.Lunch == "" && n.Snack == "" && n.Dinner == ""
}

// Plan is one of the built-in plans shown for a goal.
type Plan struct {
	Goal          string `json:"goal" yaml:"goal"`
	TotalCalories string `json:"totalCalories" yaml:"totalCalories"`
	Meals         Meals  `json:"meals" yaml:"meals"`
}

// CustomPlan is a user created plan. ID is the store key.
type CustomPlan struct {
	ID        string `json:"id"`
	PlanName  string `json:"planName"`
	Meals     Meals  `json:"meals"`
	CreatedAt string `json:"createdAt"`
}

// MealLines splits a free text meal into display lines, one per line of input.
func MealLines(meal string) []string {
	var lines []string
	for _, l := range strings.Split(meal, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}

type catalogFile struct {
	Plans []Plan `yaml:"plans"`
}

// LoadBuiltIn parses the built-in diet plans shipped with the binary.
func LoadBuiltIn() ([]Plan, error) {
	return parseCatalog(builtInYAML)
}

func parseCatalog(raw []byte) ([]Plan, error) {
	var f catalogFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse diets catalog: %w", err)
	}
	for _, p := range f.Plans {
		if p.Goal == "" {
			return nil, fmt.Errorf("catalog diet plan without goal: %+v", p)
		}
		if p.Meals.Empty() {
			return nil, fmt.Errorf("catalog diet plan %q has no meals", p.Goal)
		}
	}
	return f.Plans, nil
}
