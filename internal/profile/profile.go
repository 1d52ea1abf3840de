package profile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrMissingData  = errors.New("please enter both weight and height before saving")
	ErrInvalidInput = errors.New("weight and height must be positive numbers")
	ErrInvalidGoal  = errors.New("invalid goal")
)

// User is the record written once at sign up, under Users/{uid}.
type User struct {
	FullName string `json:"fullName"`
	Age      int    `json:"age"`
	Gender   string `json:"gender"`
}

// Profile is the record under UserProfile/{uid}. Several clients merge into
// it, so writes only ever touch their own fields.
type Profile struct {
	Weight        float64  `json:"weight,omitempty"`
	Height        float64  `json:"height,omitempty"`
	BMI           *float64 `json:"bmi,omitempty"`
	UpdatedAt     string   `json:"updatedAt,omitempty"`
	TotalCalories int      `json:"totalCalories,omitempty"`
	GoalSelected  Goal     `json:"GoalSelected,omitempty"`
	BurntCalories float64  `json:"burntCalories,omitempty"`
}

// FormValue accepts a JSON string or number and keeps its text, so that form
// input can be checked the same way whichever the client sends.
type FormValue string

func (v *FormValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*v = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = FormValue(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("form value must be a string or a number: %w", err)
	}
	*v = FormValue(n.String())
	return nil
}

func (v FormValue) Float() (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(string(v)), 64)
}

func (v FormValue) Empty() bool {
	return strings.TrimSpace(string(v)) == ""
}

type MeasurementsInput struct {
	Weight FormValue `json:"weight"`
	Height FormValue `json:"height"`
}

// Parse validates the form and returns weight and height.
func (in MeasurementsInput) Parse() (weight, height float64, err error) {
	if in.Weight.Empty() || in.Height.Empty() {
		return 0, 0, ErrMissingData
	}
	weight, err = in.Weight.Float()
	if err != nil || weight <= 0 {
		return 0, 0, ErrInvalidInput
	}
	height, err = in.Height.Float()
	if err != nil || height <= 0 {
		return 0, 0, ErrInvalidInput
	}
	return weight, height, nil
}

type GoalInput struct {
	Goal Goal `json:"goal"`
}

// View is a user's profile as shown on the profile screen.
type View struct {
	User        User    `json:"user"`
	Profile     Profile `json:"profile"`
	BMICategory string  `json:"bmiCategory"`
}

// Dashboard adds the calorie arithmetic for the saved goal.
type Dashboard struct {
	View
	BMR             int    `json:"bmr"`
	Goal            Goal   `json:"goal,omitempty"`
	GoalTitle       string `json:"goalTitle,omitempty"`
	GoalDescription string `json:"goalDescription,omitempty"`
	DailyCalories   int    `json:"dailyCalories"`
	BurntCalories   int    `json:"burntCalories"`
}

type GoalResult struct {
	Goal          Goal `json:"goal"`
	BMR           int  `json:"bmr"`
	DailyCalories int  `json:"dailyCalories"`
}
