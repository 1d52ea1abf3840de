package profile

import (
	"math"
	"strings"
)

type Goal string

const (
	GoalWeightLoss Goal = "weight_loss"
	GoalMaintain   Goal = "maintain"
	GoalWeightGain Goal = "weight_gain"
)

const goalCalorieDelta = 500

func (g Goal) IsValid() bool {
	switch g {
	case GoalWeightLoss, GoalMaintain, GoalWeightGain:
		return true
	}
	return false
}

func (g Goal) Title() string {
	switch g {
	case GoalWeightLoss:
		return "Weight Loss"
	case GoalWeightGain:
		return "Weight Gain"
	case GoalMaintain:
		return "Maintain Weight"
	}
	return ""
}

func (g Goal) Description() string {
	switch g {
	case GoalWeightLoss:
		return "Reduce daily calorie intake by 500 calories to lose weight safely"
	case GoalWeightGain:
		return "Increase daily calorie intake by 500 calories to gain weight"
	case GoalMaintain:
		return "Maintain current weight with calculated BMR calories"
	}
	return ""
}

const (
	GenderMale   = "male"
	GenderFemale = "female"
)

// BMI returns weight / height² (height in cm) rounded to one decimal, or 0
// when either value is not positive.
func BMI(weightKg, heightCm float64) float64 {
	if weightKg <= 0 || heightCm <= 0 {
		return 0
	}
	h := heightCm / 100
	return math.Round(weightKg/(h*h)*10) / 10
}

func BMICategory(bmi float64) string {
	switch {
	case bmi <= 0:
		return ""
	case bmi < 18.5:
		return "Underweight"
	case bmi < 25:
		return "Normal"
	case bmi < 30:
		return "Overweight"
	default:
		return "Obese"
	}
}

// BMR is the Mifflin-St Jeor basal metabolic rate, rounded. Missing or
// non-positive inputs and unknown genders give 0.
func BMR(weightKg, heightCm float64, age int, gender string) int {
	if weightKg <= 0 || heightCm <= 0 || age <= 0 {
		return 0
	}

	base := 10*weightKg + 6.25*heightCm - 5*float64(age)
	switch strings.ToLower(gender) {
	case GenderMale:
		return int(math.Round(base + 5))
	case GenderFemale:
		return int(math.Round(base - 161))
	}
	return 0
}

// DailyCalories adjusts bmr for goal. Without a BMR there is nothing to adjust.
func DailyCalories(bmr int, goal Goal) int {
	if bmr <= 0 {
		return 0
	}
	switch goal {
	case GoalWeightLoss:
		return bmr - goalCalorieDelta
	case GoalWeightGain:
		return bmr + goalCalorieDelta
	}
	return bmr
}
