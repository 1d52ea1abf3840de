package calories

import (
	"regexp"
	"strconv"
)

var numberRegex = regexp.MustCompile(`\d+`)

// EstimateCalories turns a calorie label such as "200–250 kcal" into a single
// number. One embedded integer is returned as is, two are averaged (halves
// round up) and anything after the second is ignored. A label without
// numbers is worth 0.
func EstimateCalories(label string) int {
	matches := numberRegex.FindAllString(label, 2)

	nums := make([]int, 0, len(matches))
	for _, m := range matches {
		n, err := strconv.Atoi(m)
		if err != nil {
			// too many digits to fit an int
			continue
		}
		nums = append(nums, n)
	}

	switch len(nums) {
	case 0:
		return 0
	case 1:
		return nums[0]
	default:
		return (nums[0] + nums[1] + 1) / 2
	}
}
