package docstore

// Collections of the remote store, keyed by user id.
const (
	UsersCollection          = "Users"
	UserProfileCollection    = "UserProfile"
	CustomWorkoutsCollection = "CustomWorkouts"
	CustomDietsCollection    = "UserCustomDietPlan"
)

func UserPath(uid string) string {
	return UsersCollection + "/" + uid
}

func UserProfilePath(uid string) string {
	return UserProfileCollection + "/" + uid
}

func BurntCaloriesPath(uid string) string {
	return UserProfilePath(uid) + "/burntCalories"
}

func CustomWorkoutsPath(uid string) string {
	return CustomWorkoutsCollection + "/" + uid
}

func CustomWorkoutPath(uid, id string) string {
	return CustomWorkoutsPath(uid) + "/" + id
}

func CustomDietsPath(uid string) string {
	return CustomDietsCollection + "/" + uid
}

func CustomDietPath(uid, id string) string {
	return CustomDietsPath(uid) + "/" + id
}
