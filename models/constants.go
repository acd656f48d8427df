package models

// Swipe directions
const (
	DirectionLeft  = "left"
	DirectionRight = "right"
)

// Liked-by response actions
const (
	ActionAccept = "accept"
	ActionReject = "reject"
)

// Genders and preferences
const (
	GenderMale     = "male"
	GenderFemale   = "female"
	PreferenceBoth = "both"
)

// ValidDirection reports whether d is a recognized swipe direction
func ValidDirection(d string) bool {
	return d == DirectionLeft || d == DirectionRight
}
