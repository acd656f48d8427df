package models

// Swipe is one directional decision by a user about another user.
// The (swipedBy, swipedUser) pair is the table key, so rewriting the
// same pair overwrites the previous decision instead of appending.
type Swipe struct {
	SwipedBy   string `dynamodbav:"swipedBy" json:"swipedBy"`
	SwipedUser string `dynamodbav:"swipedUser" json:"swipedUser"`
	Direction  string `dynamodbav:"direction" json:"direction"`
	CreatedAt  string `dynamodbav:"createdAt" json:"createdAt"`
}

// SwipesTable is the DynamoDB table name for swipes
const SwipesTable = "Swipes"

// SwipedUserIndex is the GSI keyed by swipedUser for reverse lookups
const SwipedUserIndex = "swipedUser-index"
