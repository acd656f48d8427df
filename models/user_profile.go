package models

// UserProfile defines the structure for user profiles
type UserProfile struct {
	UserID           string `dynamodbav:"userId" json:"userId"`
	Email            string `dynamodbav:"email" json:"email"`
	Password         string `dynamodbav:"password,omitempty" json:"-"`
	Name             string `dynamodbav:"name,omitempty" json:"name,omitempty"`
	Bio              string `dynamodbav:"bio,omitempty" json:"bio,omitempty"`
	Gender           string `dynamodbav:"gender,omitempty" json:"gender,omitempty"`
	GenderPreference string `dynamodbav:"genderPreference,omitempty" json:"genderPreference,omitempty"`
	ProfileURL       string `dynamodbav:"profileUrl,omitempty" json:"profileUrl,omitempty"`
	IsVerified       bool   `dynamodbav:"isVerified" json:"isVerified"`
	LastLogin        string `dynamodbav:"lastLogin,omitempty" json:"lastLogin,omitempty"`
	CreatedAt        string `dynamodbav:"createdAt,omitempty" json:"createdAt,omitempty"`
}

// Sanitize clears credential fields before a profile leaves the server
func (u *UserProfile) Sanitize() {
	u.Password = ""
}

// UserProfilesTable is the DynamoDB table name for user profiles
const UserProfilesTable = "UserProfiles"

// EmailIndex is the GSI for looking up a profile by email
const EmailIndex = "email-index"
