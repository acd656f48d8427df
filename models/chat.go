package models

// Chat is the message channel for exactly one unordered pair of users.
// PairKey is the table key, which keeps the pair unique regardless of
// which participant asked for the room first.
type Chat struct {
	PairKey      string   `dynamodbav:"pairKey" json:"-"`
	ChatID       string   `dynamodbav:"chatId" json:"chatId"`
	Participants []string `dynamodbav:"participants" json:"participants"`
	LastMessage  string   `dynamodbav:"lastMessage,omitempty" json:"lastMessage,omitempty"`
	IsActive     bool     `dynamodbav:"isActive" json:"isActive"`
	CreatedAt    string   `dynamodbav:"createdAt" json:"createdAt"`
}

// HasParticipant reports whether userID is one of the two chat members
func (c *Chat) HasParticipant(userID string) bool {
	for _, p := range c.Participants {
		if p == userID {
			return true
		}
	}
	return false
}

// ChatPairKey builds the canonical key for a participant pair
func ChatPairKey(a, b string) string {
	if b < a {
		a, b = b, a
	}
	return a + "#" + b
}

// ChatsTable is the DynamoDB table name for chats
const ChatsTable = "Chats"

// ChatIDIndex is the GSI for looking up a chat by its chatId
const ChatIDIndex = "chatId-index"
