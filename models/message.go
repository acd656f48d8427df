package models

// Message is one entry in a chat's append-only log. Immutable once
// stored except for readBy, which only ever grows.
type Message struct {
	ChatID    string   `dynamodbav:"chatId" json:"chatId"`
	MessageID string   `dynamodbav:"messageId" json:"messageId"`
	SenderID  string   `dynamodbav:"senderId" json:"senderId"`
	Content   string   `dynamodbav:"content" json:"content"`
	CreatedAt string   `dynamodbav:"createdAt" json:"createdAt"`
	ReadBy    []string `dynamodbav:"readBy,stringset" json:"readBy"`
}

// MessagesTable is the DynamoDB table name for chat messages
const MessagesTable = "Messages"
