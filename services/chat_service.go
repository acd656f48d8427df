package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"sparkd_server/models"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
)

// ChatService owns the chat rooms and their append-only message logs
type ChatService struct {
	Dynamo DynamoAPI
}

// FindOrCreateRoom returns the chat id for the unordered pair (a, b),
// creating the room lazily on first use. Argument order never matters.
func (cs *ChatService) FindOrCreateRoom(ctx context.Context, a, b string) (string, error) {
	if a == b {
		return "", ErrSameParticipant
	}

	pairKey := models.ChatPairKey(a, b)
	if chat, err := cs.getChatByPairKey(ctx, pairKey); err == nil {
		return chat.ChatID, nil
	} else if !errors.Is(err, ErrItemNotFound) {
		return "", err
	}

	chat := models.Chat{
		PairKey:      pairKey,
		ChatID:       uuid.NewString(),
		Participants: []string{a, b},
		IsActive:     true,
		CreatedAt:    time.Now().UTC().Format(time.RFC3339),
	}

	err := cs.Dynamo.PutItemIfAbsent(ctx, models.ChatsTable, chat, "pairKey")
	if errors.Is(err, ErrItemAlreadyExists) {
		// Lost the creation race; the winner's room is the room
		existing, err := cs.getChatByPairKey(ctx, pairKey)
		if err != nil {
			return "", err
		}
		return existing.ChatID, nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to create chat: %w", err)
	}
	return chat.ChatID, nil
}

// GetChatByID looks a chat up through the chatId GSI
func (cs *ChatService) GetChatByID(ctx context.Context, chatID string) (models.Chat, error) {
	items, err := cs.Dynamo.QueryItemsWithIndex(ctx, models.ChatsTable, models.ChatIDIndex,
		"chatId = :chatId", "",
		map[string]types.AttributeValue{
			":chatId": &types.AttributeValueMemberS{Value: chatID},
		}, nil,
	)
	if err != nil {
		return models.Chat{}, fmt.Errorf("failed to fetch chat %s: %w", chatID, err)
	}
	if len(items) == 0 {
		return models.Chat{}, ErrChatNotFound
	}

	var chat models.Chat
	if err := attributevalue.UnmarshalMap(items[0], &chat); err != nil {
		return models.Chat{}, fmt.Errorf("failed to parse chat: %w", err)
	}
	return chat, nil
}

// AppendMessage stores a new message for the chat. The sender must be a
// participant, content must be non-empty, and the new message starts
// with readBy = {sender}.
func (cs *ChatService) AppendMessage(ctx context.Context, chatID, senderID, content string) (models.Message, error) {
	if strings.TrimSpace(content) == "" {
		return models.Message{}, ErrEmptyContent
	}

	chat, err := cs.GetChatByID(ctx, chatID)
	if err != nil {
		return models.Message{}, err
	}
	if !chat.HasParticipant(senderID) {
		return models.Message{}, ErrNotParticipant
	}

	message := models.Message{
		ChatID:    chatID,
		MessageID: uuid.NewString(),
		SenderID:  senderID,
		Content:   content,
		CreatedAt: nowTimestamp(),
		ReadBy:    []string{senderID},
	}

	if err := cs.Dynamo.PutItem(ctx, models.MessagesTable, message); err != nil {
		return models.Message{}, fmt.Errorf("failed to store message: %w", err)
	}

	// Bump lastMessage; the stored message is already durable, so a
	// failed bump is logged rather than failing the send
	_, err = cs.Dynamo.UpdateItem(ctx, models.ChatsTable,
		"SET lastMessage = :lastMessage",
		map[string]types.AttributeValue{
			"pairKey": &types.AttributeValueMemberS{Value: chat.PairKey},
		},
		map[string]types.AttributeValue{
			":lastMessage": &types.AttributeValueMemberS{Value: message.CreatedAt},
		}, nil,
	)
	if err != nil {
		log.Printf("⚠️ Failed to bump lastMessage for chat %s: %v", chatID, err)
	}

	return message, nil
}

// MarkMessagesRead adds the reader to the readBy set of every listed
// message. The set only grows; re-adding a reader is a no-op. The reader
// must be a chat participant. Unknown message ids are skipped: a read
// receipt must never create a message.
func (cs *ChatService) MarkMessagesRead(ctx context.Context, chatID string, messageIDs []string, readerID string) error {
	chat, err := cs.GetChatByID(ctx, chatID)
	if err != nil {
		return err
	}
	if !chat.HasParticipant(readerID) {
		return ErrNotParticipant
	}

	var lastErr error
	for _, messageID := range messageIDs {
		_, err := cs.Dynamo.UpdateItemIfPresent(ctx, models.MessagesTable,
			"ADD readBy :reader",
			map[string]types.AttributeValue{
				"chatId":    &types.AttributeValueMemberS{Value: chatID},
				"messageId": &types.AttributeValueMemberS{Value: messageID},
			},
			map[string]types.AttributeValue{
				":reader": &types.AttributeValueMemberSS{Value: []string{readerID}},
			}, nil,
			"chatId",
		)
		if errors.Is(err, ErrItemNotFound) {
			log.Printf("⚠️ Ignoring read receipt for unknown message %s in chat %s", messageID, chatID)
			continue
		}
		if err != nil {
			log.Printf("❌ Failed to mark message %s read: %v", messageID, err)
			lastErr = err
		}
	}
	if lastErr != nil {
		return fmt.Errorf("failed to mark messages read: %w", lastErr)
	}
	return nil
}

// GetChatHistory returns the chat's full message log in insertion order
func (cs *ChatService) GetChatHistory(ctx context.Context, chatID string) ([]models.Message, error) {
	if _, err := cs.GetChatByID(ctx, chatID); err != nil {
		return nil, err
	}

	items, err := cs.Dynamo.QueryItems(ctx, models.MessagesTable,
		"chatId = :chatId", "",
		map[string]types.AttributeValue{
			":chatId": &types.AttributeValueMemberS{Value: chatID},
		}, nil,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch messages: %w", err)
	}

	var messages []models.Message
	if err := attributevalue.UnmarshalListOfMaps(items, &messages); err != nil {
		return nil, fmt.Errorf("failed to parse messages: %w", err)
	}

	sort.SliceStable(messages, func(i, j int) bool {
		if messages[i].CreatedAt == messages[j].CreatedAt {
			return messages[i].MessageID < messages[j].MessageID
		}
		return messages[i].CreatedAt < messages[j].CreatedAt
	})
	return messages, nil
}

func (cs *ChatService) getChatByPairKey(ctx context.Context, pairKey string) (models.Chat, error) {
	item, err := cs.Dynamo.GetItem(ctx, models.ChatsTable, map[string]types.AttributeValue{
		"pairKey": &types.AttributeValueMemberS{Value: pairKey},
	})
	if err != nil {
		if errors.Is(err, ErrItemNotFound) {
			return models.Chat{}, ErrItemNotFound
		}
		return models.Chat{}, fmt.Errorf("failed to fetch chat for pair: %w", err)
	}

	var chat models.Chat
	if err := attributevalue.UnmarshalMap(item, &chat); err != nil {
		return models.Chat{}, fmt.Errorf("failed to parse chat: %w", err)
	}
	return chat, nil
}
