package services

import (
	"context"
	"errors"
	"fmt"

	"sparkd_server/models"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// UserProfileService is the read-only user directory. Registration and
// profile editing live in the auth backend; this core only joins against
// stored profiles.
type UserProfileService struct {
	Dynamo DynamoAPI
}

// GetUserByID retrieves a profile by its user id
func (us *UserProfileService) GetUserByID(ctx context.Context, userID string) (models.UserProfile, error) {
	key := map[string]types.AttributeValue{
		"userId": &types.AttributeValueMemberS{Value: userID},
	}
	item, err := us.Dynamo.GetItem(ctx, models.UserProfilesTable, key)
	if errors.Is(err, ErrItemNotFound) {
		return models.UserProfile{}, ErrUserNotFound
	}
	if err != nil {
		return models.UserProfile{}, fmt.Errorf("failed to fetch user %s: %w", userID, err)
	}

	var profile models.UserProfile
	if err := attributevalue.UnmarshalMap(item, &profile); err != nil {
		return models.UserProfile{}, fmt.Errorf("failed to parse user profile: %w", err)
	}
	return profile, nil
}

// GetUserByEmail retrieves a profile through the email GSI
func (us *UserProfileService) GetUserByEmail(ctx context.Context, email string) (models.UserProfile, error) {
	items, err := us.Dynamo.QueryItemsWithIndex(ctx, models.UserProfilesTable, models.EmailIndex,
		"email = :email", "",
		map[string]types.AttributeValue{
			":email": &types.AttributeValueMemberS{Value: email},
		}, nil,
	)
	if err != nil {
		return models.UserProfile{}, fmt.Errorf("failed to fetch user by email: %w", err)
	}
	if len(items) == 0 {
		return models.UserProfile{}, ErrUserNotFound
	}

	var profile models.UserProfile
	if err := attributevalue.UnmarshalMap(items[0], &profile); err != nil {
		return models.UserProfile{}, fmt.Errorf("failed to parse user profile: %w", err)
	}
	return profile, nil
}
