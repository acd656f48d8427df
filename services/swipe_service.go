package services

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"sparkd_server/models"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// SwipeService is the ledger of directional decisions between user pairs.
// One record per (swipedBy, swipedUser) ordered pair; rewriting the pair
// is an upsert, never a duplicate.
type SwipeService struct {
	Dynamo DynamoAPI
}

func swipeKey(actorID, targetID string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"swipedBy":   &types.AttributeValueMemberS{Value: actorID},
		"swipedUser": &types.AttributeValueMemberS{Value: targetID},
	}
}

// RecordSwipe upserts the decision for (actorID, targetID). A repeated
// swipe on the same pair overwrites direction and timestamp.
func (ss *SwipeService) RecordSwipe(ctx context.Context, actorID, targetID, direction string) (models.Swipe, error) {
	if actorID == targetID {
		return models.Swipe{}, ErrSelfSwipe
	}
	if !models.ValidDirection(direction) {
		return models.Swipe{}, ErrInvalidDirection
	}

	swipe := models.Swipe{
		SwipedBy:   actorID,
		SwipedUser: targetID,
		Direction:  direction,
		CreatedAt:  nowTimestamp(),
	}

	if err := ss.Dynamo.PutItem(ctx, models.SwipesTable, swipe); err != nil {
		return models.Swipe{}, fmt.Errorf("failed to record swipe: %w", err)
	}
	return swipe, nil
}

// FindDirection returns the recorded direction for (actorID, targetID),
// or "" when the actor has not decided on the target.
func (ss *SwipeService) FindDirection(ctx context.Context, actorID, targetID string) (string, error) {
	item, err := ss.Dynamo.GetItem(ctx, models.SwipesTable, swipeKey(actorID, targetID))
	if errors.Is(err, ErrItemNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to look up swipe: %w", err)
	}

	var swipe models.Swipe
	if err := attributevalue.UnmarshalMap(item, &swipe); err != nil {
		return "", fmt.Errorf("failed to parse swipe: %w", err)
	}
	return swipe.Direction, nil
}

// IsMatch reports whether a and b have each right-swiped the other.
// Matches are derived, never stored, so this is always consistent with
// the two underlying swipes.
func (ss *SwipeService) IsMatch(ctx context.Context, a, b string) (bool, error) {
	ab, err := ss.FindDirection(ctx, a, b)
	if err != nil {
		return false, err
	}
	if ab != models.DirectionRight {
		return false, nil
	}
	ba, err := ss.FindDirection(ctx, b, a)
	if err != nil {
		return false, err
	}
	return ba == models.DirectionRight, nil
}

// ListSwipesByActor returns the actor's swipes in the given direction,
// newest first.
func (ss *SwipeService) ListSwipesByActor(ctx context.Context, actorID, direction string) ([]models.Swipe, error) {
	items, err := ss.Dynamo.QueryItems(ctx, models.SwipesTable,
		"swipedBy = :swipedBy",
		"#direction = :direction",
		map[string]types.AttributeValue{
			":swipedBy":  &types.AttributeValueMemberS{Value: actorID},
			":direction": &types.AttributeValueMemberS{Value: direction},
		},
		map[string]string{"#direction": "direction"},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query swipes for %s: %w", actorID, err)
	}
	return unmarshalSwipes(items)
}

// ListSwipesOnTarget returns the swipes made on the target in the given
// direction, newest first. Served by the swipedUser GSI.
func (ss *SwipeService) ListSwipesOnTarget(ctx context.Context, targetID, direction string) ([]models.Swipe, error) {
	items, err := ss.Dynamo.QueryItemsWithIndex(ctx, models.SwipesTable, models.SwipedUserIndex,
		"swipedUser = :swipedUser",
		"#direction = :direction",
		map[string]types.AttributeValue{
			":swipedUser": &types.AttributeValueMemberS{Value: targetID},
			":direction":  &types.AttributeValueMemberS{Value: direction},
		},
		map[string]string{"#direction": "direction"},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query swipes on %s: %w", targetID, err)
	}
	return unmarshalSwipes(items)
}

// ListTargets returns the ids the actor has swiped in the given direction
func (ss *SwipeService) ListTargets(ctx context.Context, actorID, direction string) ([]string, error) {
	swipes, err := ss.ListSwipesByActor(ctx, actorID, direction)
	if err != nil {
		return nil, err
	}
	targets := make([]string, 0, len(swipes))
	for _, s := range swipes {
		targets = append(targets, s.SwipedUser)
	}
	return targets, nil
}

func unmarshalSwipes(items []map[string]types.AttributeValue) ([]models.Swipe, error) {
	var swipes []models.Swipe
	if err := attributevalue.UnmarshalListOfMaps(items, &swipes); err != nil {
		return nil, fmt.Errorf("failed to parse swipes: %w", err)
	}
	// DynamoDB gives no cross-partition order here; sort client-side
	sort.SliceStable(swipes, func(i, j int) bool {
		return swipes[i].CreatedAt > swipes[j].CreatedAt
	})
	return swipes, nil
}
