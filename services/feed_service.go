package services

import (
	"context"
	"fmt"
	"math/rand"
	"sort"

	"sparkd_server/models"
	"sparkd_server/utils"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// FeedService builds the paginated candidate list for a user. Left-swiped
// and already-matched users are excluded; right-swiped users whose match
// has not completed keep resurfacing until it does.
type FeedService struct {
	Swipes *SwipeService
	Users  *UserProfileService
	Dynamo DynamoAPI
}

// GetFeed returns one page of candidates plus the total candidate count
// and page count. The page order is shuffled; page boundaries are not.
func (fs *FeedService) GetFeed(ctx context.Context, userID string, page, limit int) ([]models.UserProfile, int, int, error) {
	me, err := fs.Users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, 0, 0, err
	}
	if me.GenderPreference == "" {
		return nil, 0, 0, ErrPreferenceNotSet
	}

	exclude := map[string]struct{}{userID: {}}

	leftTargets, err := fs.Swipes.ListTargets(ctx, userID, models.DirectionLeft)
	if err != nil {
		return nil, 0, 0, err
	}
	for _, id := range leftTargets {
		exclude[id] = struct{}{}
	}

	// Matched users belong in the matches list, not the feed
	rights, err := fs.Swipes.ListSwipesByActor(ctx, userID, models.DirectionRight)
	if err != nil {
		return nil, 0, 0, err
	}
	for _, swipe := range rights {
		back, err := fs.Swipes.FindDirection(ctx, swipe.SwipedUser, userID)
		if err != nil {
			return nil, 0, 0, err
		}
		if back == models.DirectionRight {
			exclude[swipe.SwipedUser] = struct{}{}
		}
	}

	matchFields := map[string]string{}
	if me.GenderPreference != models.PreferenceBoth {
		matchFields["gender"] = me.GenderPreference
	}

	var candidates []models.UserProfile
	err = fs.Dynamo.ScanWithFilter(ctx, models.UserProfilesTable, func(item map[string]types.AttributeValue) bool {
		id := utils.ExtractString(item, "userId")
		if id == "" {
			return false
		}
		_, excluded := exclude[id]
		return !excluded
	}, matchFields, &candidates)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("failed to fetch feed candidates: %w", err)
	}

	// Stable order before slicing so page boundaries stay consistent
	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].UserID < candidates[j].UserID
	})

	totalUsers := len(candidates)
	pageUsers := paginate(candidates, page, limit)

	// Shuffle intra-page order only (Fisher-Yates over the page)
	rand.Shuffle(len(pageUsers), func(i, j int) {
		pageUsers[i], pageUsers[j] = pageUsers[j], pageUsers[i]
	})

	for i := range pageUsers {
		pageUsers[i].Sanitize()
	}
	return pageUsers, totalUsers, TotalPages(totalUsers, limit), nil
}
