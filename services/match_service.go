package services

import (
	"context"
	"errors"
	"log"

	"sparkd_server/models"
)

// MatchService answers the derived-relationship queries: who matched
// with whom, and who is still waiting on a decision.
type MatchService struct {
	Swipes *SwipeService
	Users  *UserProfileService
}

// GetMatches returns the user's mutual right-swipes ordered by the
// user's own swipe recency, newest first, with the total match count.
func (ms *MatchService) GetMatches(ctx context.Context, userID string, page, limit int) ([]models.UserProfile, int, error) {
	rights, err := ms.Swipes.ListSwipesByActor(ctx, userID, models.DirectionRight)
	if err != nil {
		return nil, 0, err
	}

	var matchedIDs []string
	for _, swipe := range rights {
		back, err := ms.Swipes.FindDirection(ctx, swipe.SwipedUser, userID)
		if err != nil {
			return nil, 0, err
		}
		if back == models.DirectionRight {
			matchedIDs = append(matchedIDs, swipe.SwipedUser)
		}
	}

	total := len(matchedIDs)
	profiles, err := ms.loadProfiles(ctx, paginate(matchedIDs, page, limit))
	if err != nil {
		return nil, 0, err
	}
	return profiles, total, nil
}

// GetLikedBy returns users who right-swiped userID and have received no
// decision back yet (a left swipe counts as a decision), newest first.
func (ms *MatchService) GetLikedBy(ctx context.Context, userID string, page, limit int) ([]models.UserProfile, int, error) {
	likes, err := ms.Swipes.ListSwipesOnTarget(ctx, userID, models.DirectionRight)
	if err != nil {
		return nil, 0, err
	}

	var pendingIDs []string
	for _, swipe := range likes {
		responded, err := ms.Swipes.FindDirection(ctx, userID, swipe.SwipedBy)
		if err != nil {
			return nil, 0, err
		}
		if responded == "" {
			pendingIDs = append(pendingIDs, swipe.SwipedBy)
		}
	}

	total := len(pendingIDs)
	profiles, err := ms.loadProfiles(ctx, paginate(pendingIDs, page, limit))
	if err != nil {
		return nil, 0, err
	}
	return profiles, total, nil
}

// RespondToLike records the user's decision on a liker as a regular
// swipe upsert: accept is a right swipe, reject is a left swipe.
func (ms *MatchService) RespondToLike(ctx context.Context, userID, targetID, action string) (models.Swipe, error) {
	var direction string
	switch action {
	case models.ActionAccept:
		direction = models.DirectionRight
	case models.ActionReject:
		direction = models.DirectionLeft
	default:
		return models.Swipe{}, ErrInvalidAction
	}
	return ms.Swipes.RecordSwipe(ctx, userID, targetID, direction)
}

func (ms *MatchService) loadProfiles(ctx context.Context, ids []string) ([]models.UserProfile, error) {
	profiles := make([]models.UserProfile, 0, len(ids))
	for _, id := range ids {
		profile, err := ms.Users.GetUserByID(ctx, id)
		if errors.Is(err, ErrUserNotFound) {
			log.Printf("⚠️ Skipping missing profile %s", id)
			continue
		}
		if err != nil {
			return nil, err
		}
		profile.Sanitize()
		profiles = append(profiles, profile)
	}
	return profiles, nil
}
