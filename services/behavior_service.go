package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"rhood_server/models"
	"rhood_server/utils"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
)

// BehaviorService records listening sessions that feed the
// recommendation pipeline. Recording never recomputes embeddings
// directly; that happens separately via the EmbeddingService.
type BehaviorService struct {
	Dynamo DynamoAPI
}

// SessionInput carries the facts of one listening session
type SessionInput struct {
	UserID                string   `json:"userId"`
	MixID                 string   `json:"mixId"`
	ListenDurationSeconds int      `json:"listenDurationSeconds"`
	CompletionPercentage  float64  `json:"completionPercentage"`
	WasSkipped            bool     `json:"wasSkipped"`
	SkipTimeSeconds       *float64 `json:"skipTimeSeconds,omitempty"`
	WasLiked              bool     `json:"wasLiked"`
	WasSaved              bool     `json:"wasSaved"`
	DeviceType            string   `json:"deviceType,omitempty"`
	City                  string   `json:"city,omitempty"`
	Country               string   `json:"country,omitempty"`
}

// RecordSession appends one listening session. Returns a
// *ValidationError when userId or mixId is missing; callers in the
// playback path are expected to log and continue, never to crash
// playback over a failed write.
func (bs *BehaviorService) RecordSession(ctx context.Context, input SessionInput) (string, error) {
	if input.UserID == "" {
		return "", &ValidationError{Field: "userId"}
	}
	if input.MixID == "" {
		return "", &ValidationError{Field: "mixId"}
	}

	session := models.ListeningSession{
		UserID:                input.UserID,
		StartedAt:             time.Now().UTC().Format(time.RFC3339Nano),
		SessionID:             uuid.NewString(),
		MixID:                 input.MixID,
		ListenDurationSeconds: input.ListenDurationSeconds,
		CompletionPercentage:  input.CompletionPercentage,
		WasSkipped:            input.WasSkipped,
		SkipTimeSeconds:       input.SkipTimeSeconds,
		WasLiked:              input.WasLiked,
		WasSaved:              input.WasSaved,
		DeviceType:            input.DeviceType,
		City:                  input.City,
		Country:               input.Country,
	}

	if err := bs.Dynamo.PutItem(ctx, models.ListeningSessionsTable, session); err != nil {
		return "", fmt.Errorf("failed to record listening session: %w", err)
	}
	return session.SessionID, nil
}

// ComputeCompletion derives a completion percentage from the listened
// duration and the mix's known duration. Unknown mix duration yields 0
// and leaves the decision to the caller.
func ComputeCompletion(listenDurationSeconds, mixDurationSeconds int) float64 {
	if mixDurationSeconds <= 0 {
		return 0
	}
	pct := float64(listenDurationSeconds) / float64(mixDurationSeconds) * 100
	if pct > 100 {
		return 100
	}
	return pct
}

// SessionTracker tracks an in-progress listen from playback start
type SessionTracker struct {
	UserID    string
	MixID     string
	StartTime time.Time

	service *BehaviorService
}

// EndOptions carries the facts known at playback stop
type EndOptions struct {
	MixDurationSeconds int
	WasSkipped         bool
	SkipTimeSeconds    *float64
	WasLiked           bool
	WasSaved           bool
}

// StartSession begins tracking a listen; call End on the returned
// tracker at playback stop
func (bs *BehaviorService) StartSession(userID, mixID string) *SessionTracker {
	return &SessionTracker{
		UserID:    userID,
		MixID:     mixID,
		StartTime: time.Now(),
		service:   bs,
	}
}

// End records the tracked session, resolving the mix duration from the
// catalog when the caller does not know it
func (st *SessionTracker) End(ctx context.Context, opts EndOptions) (string, error) {
	durationSeconds := int(time.Since(st.StartTime).Seconds())

	mixDuration := opts.MixDurationSeconds
	if mixDuration == 0 {
		item, err := st.service.Dynamo.GetItem(ctx, models.MixesTable, map[string]types.AttributeValue{
			"id": utils.StringAttr(st.MixID),
		})
		if err != nil {
			log.Printf("Could not get mix duration for %s: %v", st.MixID, err)
		} else if item != nil {
			mixDuration = int(utils.ExtractFloat(item, "durationSeconds"))
		}
	}

	return st.service.RecordSession(ctx, SessionInput{
		UserID:                st.UserID,
		MixID:                 st.MixID,
		ListenDurationSeconds: durationSeconds,
		CompletionPercentage:  ComputeCompletion(durationSeconds, mixDuration),
		WasSkipped:            opts.WasSkipped,
		SkipTimeSeconds:       opts.SkipTimeSeconds,
		WasLiked:              opts.WasLiked,
		WasSaved:              opts.WasSaved,
	})
}

// TrackSkip records a skip. Skips inside the early-skip window are a
// strong negative signal downstream.
func (bs *BehaviorService) TrackSkip(ctx context.Context, userID, mixID string, skipTimeSeconds float64) (string, error) {
	return bs.RecordSession(ctx, SessionInput{
		UserID:                userID,
		MixID:                 mixID,
		ListenDurationSeconds: int(skipTimeSeconds),
		CompletionPercentage:  0,
		WasSkipped:            true,
		SkipTimeSeconds:       &skipTimeSeconds,
	})
}

// TrackLike amends the most recent session for the (user, mix) pair,
// or records a zero-duration session carrying only the flag. Amending
// avoids double-counting a listen that was already recorded at
// playback stop.
func (bs *BehaviorService) TrackLike(ctx context.Context, userID, mixID string, liked bool) error {
	return bs.amendLatestSession(ctx, userID, mixID, "wasLiked", liked, SessionInput{
		UserID:   userID,
		MixID:    mixID,
		WasLiked: liked,
	})
}

// TrackSave amends the most recent session for the (user, mix) pair,
// or records a zero-duration session carrying only the flag
func (bs *BehaviorService) TrackSave(ctx context.Context, userID, mixID string, saved bool) error {
	return bs.amendLatestSession(ctx, userID, mixID, "wasSaved", saved, SessionInput{
		UserID:   userID,
		MixID:    mixID,
		WasSaved: saved,
	})
}

func (bs *BehaviorService) amendLatestSession(ctx context.Context, userID, mixID, flagAttribute string, value bool, fallback SessionInput) error {
	if userID == "" {
		return &ValidationError{Field: "userId"}
	}
	if mixID == "" {
		return &ValidationError{Field: "mixId"}
	}

	sessions, err := bs.getUserSessions(ctx, userID)
	if err != nil {
		return err
	}

	var latest *models.ListeningSession
	for i := range sessions {
		if sessions[i].MixID != mixID {
			continue
		}
		if latest == nil || sessions[i].StartedAt > latest.StartedAt {
			latest = &sessions[i]
		}
	}

	if latest == nil {
		_, err := bs.RecordSession(ctx, fallback)
		return err
	}

	updateExpression := fmt.Sprintf("SET %s = :v", flagAttribute)
	_, err = bs.Dynamo.UpdateItem(ctx, models.ListeningSessionsTable, updateExpression,
		map[string]types.AttributeValue{
			"userId":    utils.StringAttr(userID),
			"startedAt": utils.StringAttr(latest.StartedAt),
		},
		map[string]types.AttributeValue{":v": utils.BoolAttr(value)},
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to amend session flag %s: %w", flagAttribute, err)
	}
	return nil
}

// GetUserSessions fetches every listening session for a user
func (bs *BehaviorService) GetUserSessions(ctx context.Context, userID string) ([]models.ListeningSession, error) {
	if userID == "" {
		return nil, &ValidationError{Field: "userId"}
	}
	return bs.getUserSessions(ctx, userID)
}

func (bs *BehaviorService) getUserSessions(ctx context.Context, userID string) ([]models.ListeningSession, error) {
	items, err := bs.Dynamo.QueryItems(ctx, models.ListeningSessionsTable, "userId = :u",
		map[string]types.AttributeValue{":u": utils.StringAttr(userID)}, nil, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch listening sessions: %w", err)
	}

	var sessions []models.ListeningSession
	if err := attributevalue.UnmarshalListOfMaps(items, &sessions); err != nil {
		return nil, fmt.Errorf("failed to unmarshal listening sessions: %w", err)
	}
	return sessions, nil
}

// GetListeningStats aggregates a user's listening history
func (bs *BehaviorService) GetListeningStats(ctx context.Context, userID string) (*models.ListeningStats, error) {
	sessions, err := bs.GetUserSessions(ctx, userID)
	if err != nil {
		return nil, err
	}

	stats := &models.ListeningStats{GenresListened: map[string]int{}}
	stats.TotalListens = len(sessions)
	if len(sessions) == 0 {
		return stats, nil
	}

	var totalCompletion, totalDuration float64
	var skips, earlySkips int
	seenMixes := map[string]bool{}
	for i := range sessions {
		s := &sessions[i]
		totalCompletion += s.CompletionPercentage
		totalDuration += float64(s.ListenDurationSeconds)
		if s.WasSkipped {
			skips++
			if s.IsEarlySkip() {
				earlySkips++
			}
		}
		if s.WasLiked {
			stats.TotalLikes++
		}
		if s.WasSaved {
			stats.TotalSaves++
		}
		seenMixes[s.MixID] = true
	}

	stats.AvgCompletionRate = totalCompletion / float64(len(sessions))
	stats.AvgListenDuration = totalDuration / float64(len(sessions))
	stats.SkipRate = float64(skips) / float64(len(sessions))
	stats.EarlySkipRate = float64(earlySkips) / float64(len(sessions))

	for mixID := range seenMixes {
		item, err := bs.Dynamo.GetItem(ctx, models.MixesTable, map[string]types.AttributeValue{
			"id": utils.StringAttr(mixID),
		})
		if err != nil || item == nil {
			continue
		}
		if genre := utils.ExtractString(item, "genre"); genre != "" {
			stats.GenresListened[genre]++
		}
	}

	return stats, nil
}
