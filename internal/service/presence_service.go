package service

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/glptrack/wellness-service/internal/config"
	"github.com/glptrack/wellness-service/internal/repository"
	"github.com/glptrack/wellness-service/pkg/util"
)

const presenceKey = "presence:last_seen"

// CommunityStats summarizes the member base.
type CommunityStats struct {
	MemberCount int   `json:"memberCount"`
	OnlineCount int64 `json:"onlineCount"`
}

// PresenceService tracks member heartbeats in redis. Last-seen times live
// in a sorted set scored by unix seconds; the online count is everything
// within the configured window.
type PresenceService struct {
	rdb   *redis.Client
	users repository.UserRepository
	cfg   config.PresenceConfig
	now   func() time.Time
}

// NewPresenceService constructs the service.
func NewPresenceService(rdb *redis.Client, users repository.UserRepository, cfg config.PresenceConfig) *PresenceService {
	return &PresenceService{
		rdb:   rdb,
		users: users,
		cfg:   cfg,
		now:   time.Now,
	}
}

// Heartbeat records that the member is active right now.
func (s *PresenceService) Heartbeat(ctx context.Context, userID string) error {
	if s.rdb == nil {
		return nil
	}
	err := s.rdb.ZAdd(ctx, presenceKey, redis.Z{
		Score:  float64(s.now().Unix()),
		Member: userID,
	}).Err()
	if err != nil {
		return util.NewInternalError(err)
	}
	return nil
}

// Stats returns total members and the count seen within the window.
// Stale entries are trimmed on read.
func (s *PresenceService) Stats(ctx context.Context) (CommunityStats, error) {
	members, err := s.users.CountMembers(ctx)
	if err != nil {
		return CommunityStats{}, util.MapError(err)
	}

	stats := CommunityStats{MemberCount: members}
	if s.rdb == nil {
		return stats, nil
	}

	cutoff := s.now().Unix() - int64(s.cfg.OnlineWindowSeconds)
	if err := s.rdb.ZRemRangeByScore(ctx, presenceKey, "-inf", strconv.FormatInt(cutoff, 10)).Err(); err != nil {
		return CommunityStats{}, util.NewInternalError(err)
	}
	online, err := s.rdb.ZCard(ctx, presenceKey).Result()
	if err != nil {
		return CommunityStats{}, util.NewInternalError(err)
	}
	stats.OnlineCount = online
	return stats, nil
}

// Forget removes a member's presence entry, used on account deletion.
func (s *PresenceService) Forget(ctx context.Context, userID string) error {
	if s.rdb == nil {
		return nil
	}
	return s.rdb.ZRem(ctx, presenceKey, userID).Err()
}
