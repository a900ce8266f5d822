package resolvers

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	toolRepo "toolshare/database/repository/tool"
	userRepo "toolshare/database/repository/user"
	"toolshare/models"
	"toolshare/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const (
	userSummaryPrefix = "user:summary:"
	userSummaryTTL    = 2 * time.Minute
)

// Resolver expands stored identifiers into the summaries embedded in API responses.
// Cache is optional; without it every lookup goes to the store.
type Resolver struct {
	Users       userRepo.UserRepository
	Tools       toolRepo.ToolRepository
	CacheClient *redis.Client
}

func summarizeUser(u models.User) models.UserSummary {
	return models.UserSummary{
		ID:          u.ID,
		Name:        u.Name,
		Avatar:      u.Avatar,
		RatingAvg:   u.RatingAvg,
		RatingCount: u.RatingCount,
	}
}

func summarizeTool(t models.Tool) models.ToolSummary {
	s := models.ToolSummary{ID: t.ID, Title: t.Title, Category: t.Category, Price: t.Price}
	if len(t.Images) > 0 {
		s.Image = t.Images[0]
	}
	return s
}

func unique(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id != "" && !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

// userSummaries resolves ids from the cache first and loads the rest in one query.
func (r *Resolver) userSummaries(ctx context.Context, ids []string) (map[string]*models.UserSummary, error) {
	ids = unique(ids)
	out := make(map[string]*models.UserSummary, len(ids))
	missing := ids

	if r.CacheClient != nil && len(ids) > 0 {
		keys := make([]string, len(ids))
		for i, id := range ids {
			keys[i] = userSummaryPrefix + id
		}
		vals, err := r.CacheClient.MGet(ctx, keys...).Result()
		if err != nil {
			utils.GetLogger().Warn("user summary cache read failed", zap.Error(err))
		} else {
			missing = nil
			for i, v := range vals {
				raw, ok := v.(string)
				var s models.UserSummary
				if !ok || json.Unmarshal([]byte(raw), &s) != nil {
					missing = append(missing, ids[i])
					continue
				}
				out[ids[i]] = &s
			}
		}
	}
	if len(missing) == 0 {
		return out, nil
	}

	users, err := r.Users.GetByIDs(ctx, missing)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve users: %w", err)
	}
	pipe := r.pipeline()
	for _, u := range users {
		s := summarizeUser(u)
		out[u.ID] = &s
		if pipe != nil {
			if data, err := json.Marshal(s); err == nil {
				pipe.Set(ctx, userSummaryPrefix+u.ID, data, userSummaryTTL)
			}
		}
	}
	if pipe != nil {
		if _, err := pipe.Exec(ctx); err != nil {
			utils.GetLogger().Warn("user summary cache write failed", zap.Error(err))
		}
	}
	return out, nil
}

func (r *Resolver) pipeline() redis.Pipeliner {
	if r.CacheClient == nil {
		return nil
	}
	return r.CacheClient.Pipeline()
}

// InvalidateUser drops the cached summary after a profile change.
func (r *Resolver) InvalidateUser(ctx context.Context, userID string) {
	if r.CacheClient == nil {
		return
	}
	if err := r.CacheClient.Del(ctx, userSummaryPrefix+userID).Err(); err != nil {
		utils.GetLogger().Warn("user summary cache delete failed", zap.String("userId", userID), zap.Error(err))
	}
}

func (r *Resolver) toolSummaries(ctx context.Context, ids []string) (map[string]*models.ToolSummary, error) {
	ids = unique(ids)
	out := make(map[string]*models.ToolSummary, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	tools, err := r.Tools.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve tools: %w", err)
	}
	for _, t := range tools {
		s := summarizeTool(t)
		out[t.ID] = &s
	}
	return out, nil
}
