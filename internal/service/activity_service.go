package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/geodirhq/geodir/internal/cache"
	"github.com/geodirhq/geodir/pkg/models"
)

// ActivityService resolves the activity hierarchy. The taxonomy is a forest
// capped at three levels, so a subtree is fully covered by two extra lookup
// rounds: direct children, then grandchildren. No recursion is needed.
type ActivityService struct {
	repo     ActivityRepository
	cache    cache.Cache
	cacheTTL time.Duration
}

// NewActivityService creates a new ActivityService. The cache is optional;
// pass nil to resolve against the repository on every call.
func NewActivityService(repo ActivityRepository, c cache.Cache, cacheTTL time.Duration) *ActivityService {
	return &ActivityService{repo: repo, cache: c, cacheTTL: cacheTTL}
}

// GetActivity retrieves a single activity by id.
func (s *ActivityService) GetActivity(ctx context.Context, id int64) (*models.Activity, error) {
	activity, err := s.repo.GetActivity(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get activity: %w", err)
	}
	return activity, nil
}

// ResolveSubtree returns the ids of the activity's whole subtree: itself, its
// children, and (for a level-1 root) its grandchildren. The result is
// deduplicated and sorted ascending. Returns ErrNotFound when the activity
// does not exist, which callers must surface as a missing entity rather than
// an empty result.
func (s *ActivityService) ResolveSubtree(ctx context.Context, activityID int64) ([]int64, error) {
	if ids, ok := s.cachedSubtree(ctx, activityID); ok {
		return ids, nil
	}

	activity, err := s.repo.GetActivity(ctx, activityID)
	if err != nil {
		return nil, fmt.Errorf("resolve subtree: %w", err)
	}

	seen := map[int64]struct{}{activityID: {}}

	// Leaves have no descendants.
	if !activity.IsLeaf() {
		children, err := s.repo.ListActivitiesByParents(ctx, []int64{activityID})
		if err != nil {
			return nil, fmt.Errorf("resolve subtree children: %w", err)
		}

		childIDs := make([]int64, 0, len(children))
		for _, child := range children {
			seen[child.ID] = struct{}{}
			childIDs = append(childIDs, child.ID)
		}

		// Only a level-1 root has level-2 children that can themselves
		// have children; one more round closes the subtree.
		if activity.Level == models.ActivityMinLevel && len(childIDs) > 0 {
			grandchildren, err := s.repo.ListActivitiesByParents(ctx, childIDs)
			if err != nil {
				return nil, fmt.Errorf("resolve subtree grandchildren: %w", err)
			}
			for _, gc := range grandchildren {
				seen[gc.ID] = struct{}{}
			}
		}
	}

	ids := make([]int64, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	s.storeSubtree(ctx, activityID, ids)
	return ids, nil
}

func subtreeKey(activityID int64) string {
	return fmt.Sprintf("activity:subtree:%d", activityID)
}

func (s *ActivityService) cachedSubtree(ctx context.Context, activityID int64) ([]int64, bool) {
	if s.cache == nil {
		return nil, false
	}
	data, err := s.cache.Get(ctx, subtreeKey(activityID))
	if err != nil || data == nil {
		return nil, false
	}
	var ids []int64
	if err := json.Unmarshal(data, &ids); err != nil {
		return nil, false
	}
	return ids, true
}

func (s *ActivityService) storeSubtree(ctx context.Context, activityID int64, ids []int64) {
	if s.cache == nil {
		return
	}
	data, err := json.Marshal(ids)
	if err != nil {
		return
	}
	// Cache write failures are not worth failing the request over.
	_ = s.cache.Set(ctx, subtreeKey(activityID), data, s.cacheTTL)
}
