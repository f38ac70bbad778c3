package social

import (
	"context"

	"github.com/JoyBrar2001/snapgram/internal/cache"
	"github.com/JoyBrar2001/snapgram/internal/gateway"
)

// Gateway is the slice of the remote gateway this service uses.
type Gateway interface {
	Follow(ctx context.Context, followerID, followingID string) (gateway.FollowRecord, error)
	Unfollow(ctx context.Context, followerID, followingID string) error
	FollowingIDs(ctx context.Context, userID string) ([]string, error)
	FollowerIDs(ctx context.Context, userID string) ([]string, error)
}

type Service struct {
	gw    Gateway
	cache *cache.Client
}

func NewService(gw Gateway, cacheClient *cache.Client) *Service {
	return &Service{gw: gw, cache: cacheClient}
}

func (s *Service) Following(ctx context.Context, userID string) ([]string, error) {
	key := cache.WithParam(cache.KeyFollowing, userID)
	return cache.GetJSON(ctx, s.cache, key, userID != "", func(ctx context.Context) ([]string, error) {
		return s.gw.FollowingIDs(ctx, userID)
	})
}

func (s *Service) Followers(ctx context.Context, userID string) ([]string, error) {
	key := cache.WithParam(cache.KeyFollowers, userID)
	return cache.GetJSON(ctx, s.cache, key, userID != "", func(ctx context.Context) ([]string, error) {
		return s.gw.FollowerIDs(ctx, userID)
	})
}

// Follow records the edge, optimistically adding followingID to the
// cached following list before the remote write and reverting the
// cache entry if the write fails.
func (s *Service) Follow(ctx context.Context, followerID, followingID string) (gateway.FollowRecord, error) {
	revert, err := s.optimisticFollowing(ctx, followerID, followingID, true)
	if err != nil {
		return gateway.FollowRecord{}, err
	}

	record, err := cache.MutateResult(ctx, s.cache, "follow", followerID+":"+followingID, func(ctx context.Context) (gateway.FollowRecord, error) {
		return s.gw.Follow(ctx, followerID, followingID)
	}, cache.KeyUsers, cache.KeyFollowing, cache.KeyFollowers)
	if err != nil {
		if revert != nil {
			revert(ctx)
		}
		return gateway.FollowRecord{}, err
	}
	return record, nil
}

func (s *Service) Unfollow(ctx context.Context, followerID, followingID string) error {
	revert, err := s.optimisticFollowing(ctx, followerID, followingID, false)
	if err != nil {
		return err
	}

	err = s.cache.Mutate(ctx, "unfollow", followerID+":"+followingID, func(ctx context.Context) error {
		return s.gw.Unfollow(ctx, followerID, followingID)
	}, cache.KeyUsers, cache.KeyFollowing, cache.KeyFollowers)
	if err != nil {
		if revert != nil {
			revert(ctx)
		}
		return err
	}
	return nil
}

// optimisticFollowing edits the cached following id list in place.
// When the list is not cached there is nothing to edit and no revert
// is returned.
func (s *Service) optimisticFollowing(ctx context.Context, followerID, followingID string, add bool) (func(ctx context.Context), error) {
	key := cache.WithParam(cache.KeyFollowing, followerID)

	var ids []string
	ok, err := s.cache.PeekJSON(ctx, key, &ids)
	if err != nil || !ok {
		return nil, err
	}

	if add {
		found := false
		for _, id := range ids {
			if id == followingID {
				found = true
				break
			}
		}
		if !found {
			ids = append(ids, followingID)
		}
	} else {
		kept := ids[:0]
		for _, id := range ids {
			if id != followingID {
				kept = append(kept, id)
			}
		}
		ids = kept
	}

	return s.cache.ApplyOptimistic(ctx, key, ids)
}
