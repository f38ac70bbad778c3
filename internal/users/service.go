package users

import (
	"context"
	"strconv"

	"github.com/JoyBrar2001/snapgram/internal/cache"
	"github.com/JoyBrar2001/snapgram/internal/gateway"
)

// Gateway is the slice of the remote gateway this service uses.
type Gateway interface {
	CurrentUser(ctx context.Context, session string) (gateway.User, error)
	UserByID(ctx context.Context, userID string) (gateway.User, error)
	AllUsers(ctx context.Context, limit int) ([]gateway.User, error)
	UpdateUser(ctx context.Context, input gateway.UpdateUserInput) (gateway.User, error)
}

type Service struct {
	gw    Gateway
	cache *cache.Client
}

func NewService(gw Gateway, cacheClient *cache.Client) *Service {
	return &Service{gw: gw, cache: cacheClient}
}

func (s *Service) Current(ctx context.Context, session, userID string) (gateway.User, error) {
	key := cache.WithParam(cache.KeyCurrentUser, userID)
	return cache.GetJSON(ctx, s.cache, key, userID != "", func(ctx context.Context) (gateway.User, error) {
		return s.gw.CurrentUser(ctx, session)
	})
}

func (s *Service) ByID(ctx context.Context, userID string) (gateway.User, error) {
	key := cache.WithParam(cache.KeyUserByID, userID)
	return cache.GetJSON(ctx, s.cache, key, userID != "", func(ctx context.Context) (gateway.User, error) {
		return s.gw.UserByID(ctx, userID)
	})
}

// All caches each requested limit separately; invalidating the bare
// users key drops every variant.
func (s *Service) All(ctx context.Context, limit int) ([]gateway.User, error) {
	key := cache.KeyUsers
	if limit > 0 {
		key = cache.WithParam(cache.KeyUsers, strconv.Itoa(limit))
	}
	return cache.GetJSON(ctx, s.cache, key, true, func(ctx context.Context) ([]gateway.User, error) {
		return s.gw.AllUsers(ctx, limit)
	})
}

func (s *Service) Update(ctx context.Context, input gateway.UpdateUserInput) (gateway.User, error) {
	return cache.MutateResult(ctx, s.cache, "update-user", input.UserID, func(ctx context.Context) (gateway.User, error) {
		return s.gw.UpdateUser(ctx, input)
	}, cache.KeyCurrentUser, cache.WithParam(cache.KeyUserByID, input.UserID))
}
