package comments

import (
	"context"

	"github.com/JoyBrar2001/snapgram/internal/cache"
	"github.com/JoyBrar2001/snapgram/internal/gateway"
)

// Gateway is the slice of the remote gateway this service uses.
type Gateway interface {
	CommentsForPost(ctx context.Context, postID string) ([]gateway.Comment, error)
	CommentByID(ctx context.Context, commentID string) (gateway.Comment, error)
	PostComment(ctx context.Context, input gateway.NewComment) (gateway.Comment, error)
	DeleteComment(ctx context.Context, commentID string) error
}

type Service struct {
	gw    Gateway
	cache *cache.Client
}

func NewService(gw Gateway, cacheClient *cache.Client) *Service {
	return &Service{gw: gw, cache: cacheClient}
}

func (s *Service) ForPost(ctx context.Context, postID string) ([]gateway.Comment, error) {
	key := cache.WithParam(cache.KeyComments, postID)
	return cache.GetJSON(ctx, s.cache, key, postID != "", func(ctx context.Context) ([]gateway.Comment, error) {
		return s.gw.CommentsForPost(ctx, postID)
	})
}

func (s *Service) Post(ctx context.Context, input gateway.NewComment) (gateway.Comment, error) {
	return cache.MutateResult(ctx, s.cache, "post-comment", input.PostID+":"+input.UserID, func(ctx context.Context) (gateway.Comment, error) {
		return s.gw.PostComment(ctx, input)
	}, cache.WithParam(cache.KeyComments, input.PostID), cache.WithParam(cache.KeyPostByID, input.PostID))
}

func (s *Service) ByID(ctx context.Context, commentID string) (gateway.Comment, error) {
	return s.gw.CommentByID(ctx, commentID)
}

// Delete takes the comment's post id so the right listing is dropped.
// Without a post id the bare prefixes are invalidated instead, so the
// stale listing never survives the delete.
func (s *Service) Delete(ctx context.Context, commentID, postID string) error {
	invalidates := []string{cache.KeyComments, cache.KeyPostByID}
	if postID != "" {
		invalidates = []string{cache.WithParam(cache.KeyComments, postID), cache.WithParam(cache.KeyPostByID, postID)}
	}
	return s.cache.Mutate(ctx, "delete-comment", commentID, func(ctx context.Context) error {
		return s.gw.DeleteComment(ctx, commentID)
	}, invalidates...)
}
