package posts

import (
	"context"

	"github.com/JoyBrar2001/snapgram/internal/cache"
	"github.com/JoyBrar2001/snapgram/internal/gateway"
)

// Gateway is the slice of the remote gateway this service uses.
type Gateway interface {
	CreatePost(ctx context.Context, input gateway.NewPost) (gateway.Post, error)
	UpdatePost(ctx context.Context, input gateway.UpdatePostInput) (gateway.Post, error)
	DeletePost(ctx context.Context, postID, imageID string) error
	PostByID(ctx context.Context, postID string) (gateway.Post, error)
	RecentPosts(ctx context.Context) ([]gateway.Post, error)
	InfinitePosts(ctx context.Context, cursor string) ([]gateway.Post, error)
	SearchPosts(ctx context.Context, term string) ([]gateway.Post, error)
	FilteredPosts(ctx context.Context, filter, userID string) ([]gateway.Post, error)
	LikePost(ctx context.Context, postID string, likes []string) (gateway.Post, error)
	SavePost(ctx context.Context, userID, postID string) (gateway.SavedRecord, error)
	DeleteSavedPost(ctx context.Context, recordID string) error
	SavedPosts(ctx context.Context, userID string) ([]gateway.Post, error)
}

type Service struct {
	gw    Gateway
	cache *cache.Client
}

func NewService(gw Gateway, cacheClient *cache.Client) *Service {
	return &Service{gw: gw, cache: cacheClient}
}

func (s *Service) Recent(ctx context.Context) ([]gateway.Post, error) {
	return cache.GetJSON(ctx, s.cache, cache.KeyRecentPosts, true, func(ctx context.Context) ([]gateway.Post, error) {
		return s.gw.RecentPosts(ctx)
	})
}

// Infinite caches each page under the feed key so that invalidating
// the feed drops every page at once.
func (s *Service) Infinite(ctx context.Context, cursor string) ([]gateway.Post, error) {
	key := cache.KeyPosts
	if cursor != "" {
		key = cache.WithParam(cache.KeyPosts, cursor)
	}
	return cache.GetJSON(ctx, s.cache, key, true, func(ctx context.Context) ([]gateway.Post, error) {
		return s.gw.InfinitePosts(ctx, cursor)
	})
}

func (s *Service) Search(ctx context.Context, term string) ([]gateway.Post, error) {
	key := cache.WithParam(cache.KeySearchPosts, term)
	return cache.GetJSON(ctx, s.cache, key, term != "", func(ctx context.Context) ([]gateway.Post, error) {
		return s.gw.SearchPosts(ctx, term)
	})
}

func (s *Service) Filtered(ctx context.Context, filter, userID string) ([]gateway.Post, error) {
	key := cache.WithParam(cache.KeyPosts, "filtered:"+filter+":"+userID)
	return cache.GetJSON(ctx, s.cache, key, filter != "", func(ctx context.Context) ([]gateway.Post, error) {
		return s.gw.FilteredPosts(ctx, filter, userID)
	})
}

func (s *Service) ByID(ctx context.Context, postID string) (gateway.Post, error) {
	key := cache.WithParam(cache.KeyPostByID, postID)
	return cache.GetJSON(ctx, s.cache, key, postID != "", func(ctx context.Context) (gateway.Post, error) {
		return s.gw.PostByID(ctx, postID)
	})
}

func (s *Service) Saved(ctx context.Context, userID string) ([]gateway.Post, error) {
	key := cache.WithParam(cache.KeySavedPosts, userID)
	return cache.GetJSON(ctx, s.cache, key, userID != "", func(ctx context.Context) ([]gateway.Post, error) {
		return s.gw.SavedPosts(ctx, userID)
	})
}

func (s *Service) Create(ctx context.Context, input gateway.NewPost) (gateway.Post, error) {
	return cache.MutateResult(ctx, s.cache, "create-post", input.UserID, func(ctx context.Context) (gateway.Post, error) {
		return s.gw.CreatePost(ctx, input)
	}, cache.KeyPosts, cache.KeyRecentPosts)
}

func (s *Service) Update(ctx context.Context, input gateway.UpdatePostInput) (gateway.Post, error) {
	return cache.MutateResult(ctx, s.cache, "update-post", input.PostID, func(ctx context.Context) (gateway.Post, error) {
		return s.gw.UpdatePost(ctx, input)
	}, cache.WithParam(cache.KeyPostByID, input.PostID))
}

func (s *Service) Delete(ctx context.Context, postID, imageID string) error {
	return s.cache.Mutate(ctx, "delete-post", postID, func(ctx context.Context) error {
		return s.gw.DeletePost(ctx, postID, imageID)
	}, cache.KeyPosts, cache.KeyRecentPosts)
}

// Like toggles userID in the post's like list. The cached post is
// rewritten with the toggled list before the remote write so readers
// see the change immediately; a failed write reverts it. The mutation
// is keyed per (post, user): likes of the same post by different users
// are distinct intents and must each reach the remote store.
func (s *Service) Like(ctx context.Context, postID, userID string) (gateway.Post, error) {
	post, err := s.ByID(ctx, postID)
	if err != nil {
		return gateway.Post{}, err
	}
	post.Likes = toggle(post.Likes, userID)

	key := cache.WithParam(cache.KeyPostByID, postID)
	revert, err := s.cache.ApplyOptimistic(ctx, key, post)
	if err != nil {
		return gateway.Post{}, err
	}

	liked, err := cache.MutateResult(ctx, s.cache, "like-post", postID+":"+userID, func(ctx context.Context) (gateway.Post, error) {
		return s.gw.LikePost(ctx, postID, post.Likes)
	}, key, cache.KeyRecentPosts, cache.KeyPosts, cache.KeyCurrentUser)
	if err != nil {
		revert(ctx)
		return gateway.Post{}, err
	}
	return liked, nil
}

// Save records the post as saved for the user, optimistically appending
// it to the cached saved listing when one is present.
func (s *Service) Save(ctx context.Context, userID, postID string) (gateway.SavedRecord, error) {
	revert, err := s.optimisticSaved(ctx, userID, postID, true)
	if err != nil {
		return gateway.SavedRecord{}, err
	}

	record, err := cache.MutateResult(ctx, s.cache, "save-post", userID+":"+postID, func(ctx context.Context) (gateway.SavedRecord, error) {
		return s.gw.SavePost(ctx, userID, postID)
	}, cache.KeyRecentPosts, cache.KeyPosts, cache.KeyCurrentUser, cache.KeySavedPosts)
	if err != nil {
		if revert != nil {
			revert(ctx)
		}
		return gateway.SavedRecord{}, err
	}
	return record, nil
}

// Unsave deletes the save record. postID drives the optimistic removal
// from the cached listing; it may be empty.
func (s *Service) Unsave(ctx context.Context, userID, recordID, postID string) error {
	var revert func(ctx context.Context)
	if postID != "" {
		var err error
		revert, err = s.optimisticSaved(ctx, userID, postID, false)
		if err != nil {
			return err
		}
	}

	err := s.cache.Mutate(ctx, "delete-saved-post", recordID, func(ctx context.Context) error {
		return s.gw.DeleteSavedPost(ctx, recordID)
	}, cache.KeyRecentPosts, cache.KeyPosts, cache.KeyCurrentUser, cache.KeySavedPosts)
	if err != nil {
		if revert != nil {
			revert(ctx)
		}
		return err
	}
	return nil
}

// optimisticSaved edits the cached saved-posts listing in place. When
// the listing is not cached there is nothing to edit and no revert is
// returned.
func (s *Service) optimisticSaved(ctx context.Context, userID, postID string, add bool) (func(ctx context.Context), error) {
	key := cache.WithParam(cache.KeySavedPosts, userID)

	var saved []gateway.Post
	ok, err := s.cache.PeekJSON(ctx, key, &saved)
	if err != nil || !ok {
		return nil, err
	}

	if add {
		post, err := s.ByID(ctx, postID)
		if err != nil {
			return nil, err
		}
		saved = append(saved, post)
	} else {
		kept := saved[:0]
		for _, post := range saved {
			if post.ID != postID {
				kept = append(kept, post)
			}
		}
		saved = kept
	}

	return s.cache.ApplyOptimistic(ctx, key, saved)
}

func toggle(ids []string, id string) []string {
	for i, existing := range ids {
		if existing == id {
			return append(ids[:i:i], ids[i+1:]...)
		}
	}
	return append(ids, id)
}
