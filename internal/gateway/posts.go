package gateway

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/JoyBrar2001/snapgram/internal/backend"
	"github.com/JoyBrar2001/snapgram/internal/shared/tags"
)

const (
	recentPostsLimit   = 20
	infinitePostsLimit = 9
)

// CreatePost uploads the image, then attaches its reference to a new
// post document. If the attach step fails the uploaded file is deleted
// so no orphan remains in storage.
func (g *Gateway) CreatePost(ctx context.Context, input NewPost) (Post, error) {
	file, err := g.uploadFile(ctx, input.FileName, input.File)
	if err != nil {
		return Post{}, err
	}

	doc, err := g.db.CreateDocument(ctx, g.cfg.DatabaseID, g.cfg.PostsCollection, uuid.NewString(), map[string]any{
		"creator":  input.UserID,
		"caption":  input.Caption,
		"imageUrl": g.filePreviewURL(file.ID),
		"imageId":  file.ID,
		"location": input.Location,
		"tags":     tags.Parse(input.Tags),
		"likes":    []string{},
	})
	if err != nil {
		g.deleteFile(ctx, file.ID)
		return Post{}, g.fail("create-post", err)
	}

	var post Post
	if err := doc.Decode(&post); err != nil {
		return Post{}, err
	}
	return post, nil
}

// UpdatePost patches a post, optionally replacing its image with the
// same cleanup policy as CreatePost.
func (g *Gateway) UpdatePost(ctx context.Context, input UpdatePostInput) (Post, error) {
	imageURL := input.ImageURL
	imageID := input.ImageID
	uploaded := false

	if len(input.File) > 0 {
		file, err := g.uploadFile(ctx, input.FileName, input.File)
		if err != nil {
			return Post{}, err
		}
		imageURL = g.filePreviewURL(file.ID)
		imageID = file.ID
		uploaded = true
	}

	doc, err := g.db.UpdateDocument(ctx, g.cfg.DatabaseID, g.cfg.PostsCollection, input.PostID, map[string]any{
		"caption":  input.Caption,
		"imageUrl": imageURL,
		"imageId":  imageID,
		"location": input.Location,
		"tags":     tags.Parse(input.Tags),
	})
	if err != nil {
		if uploaded {
			g.deleteFile(ctx, imageID)
		}
		return Post{}, g.fail("update-post", err)
	}

	if uploaded && input.ImageID != "" {
		g.deleteFile(ctx, input.ImageID)
	}

	var post Post
	if err := doc.Decode(&post); err != nil {
		return Post{}, err
	}
	return post, nil
}

func (g *Gateway) DeletePost(ctx context.Context, postID, imageID string) error {
	if postID == "" || imageID == "" {
		return errors.New("gateway: post id and image id required")
	}
	if err := g.db.DeleteDocument(ctx, g.cfg.DatabaseID, g.cfg.PostsCollection, postID); err != nil {
		return g.fail("delete-post", err)
	}
	g.deleteFile(ctx, imageID)
	return nil
}

func (g *Gateway) PostByID(ctx context.Context, postID string) (Post, error) {
	doc, err := g.db.GetDocument(ctx, g.cfg.DatabaseID, g.cfg.PostsCollection, postID)
	if err != nil {
		if backend.IsNotFound(err) {
			return Post{}, ErrNotFound
		}
		return Post{}, g.fail("post-by-id", err)
	}

	var post Post
	if err := doc.Decode(&post); err != nil {
		return Post{}, err
	}
	return post, nil
}

func (g *Gateway) RecentPosts(ctx context.Context) ([]Post, error) {
	list, err := g.db.ListDocuments(ctx, g.cfg.DatabaseID, g.cfg.PostsCollection,
		backend.OrderDesc("$createdAt"), backend.Limit(recentPostsLimit))
	if err != nil {
		return nil, g.fail("recent-posts", err)
	}
	return decodePosts(list)
}

// InfinitePosts pages through posts by descending update time; cursor
// is the last document id of the previous page.
func (g *Gateway) InfinitePosts(ctx context.Context, cursor string) ([]Post, error) {
	queries := []backend.Query{backend.OrderDesc("$updatedAt"), backend.Limit(infinitePostsLimit)}
	if cursor != "" {
		queries = append(queries, backend.CursorAfter(cursor))
	}

	list, err := g.db.ListDocuments(ctx, g.cfg.DatabaseID, g.cfg.PostsCollection, queries...)
	if err != nil {
		return nil, g.fail("infinite-posts", err)
	}
	return decodePosts(list)
}

func (g *Gateway) SearchPosts(ctx context.Context, term string) ([]Post, error) {
	list, err := g.db.ListDocuments(ctx, g.cfg.DatabaseID, g.cfg.PostsCollection,
		backend.Search("caption", term))
	if err != nil {
		return nil, g.fail("search-posts", err)
	}
	return decodePosts(list)
}

// FilteredPosts serves the explore filters. "Following" restricts to
// creators the user follows, with a sentinel creator id when the user
// follows nobody; "Most Liked" orders by the denormalized like count.
func (g *Gateway) FilteredPosts(ctx context.Context, filter, userID string) ([]Post, error) {
	var queries []backend.Query

	switch filter {
	case "All":
		// No query terms: the unfiltered listing.
	case "Following":
		followingIDs, err := g.FollowingIDs(ctx, userID)
		if err != nil {
			return nil, err
		}
		if len(followingIDs) > 0 {
			values := make([]any, len(followingIDs))
			for i, id := range followingIDs {
				values[i] = id
			}
			queries = append(queries, backend.Equal("creator", values...))
		} else {
			queries = append(queries, backend.Equal("creator", "nonexistentUser"))
		}
	case "Most Liked":
		queries = append(queries, backend.OrderDesc("likesCount"))
	default:
		return []Post{}, nil
	}

	list, err := g.db.ListDocuments(ctx, g.cfg.DatabaseID, g.cfg.PostsCollection, queries...)
	if err != nil {
		return nil, g.fail("filtered-posts", err)
	}
	return decodePosts(list)
}

// LikePost writes the full resulting like list. Last writer wins; a
// concurrent like racing the same post can be lost.
func (g *Gateway) LikePost(ctx context.Context, postID string, likes []string) (Post, error) {
	doc, err := g.db.UpdateDocument(ctx, g.cfg.DatabaseID, g.cfg.PostsCollection, postID, map[string]any{
		"likes": likes,
	})
	if err != nil {
		return Post{}, g.fail("like-post", err)
	}

	var post Post
	if err := doc.Decode(&post); err != nil {
		return Post{}, err
	}
	return post, nil
}

func (g *Gateway) SavePost(ctx context.Context, userID, postID string) (SavedRecord, error) {
	doc, err := g.db.CreateDocument(ctx, g.cfg.DatabaseID, g.cfg.SavesCollection, uuid.NewString(), map[string]any{
		"user": userID,
		"post": postID,
	})
	if err != nil {
		return SavedRecord{}, g.fail("save-post", err)
	}

	var record SavedRecord
	if err := doc.Decode(&record); err != nil {
		return SavedRecord{}, err
	}
	return record, nil
}

func (g *Gateway) DeleteSavedPost(ctx context.Context, recordID string) error {
	if err := g.db.DeleteDocument(ctx, g.cfg.DatabaseID, g.cfg.SavesCollection, recordID); err != nil {
		return g.fail("delete-saved-post", err)
	}
	return nil
}

// SavedPosts lists the user's save records and fetches each referenced
// post individually. A fan-out, not a join; order is whatever the
// record listing yields.
func (g *Gateway) SavedPosts(ctx context.Context, userID string) ([]Post, error) {
	list, err := g.db.ListDocuments(ctx, g.cfg.DatabaseID, g.cfg.SavesCollection,
		backend.Equal("user", userID))
	if err != nil {
		return nil, g.fail("saved-records", err)
	}

	posts := make([]Post, 0, len(list.Documents))
	for _, doc := range list.Documents {
		var record SavedRecord
		if err := doc.Decode(&record); err != nil {
			return nil, err
		}
		post, err := g.PostByID(ctx, record.PostID)
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, nil
}

func (g *Gateway) SavedRecords(ctx context.Context, userID string) ([]SavedRecord, error) {
	list, err := g.db.ListDocuments(ctx, g.cfg.DatabaseID, g.cfg.SavesCollection,
		backend.Equal("user", userID))
	if err != nil {
		return nil, g.fail("saved-records", err)
	}

	records := make([]SavedRecord, 0, len(list.Documents))
	for _, doc := range list.Documents {
		var record SavedRecord
		if err := doc.Decode(&record); err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}

func decodePosts(list backend.DocumentList) ([]Post, error) {
	posts := make([]Post, 0, len(list.Documents))
	for _, doc := range list.Documents {
		var post Post
		if err := doc.Decode(&post); err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, nil
}
