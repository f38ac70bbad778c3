package gateway

import (
	"context"

	"github.com/google/uuid"

	"github.com/JoyBrar2001/snapgram/internal/backend"
)

func (g *Gateway) CommentsForPost(ctx context.Context, postID string) ([]Comment, error) {
	list, err := g.db.ListDocuments(ctx, g.cfg.DatabaseID, g.cfg.CommentsCollection,
		backend.Equal("post", postID))
	if err != nil {
		return nil, g.fail("comments-for-post", err)
	}

	comments := make([]Comment, 0, len(list.Documents))
	for _, doc := range list.Documents {
		var comment Comment
		if err := doc.Decode(&comment); err != nil {
			return nil, err
		}
		comments = append(comments, comment)
	}
	return comments, nil
}

func (g *Gateway) CommentByID(ctx context.Context, commentID string) (Comment, error) {
	doc, err := g.db.GetDocument(ctx, g.cfg.DatabaseID, g.cfg.CommentsCollection, commentID)
	if err != nil {
		if backend.IsNotFound(err) {
			return Comment{}, ErrNotFound
		}
		return Comment{}, g.fail("comment-by-id", err)
	}

	var comment Comment
	if err := doc.Decode(&comment); err != nil {
		return Comment{}, err
	}
	return comment, nil
}

func (g *Gateway) PostComment(ctx context.Context, input NewComment) (Comment, error) {
	doc, err := g.db.CreateDocument(ctx, g.cfg.DatabaseID, g.cfg.CommentsCollection, uuid.NewString(), map[string]any{
		"post":    input.PostID,
		"user":    input.UserID,
		"comment": input.Text,
	})
	if err != nil {
		return Comment{}, g.fail("post-comment", err)
	}

	var comment Comment
	if err := doc.Decode(&comment); err != nil {
		return Comment{}, err
	}
	return comment, nil
}

func (g *Gateway) DeleteComment(ctx context.Context, commentID string) error {
	if err := g.db.DeleteDocument(ctx, g.cfg.DatabaseID, g.cfg.CommentsCollection, commentID); err != nil {
		return g.fail("delete-comment", err)
	}
	return nil
}
