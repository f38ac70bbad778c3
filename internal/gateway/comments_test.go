package gateway

import (
	"context"
	"errors"
	"testing"
)

func TestPostAndListComments(t *testing.T) {
	g, _ := newTestGateway(t)
	ctx := context.Background()

	comment, err := g.PostComment(ctx, NewComment{PostID: "p1", UserID: "u1", Text: "nice shot"})
	if err != nil {
		t.Fatalf("post comment: %v", err)
	}
	if comment.ID == "" || comment.Text != "nice shot" {
		t.Fatalf("unexpected comment: %+v", comment)
	}

	_, err = g.PostComment(ctx, NewComment{PostID: "p2", UserID: "u1", Text: "other post"})
	if err != nil {
		t.Fatalf("post comment: %v", err)
	}

	comments, err := g.CommentsForPost(ctx, "p1")
	if err != nil {
		t.Fatalf("list comments: %v", err)
	}
	if len(comments) != 1 || comments[0].PostID != "p1" {
		t.Fatalf("unexpected comments: %+v", comments)
	}
}

func TestCommentByID(t *testing.T) {
	g, _ := newTestGateway(t)
	ctx := context.Background()

	created, err := g.PostComment(ctx, NewComment{PostID: "p1", UserID: "u1", Text: "hello"})
	if err != nil {
		t.Fatalf("post comment: %v", err)
	}

	comment, err := g.CommentByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("comment by id: %v", err)
	}
	if comment.PostID != "p1" || comment.UserID != "u1" {
		t.Fatalf("unexpected comment: %+v", comment)
	}

	if _, err := g.CommentByID(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteComment(t *testing.T) {
	g, deps := newTestGateway(t)
	ctx := context.Background()

	comment, err := g.PostComment(ctx, NewComment{PostID: "p1", UserID: "u1", Text: "bye"})
	if err != nil {
		t.Fatalf("post comment: %v", err)
	}
	if err := g.DeleteComment(ctx, comment.ID); err != nil {
		t.Fatalf("delete comment: %v", err)
	}
	if len(deps.db.docs["comments"]) != 0 {
		t.Fatalf("expected comment removed")
	}
}

func TestPostCommentFailureSurfaces(t *testing.T) {
	g, deps := newTestGateway(t)
	deps.db.createErr["comments"] = errors.New("rejected")

	if _, err := g.PostComment(context.Background(), NewComment{PostID: "p1", UserID: "u1", Text: "x"}); err == nil {
		t.Fatalf("expected error")
	}
}
