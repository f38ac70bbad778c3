package gateway

import (
	"context"

	"github.com/google/uuid"

	"github.com/JoyBrar2001/snapgram/internal/backend"
)

func (g *Gateway) Follow(ctx context.Context, followerID, followingID string) (FollowRecord, error) {
	doc, err := g.db.CreateDocument(ctx, g.cfg.DatabaseID, g.cfg.FollowsCollection, uuid.NewString(), map[string]any{
		"FollowerId":  followerID,
		"FollowingId": followingID,
	})
	if err != nil {
		return FollowRecord{}, g.fail("follow", err)
	}

	var record FollowRecord
	if err := doc.Decode(&record); err != nil {
		return FollowRecord{}, err
	}
	return record, nil
}

// Unfollow looks the join record up by its identifier pair and deletes
// it. Unfollowing someone not followed is a no-op.
func (g *Gateway) Unfollow(ctx context.Context, followerID, followingID string) error {
	list, err := g.db.ListDocuments(ctx, g.cfg.DatabaseID, g.cfg.FollowsCollection,
		backend.Equal("FollowerId", followerID),
		backend.Equal("FollowingId", followingID))
	if err != nil {
		return g.fail("unfollow", err)
	}
	if len(list.Documents) == 0 {
		return nil
	}

	if err := g.db.DeleteDocument(ctx, g.cfg.DatabaseID, g.cfg.FollowsCollection, list.Documents[0].ID); err != nil {
		return g.fail("unfollow", err)
	}
	return nil
}

func (g *Gateway) FollowingIDs(ctx context.Context, userID string) ([]string, error) {
	list, err := g.db.ListDocuments(ctx, g.cfg.DatabaseID, g.cfg.FollowsCollection,
		backend.Equal("FollowerId", userID))
	if err != nil {
		return nil, g.fail("following-list", err)
	}
	return projectFollowSide(list, func(r FollowRecord) string { return r.FollowingID })
}

func (g *Gateway) FollowerIDs(ctx context.Context, userID string) ([]string, error) {
	list, err := g.db.ListDocuments(ctx, g.cfg.DatabaseID, g.cfg.FollowsCollection,
		backend.Equal("FollowingId", userID))
	if err != nil {
		return nil, g.fail("followers-list", err)
	}
	return projectFollowSide(list, func(r FollowRecord) string { return r.FollowerID })
}

func projectFollowSide(list backend.DocumentList, side func(FollowRecord) string) ([]string, error) {
	ids := make([]string, 0, len(list.Documents))
	for _, doc := range list.Documents {
		var record FollowRecord
		if err := doc.Decode(&record); err != nil {
			return nil, err
		}
		ids = append(ids, side(record))
	}
	return ids, nil
}
