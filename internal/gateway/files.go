package gateway

import (
	"context"

	"github.com/google/uuid"

	"github.com/JoyBrar2001/snapgram/internal/backend"
)

const (
	previewWidth   = 2000
	previewHeight  = 2000
	previewGravity = "top"
	previewQuality = 100
)

func (g *Gateway) uploadFile(ctx context.Context, name string, data []byte) (backend.File, error) {
	file, err := g.storage.CreateFile(ctx, g.cfg.StorageBucket, uuid.NewString(), name, data)
	if err != nil {
		return backend.File{}, g.fail("upload-file", err)
	}
	return file, nil
}

func (g *Gateway) filePreviewURL(fileID string) string {
	return g.storage.FilePreviewURL(g.cfg.StorageBucket, fileID, backend.PreviewOptions{
		Width:   previewWidth,
		Height:  previewHeight,
		Gravity: previewGravity,
		Quality: previewQuality,
	})
}

// deleteFile is compensating cleanup; failures are logged and
// tolerated since the orphan cannot block the caller's own failure
// path.
func (g *Gateway) deleteFile(ctx context.Context, fileID string) {
	if err := g.storage.DeleteFile(ctx, g.cfg.StorageBucket, fileID); err != nil {
		g.log.Warn().Err(err).Str("file_id", fileID).Msg("orphaned file cleanup failed")
	}
}
