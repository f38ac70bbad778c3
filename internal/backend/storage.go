package backend

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
)

// StorageAPI is the slice of the blob store this application uses.
// Both *Storage and test fakes satisfy it.
type StorageAPI interface {
	CreateFile(ctx context.Context, bucketID, fileID, name string, data []byte) (File, error)
	DeleteFile(ctx context.Context, bucketID, fileID string) error
	FilePreviewURL(bucketID, fileID string, opts PreviewOptions) string
}

type File struct {
	ID     string `json:"$id"`
	Bucket string `json:"bucketId"`
	Name   string `json:"name"`
	Size   int64  `json:"sizeOriginal"`
}

// PreviewOptions shape the derived preview image: dimensions, crop
// gravity and output quality.
type PreviewOptions struct {
	Width   int
	Height  int
	Gravity string
	Quality int
}

type Storage struct {
	c *Client
}

func (c *Client) Storage() *Storage {
	return &Storage{c: c}
}

func filesPath(bucketID string) string {
	return "/storage/buckets/" + url.PathEscape(bucketID) + "/files"
}

func (s *Storage) CreateFile(ctx context.Context, bucketID, fileID, name string, data []byte) (File, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	if err := writer.WriteField("fileId", fileID); err != nil {
		return File{}, err
	}
	part, err := writer.CreateFormFile("file", name)
	if err != nil {
		return File{}, err
	}
	if _, err := part.Write(data); err != nil {
		return File{}, err
	}
	if err := writer.Close(); err != nil {
		return File{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.c.BaseURL+filesPath(bucketID), &buf)
	if err != nil {
		return File{}, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	s.c.setAuthHeaders(req)

	var file File
	if err := s.c.send(req, &file); err != nil {
		return File{}, err
	}
	return file, nil
}

func (s *Storage) DeleteFile(ctx context.Context, bucketID, fileID string) error {
	return s.c.do(ctx, http.MethodDelete, filesPath(bucketID)+"/"+url.PathEscape(fileID), nil, nil, nil)
}

func (s *Storage) FilePreviewURL(bucketID, fileID string, opts PreviewOptions) string {
	q := url.Values{}
	q.Set("project", s.c.Project)
	if opts.Width > 0 {
		q.Set("width", strconv.Itoa(opts.Width))
	}
	if opts.Height > 0 {
		q.Set("height", strconv.Itoa(opts.Height))
	}
	if opts.Gravity != "" {
		q.Set("gravity", opts.Gravity)
	}
	if opts.Quality > 0 {
		q.Set("quality", strconv.Itoa(opts.Quality))
	}
	return fmt.Sprintf("%s%s/%s/preview?%s", s.c.BaseURL, filesPath(bucketID), url.PathEscape(fileID), q.Encode())
}
