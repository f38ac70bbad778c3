package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"time"
)

// DatabaseAPI is the slice of the document store this application uses.
// Both *Databases and test fakes satisfy it.
type DatabaseAPI interface {
	CreateDocument(ctx context.Context, databaseID, collectionID, documentID string, data any) (Document, error)
	GetDocument(ctx context.Context, databaseID, collectionID, documentID string) (Document, error)
	UpdateDocument(ctx context.Context, databaseID, collectionID, documentID string, data any) (Document, error)
	DeleteDocument(ctx context.Context, databaseID, collectionID, documentID string) error
	ListDocuments(ctx context.Context, databaseID, collectionID string, queries ...Query) (DocumentList, error)
}

// Document is a stored record plus its generated metadata. Decode
// unmarshals the full payload, including $-prefixed fields, into a
// typed model.
type Document struct {
	ID        string    `json:"$id"`
	CreatedAt time.Time `json:"$createdAt"`
	UpdatedAt time.Time `json:"$updatedAt"`

	raw json.RawMessage
}

func (d *Document) UnmarshalJSON(data []byte) error {
	type plain Document
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*d = Document(p)
	d.raw = append(json.RawMessage(nil), data...)
	return nil
}

func (d Document) Decode(v any) error {
	if len(d.raw) == 0 {
		return nil
	}
	return json.Unmarshal(d.raw, v)
}

type DocumentList struct {
	Total     int        `json:"total"`
	Documents []Document `json:"documents"`
}

type Databases struct {
	c *Client
}

func (c *Client) Databases() *Databases {
	return &Databases{c: c}
}

func documentsPath(databaseID, collectionID string) string {
	return "/databases/" + url.PathEscape(databaseID) + "/collections/" + url.PathEscape(collectionID) + "/documents"
}

func (d *Databases) CreateDocument(ctx context.Context, databaseID, collectionID, documentID string, data any) (Document, error) {
	body := map[string]any{
		"documentId": documentID,
		"data":       data,
	}
	var doc Document
	if err := d.c.do(ctx, http.MethodPost, documentsPath(databaseID, collectionID), nil, body, &doc); err != nil {
		return Document{}, err
	}
	return doc, nil
}

func (d *Databases) GetDocument(ctx context.Context, databaseID, collectionID, documentID string) (Document, error) {
	var doc Document
	path := documentsPath(databaseID, collectionID) + "/" + url.PathEscape(documentID)
	if err := d.c.do(ctx, http.MethodGet, path, nil, nil, &doc); err != nil {
		return Document{}, err
	}
	return doc, nil
}

func (d *Databases) UpdateDocument(ctx context.Context, databaseID, collectionID, documentID string, data any) (Document, error) {
	body := map[string]any{"data": data}
	var doc Document
	path := documentsPath(databaseID, collectionID) + "/" + url.PathEscape(documentID)
	if err := d.c.do(ctx, http.MethodPatch, path, nil, body, &doc); err != nil {
		return Document{}, err
	}
	return doc, nil
}

func (d *Databases) DeleteDocument(ctx context.Context, databaseID, collectionID, documentID string) error {
	path := documentsPath(databaseID, collectionID) + "/" + url.PathEscape(documentID)
	return d.c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

func (d *Databases) ListDocuments(ctx context.Context, databaseID, collectionID string, queries ...Query) (DocumentList, error) {
	params := url.Values{}
	for _, q := range queries {
		encoded, err := json.Marshal(q)
		if err != nil {
			return DocumentList{}, err
		}
		params.Add("queries[]", string(encoded))
	}

	var list DocumentList
	if err := d.c.do(ctx, http.MethodGet, documentsPath(databaseID, collectionID), params, nil, &list); err != nil {
		return DocumentList{}, err
	}
	return list, nil
}
