package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/JoyBrar2001/snapgram/internal/backend"
)

// In-memory stand-ins for the remote backend, filling the role pgxmock
// plays for SQL-backed services.

func testConfig() Config {
	return Config{
		DatabaseID:         "db",
		UsersCollection:    "users",
		PostsCollection:    "posts",
		FollowsCollection:  "follows",
		SavesCollection:    "saves",
		CommentsCollection: "comments",
		StorageBucket:      "media",
	}
}

func makeDoc(t *testing.T, fields map[string]any) backend.Document {
	t.Helper()
	encoded, err := json.Marshal(fields)
	if err != nil {
		t.Fatalf("marshal doc: %v", err)
	}
	var doc backend.Document
	if err := json.Unmarshal(encoded, &doc); err != nil {
		t.Fatalf("unmarshal doc: %v", err)
	}
	return doc
}

func toFields(data any) map[string]any {
	encoded, _ := json.Marshal(data)
	fields := map[string]any{}
	_ = json.Unmarshal(encoded, &fields)
	return fields
}

type fakeDB struct {
	t  *testing.T
	mu sync.Mutex

	docs map[string][]map[string]any // collection -> ordered documents

	createErr map[string]error
	updateErr map[string]error
	deleteErr map[string]error
	listErr   map[string]error
}

func newFakeDB(t *testing.T) *fakeDB {
	return &fakeDB{
		t:         t,
		docs:      map[string][]map[string]any{},
		createErr: map[string]error{},
		updateErr: map[string]error{},
		deleteErr: map[string]error{},
		listErr:   map[string]error{},
	}
}

func (f *fakeDB) seed(collection string, fields map[string]any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.docs[collection] = append(f.docs[collection], fields)
}

func (f *fakeDB) CreateDocument(_ context.Context, _, collection, documentID string, data any) (backend.Document, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.createErr[collection]; err != nil {
		return backend.Document{}, err
	}
	fields := toFields(data)
	fields["$id"] = documentID
	fields["$createdAt"] = time.Now().UTC().Format(time.RFC3339Nano)
	fields["$updatedAt"] = fields["$createdAt"]
	f.docs[collection] = append(f.docs[collection], fields)
	return makeDoc(f.t, fields), nil
}

func (f *fakeDB) GetDocument(_ context.Context, _, collection, documentID string) (backend.Document, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, fields := range f.docs[collection] {
		if fields["$id"] == documentID {
			return makeDoc(f.t, fields), nil
		}
	}
	return backend.Document{}, &backend.Error{Code: http.StatusNotFound, Message: "document not found"}
}

func (f *fakeDB) UpdateDocument(_ context.Context, _, collection, documentID string, data any) (backend.Document, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.updateErr[collection]; err != nil {
		return backend.Document{}, err
	}
	for _, fields := range f.docs[collection] {
		if fields["$id"] == documentID {
			for k, v := range toFields(data) {
				fields[k] = v
			}
			fields["$updatedAt"] = time.Now().UTC().Format(time.RFC3339Nano)
			return makeDoc(f.t, fields), nil
		}
	}
	return backend.Document{}, &backend.Error{Code: http.StatusNotFound, Message: "document not found"}
}

func (f *fakeDB) DeleteDocument(_ context.Context, _, collection, documentID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.deleteErr[collection]; err != nil {
		return err
	}
	docs := f.docs[collection]
	for i, fields := range docs {
		if fields["$id"] == documentID {
			f.docs[collection] = append(docs[:i], docs[i+1:]...)
			return nil
		}
	}
	return &backend.Error{Code: http.StatusNotFound, Message: "document not found"}
}

func (f *fakeDB) ListDocuments(_ context.Context, _, collection string, queries ...backend.Query) (backend.DocumentList, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.listErr[collection]; err != nil {
		return backend.DocumentList{}, err
	}

	matched := make([]map[string]any, 0, len(f.docs[collection]))
	for _, fields := range f.docs[collection] {
		if matchesQueries(fields, queries) {
			matched = append(matched, fields)
		}
	}
	for _, q := range queries {
		if q.Method == "limit" && len(q.Values) == 1 {
			if limit, ok := q.Values[0].(int); ok && len(matched) > limit {
				matched = matched[:limit]
			}
		}
	}

	list := backend.DocumentList{Total: len(matched)}
	for _, fields := range matched {
		list.Documents = append(list.Documents, makeDoc(f.t, fields))
	}
	return list, nil
}

func matchesQueries(fields map[string]any, queries []backend.Query) bool {
	for _, q := range queries {
		switch q.Method {
		case "equal":
			value := fmt.Sprint(fields[q.Attribute])
			found := false
			for _, want := range q.Values {
				if value == fmt.Sprint(want) {
					found = true
					break
				}
			}
			if !found {
				return false
			}
		case "search":
			if len(q.Values) == 1 {
				haystack := strings.ToLower(fmt.Sprint(fields[q.Attribute]))
				if !strings.Contains(haystack, strings.ToLower(fmt.Sprint(q.Values[0]))) {
					return false
				}
			}
		}
	}
	return true
}

type fakeStorage struct {
	mu        sync.Mutex
	files     map[string][]byte
	deleted   []string
	createErr error
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{files: map[string][]byte{}}
}

func (f *fakeStorage) CreateFile(_ context.Context, _, fileID, name string, data []byte) (backend.File, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return backend.File{}, f.createErr
	}
	f.files[fileID] = data
	return backend.File{ID: fileID, Bucket: "media", Name: name, Size: int64(len(data))}, nil
}

func (f *fakeStorage) DeleteFile(_ context.Context, _, fileID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.files, fileID)
	f.deleted = append(f.deleted, fileID)
	return nil
}

func (f *fakeStorage) FilePreviewURL(bucketID, fileID string, _ backend.PreviewOptions) string {
	return "https://cdn.test/" + bucketID + "/" + fileID + "/preview"
}

type fakeAccounts struct {
	mu        sync.Mutex
	accounts  map[string]backend.Account // session secret -> account
	createErr error
	signInErr error

	deletedSessions int
}

func newFakeAccounts() *fakeAccounts {
	return &fakeAccounts{accounts: map[string]backend.Account{}}
}

func (f *fakeAccounts) Create(_ context.Context, id, email, _, name string) (backend.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return backend.Account{}, f.createErr
	}
	account := backend.Account{ID: id, Email: email, Name: name}
	f.accounts["secret-"+email] = account
	return account, nil
}

func (f *fakeAccounts) CreateSession(_ context.Context, email, _ string) (backend.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.signInErr != nil {
		return backend.Session{}, f.signInErr
	}
	account, ok := f.accounts["secret-"+email]
	if !ok {
		return backend.Session{}, &backend.Error{Code: http.StatusUnauthorized, Message: "invalid credentials"}
	}
	return backend.Session{ID: "sess-" + email, UserID: account.ID, Secret: "secret-" + email}, nil
}

func (f *fakeAccounts) Get(_ context.Context, session string) (backend.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	account, ok := f.accounts[session]
	if !ok {
		return backend.Account{}, &backend.Error{Code: http.StatusUnauthorized, Message: "session invalid"}
	}
	return account, nil
}

func (f *fakeAccounts) DeleteSession(_ context.Context, _, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deletedSessions++
	return nil
}

type fakeAvatars struct{}

func (fakeAvatars) InitialsURL(name string) string {
	return "https://cdn.test/avatars?name=" + strings.ReplaceAll(name, " ", "+")
}

type testDeps struct {
	accounts *fakeAccounts
	db       *fakeDB
	storage  *fakeStorage
}

func newTestGateway(t *testing.T) (*Gateway, testDeps) {
	deps := testDeps{
		accounts: newFakeAccounts(),
		db:       newFakeDB(t),
		storage:  newFakeStorage(),
	}
	g := New(deps.accounts, fakeAvatars{}, deps.db, deps.storage, testConfig(), zerolog.Nop())
	return g, deps
}
