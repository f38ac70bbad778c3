package gateway

import (
	"context"

	"github.com/google/uuid"

	"github.com/JoyBrar2001/snapgram/internal/backend"
)

// CreateUserAccount registers an account, derives an initials avatar
// and mirrors the profile into the users collection. The account is
// created first; a failed profile write leaves no document behind.
func (g *Gateway) CreateUserAccount(ctx context.Context, input NewUser) (User, error) {
	account, err := g.accounts.Create(ctx, uuid.NewString(), input.Email, input.Password, input.Name)
	if err != nil {
		return User{}, g.fail("create-account", err)
	}

	avatarURL := g.avatars.InitialsURL(account.Name)

	doc, err := g.db.CreateDocument(ctx, g.cfg.DatabaseID, g.cfg.UsersCollection, uuid.NewString(), map[string]any{
		"accountId": account.ID,
		"email":     account.Email,
		"name":      account.Name,
		"username":  input.Username,
		"imageUrl":  avatarURL,
	})
	if err != nil {
		return User{}, g.fail("save-user", err)
	}

	var user User
	if err := doc.Decode(&user); err != nil {
		return User{}, err
	}
	return user, nil
}

func (g *Gateway) SignIn(ctx context.Context, email, password string) (backend.Session, error) {
	session, err := g.accounts.CreateSession(ctx, email, password)
	if err != nil {
		return backend.Session{}, g.fail("sign-in", err)
	}
	return session, nil
}

func (g *Gateway) SignOut(ctx context.Context, session string) error {
	if err := g.accounts.DeleteSession(ctx, session, "current"); err != nil {
		return g.fail("sign-out", err)
	}
	return nil
}

// CurrentUser resolves the session's account and looks up the profile
// document mirrored for it.
func (g *Gateway) CurrentUser(ctx context.Context, session string) (User, error) {
	account, err := g.accounts.Get(ctx, session)
	if err != nil {
		return User{}, g.fail("current-account", err)
	}

	list, err := g.db.ListDocuments(ctx, g.cfg.DatabaseID, g.cfg.UsersCollection,
		backend.Equal("accountId", account.ID))
	if err != nil {
		return User{}, g.fail("current-user", err)
	}
	if len(list.Documents) == 0 {
		return User{}, ErrNotFound
	}

	var user User
	if err := list.Documents[0].Decode(&user); err != nil {
		return User{}, err
	}
	return user, nil
}

func (g *Gateway) UserByID(ctx context.Context, userID string) (User, error) {
	doc, err := g.db.GetDocument(ctx, g.cfg.DatabaseID, g.cfg.UsersCollection, userID)
	if err != nil {
		if backend.IsNotFound(err) {
			return User{}, ErrNotFound
		}
		return User{}, g.fail("user-by-id", err)
	}

	var user User
	if err := doc.Decode(&user); err != nil {
		return User{}, err
	}
	return user, nil
}

func (g *Gateway) AllUsers(ctx context.Context, limit int) ([]User, error) {
	queries := []backend.Query{backend.OrderDesc("$createdAt")}
	if limit > 0 {
		queries = append(queries, backend.Limit(limit))
	}

	list, err := g.db.ListDocuments(ctx, g.cfg.DatabaseID, g.cfg.UsersCollection, queries...)
	if err != nil {
		return nil, g.fail("all-users", err)
	}
	return decodeUsers(list)
}

// UpdateUser patches the profile document, optionally replacing the
// avatar image. A freshly uploaded file is deleted again if the
// document write fails; the replaced file is deleted once the write
// succeeds.
func (g *Gateway) UpdateUser(ctx context.Context, input UpdateUserInput) (User, error) {
	imageURL := input.ImageURL
	imageID := input.ImageID
	uploaded := false

	if len(input.File) > 0 {
		file, err := g.uploadFile(ctx, input.FileName, input.File)
		if err != nil {
			return User{}, err
		}
		imageURL = g.filePreviewURL(file.ID)
		imageID = file.ID
		uploaded = true
	}

	doc, err := g.db.UpdateDocument(ctx, g.cfg.DatabaseID, g.cfg.UsersCollection, input.UserID, map[string]any{
		"name":     input.Name,
		"bio":      input.Bio,
		"imageUrl": imageURL,
		"imageId":  imageID,
	})
	if err != nil {
		if uploaded {
			g.deleteFile(ctx, imageID)
		}
		return User{}, g.fail("update-user", err)
	}

	if uploaded && input.ImageID != "" {
		g.deleteFile(ctx, input.ImageID)
	}

	var user User
	if err := doc.Decode(&user); err != nil {
		return User{}, err
	}
	return user, nil
}

func decodeUsers(list backend.DocumentList) ([]User, error) {
	users := make([]User, 0, len(list.Documents))
	for _, doc := range list.Documents {
		var user User
		if err := doc.Decode(&user); err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}
