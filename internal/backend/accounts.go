package backend

import (
	"context"
	"net/http"
	"net/url"
)

// AccountAPI is the slice of the account service this application uses.
// Both *Accounts and test fakes satisfy it.
type AccountAPI interface {
	Create(ctx context.Context, id, email, password, name string) (Account, error)
	CreateSession(ctx context.Context, email, password string) (Session, error)
	Get(ctx context.Context, session string) (Account, error)
	DeleteSession(ctx context.Context, session, sessionID string) error
}

type Account struct {
	ID    string `json:"$id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

type Session struct {
	ID     string `json:"$id"`
	UserID string `json:"userId"`
	Secret string `json:"secret"`
}

type Accounts struct {
	c *Client
}

func (c *Client) Accounts() *Accounts {
	return &Accounts{c: c}
}

func (a *Accounts) Create(ctx context.Context, id, email, password, name string) (Account, error) {
	body := map[string]string{
		"userId":   id,
		"email":    email,
		"password": password,
		"name":     name,
	}
	var account Account
	if err := a.c.do(ctx, http.MethodPost, "/account", nil, body, &account); err != nil {
		return Account{}, err
	}
	return account, nil
}

func (a *Accounts) CreateSession(ctx context.Context, email, password string) (Session, error) {
	body := map[string]string{"email": email, "password": password}
	var session Session
	if err := a.c.do(ctx, http.MethodPost, "/account/sessions/email", nil, body, &session); err != nil {
		return Session{}, err
	}
	return session, nil
}

func (a *Accounts) Get(ctx context.Context, session string) (Account, error) {
	var account Account
	if err := a.c.WithSession(session).do(ctx, http.MethodGet, "/account", nil, nil, &account); err != nil {
		return Account{}, err
	}
	return account, nil
}

func (a *Accounts) DeleteSession(ctx context.Context, session, sessionID string) error {
	if sessionID == "" {
		sessionID = "current"
	}
	return a.c.WithSession(session).do(ctx, http.MethodDelete, "/account/sessions/"+url.PathEscape(sessionID), nil, nil, nil)
}

// AvatarAPI yields derived avatar image URLs. No request is made; the
// URL is served by the backend on demand.
type AvatarAPI interface {
	InitialsURL(name string) string
}

type Avatars struct {
	c *Client
}

func (c *Client) Avatars() *Avatars {
	return &Avatars{c: c}
}

func (a *Avatars) InitialsURL(name string) string {
	q := url.Values{}
	q.Set("name", name)
	q.Set("project", a.c.Project)
	return a.c.BaseURL + "/avatars/initials?" + q.Encode()
}
