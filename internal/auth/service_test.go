package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/JoyBrar2001/snapgram/internal/backend"
	"github.com/JoyBrar2001/snapgram/internal/gateway"
)

type stubGateway struct {
	user      gateway.User
	createErr error
	signInErr error
	signOuts  int
}

func (s *stubGateway) CreateUserAccount(_ context.Context, input gateway.NewUser) (gateway.User, error) {
	if s.createErr != nil {
		return gateway.User{}, s.createErr
	}
	s.user = gateway.User{ID: "u1", AccountID: "acct-1", Name: input.Name, Username: input.Username, Email: input.Email}
	return s.user, nil
}

func (s *stubGateway) SignIn(_ context.Context, email, _ string) (backend.Session, error) {
	if s.signInErr != nil {
		return backend.Session{}, s.signInErr
	}
	return backend.Session{ID: "sess-1", UserID: "acct-1", Secret: "secret-" + email}, nil
}

func (s *stubGateway) SignOut(_ context.Context, _ string) error {
	s.signOuts++
	return nil
}

func (s *stubGateway) CurrentUser(_ context.Context, _ string) (gateway.User, error) {
	if s.user.ID == "" {
		return gateway.User{}, gateway.ErrNotFound
	}
	return s.user, nil
}

func TestRegisterIssuesToken(t *testing.T) {
	gw := &stubGateway{}
	sessions := NewMemorySessionStore()
	svc := NewService("test-secret", gw, sessions)

	user, tokens, err := svc.Register(context.Background(), RegisterRequest{
		Name: "Ada", Username: "ada", Email: "ada@example.com", Password: "pw",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if user.ID != "u1" || tokens.AccessToken == "" || tokens.TokenType != "Bearer" {
		t.Fatalf("unexpected result: %+v %+v", user, tokens)
	}

	claims, err := svc.parseToken(tokens.AccessToken)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.UserID != "u1" || claims.AccountID != "acct-1" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	secret, err := sessions.Get(context.Background(), claims.ID)
	if err != nil || secret != "secret-ada@example.com" {
		t.Fatalf("expected stored session secret, got %q err %v", secret, err)
	}
}

func TestRegisterRequiresFields(t *testing.T) {
	svc := NewService("s", &stubGateway{}, NewMemorySessionStore())
	if _, _, err := svc.Register(context.Background(), RegisterRequest{Email: "a@b.c"}); err == nil {
		t.Fatalf("expected validation error")
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	gw := &stubGateway{signInErr: errors.New("nope")}
	svc := NewService("s", gw, NewMemorySessionStore())
	if _, _, err := svc.Login(context.Background(), LoginRequest{Email: "a@b.c", Password: "x"}); err == nil {
		t.Fatalf("expected error")
	}
}

func TestLogoutDeletesBothSides(t *testing.T) {
	gw := &stubGateway{}
	sessions := NewMemorySessionStore()
	svc := NewService("s", gw, sessions)
	ctx := context.Background()

	_ = sessions.Save(ctx, "token-1", "remote-secret", time.Minute)
	if err := svc.Logout(ctx, "token-1", "remote-secret"); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if gw.signOuts != 1 {
		t.Fatalf("expected remote session deleted")
	}
	if _, err := sessions.Get(ctx, "token-1"); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected local session deleted, got %v", err)
	}
}

func TestMemorySessionStoreExpiry(t *testing.T) {
	store := NewMemorySessionStore()
	ctx := context.Background()

	_ = store.Save(ctx, "id", "secret", -time.Second)
	if _, err := store.Get(ctx, "id"); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected expired session, got %v", err)
	}
}
