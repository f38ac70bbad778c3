package auth

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/JoyBrar2001/snapgram/internal/backend"
	"github.com/JoyBrar2001/snapgram/internal/gateway"
)

const sessionTTL = 7 * 24 * time.Hour

// Gateway is the slice of the remote gateway the auth flows use.
type Gateway interface {
	CreateUserAccount(ctx context.Context, input gateway.NewUser) (gateway.User, error)
	SignIn(ctx context.Context, email, password string) (backend.Session, error)
	SignOut(ctx context.Context, session string) error
	CurrentUser(ctx context.Context, session string) (gateway.User, error)
}

type Claims struct {
	UserID    string `json:"user_id"`
	AccountID string `json:"account_id"`
	jwt.RegisteredClaims
}

// Service exchanges remote backend sessions for service tokens. The
// remote session secret never leaves the server; the issued JWT only
// carries the id it is stored under.
type Service struct {
	secret   []byte
	gw       Gateway
	sessions SessionStore
}

func NewService(secret string, gw Gateway, sessions SessionStore) *Service {
	return &Service{
		secret:   []byte(secret),
		gw:       gw,
		sessions: sessions,
	}
}

func (s *Service) Register(ctx context.Context, req RegisterRequest) (gateway.User, TokenResponse, error) {
	if req.Email == "" || req.Password == "" || req.Name == "" {
		return gateway.User{}, TokenResponse{}, errors.New("name, email, password required")
	}

	user, err := s.gw.CreateUserAccount(ctx, gateway.NewUser{
		Name:     req.Name,
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return gateway.User{}, TokenResponse{}, err
	}

	tokens, err := s.openSession(ctx, user, req.Email, req.Password)
	if err != nil {
		return gateway.User{}, TokenResponse{}, err
	}
	return user, tokens, nil
}

func (s *Service) Login(ctx context.Context, req LoginRequest) (gateway.User, TokenResponse, error) {
	session, err := s.gw.SignIn(ctx, req.Email, req.Password)
	if err != nil {
		return gateway.User{}, TokenResponse{}, errors.New("invalid credentials")
	}

	user, err := s.gw.CurrentUser(ctx, session.Secret)
	if err != nil {
		return gateway.User{}, TokenResponse{}, err
	}

	tokens, err := s.issueToken(ctx, user, session)
	if err != nil {
		return gateway.User{}, TokenResponse{}, err
	}
	return user, tokens, nil
}

func (s *Service) Logout(ctx context.Context, sessionID, sessionSecret string) error {
	if err := s.gw.SignOut(ctx, sessionSecret); err != nil {
		return err
	}
	return s.sessions.Delete(ctx, sessionID)
}

func (s *Service) openSession(ctx context.Context, user gateway.User, email, password string) (TokenResponse, error) {
	session, err := s.gw.SignIn(ctx, email, password)
	if err != nil {
		return TokenResponse{}, err
	}
	return s.issueToken(ctx, user, session)
}

func (s *Service) issueToken(ctx context.Context, user gateway.User, session backend.Session) (TokenResponse, error) {
	id := uuid.NewString()
	claims := Claims{
		UserID:    user.ID,
		AccountID: user.AccountID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        id,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(sessionTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return TokenResponse{}, err
	}
	if err := s.sessions.Save(ctx, id, session.Secret, sessionTTL); err != nil {
		return TokenResponse{}, err
	}

	return TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(sessionTTL.Seconds()),
	}, nil
}

func (s *Service) parseToken(token string) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(_ *jwt.Token) (interface{}, error) {
		return s.secret, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, errors.New("token invalid")
	}
	return claims, nil
}
