package gateway

import (
	"errors"

	"github.com/rs/zerolog"

	"github.com/JoyBrar2001/snapgram/internal/backend"
)

// ErrNotFound signals that a read resolved to no resource.
var ErrNotFound = errors.New("gateway: not found")

// Config names the remote collections this deployment stores its
// entities in.
type Config struct {
	DatabaseID         string
	UsersCollection    string
	PostsCollection    string
	FollowsCollection  string
	SavesCollection    string
	CommentsCollection string
	StorageBucket      string
}

// Gateway maps user intents onto remote backend calls. It is
// stateless; multi-step intents compose sequentially and abort on the
// first failed step.
type Gateway struct {
	accounts backend.AccountAPI
	avatars  backend.AvatarAPI
	db       backend.DatabaseAPI
	storage  backend.StorageAPI
	cfg      Config
	log      zerolog.Logger
}

func New(accounts backend.AccountAPI, avatars backend.AvatarAPI, db backend.DatabaseAPI, storage backend.StorageAPI, cfg Config, log zerolog.Logger) *Gateway {
	return &Gateway{
		accounts: accounts,
		avatars:  avatars,
		db:       db,
		storage:  storage,
		cfg:      cfg,
		log:      log,
	}
}

func (g *Gateway) fail(op string, err error) error {
	g.log.Warn().Err(err).Str("op", op).Msg("remote call failed")
	return err
}
