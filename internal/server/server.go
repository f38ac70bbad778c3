package server

import (
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/JoyBrar2001/snapgram/internal/auth"
	"github.com/JoyBrar2001/snapgram/internal/backend"
	"github.com/JoyBrar2001/snapgram/internal/cache"
	"github.com/JoyBrar2001/snapgram/internal/comments"
	"github.com/JoyBrar2001/snapgram/internal/config"
	"github.com/JoyBrar2001/snapgram/internal/gateway"
	"github.com/JoyBrar2001/snapgram/internal/posts"
	"github.com/JoyBrar2001/snapgram/internal/social"
	"github.com/JoyBrar2001/snapgram/internal/stream"
	"github.com/JoyBrar2001/snapgram/internal/users"
)

type Server struct {
	App    *fiber.App
	Cfg    config.Config
	Redis  *redis.Client
	Cache  *cache.Client
	Stream *stream.Hub
}

func NewServer(cfg config.Config, redisClient *redis.Client) *Server {
	app := fiber.New()
	app.Use(recover.New())
	app.Use(logger.New())

	log := zerolog.New(os.Stderr).With().Timestamp().Logger()

	var store cache.Store = cache.NewMemoryStore()
	var sessions auth.SessionStore = auth.NewMemorySessionStore()
	if redisClient != nil {
		store = cache.NewRedisStore(redisClient)
		sessions = auth.NewRedisSessionStore(redisClient)
	}

	hub := stream.NewHub(redisClient, log)
	cacheClient := cache.NewClient(store, log)
	cacheClient.OnInvalidate(hub.Broadcast)

	client := backend.NewClient(cfg.BackendEndpoint, cfg.BackendProject, cfg.BackendAPIKey)
	gw := gateway.New(client.Accounts(), client.Avatars(), client.Databases(), client.Storage(), gateway.Config{
		DatabaseID:         cfg.DatabaseID,
		UsersCollection:    cfg.UsersCollection,
		PostsCollection:    cfg.PostsCollection,
		FollowsCollection:  cfg.FollowsCollection,
		SavesCollection:    cfg.SavesCollection,
		CommentsCollection: cfg.CommentsCollection,
		StorageBucket:      cfg.StorageBucket,
	}, log)

	s := &Server{
		App:    app,
		Cfg:    cfg,
		Redis:  redisClient,
		Cache:  cacheClient,
		Stream: hub,
	}

	registerRoutes(s, gw, sessions)
	return s
}

func registerRoutes(s *Server, gw *gateway.Gateway, sessions auth.SessionStore) {
	s.App.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	authService := auth.NewService(s.Cfg.JWTSecret, gw, sessions)
	authMiddleware := authService.Middleware()

	auth.RegisterRoutes(s.App.Group("/auth"), authService, authMiddleware)
	users.RegisterRoutes(s.App.Group("/users"), users.NewService(gw, s.Cache), authMiddleware)
	posts.RegisterRoutes(s.App.Group("/posts"), posts.NewService(gw, s.Cache), authMiddleware)
	social.RegisterRoutes(s.App.Group("/social"), social.NewService(gw, s.Cache), authMiddleware)
	comments.RegisterRoutes(s.App, comments.NewService(gw, s.Cache), authMiddleware)
	stream.RegisterRoutes(s.App.Group("/stream"), s.Stream)
}
