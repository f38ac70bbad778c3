package config

import "github.com/spf13/viper"

type Config struct {
	ServerPort    string `mapstructure:"SERVER_PORT"`
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	JWTSecret     string `mapstructure:"JWT_SECRET"`

	BackendEndpoint string `mapstructure:"BACKEND_ENDPOINT"`
	BackendProject  string `mapstructure:"BACKEND_PROJECT"`
	BackendAPIKey   string `mapstructure:"BACKEND_API_KEY"`

	DatabaseID         string `mapstructure:"DATABASE_ID"`
	UsersCollection    string `mapstructure:"USERS_COLLECTION"`
	PostsCollection    string `mapstructure:"POSTS_COLLECTION"`
	FollowsCollection  string `mapstructure:"FOLLOWS_COLLECTION"`
	SavesCollection    string `mapstructure:"SAVES_COLLECTION"`
	CommentsCollection string `mapstructure:"COMMENTS_COLLECTION"`
	StorageBucket      string `mapstructure:"STORAGE_BUCKET"`
}

func Load() Config {
	viper.AutomaticEnv()
	viper.SetDefault("SERVER_PORT", ":8080")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("JWT_SECRET", "dev-secret-change-me")
	viper.SetDefault("BACKEND_ENDPOINT", "https://cloud.appwrite.io/v1")
	viper.SetDefault("BACKEND_PROJECT", "snapgram")
	viper.SetDefault("BACKEND_API_KEY", "")
	viper.SetDefault("DATABASE_ID", "snapgram")
	viper.SetDefault("USERS_COLLECTION", "users")
	viper.SetDefault("POSTS_COLLECTION", "posts")
	viper.SetDefault("FOLLOWS_COLLECTION", "follows")
	viper.SetDefault("SAVES_COLLECTION", "saves")
	viper.SetDefault("COMMENTS_COLLECTION", "comments")
	viper.SetDefault("STORAGE_BUCKET", "media")

	var cfg Config
	_ = viper.Unmarshal(&cfg)
	return cfg
}
