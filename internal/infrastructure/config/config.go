package config

import (
	"context"
	"fmt"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`

	// BcryptCost is the work factor for new password hashes. Raising it
	// does not invalidate existing hashes: verification reads the cost
	// stored inside each hash.
	BcryptCost int `env:"BCRYPT_COST, default=10"`

	// Token lifetimes in hours. The registration default is effectively
	// "never expires" and mirrors the original deployment.
	RegisterTokenTTL int64 `env:"REGISTER_TOKEN_TTL_HOURS, default=10000000"`
	LoginTokenTTL    int64 `env:"LOGIN_TOKEN_TTL_HOURS,    default=480"`

	// AdminRoles is the role set allowed on the privileged administration
	// routes, fixed at startup.
	AdminRoles []string `env:"ADMIN_ROLES, default=admin"`

	Mongo MongoConfig
	Redis RedisConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=identity_api"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}
