package config

import "github.com/ilyakaznacheev/cleanenv"

type Config struct {
	DBDriver   string `env:"DB_DRIVER" env-default:"mysql"`
	DBHost     string `env:"DB_HOST" env-default:"localhost"`
	DBPort     string `env:"DB_PORT" env-default:"3306"`
	DBUser     string `env:"DB_USER" env-default:"projectuser"`
	DBPassword string `env:"DB_PASSWORD" env-default:"projectpassword"`
	DBName     string `env:"DB_NAME" env-default:"project_management"`

	RedisHost     string `env:"REDIS_HOST" env-default:"localhost"`
	RedisPort     string `env:"REDIS_PORT" env-default:"6379"`
	SessionSecret string `env:"SESSION_SECRET" env-default:"default-secret-key-change-me"`

	GinMode string `env:"GIN_MODE" env-default:"debug"`

	OpenAIAPIKey  string `env:"OPENAI_API_KEY" env-default:""`
	OpenAIBaseURL string `env:"OPENAI_BASE_URL" env-default:""`

	// Seeded administrator account. Seeding is skipped when the email is
	// empty.
	AdminEmail    string `env:"ADMIN_EMAIL" env-default:"admin@example.com"`
	AdminPassword string `env:"ADMIN_PASSWORD" env-default:"changeme"`
}

// Load reads configuration from the environment.
func Load() (*Config, error) {
	cfg := new(Config)
	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
