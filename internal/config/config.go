package config

import (
	"fmt"
	"log"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	DBDriver   string `validate:"oneof=postgres sqlite"`
	DBHost     string
	DBPort     int
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	DBPath     string

	LLMProvider    string  `validate:"oneof=anthropic openai ollama"`
	LLMModel       string  `validate:"required"`
	LLMAPIKey      string  `validate:"required_unless=LLMProvider ollama"`
	LLMBaseURL     string
	LLMMaxTokens   int     `validate:"gt=0"`
	LLMTemperature float32 `validate:"gte=0,lte=2"`

	Addr           string `validate:"required"`
	AllowedOrigins []string

	JWTSecret         string
	OwnerPasswordHash string

	PostHogKey      string
	PostHogEndpoint string
}

var validate = validator.New()

// Load reads .env, an optional config file and the environment.
// cfgFile may be empty.
func Load(cfgFile string) (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	bindEnv(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", cfgFile, err)
		}
		log.Println("Using config file:", v.ConfigFileUsed())
	}

	provider := strings.ToLower(v.GetString("llm.provider"))

	cfg := &Config{
		DBDriver:   v.GetString("db.driver"),
		DBHost:     v.GetString("db.host"),
		DBPort:     v.GetInt("db.port"),
		DBUser:     v.GetString("db.user"),
		DBPassword: v.GetString("db.password"),
		DBName:     v.GetString("db.name"),
		DBSSLMode:  v.GetString("db.sslmode"),
		DBPath:     v.GetString("db.path"),

		LLMProvider:    provider,
		LLMModel:       v.GetString("llm.model"),
		LLMAPIKey:      apiKeyFor(v, provider),
		LLMBaseURL:     v.GetString("llm.base_url"),
		LLMMaxTokens:   v.GetInt("llm.max_tokens"),
		LLMTemperature: float32(v.GetFloat64("llm.temperature")),

		Addr:           v.GetString("server.addr"),
		AllowedOrigins: splitList(v.GetStringSlice("server.allowed_origins")),

		JWTSecret:         v.GetString("auth.jwt_secret"),
		OwnerPasswordHash: v.GetString("auth.owner_password_hash"),

		PostHogKey:      v.GetString("analytics.posthog_key"),
		PostHogEndpoint: v.GetString("analytics.posthog_endpoint"),
	}

	if cfg.LLMModel == "" {
		cfg.LLMModel = defaultModels[provider]
	}

	// the API key is only needed once a chat model is built, see ValidateLLM
	if err := validate.StructExcept(cfg, "LLMAPIKey"); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// ValidateLLM checks the settings needed to talk to the completion service.
func (c *Config) ValidateLLM() error {
	if err := validate.StructPartial(c, "LLMAPIKey"); err != nil {
		return fmt.Errorf("invalid config: %s API key is required: %w", c.LLMProvider, err)
	}
	return nil
}

func (c *Config) ConnString() string {
	if c.DBDriver == "sqlite" {
		return c.DBPath
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode,
	)
}

var defaultModels = map[string]string{
	"anthropic": "claude-3-haiku-20240307",
	"openai":    "gpt-4o-mini",
	"ollama":    "llama3.1",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("db.driver", "postgres")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.path", "tasks.db")

	v.SetDefault("llm.provider", "anthropic")
	v.SetDefault("llm.max_tokens", 300)
	v.SetDefault("llm.temperature", 0.3)

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.allowed_origins", []string{"*"})
}

// bindEnv keeps the plain variable names the deployment already uses
// (DB_HOST, OPENAI_API_KEY, ...) next to the APP_ prefixed ones.
func bindEnv(v *viper.Viper) {
	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	pairs := map[string]string{
		"db.driver":                "DB_DRIVER",
		"db.host":                  "DB_HOST",
		"db.port":                  "DB_PORT",
		"db.user":                  "DB_USER",
		"db.password":              "DB_PASSWORD",
		"db.name":                  "DB_NAME",
		"db.sslmode":               "DB_SSLMODE",
		"db.path":                  "DB_PATH",
		"llm.provider":             "LLM_PROVIDER",
		"llm.model":                "LLM_MODEL",
		"llm.base_url":             "LLM_BASE_URL",
		"server.addr":              "ADDR",
		"server.allowed_origins":   "ALLOWED_ORIGINS",
		"auth.jwt_secret":          "JWT_SECRET",
		"auth.owner_password_hash": "OWNER_PASSWORD_HASH",
		"analytics.posthog_key":    "POSTHOG_KEY",
	}
	for key, env := range pairs {
		_ = v.BindEnv(key, "APP_"+strings.ToUpper(strings.ReplaceAll(key, ".", "_")), env)
	}
	_ = v.BindEnv("llm.anthropic_api_key", "ANTHROPIC_API_KEY")
	_ = v.BindEnv("llm.openai_api_key", "OPENAI_API_KEY")
}

func apiKeyFor(v *viper.Viper, provider string) string {
	if k := v.GetString("llm.api_key"); k != "" {
		return k
	}
	switch provider {
	case "anthropic":
		return v.GetString("llm.anthropic_api_key")
	case "openai":
		return v.GetString("llm.openai_api_key")
	}
	return ""
}

// splitList accepts both YAML lists and a comma separated env value.
func splitList(in []string) []string {
	var out []string
	for _, s := range in {
		for _, part := range strings.Split(s, ",") {
			if p := strings.TrimSpace(part); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}
