package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/careerlens/internal/ai"
	"github.com/spigell/careerlens/internal/ai/gemini"
	"github.com/spigell/careerlens/internal/ai/groq"
	"github.com/spigell/careerlens/internal/cache"
	"github.com/spigell/careerlens/internal/guidance"
	"github.com/spigell/careerlens/internal/secrets"
	"github.com/spigell/careerlens/internal/server"
)

const (
	app = "careerlens"
)

type Config struct {
	Server server.Config `mapstructure:"server"`
	AI     *AIConfig     `mapstructure:"ai"`
	Cache  *CacheConfig  `mapstructure:"cache"`
}

type AIConfig struct {
	Provider     string        `mapstructure:"provider"`
	Timeout      time.Duration `mapstructure:"timeout"`
	MaxLogLength int           `mapstructure:"max-log-length"`
	Groq         *GroqConfig   `mapstructure:"groq"`
	Gemini       *GeminiConfig `mapstructure:"gemini"`
}

type GroqConfig struct {
	APIKey     string `mapstructure:"api-key"`
	APIKeyFile string `mapstructure:"api-key-file"`
	Model      string `mapstructure:"model"`
	BaseURL    string `mapstructure:"base-url"`
}

type GeminiConfig struct {
	APIKey     string `mapstructure:"api-key"`
	APIKeyFile string `mapstructure:"api-key-file"`
	Model      string `mapstructure:"model"`
}

type CacheConfig struct {
	Capacity   int           `mapstructure:"capacity"`
	MarketTTL  time.Duration `mapstructure:"market-ttl"`
	CompareTTL time.Duration `mapstructure:"compare-ttl"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "careerlens is an AI career guidance service: quizzes, market insights, learning plans and resume reviews",
	}

	envBindings = map[string]string{
		"ai.groq.api-key":   "GROQ_API_KEY",
		"ai.groq.model":     "GROQ_MODEL",
		"ai.gemini.api-key": "GEMINI_API_KEY",
		"server.host":       "HOST",
		"server.port":       "PORT",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	for key, env := range envBindings {
		if err := viper.BindEnv(key, env); err != nil {
			log.Fatalf("binding %s environment variable: %v", env, err)
		}
	}

	setDefaults()

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is careerlens.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")
	rootCmd.PersistentFlags().String("provider", "", "ai provider: groq or gemini")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
	viper.BindPFlag("ai.provider", rootCmd.PersistentFlags().Lookup("provider"))
}

func setDefaults() {
	viper.SetDefault("server.host", server.DefaultHost)
	viper.SetDefault("server.port", server.DefaultPort)
	viper.SetDefault("server.allowed-origins", []string{"*"})
	viper.SetDefault("server.read-timeout", "15s")
	viper.SetDefault("server.write-timeout", "120s")
	viper.SetDefault("server.slow-request", "20s")

	viper.SetDefault("ai.provider", groq.Provider)
	viper.SetDefault("ai.timeout", guidance.DefaultTimeout)
	viper.SetDefault("ai.max-log-length", guidance.DefaultMaxLogLength)
	viper.SetDefault("ai.groq.model", groq.DefaultModel)
	viper.SetDefault("ai.groq.base-url", groq.DefaultBaseURL)
	viper.SetDefault("ai.gemini.model", "gemini-2.5-flash")

	viper.SetDefault("cache.capacity", cache.DefaultCapacity)
	viper.SetDefault("cache.market-ttl", guidance.DefaultMarketTTL)
	viper.SetDefault("cache.compare-ttl", guidance.DefaultCompareTTL)
}

func initConfig() {
	// Config is needed only by the service commands.
	if serveCmd.CalledAs() == "" && quizCmd.CalledAs() == "" {
		return
	}

	// A missing .env is fine; the environment may be set by other means.
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Fatalf("loading .env: %v", err)
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
		viper.SetConfigType("yaml")
	}

	// The config file is optional unless given explicitly.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			log.Fatal(err)
		}
	}
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	if config == nil {
		return nil, errors.New("empty configuration")
	}
	if config.AI == nil {
		config.AI = &AIConfig{}
	}
	if config.Cache == nil {
		config.Cache = &CacheConfig{}
	}

	return config, nil
}

// redacted returns a copy of the config safe to log.
func (c Config) redacted() Config {
	if c.AI == nil {
		return c
	}

	aiCfg := *c.AI
	if aiCfg.Groq != nil {
		g := *aiCfg.Groq
		g.APIKey = secrets.Redact(g.APIKey)
		aiCfg.Groq = &g
	}
	if aiCfg.Gemini != nil {
		g := *aiCfg.Gemini
		g.APIKey = secrets.Redact(g.APIKey)
		aiCfg.Gemini = &g
	}
	c.AI = &aiCfg
	return c
}

// newGenerator builds the configured model provider.
func newGenerator(ctx context.Context, cfg *AIConfig, logger *zap.Logger) (ai.Generator, error) {
	provider := strings.TrimSpace(strings.ToLower(cfg.Provider))

	switch provider {
	case "", groq.Provider:
		c := cfg.Groq
		if c == nil {
			c = &GroqConfig{}
		}

		apiKey, err := secrets.Load(secrets.Source{
			Name:  "groq api key",
			Value: c.APIKey,
			File:  c.APIKeyFile,
			Hint:  "set GROQ_API_KEY or ai.groq.api-key-file",
		})
		if err != nil {
			return nil, err
		}

		client, err := groq.New(logger, apiKey, c.Model, c.BaseURL)
		if err != nil {
			return nil, err
		}
		return client, nil
	case gemini.Provider:
		c := cfg.Gemini
		if c == nil {
			c = &GeminiConfig{}
		}

		apiKey, err := secrets.Load(secrets.Source{
			Name:  "gemini api key",
			Value: c.APIKey,
			File:  c.APIKeyFile,
			Hint:  "set GEMINI_API_KEY or ai.gemini.api-key-file",
		})
		if err != nil {
			return nil, err
		}

		client, err := gemini.NewGenerator(ctx, apiKey, c.Model, logger)
		if err != nil {
			return nil, err
		}
		return client, nil
	default:
		return nil, fmt.Errorf("unsupported ai provider: %s", cfg.Provider)
	}
}

// newService wires the provider, cache and guidance service from config.
func newService(ctx context.Context, config *Config, logger *zap.Logger) (*guidance.Service, error) {
	generator, err := newGenerator(ctx, config.AI, logger)
	if err != nil {
		return nil, fmt.Errorf("building ai provider: %w", err)
	}

	responses := cache.New(config.Cache.Capacity)

	return guidance.New(generator, responses, logger, guidance.Config{
		Timeout:      config.AI.Timeout,
		MarketTTL:    config.Cache.MarketTTL,
		CompareTTL:   config.Cache.CompareTTL,
		MaxLogLength: config.AI.MaxLogLength,
	}), nil
}
