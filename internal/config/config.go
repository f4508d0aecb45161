package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Anthropic AnthropicConfig `yaml:"anthropic" mapstructure:"anthropic"`
	Jina      JinaConfig      `yaml:"jina" mapstructure:"jina"`
	Entrez    EntrezConfig    `yaml:"entrez" mapstructure:"entrez"`
	Pipeline  PipelineConfig  `yaml:"pipeline" mapstructure:"pipeline"`
	Scoring   ScoringConfig   `yaml:"scoring" mapstructure:"scoring"`
	Outreach  OutreachConfig  `yaml:"outreach" mapstructure:"outreach"`
	Server    ServerConfig    `yaml:"server" mapstructure:"server"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
}

// AnthropicConfig holds Anthropic API settings.
type AnthropicConfig struct {
	Key             string   `yaml:"key" mapstructure:"key"`
	PreferredModels []string `yaml:"preferred_models" mapstructure:"preferred_models"`
	MaxTokens       int64    `yaml:"max_tokens" mapstructure:"max_tokens"`
}

// JinaConfig holds Jina AI Search settings.
type JinaConfig struct {
	Key           string `yaml:"key" mapstructure:"key"`
	SearchBaseURL string `yaml:"search_base_url" mapstructure:"search_base_url"`
}

// EntrezConfig holds NCBI E-utilities settings. Email is required by
// NCBI usage policy; APIKey raises the allowed request rate.
type EntrezConfig struct {
	Email   string `yaml:"email" mapstructure:"email"`
	APIKey  string `yaml:"api_key" mapstructure:"api_key"`
	Tool    string `yaml:"tool" mapstructure:"tool"`
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
}

// PipelineConfig configures the lead generation run.
type PipelineConfig struct {
	TopicKeywords      []string `yaml:"topic_keywords" mapstructure:"topic_keywords"`
	ConferenceTopic    string   `yaml:"conference_topic" mapstructure:"conference_topic"`
	MaxCitationResults int      `yaml:"max_citation_results" mapstructure:"max_citation_results"`
	BatchLimit         int      `yaml:"batch_limit" mapstructure:"batch_limit"`
	DateFrom           int      `yaml:"date_from" mapstructure:"date_from"`
	DateTo             int      `yaml:"date_to" mapstructure:"date_to"`
}

// ScoringConfig configures how lead scores are computed.
type ScoringConfig struct {
	Mode      string `yaml:"mode" mapstructure:"mode"`
	RulesPath string `yaml:"rules_path" mapstructure:"rules_path"`
}

// OutreachConfig identifies the sender on drafted emails.
type OutreachConfig struct {
	SenderName    string `yaml:"sender_name" mapstructure:"sender_name"`
	SenderTitle   string `yaml:"sender_title" mapstructure:"sender_title"`
	SenderCompany string `yaml:"sender_company" mapstructure:"sender_company"`
	SenderContact string `yaml:"sender_contact" mapstructure:"sender_contact"`
}

// ServerConfig configures the HTTP server. An empty WebhookSecret
// disables bearer auth on the trigger endpoint.
type ServerConfig struct {
	Port          int    `yaml:"port" mapstructure:"port"`
	WebhookSecret string `yaml:"webhook_secret" mapstructure:"webhook_secret"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("PROSPECT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("server.port", 8080)
	v.SetDefault("anthropic.preferred_models", []string{
		"claude-haiku-4-5-20251001",
		"claude-sonnet-4-5-20250929",
	})
	v.SetDefault("anthropic.max_tokens", 1024)
	v.SetDefault("jina.search_base_url", "https://s.jina.ai")
	v.SetDefault("entrez.base_url", "https://eutils.ncbi.nlm.nih.gov/entrez/eutils")
	v.SetDefault("entrez.tool", "prospect-cli")
	v.SetDefault("pipeline.topic_keywords", []string{
		"Drug-Induced Liver Injury",
		"3D cell culture",
		"Organ-on-chip",
		"Hepatic spheroids",
		"Investigative Toxicology",
	})
	v.SetDefault("pipeline.conference_topic", "SOT toxicology conference speakers 2024")
	v.SetDefault("pipeline.max_citation_results", 30)
	v.SetDefault("pipeline.batch_limit", 30)
	v.SetDefault("pipeline.date_from", 2023)
	v.SetDefault("pipeline.date_to", 2025)
	v.SetDefault("scoring.mode", "additive")
	v.SetDefault("outreach.sender_name", "[Your Name]")
	v.SetDefault("outreach.sender_title", "[Your Position]")
	v.SetDefault("outreach.sender_company", "[Your Company]")
	v.SetDefault("outreach.sender_contact", "[Your Contact Info]")

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Validate checks that the configuration can support the given command
// mode. Missing required values are reported together so one failed
// startup lists everything to fix.
func (c *Config) Validate(mode string) error {
	var problems []string

	switch mode {
	case "run", "serve":
		if c.Anthropic.Key == "" {
			problems = append(problems, "anthropic.key is required")
		}
		if c.Jina.Key == "" {
			problems = append(problems, "jina.key is required")
		}
		if c.Entrez.Email == "" {
			problems = append(problems, "entrez.email is required")
		}
		if mode == "serve" && c.Server.Port <= 0 {
			problems = append(problems, "server.port must be > 0")
		}
	case "draft":
		// Drafting works offline from a saved run file.
	default:
		return eris.Errorf("config: unknown mode %q", mode)
	}

	if c.Scoring.Mode != "additive" && c.Scoring.Mode != "fallback" {
		problems = append(problems, "scoring.mode must be additive or fallback")
	}
	if c.Pipeline.MaxCitationResults < 1 || c.Pipeline.MaxCitationResults > 200 {
		problems = append(problems, "pipeline.max_citation_results must be between 1 and 200")
	}
	if c.Pipeline.BatchLimit < 1 || c.Pipeline.BatchLimit > 500 {
		problems = append(problems, "pipeline.batch_limit must be between 1 and 500")
	}
	if c.Pipeline.DateFrom > c.Pipeline.DateTo {
		problems = append(problems, "pipeline.date_from must not be after pipeline.date_to")
	}

	if len(problems) > 0 {
		return eris.Errorf("config: %s", strings.Join(problems, "; "))
	}
	return nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
