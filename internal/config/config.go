package config

// AppConfig holds application-level settings.
type AppConfig struct {
	LogLevel string `mapstructure:"log_level"`
}

// RedisConfig holds redis connection settings.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// RedditConfig controls the Reddit listing source.
type RedditConfig struct {
	BaseURL   string `mapstructure:"base_url"`
	UserAgent string `mapstructure:"user_agent"`
	Sort      string `mapstructure:"sort"`
}

// NitterConfig controls the Twitter drama source via a Nitter instance.
type NitterConfig struct {
	BaseURL string `mapstructure:"base_url"`
	Query   string `mapstructure:"query"`
}

// DataSources groups available content providers.
type DataSources struct {
	Reddit RedditConfig `mapstructure:"reddit"`
	Nitter NitterConfig `mapstructure:"nitter"`
}

// OpenAIConfig controls LLM-backed generation and persona voice rewriting.
type OpenAIConfig struct {
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
	BaseURL string `mapstructure:"base_url"`
}

// GiphyConfig controls GIF enrichment. The API key is required for the serve
// command; its absence is a startup configuration error.
type GiphyConfig struct {
	APIKey  string `mapstructure:"api_key"`
	BaseURL string `mapstructure:"base_url"`
}

// WikipediaConfig controls entity image enrichment.
type WikipediaConfig struct {
	BaseURL string `mapstructure:"base_url"`
}

// EnrichmentConfig tunes enrichment behavior.
type EnrichmentConfig struct {
	Mode          string `mapstructure:"mode"`           // full or minimal
	LookupTimeout string `mapstructure:"lookup_timeout"` // duration string, e.g. "3s"
	GIFCacheTTL   string `mapstructure:"gif_cache_ttl"`  // duration string; "0" keeps entries forever
}

// OutputConfig selects the story sink.
type OutputConfig struct {
	Mode string `mapstructure:"mode"` // redis, file, or dual
	Dir  string `mapstructure:"dir"`
}

// IngestConfig is the preset used by the scheduled trigger and as defaults
// for ad-hoc jobs.
type IngestConfig struct {
	Subreddits        []string `mapstructure:"subreddits"`
	LimitPerSubreddit int      `mapstructure:"limit_per_subreddit"`
	MinViralScore     float64  `mapstructure:"min_viral_score"`
	MaxAgeHours       int      `mapstructure:"max_age_hours"`
	AutoPublish       bool     `mapstructure:"auto_publish"`
	Schedule          string   `mapstructure:"schedule"`   // duration string between scheduled runs; empty disables
	ItemDelay         string   `mapstructure:"item_delay"` // courtesy delay between items
}

// ServerConfig holds the HTTP API settings.
type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

// Config is the top-level configuration structure.
type Config struct {
	App        AppConfig        `mapstructure:"app"`
	Redis      RedisConfig      `mapstructure:"redis"`
	Sources    DataSources      `mapstructure:"sources"`
	OpenAI     OpenAIConfig     `mapstructure:"openai"`
	Giphy      GiphyConfig      `mapstructure:"giphy"`
	Wikipedia  WikipediaConfig  `mapstructure:"wikipedia"`
	Enrichment EnrichmentConfig `mapstructure:"enrichment"`
	Output     OutputConfig     `mapstructure:"output"`
	Ingest     IngestConfig     `mapstructure:"ingest"`
	Server     ServerConfig     `mapstructure:"server"`
}

// FillDefaults applies default values if not provided.
func (c *Config) FillDefaults() {
	if c.App.LogLevel == "" {
		c.App.LogLevel = "info"
	}
	if c.Redis.Addr == "" {
		c.Redis.Addr = "127.0.0.1:6379"
	}
	if c.Sources.Reddit.BaseURL == "" {
		c.Sources.Reddit.BaseURL = "https://www.reddit.com"
	}
	if c.Sources.Reddit.UserAgent == "" {
		c.Sources.Reddit.UserAgent = "threadjuice-ingest/1.0"
	}
	if c.Sources.Reddit.Sort == "" {
		c.Sources.Reddit.Sort = "hot"
	}
	if c.Sources.Nitter.BaseURL == "" {
		c.Sources.Nitter.BaseURL = "https://nitter.net"
	}
	if c.Enrichment.Mode == "" {
		c.Enrichment.Mode = "full"
	}
	if c.Enrichment.LookupTimeout == "" {
		c.Enrichment.LookupTimeout = "3s"
	}
	if c.Enrichment.GIFCacheTTL == "" {
		c.Enrichment.GIFCacheTTL = "1h"
	}
	if c.Output.Mode == "" {
		c.Output.Mode = "redis"
	}
	if c.Output.Dir == "" {
		c.Output.Dir = "./out/stories"
	}
	if len(c.Ingest.Subreddits) == 0 {
		c.Ingest.Subreddits = []string{"tifu", "AmItheAsshole", "MaliciousCompliance"}
	}
	if c.Ingest.LimitPerSubreddit == 0 {
		c.Ingest.LimitPerSubreddit = 5
	}
	if c.Ingest.MinViralScore == 0 {
		c.Ingest.MinViralScore = 3
	}
	if c.Ingest.MaxAgeHours == 0 {
		c.Ingest.MaxAgeHours = 48
	}
	if c.Ingest.ItemDelay == "" {
		c.Ingest.ItemDelay = "2s"
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":8080"
	}
}
