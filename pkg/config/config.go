package config

import (
	"fmt"

	"github.com/cristalhq/aconfig"
)

// Config carries every tunable the pipeline needs. It is loaded once
// in main and passed down explicitly; no other package reads the
// environment on its own.
type Config struct {
	OpenAIKey   string `env:"OPENAI_KEY" required:"true"`
	OpenAIModel string `env:"OPENAI_MODEL"`

	FromEmail   string `env:"FROM_EMAIL"`
	AppPassword string `env:"APP_PASSWORD"`
	ToEmail     string `env:"TO_EMAIL"`
	Subject     string `env:"SUBJECT" default:"📈 Daily Premarket Report"`

	// LinkSource selects where article links come from: the paginated
	// index ("index") or the subsection RSS feed ("rss").
	LinkSource string `env:"LINK_SOURCE" default:"index"`
	FeedURL    string `env:"FEED_URL"`

	// ContentFallback enables readability-based content extraction for
	// pages where the content wrapper yields no paragraphs.
	ContentFallback bool `env:"CONTENT_FALLBACK" default:"false"`

	Pages          int `env:"PAGES" default:"10"`
	WindowHours    int `env:"WINDOW_HOURS" default:"24"`
	Workers        int `env:"WORKERS" default:"10"`
	TimeoutSeconds int `env:"TIMEOUT_SECONDS" default:"10"`
}

// Load reads the configuration from environment variables and flags.
func Load() (Config, error) {
	var cfg Config

	loader := aconfig.LoaderFor(&cfg, aconfig.Config{
		// Prefix keeps the variables from colliding with other
		// programs on the host.
		EnvPrefix: "PMR",
		SkipFlags: true,
	})

	if err := loader.Load(); err != nil {
		return Config{}, fmt.Errorf("failed to load config: %w", err)
	}

	return cfg, nil
}
