package localize_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/localize"
)

func TestLoadConfig(t *testing.T) {
	t.Run("parses environment variables", func(t *testing.T) {
		t.Setenv("LOCALIZE_ENDPOINT", "https://cdn.example.com/i18n")
		t.Setenv("LOCALIZE_DEFAULT_LANGUAGE", "pl")
		t.Setenv("LOCALIZE_LANGUAGES", "en,pl,de")
		t.Setenv("LOCALIZE_FETCH_TIMEOUT", "5s")

		cfg, err := localize.LoadConfig()
		require.NoError(t, err)
		assert.Equal(t, "https://cdn.example.com/i18n", cfg.Endpoint)
		assert.Equal(t, "pl", cfg.DefaultLanguage)
		assert.Equal(t, []string{"en", "pl", "de"}, cfg.Languages)
		assert.Equal(t, 5*time.Second, cfg.FetchTimeout)
	})

	t.Run("applies defaults", func(t *testing.T) {
		t.Setenv("LOCALIZE_ENDPOINT", "https://cdn.example.com/i18n")

		cfg, err := localize.LoadConfig()
		require.NoError(t, err)
		assert.Equal(t, "en", cfg.DefaultLanguage)
		assert.Equal(t, 10*time.Second, cfg.FetchTimeout)
	})

	t.Run("requires the endpoint", func(t *testing.T) {
		t.Setenv("LOCALIZE_ENDPOINT", "")

		_, err := localize.LoadConfig()
		assert.Error(t, err)
	})
}

func TestNewFromConfig(t *testing.T) {
	t.Run("builds a localizer from config", func(t *testing.T) {
		loc, err := localize.NewFromConfig(localize.Config{
			Endpoint:        "https://cdn.example.com/i18n",
			DefaultLanguage: "en",
			Languages:       []string{"en", "pl"},
			FetchTimeout:    5 * time.Second,
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"en", "pl"}, loc.Languages())
	})

	t.Run("options override config", func(t *testing.T) {
		loc, err := localize.NewFromConfig(localize.Config{
			Endpoint:        "https://cdn.example.com/i18n",
			DefaultLanguage: "en",
		}, localize.WithDefaultLanguage("de"))
		require.NoError(t, err)
		assert.Equal(t, "de", loc.DefaultLanguage())
	})
}
