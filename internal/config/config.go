package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Env            string        `mapstructure:"ENV"`
	Port           string        `mapstructure:"PORT"`
	AirtableAPIKey string        `mapstructure:"AIRTABLE_API_KEY"`
	AirtableBaseID string        `mapstructure:"AIRTABLE_BASE_ID"`
	AirtableURL    string        `mapstructure:"AIRTABLE_URL"`
	TicketsTable   string        `mapstructure:"TICKETS_TABLE"`
	TracingTable   string        `mapstructure:"TRACING_TABLE"`
	NominatimURL   string        `mapstructure:"NOMINATIM_URL"`
	NominatimAgent string        `mapstructure:"NOMINATIM_USER_AGENT"`
	CORSAllowed    string        `mapstructure:"CORS_ALLOWED_ORIGINS"`
	RequestTimeout time.Duration `mapstructure:"REQUEST_TIMEOUT"`
	LogLevel       string        `mapstructure:"LOG_LEVEL"`
}

func Load() (Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	_ = v.ReadInConfig()

	v.SetDefault("ENV", "dev")
	v.SetDefault("PORT", "3000")
	v.SetDefault("TICKETS_TABLE", "tcr")
	v.SetDefault("TRACING_TABLE", "tracing")
	v.SetDefault("REQUEST_TIMEOUT", "10s")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("NOMINATIM_USER_AGENT", "tcr-freight-backend")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
