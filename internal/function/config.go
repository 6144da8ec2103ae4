package function

import (
	"errors"
	"os"

	"github.com/spf13/viper"
)

// Config is built once at process start. Missing credentials fail here,
// before the first request is served, not inside it.
type Config struct {
	MongoURI   string
	APIKey     string
	DataAPIURL string
	DataSource string
	Database   string
	Collection string
}

// LoadConfig reads credentials from the environment and collection
// coordinates from viper, with the historical defaults.
func LoadConfig() (Config, error) {
	cfg := Config{
		MongoURI:   os.Getenv("MONGODB_URI"),
		APIKey:     os.Getenv("MONGODB_API_KEY"),
		DataAPIURL: os.Getenv("MONGODB_DATA_API_URL"),
		DataSource: viper.GetString("mongo.data_source"),
		Database:   viper.GetString("mongo.database"),
		Collection: viper.GetString("mongo.collection"),
	}

	if cfg.DataSource == "" {
		cfg.DataSource = "Cluster0"
	}
	if cfg.Database == "" {
		cfg.Database = "orderflow"
	}
	if cfg.Collection == "" {
		cfg.Collection = "orders"
	}

	return cfg, cfg.validate()
}

func (c Config) validate() error {
	if c.MongoURI == "" || c.APIKey == "" || c.DataAPIURL == "" {
		return errors.New("MongoDB Data API credentials not configured")
	}

	return nil
}
