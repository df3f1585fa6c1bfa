package cmd

import (
	"fmt"
	"strings"

	"lms/filestore"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Config holds the settings of one invocation.
type Config struct {
	// DBFile is the JSON file persons are loaded from and saved to
	DBFile string
	// LinksFile is the JSON file relationships are kept in
	LinksFile string
	// Storage is the in-memory backend: trie or skipmap
	Storage string
	// Codec encodes records in storage: bson or json
	Codec string

	LogLevel  string
	LogFormat string
}

func setupFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.String("db-file", filestore.DefaultPath, "file persons are stored in")
	flags.String("links-file", filestore.DefaultLinksPath, "file relationships are stored in")
	flags.String("storage", "trie", "in-memory storage backend (trie, skipmap)")
	flags.String("codec", "bson", "record encoding in storage (bson, json)")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	flags.String("log-format", "dev", "log format (dev, text, json)")
}

func loadConfig(v *viper.Viper) (Config, error) {
	cfg := Config{
		DBFile:    v.GetString("db-file"),
		LinksFile: v.GetString("links-file"),
		Storage:   v.GetString("storage"),
		Codec:     v.GetString("codec"),
		LogLevel:  v.GetString("log-level"),
		LogFormat: v.GetString("log-format"),
	}
	if cfg.DBFile == "" {
		return Config{}, fmt.Errorf("db-file can't be empty")
	}
	if cfg.LinksFile == "" {
		return Config{}, fmt.Errorf("links-file can't be empty")
	}
	return cfg, nil
}

// String returns a formatted string representation of the configuration
func (c Config) String() string {
	var sb strings.Builder

	addSection := func(title string) {
		sb.WriteString(fmt.Sprintf("%s\n", strings.ToUpper(title)))
	}

	addField := func(name, value string) {
		sb.WriteString(fmt.Sprintf("  %-12s: %s\n", name, value))
	}

	addSection("Storage")
	addField("File", c.DBFile)
	addField("Links file", c.LinksFile)
	addField("Backend", c.Storage)
	addField("Codec", c.Codec)

	addSection("Logging")
	addField("Level", c.LogLevel)
	addField("Format", c.LogFormat)

	return sb.String()
}
