package bootstrap

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/ripixel/fitglue-diary/pkg/diary"
	derrors "github.com/ripixel/fitglue-diary/pkg/errors"
)

// EnvPrefix prefixes every environment override, e.g. DIARY_OUTPUT_CSV.
const EnvPrefix = "DIARY"

// Config holds the settings shared by all commands.
type Config struct {
	Year int

	InputEncoding diary.Encoding

	OutputCSV    string
	OutputFitDir string

	StorePath string

	TaxonomyPath   string
	TaxonomyStrict bool

	DropDayOnBadHeader bool

	LogLevel string
	LogFile  string

	// ConfigFile is the file the settings were read from, if any.
	ConfigFile string
}

// SetDefaults registers the default value of every key on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("year", diary.DefaultYear)
	v.SetDefault("input.encoding", string(diary.EncodingUTF8))
	v.SetDefault("output.csv", "fitness_data.csv")
	v.SetDefault("output.fit_dir", "")
	v.SetDefault("store.path", "workout_log.csv")
	v.SetDefault("taxonomy.path", "")
	v.SetDefault("taxonomy.strict", false)
	v.SetDefault("parser.drop_day_on_bad_header", false)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
}

// NewViper returns a viper instance with defaults and environment overrides
// configured. It does not read any file.
func NewViper() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// ReadConfigFile loads path into v, or searches the default locations when
// path is empty. A missing file in the default locations is not an error.
func ReadConfigFile(v *viper.Viper, path string) error {
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config %s: %w", path, err)
		}
		return nil
	}

	v.SetConfigName("diary")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "fitglue-diary"))
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}

// LoadConfig resolves the settings held by v and validates them.
func LoadConfig(v *viper.Viper) (*Config, error) {
	enc, err := diary.ParseEncoding(v.GetString("input.encoding"))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Year:               v.GetInt("year"),
		InputEncoding:      enc,
		OutputCSV:          v.GetString("output.csv"),
		OutputFitDir:       v.GetString("output.fit_dir"),
		StorePath:          v.GetString("store.path"),
		TaxonomyPath:       v.GetString("taxonomy.path"),
		TaxonomyStrict:     v.GetBool("taxonomy.strict"),
		DropDayOnBadHeader: v.GetBool("parser.drop_day_on_bad_header"),
		LogLevel:           v.GetString("log.level"),
		LogFile:            v.GetString("log.file"),
		ConfigFile:         v.ConfigFileUsed(),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges that viper cannot express.
func (c *Config) Validate() error {
	if c.Year < 1 || c.Year > 9999 {
		return derrors.ErrValidation.WithMessage(fmt.Sprintf("year must be between 1 and 9999, got %d", c.Year))
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.OutputCSV == "" {
		return derrors.ErrValidation.WithMessage("output.csv must not be empty")
	}
	if c.StorePath == "" {
		return derrors.ErrValidation.WithMessage("store.path must not be empty")
	}
	return nil
}
