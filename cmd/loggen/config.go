package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/wayneeseguin/loggen/internal/logging"
	"github.com/wayneeseguin/loggen/pkg/backends"
	"github.com/wayneeseguin/loggen/pkg/clock"
	"github.com/wayneeseguin/loggen/pkg/generator"
	"github.com/wayneeseguin/loggen/pkg/notify"
	"github.com/wayneeseguin/loggen/pkg/rotation"
)

const startTimeLayout = "2006-01-02 15:04:05"

// appConfig is the merged configuration of defaults, config file,
// LOGGEN_* environment variables and flags, in increasing priority.
type appConfig struct {
	OutputDir     string `mapstructure:"output-dir"`
	StartTime     string `mapstructure:"start-time"`
	Codec         string `mapstructure:"codec"`
	Seed          int64  `mapstructure:"seed"`
	Deterministic bool   `mapstructure:"deterministic"`
	NoReset       bool   `mapstructure:"no-reset"`
	LogLevel      string `mapstructure:"log-level"`
	BufferSize    int    `mapstructure:"buffer-size"`
	NATSURL       string `mapstructure:"nats-url"`
	NATSSubject   string `mapstructure:"nats-subject"`
	ConfigPath    string `mapstructure:"-"`

	start time.Time
	codec rotation.Codec
	level int
}

func newFlagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("loggen", pflag.ContinueOnError)
	fs.SortFlags = false
	fs.String("config", "", "config file (default is $HOME/.config/loggen/config.yml)")
	fs.StringP("output-dir", "o", generator.DefaultOutputDir, "directory receiving the generated files")
	fs.String("start-time", clock.DefaultStart.Format(startTimeLayout), "timestamp of the first record")
	fs.String("codec", rotation.CodecGzip.String(), "compression codec for old rotations (gzip|zstd)")
	fs.Int64("seed", 0, "random seed (0 seeds from the clock)")
	fs.Bool("deterministic", false, "use fixed field values for every record")
	fs.Bool("no-reset", false, "keep existing output directory contents")
	fs.String("log-level", "info", "log level (trace|debug|info|warn|error)")
	fs.Int("buffer-size", backends.DefaultBufferSize, "write buffer size in bytes")
	fs.String("nats-url", "", "publish run events to this NATS server")
	fs.String("nats-subject", notify.DefaultSubject, "NATS subject for run events")
	fs.BoolP("help", "h", false, "show this help")
	fs.Bool("version", false, "print version information")
	return fs
}

func loadConfig(fs *pflag.FlagSet) (appConfig, error) {
	var cfg appConfig

	v := viper.New()
	v.SetEnvPrefix("LOGGEN")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(fs); err != nil {
		return cfg, err
	}

	configPath, _ := fs.GetString("config")
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else if home, err := os.UserHomeDir(); err == nil {
		v.SetConfigFile(filepath.Join(home, ".config", "loggen", "config.yml"))
	}

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFound viper.ConfigFileNotFoundError
		missing := errors.As(err, &configFileNotFound) || os.IsNotExist(err)
		if !missing || configPath != "" {
			return cfg, fmt.Errorf("reading config: %w", err)
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("decoding config: %w", err)
	}
	cfg.ConfigPath = v.ConfigFileUsed()

	return cfg, cfg.validate()
}

func (c *appConfig) validate() error {
	start, err := time.Parse(startTimeLayout, c.StartTime)
	if err != nil {
		return generator.ErrArgument("invalid start-time %q, expected %s", c.StartTime, startTimeLayout)
	}
	c.start = start

	codec, err := rotation.ParseCodec(c.Codec)
	if err != nil {
		return generator.ErrArgument("invalid codec %q", c.Codec)
	}
	c.codec = codec

	if c.BufferSize <= 0 {
		return generator.ErrArgument("invalid buffer-size: %d", c.BufferSize)
	}

	if strings.HasPrefix(c.OutputDir, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			c.OutputDir = filepath.Join(home, c.OutputDir[2:])
		}
	}

	c.level = logging.ParseLevel(c.LogLevel)
	return nil
}

// options converts the configuration into generator options.
func (c appConfig) options() []generator.Option {
	opts := []generator.Option{
		generator.WithOutputDir(c.OutputDir),
		generator.WithStartTime(c.start),
		generator.WithCodec(c.codec),
		generator.WithBufferSize(c.BufferSize),
		generator.WithResetDir(!c.NoReset),
	}
	if c.Deterministic {
		opts = append(opts, generator.WithDeterministic())
	} else {
		opts = append(opts, generator.WithSeed(c.Seed))
	}
	return opts
}
