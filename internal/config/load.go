package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable read by Load.
const EnvPrefix = "SCRY"

// Default values applied before any file, environment or flag source.
const (
	DefaultModelName      = "gemini-2.5-flash"
	DefaultAPIVersion     = "v1beta"
	DefaultRequestTimeout = 60 * time.Second
	DefaultQuestionCount  = 5
	DefaultTopic          = "general knowledge"
	DefaultAskPrompt      = "How does AI work in few words?"
	DefaultLogLevel       = "info"
	DefaultRetryMaxDelay  = 30 * time.Second
)

// flagKeys maps flag names registered by RegisterFlags to configuration keys.
var flagKeys = map[string]string{
	"topic":     "quiz.topic",
	"count":     "quiz.question_count",
	"model":     "llm.model_name",
	"log-level": "log.level",
	"log-file":  "log.file",
}

// RegisterFlags adds the command line flags understood by Load to fs.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String("config", "", "path to a config file (default: ./config.yaml or ~/.scry-trivia/config.yaml)")
	fs.String("topic", DefaultTopic, "topic for generated trivia questions")
	fs.Int("count", DefaultQuestionCount, "number of questions per quiz")
	fs.String("model", DefaultModelName, "Gemini model name")
	fs.String("log-level", DefaultLogLevel, "log level (debug, info, warn, error)")
	fs.String("log-file", "", "file to write logs to")
}

// Load configuration from defaults, an optional config file, environment
// variables and command line flags, in increasing order of precedence.
// flags may be nil. Returns a populated Config struct or an error if
// loading/validation fails.
func Load(flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	// Config file
	configFile := ""
	if flags != nil {
		if f := flags.Lookup("config"); f != nil {
			configFile = f.Value.String()
		}
	}
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".scry-trivia"))
		}
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Environment variables: SCRY_LLM_MODEL_NAME, SCRY_QUIZ_RETRY_MAX_ATTEMPTS, ...
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("llm.gemini_api_key", EnvPrefix+"_LLM_GEMINI_API_KEY", "GEMINI_API_KEY"); err != nil {
		return nil, fmt.Errorf("failed to bind api key environment: %w", err)
	}

	// Flags
	if flags != nil {
		for name, key := range flagKeys {
			f := flags.Lookup(name)
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("failed to bind flag %q: %w", name, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.Log.File == "" {
		cfg.Log.File = filepath.Join(os.TempDir(), "scry-trivia.log")
	}

	validate := validator.New()
	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("llm.gemini_api_key", "")
	v.SetDefault("llm.model_name", DefaultModelName)
	v.SetDefault("llm.base_url", "")
	v.SetDefault("llm.api_version", DefaultAPIVersion)
	v.SetDefault("llm.request_timeout", DefaultRequestTimeout)

	v.SetDefault("quiz.question_count", DefaultQuestionCount)
	v.SetDefault("quiz.topic", DefaultTopic)
	v.SetDefault("quiz.prompt_template_path", "")
	v.SetDefault("quiz.retry.max_attempts", 0)
	v.SetDefault("quiz.retry.base_delay", time.Duration(0))
	v.SetDefault("quiz.retry.max_delay", DefaultRetryMaxDelay)

	v.SetDefault("ask.prompt", DefaultAskPrompt)

	v.SetDefault("log.level", DefaultLogLevel)
	v.SetDefault("log.file", "")
}
