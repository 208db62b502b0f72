package cmd

import (
	"errors"
	"io/fs"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/spigell/career-companion/internal/ats"
	"github.com/spigell/career-companion/internal/intake"
)

const (
	app       = "career-companion"
	envPrefix = "CAREER_COMPANION"
)

type Config struct {
	Profile   string           `mapstructure:"profile"`
	Resume    string           `mapstructure:"resume"`
	Catalog   string           `mapstructure:"catalog"`
	Skills    []string         `mapstructure:"skills"`
	Analysis  *AnalysisConfig  `mapstructure:"analysis"`
	Jobs      *JobsConfig      `mapstructure:"jobs"`
	Templates *TemplatesConfig `mapstructure:"templates"`
	AI        *AIConfig        `mapstructure:"ai"`
}

type AnalysisConfig struct {
	ParseDelay time.Duration `mapstructure:"parse-delay"`
	ScanDelay  time.Duration `mapstructure:"scan-delay"`
}

type JobsConfig struct {
	Query            string   `mapstructure:"query"`
	Location         string   `mapstructure:"location"`
	MinimumMatch     int      `mapstructure:"minimum-match"`
	ExcludeCompanies []string `mapstructure:"exclude-companies"`
	DismissedFile    string   `mapstructure:"dismissed-file"`
}

type TemplatesConfig struct {
	File string `mapstructure:"file"`
}

type AIConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	Gemini  *GeminiConfig `mapstructure:"gemini"`
}

type GeminiConfig struct {
	APIKeyFile   string `mapstructure:"api-key-file"`
	APIKey       string `mapstructure:"api-key" json:"-"`
	Model        string `mapstructure:"model"`
	MaxRetries   int    `mapstructure:"max-retries"`
	MaxLogLength int    `mapstructure:"max-log-length"`
}

var (
	// Used for flags.
	cfgFile     string
	extraSkills []string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "career-companion matches your skills against career paths, jobs and fields and helps to polish a resume",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	initViper()

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is career-companion.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")
	rootCmd.PersistentFlags().StringArrayVar(&extraSkills, "skill", nil, "a skill to add to your skill set, can be repeated")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

// initViper sets up the environment lookups and registers every known key, so that
// AutomaticEnv can fill them on Unmarshal.
func initViper() {
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	viper.AutomaticEnv()

	if err := viper.BindEnv("ai.gemini.api-key-file", "GEMINI_API_KEY_FILE"); err != nil {
		log.Fatalf("binding GEMINI_API_KEY_FILE environment variable: %v", err)
	}
	if err := viper.BindEnv("ai.gemini.api-key", "GEMINI_API_KEY"); err != nil {
		log.Fatalf("binding GEMINI_API_KEY environment variable: %v", err)
	}

	viper.SetDefault("profile", "")
	viper.SetDefault("resume", "")
	viper.SetDefault("catalog", "")
	viper.SetDefault("skills", []string{})
	viper.SetDefault("analysis.parse-delay", intake.DefaultParseDelay)
	viper.SetDefault("analysis.scan-delay", ats.DefaultScanDelay)
	viper.SetDefault("jobs.query", "")
	viper.SetDefault("jobs.location", "")
	viper.SetDefault("jobs.minimum-match", 0)
	viper.SetDefault("jobs.exclude-companies", []string{})
	viper.SetDefault("jobs.dismissed-file", "")
	viper.SetDefault("templates.file", "")
	viper.SetDefault("ai.enabled", false)
	viper.SetDefault("ai.gemini.model", "gemini-2.5-pro")
	viper.SetDefault("ai.gemini.max-retries", 2)
	viper.SetDefault("ai.gemini.max-log-length", 200)
}

func initConfig() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Fatalf("loading .env file: %v", err)
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
		viper.SetConfigType("yaml")
	}

	// Every command works without a config file, but an explicit or broken one must parse.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return
		}
		log.Fatal(err)
	}
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	if config.Analysis == nil {
		config.Analysis = &AnalysisConfig{}
	}
	if config.Jobs == nil {
		config.Jobs = &JobsConfig{}
	}
	if config.Templates == nil {
		config.Templates = &TemplatesConfig{}
	}
	if config.AI == nil {
		config.AI = &AIConfig{}
	}
	if config.AI.Gemini == nil {
		config.AI.Gemini = &GeminiConfig{}
	}

	return config, nil
}
