package cmd

import (
	"errors"
	"log"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/mentor-match/internal/chat"
	"github.com/spigell/mentor-match/internal/logger"
	"github.com/spigell/mentor-match/internal/server"
)

const (
	app = "mentor-match"

	defaultArtifactDir = "model"
)

type Config struct {
	ArtifactDir string         `mapstructure:"artifact-dir"`
	SeedFile    string         `mapstructure:"seed-file"`
	Server      *server.Config `mapstructure:"server"`
	Chat        *ChatConfig    `mapstructure:"chat"`
}

type ChatConfig struct {
	Fallback string            `mapstructure:"fallback"`
	Rules    []chat.RuleConfig `mapstructure:"rules"`
}

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   app,
		Short: "mentor-match recommends a career and a mentor for a skills profile",
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	if err := viper.BindEnv("server.token-file", "MENTOR_MATCH_TOKEN_FILE"); err != nil {
		log.Fatalf("binding MENTOR_MATCH_TOKEN_FILE environment variable: %v", err)
	}

	viper.SetDefault("artifact-dir", defaultArtifactDir)

	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "a config file (default is mentor-match.yaml in current directory)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")
	rootCmd.PersistentFlags().String("artifact-dir", defaultArtifactDir, "directory holding the built catalog")

	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
	viper.BindPFlag("artifact-dir", rootCmd.PersistentFlags().Lookup("artifact-dir"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigName(app)
		viper.SetConfigType("yaml")
	}

	// Every setting has a default, so only an explicitly requested or broken config is fatal.
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			log.Fatal(err)
		}
	}
}

func getConfig() (*Config, error) {
	var config *Config
	err := viper.Unmarshal(&config)
	if err != nil {
		return config, err
	}

	if config.Server == nil {
		config.Server = &server.Config{}
	}
	if config.Chat == nil {
		config.Chat = &ChatConfig{}
	}

	return config, nil
}

// setup builds a logger writing to output and reads the config, exiting on failure.
func setup(output string) (*zap.Logger, *Config) {
	logger, err := logger.New(logger.Options{
		JSON:   viper.GetBool("json"),
		Debug:  viper.GetBool("debug"),
		Output: output,
	})
	if err != nil {
		log.Fatalf("creating a logger: %s", err)
	}

	config, err := getConfig()
	if err != nil {
		logger.Fatal("getting a config", zap.Error(err))
	}

	return logger, config
}

func newResponder(config *ChatConfig) (*chat.Responder, error) {
	if config == nil || len(config.Rules) == 0 {
		fallback := chat.DefaultFallback
		if config != nil && config.Fallback != "" {
			fallback = config.Fallback
		}
		return chat.New(chat.DefaultRules(), fallback), nil
	}

	rules, err := chat.FromConfig(config.Rules)
	if err != nil {
		return nil, err
	}

	return chat.New(rules, config.Fallback), nil
}
