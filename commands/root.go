package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"yatube/config"
	"yatube/storage/models"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	configPath string
	envFile    string

	settings config.Config
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "yatube",
	Short: "Yatube - a small blogging platform",
	Long: `Yatube is a server-rendered blogging platform: users publish posts,
optionally with an image and a group, comment on posts and follow authors
to get a personalized feed.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load %s: %w", envFile, err)
		}

		var err error
		settings, err = config.Load(configPath)
		if err != nil {
			return err
		}
		if err := configureLogging(settings.Log); err != nil {
			return err
		}
		models.ShortStringLength = settings.Posts.ShortStringLength
		return nil
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func configureLogging(logConfig config.LogConfig) error {
	level, err := log.ParseLevel(logConfig.Level)
	if err != nil {
		return err
	}
	log.SetLevel(level)

	switch logConfig.Format {
	case "json":
		log.SetFormatter(&log.JSONFormatter{})
	case "text", "":
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	default:
		return fmt.Errorf("unknown log format %q", logConfig.Format)
	}
	return nil
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a YAML configuration file")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Environment file loaded before the configuration")
}
