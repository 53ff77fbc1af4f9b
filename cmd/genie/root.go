package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"github.com/nguyentantai21042004/transcript-genie/internal/config"
	"github.com/nguyentantai21042004/transcript-genie/internal/llm"
	"github.com/nguyentantai21042004/transcript-genie/internal/logger"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:          "genie",
	Short:        "Summarize transcripts and turn them into two-voice conversations",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "path to config.yaml")
	rootCmd.AddCommand(serveCmd, watchCmd, convertCmd)
}

// app carries the pieces every subcommand needs.
type app struct {
	cfg     *config.Config
	log     logger.Logger
	keys    []string
	limiter *rate.Limiter
}

// newApp loads configuration and credentials. A missing config file is fine,
// defaults cover everything; a present but broken one is an error.
func newApp() (*app, error) {
	_ = godotenv.Load()

	var (
		cfg *config.Config
		err error
	)
	if cfgPath != "" {
		cfg, err = config.Load(cfgPath)
		if err != nil {
			return nil, err
		}
	} else {
		cfg = &config.Config{}
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}

	if err := os.MkdirAll(cfg.Paths.Temp, 0o755); err != nil {
		return nil, fmt.Errorf("create temp dir: %w", err)
	}

	interval := time.Minute / time.Duration(cfg.Gemini.RequestsPerMin)

	return &app{
		cfg:     cfg,
		log:     logger.New(cfg.Logging.Level),
		keys:    splitKeys(os.Getenv("GEMINI_API_KEY")),
		limiter: rate.NewLimiter(rate.Every(interval), 1),
	}, nil
}

// newGenerator builds a text generator. A non-empty apiKey (from a web form)
// takes precedence over the keys in the environment.
func (a *app) newGenerator(apiKey string) llm.Generator {
	keys := a.keys
	if apiKey != "" {
		keys = []string{apiKey}
	}
	return llm.New(llm.Options{
		APIKeys:         keys,
		Model:           a.cfg.Gemini.Model,
		MaxOutputTokens: a.cfg.Gemini.MaxOutputTokens,
		Temperature:     a.cfg.Gemini.Temperature,
		Limiter:         a.limiter,
		Logger:          a.log,
	})
}

func splitKeys(raw string) []string {
	var keys []string
	for _, k := range strings.Split(raw, ",") {
		if k = strings.TrimSpace(k); k != "" {
			keys = append(keys, k)
		}
	}
	return keys
}
