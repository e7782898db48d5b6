package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/at-ishikawa/wordtutor/internal/bootstrap"
	"github.com/at-ishikawa/wordtutor/internal/config"
	"github.com/at-ishikawa/wordtutor/internal/dictionary"
	"github.com/at-ishikawa/wordtutor/internal/evaluation"
	"github.com/at-ishikawa/wordtutor/internal/inference/openai"
	"github.com/at-ishikawa/wordtutor/internal/server"
	"github.com/at-ishikawa/wordtutor/internal/wordlist"
)

var configFile string

func main() {
	rootCmd := &cobra.Command{
		Use:           "wordtutor-server",
		Short:         "Vocabulary practice evaluation HTTP server",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context())
		},
	}
	rootCmd.Flags().StringVar(&configFile, "config", "", "config file path")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	app := bootstrap.New()

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loadConfig() > %w", err)
	}

	service := newEvaluationService(app, cfg)
	handler, err := server.NewPracticeHandler(service, newDictionaryReader(cfg), loadWordlist(cfg))
	if err != nil {
		return fmt.Errorf("server.NewPracticeHandler() > %w", err)
	}
	mux := server.NewMux(handler)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: corsMiddleware(h2c.NewHandler(mux, &http2.Server{}), cfg.Server.CORS.AllowedOrigins),
	}
	app.AddShutdownHook("http server", srv.Shutdown)

	return app.Run(ctx, func(ctx context.Context) error {
		slog.Default().Info("Starting server", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
}

func loadConfig() (*config.Config, error) {
	loader, err := config.NewConfigLoader(configFile)
	if err != nil {
		return nil, fmt.Errorf("config.NewConfigLoader() > %w", err)
	}
	return loader.Load()
}

// newEvaluationService returns an offline-only service when no OpenAI API key
// is configured.
func newEvaluationService(app *bootstrap.App, cfg *config.Config) *evaluation.Service {
	if cfg.OpenAI.APIKey == "" {
		slog.Default().Info("OPENAI_API_KEY is not set, evaluating offline only")
		return evaluation.NewService(nil)
	}
	client := openai.NewClient(cfg.OpenAI.APIKey, cfg.OpenAI.Model)
	slog.Default().Info("evaluating with OpenAI", "model", client.GetModel())
	app.AddShutdownHook("openai client", func(ctx context.Context) error {
		return client.Close()
	})
	return evaluation.NewService(client)
}

func newDictionaryReader(cfg *config.Config) server.DefinitionLookup {
	dictionaryConfig := dictionary.Config{
		RapidAPIHost: cfg.Dictionaries.RapidAPI.Host,
		RapidAPIKey:  cfg.Dictionaries.RapidAPI.Key,
	}
	if !dictionaryConfig.Configured() {
		return nil
	}
	return dictionary.NewReader(cfg.Dictionaries.RapidAPI.CacheDirectory, dictionaryConfig)
}

func loadWordlist(cfg *config.Config) *wordlist.List {
	if cfg.Wordlist.Path == "" {
		return nil
	}
	words, err := wordlist.Load(cfg.Wordlist.Path)
	if err != nil {
		slog.Default().Warn("failed to load word list", "path", cfg.Wordlist.Path, "error", err)
		return nil
	}
	return words
}

func corsMiddleware(next http.Handler, allowedOrigins []string) http.Handler {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = true
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if allowed[origin] {
			w.Header().Set("Access-Control-Allow-Origin", origin)
		}
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		w.Header().Set("Access-Control-Max-Age", "3600")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}
