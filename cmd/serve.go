package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os/signal"
	"sync"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"

	"github.com/vantage-bio/prospect-cli/internal/model"
	"github.com/vantage-bio/prospect-cli/internal/pipeline"
	"github.com/vantage-bio/prospect-cli/internal/report"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start HTTP server for triggering pipeline runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if err := cfg.Validate("serve"); err != nil {
			return err
		}

		env, err := initPipeline(ctx)
		if err != nil {
			return err
		}

		base := optionsFromConfig(cfg.Pipeline, cfg.Scoring.Mode)
		handler := buildRouter(ctx, env, newRunState(), base, cfg.Server.WebhookSecret)

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: handler,
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			srv.Shutdown(context.Background())
		}()

		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}

// runState admits one run at a time and remembers the last completed
// summary. The pipeline is sequential and its stages share the
// extraction quota gate, so concurrent runs would starve each other.
type runState struct {
	sem    *semaphore.Weighted
	mu     sync.Mutex
	latest *model.RunSummary
}

func newRunState() *runState {
	return &runState{sem: semaphore.NewWeighted(1)}
}

func (s *runState) setLatest(summary *model.RunSummary) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.latest = summary
}

func (s *runState) getLatest() *model.RunSummary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.latest
}

// buildRouter assembles the serve endpoints. env may be nil in tests;
// the triggered-run goroutine then skips execution.
func buildRouter(ctx context.Context, env *pipelineEnv, state *runState, base pipeline.Options, secret string) http.Handler {
	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})

	r.Post("/v1/runs", func(w http.ResponseWriter, req *http.Request) {
		if secret != "" && req.Header.Get("Authorization") != "Bearer "+secret {
			http.Error(w, `{"error":"unauthorized"}`, http.StatusUnauthorized)
			return
		}

		var body struct {
			TopicKeywords   []string `json:"topic_keywords"`
			ConferenceTopic string   `json:"conference_topic"`
			BatchLimit      int      `json:"batch_limit"`
		}
		if req.ContentLength != 0 {
			if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
				http.Error(w, `{"error":"invalid request body"}`, http.StatusBadRequest)
				return
			}
		}

		opts := base
		if len(body.TopicKeywords) > 0 {
			opts.TopicKeywords = body.TopicKeywords
		}
		if body.ConferenceTopic != "" {
			opts.ConferenceTopic = body.ConferenceTopic
		}
		if body.BatchLimit > 0 {
			opts.BatchLimit = body.BatchLimit
		}

		if !state.sem.TryAcquire(1) {
			http.Error(w, `{"error":"run already in progress"}`, http.StatusConflict)
			return
		}

		requestID := uuid.NewString()

		// Run asynchronously; the server context cancels in-flight runs
		// on shutdown.
		go func() {
			defer state.sem.Release(1)
			if env == nil {
				zap.L().Warn("no pipeline configured, skipping triggered run",
					zap.String("request_id", requestID))
				return
			}
			summary, err := env.pipeline(opts).Run(ctx)
			if err != nil {
				zap.L().Error("triggered run failed",
					zap.String("request_id", requestID),
					zap.Error(err),
				)
				return
			}
			state.setLatest(summary)
			zap.L().Info("triggered run complete",
				zap.String("request_id", requestID),
				zap.String("run_id", summary.RunID),
				zap.Int("scored", summary.Counts.Scored),
			)
		}()

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusAccepted)
		json.NewEncoder(w).Encode(map[string]string{
			"status":     "accepted",
			"request_id": requestID,
		})
	})

	r.Get("/v1/runs/latest", func(w http.ResponseWriter, _ *http.Request) {
		summary := state.getLatest()
		if summary == nil {
			http.Error(w, `{"error":"no completed runs"}`, http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		report.WriteJSON(w, summary)
	})

	return r
}
