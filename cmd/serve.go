package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/placelift/place-audit/internal/model"
	"github.com/placelift/place-audit/internal/pipeline"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the analysis HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		analyzer, err := initAnalyzer()
		if err != nil {
			return err
		}

		r := chi.NewRouter()
		r.Use(middleware.RealIP)
		r.Use(middleware.Recoverer)
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: cfg.Server.AllowedOrigins,
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{"Content-Type"},
		}))

		r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		})
		r.Post("/v1/analyze", handleAnalyze(analyzer))

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: r,
		}

		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			srv.Shutdown(ctx)
		}()

		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

func handleAnalyze(analyzer *pipeline.Analyzer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req model.AnalyzeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, errorBody("invalid_request", "request body is not valid JSON", nil))
			return
		}

		if fields := validateRequest(&req); len(fields) > 0 {
			writeJSON(w, http.StatusBadRequest, errorBody("invalid_request", "request validation failed", fields))
			return
		}

		out, err := analyzer.Analyze(r.Context(), req)
		switch {
		case err == nil:
		case eris.Is(err, pipeline.ErrNeedsDisambiguation):
			writeJSON(w, http.StatusUnprocessableEntity, errorBody("needs_disambiguation",
				"검색 결과로 업체를 특정할 수 없습니다. 주소나 전화번호를 함께 입력해 주세요.", nil))
			return
		case eris.Is(err, pipeline.ErrMisconfigured):
			writeJSON(w, http.StatusServiceUnavailable, errorBody("service_misconfigured",
				"local search credentials are not configured", nil))
			return
		default:
			zap.L().Error("analyze request failed", zap.Error(err))
			writeJSON(w, http.StatusInternalServerError, errorBody("upstream_failure", eris.ToString(err, false), nil))
			return
		}

		// Blocked is an observation, not an error.
		if out.Blocked != nil {
			writeJSON(w, http.StatusOK, out.Blocked)
			return
		}
		writeJSON(w, http.StatusOK, out.Response)
	}
}

// validateRequest checks request shape and fills defaulted options.
// Returns per-field messages; an empty map means the request is valid.
func validateRequest(req *model.AnalyzeRequest) map[string]string {
	fields := map[string]string{}

	switch req.Input.Mode {
	case model.ModePlaceURL:
		if req.Input.PlaceURL == "" {
			fields["input.place_url"] = "required in place_url mode"
		}
	case model.ModeBizSearch:
		if req.Input.Name == "" {
			fields["input.name"] = "required in biz_search mode"
		}
	case "":
		fields["input.mode"] = "required"
	default:
		fields["input.mode"] = "must be place_url or biz_search"
	}

	if req.Options.Plan == "" {
		req.Options.Plan = model.PlanFree
	} else if !req.Options.Plan.Valid() {
		fields["options.plan"] = "must be free or pro"
	}

	switch req.Options.Depth {
	case "":
		req.Options.Depth = model.DepthStandard
	case model.DepthStandard, model.DepthDeep:
	default:
		fields["options.depth"] = "must be standard or deep"
	}

	if req.Options.Language == "" {
		req.Options.Language = "ko"
	}

	return fields
}

func errorBody(code, message string, fields map[string]string) map[string]any {
	body := map[string]any{
		"ok":    false,
		"error": code,
	}
	if message != "" {
		body["message"] = message
	}
	if len(fields) > 0 {
		body["fields"] = fields
	}
	return body
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
