package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/voicevote/voicevote/internal/enrich"
	"github.com/voicevote/voicevote/internal/logging"
)

func main() {

	addr := flag.String("addr", ":8000", "listen address")
	model := flag.String("model", "", "generative model name")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	apiKey := os.Getenv("GENAI_API_KEY")
	if apiKey == "" {
		log.Fatal("GENAI_API_KEY is not set")
	}

	generator, err := enrich.NewGeminiGenerator(ctx, apiKey, *model)
	if err != nil {
		log.Fatalf("%v", err)
	}

	handler := enrich.NewHandler(enrich.NewService(generator), logger)

	srv := &http.Server{
		Addr:    *addr,
		Handler: handler.Routes(),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error(context.Background(), err.Error())
		}
	}()

	logger.Info(ctx, "Starting suggestion service on "+*addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("%v", err)
	}
}
