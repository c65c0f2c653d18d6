package cli

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem/llm/gemini"
	"github.com/mekorot/linker/pkg/cli/config"
	controller "github.com/mekorot/linker/pkg/controller/http"
	"github.com/mekorot/linker/pkg/domain/interfaces"
	"github.com/mekorot/linker/pkg/domain/model"
	"github.com/mekorot/linker/pkg/infra/gcs"
	"github.com/mekorot/linker/pkg/infra/recognizer"
	"github.com/mekorot/linker/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func cmdServe() *cli.Command {
	var (
		serverCfg config.Server
		modelsCfg config.Models
		geminiCfg config.Gemini
	)

	flags := append(serverCfg.Flags(), modelsCfg.Flags()...)
	flags = append(flags, geminiCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start the entity recognition HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			logger.Info("Starting linker server",
				slog.String("addr", serverCfg.Addr),
				slog.String("model_config", modelsCfg.Path),
			)

			modelCfg, err := modelsCfg.Load()
			if err != nil {
				return err
			}

			models, err := buildModels(ctx, modelCfg, &geminiCfg)
			if err != nil {
				return err
			}

			linkerUC := usecase.NewLinker(models)

			server, err := controller.NewServer(
				ctx,
				linkerUC,
				controller.WithAddr(serverCfg.Addr),
			)
			if err != nil {
				return goerr.Wrap(err, "failed to create HTTP server")
			}

			// Start server in goroutine
			go func() {
				logger.Info("HTTP server starting", slog.String("addr", serverCfg.Addr))
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					logger.Error("HTTP server error", slog.Any("error", err))
				}
			}()

			// Wait for interrupt signal
			sigChan := make(chan os.Signal, 1)
			signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

			select {
			case <-ctx.Done():
				logger.Info("Context cancelled, shutting down...")
			case sig := <-sigChan:
				logger.Info("Signal received, shutting down...", slog.Any("signal", sig))
			}

			// Graceful shutdown
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()

			if err := server.Shutdown(shutdownCtx); err != nil {
				return goerr.Wrap(err, "failed to shutdown server gracefully")
			}

			logger.Info("Server shutdown complete")
			return nil
		},
	}
}

// buildModels constructs the recognizer registry declared by the model
// configuration, creating the GCS and LLM clients only when some model
// actually needs them
func buildModels(ctx context.Context, modelCfg *config.ModelConfig, geminiCfg *config.Gemini) (map[model.ModelType]map[string]interfaces.Recognizer, error) {
	logger := ctxlog.From(ctx)

	var deps recognizer.Deps

	if modelCfg.NeedsObjectStore() {
		store, err := gcs.NewClient(ctx)
		if err != nil {
			return nil, err
		}
		deps.Store = store
	}

	if modelCfg.NeedsLLM() {
		if geminiCfg.ProjectID == "" {
			return nil, goerr.New("llm models require --gemini-project-id")
		}
		llmClient, err := gemini.New(ctx, geminiCfg.Location, geminiCfg.ProjectID,
			gemini.WithModel(geminiCfg.Model),
		)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to create Gemini client")
		}
		deps.LLM = llmClient
	}

	models := map[model.ModelType]map[string]interfaces.Recognizer{}
	for _, spec := range modelCfg.Models {
		rec, err := recognizer.New(ctx, recognizer.Arch(spec.Arch), spec.Path, deps)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to create recognizer",
				goerr.V("type", spec.Type), goerr.V("lang", spec.Lang))
		}

		modelType := model.ModelType(spec.Type)
		if models[modelType] == nil {
			models[modelType] = map[string]interfaces.Recognizer{}
		}
		models[modelType][spec.Lang] = rec

		logger.Info("Registered model",
			slog.String("type", spec.Type),
			slog.String("lang", spec.Lang),
			slog.String("arch", spec.Arch),
		)
	}

	return models, nil
}
