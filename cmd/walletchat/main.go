package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/xxxsen/common/logger"
	"github.com/xxxsen/common/logutil"
	"github.com/xxxsen/common/webapi"
	"go.uber.org/zap"

	"github.com/nikalabs/walletchat/internal/ai"
	"github.com/nikalabs/walletchat/internal/config"
	"github.com/nikalabs/walletchat/internal/embedcache"
	"github.com/nikalabs/walletchat/internal/handler"
	"github.com/nikalabs/walletchat/internal/job"
	"github.com/nikalabs/walletchat/internal/knowledge"
	"github.com/nikalabs/walletchat/internal/middleware"
	"github.com/nikalabs/walletchat/internal/schedule"
	"github.com/nikalabs/walletchat/internal/service"
)

const (
	completionMaxTokens   = 500
	completionTemperature = 0.7
)

func main() {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "walletchat",
		Short: "walletchat support chat backend",
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run walletchat server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if configPath == "" {
				return fmt.Errorf("--config is required")
			}
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			logger.Init(
				cfg.LogConfig.File,
				cfg.LogConfig.Level,
				int(cfg.LogConfig.FileCount),
				int(cfg.LogConfig.FileSize),
				int(cfg.LogConfig.KeepDays),
				cfg.LogConfig.Console,
			)
			logutil.GetLogger(context.Background()).Info("config loaded", zap.String("config", configPath))
			return runServer(cfg)
		},
	}

	runCmd.Flags().StringVar(&configPath, "config", "", "path to config.json")
	rootCmd.AddCommand(runCmd)

	if err := rootCmd.Execute(); err != nil {
		logutil.GetLogger(context.Background()).Fatal("startup error", zap.Error(err))
	}
}

func buildAI(cfg config.AIConfig) (ai.IChatter, *embedcache.Cache, error) {
	chatters := make([]ai.ChatterEntry, 0, len(cfg.Providers))
	embedders := make([]ai.EmbedderEntry, 0, len(cfg.Providers))
	for _, pc := range cfg.Providers {
		chatProvider, err := ai.NewChatProvider(pc.Provider, pc.Data)
		if err != nil {
			return nil, nil, fmt.Errorf("init chat provider %s: %w", pc.Provider, err)
		}
		opts := ai.ChatOptions{MaxTokens: completionMaxTokens, Temperature: completionTemperature}
		chatters = append(chatters, ai.ChatterEntry{
			Name:    pc.Provider,
			Chatter: ai.NewChatter(chatProvider, cfg.ChatModel, opts),
		})

		embedProvider, err := ai.NewEmbedProvider(pc.Provider, pc.Data)
		if err != nil {
			logutil.GetLogger(context.Background()).Warn("provider has no embedding support, skipping",
				zap.String("provider", pc.Provider), zap.Error(err))
			continue
		}
		embedders = append(embedders, ai.EmbedderEntry{
			Name:     pc.Provider,
			Embedder: ai.NewEmbedder(embedProvider, cfg.EmbedModel),
		})
	}
	embedder := ai.NewGroupEmbedder(embedders)
	if embedder == nil {
		return nil, nil, fmt.Errorf("no embedding-capable ai provider configured")
	}
	return ai.NewGroupChatter(chatters), embedcache.New(embedder, embedcache.DefaultTTL), nil
}

func runServer(cfg *config.Config) error {
	logutil.GetLogger(context.Background()).Info("starting server", zap.Int("port", cfg.Port))

	chatter, cache, err := buildAI(cfg.AI)
	if err != nil {
		return err
	}

	store := knowledge.NewStore()
	retrieval := service.NewRetrievalService(cache, store)
	chatService := service.NewChatService(
		chatter,
		retrieval,
		cfg.AI.ReplyCacheSize,
		time.Duration(cfg.AI.ReplyCacheTTLHours)*time.Hour,
	)

	deps := handler.RouterDeps{
		Chat:            handler.NewChatHandler(chatService),
		Knowledge:       handler.NewKnowledgeHandler(store),
		RateLimitWindow: time.Duration(cfg.RateLimitSeconds) * time.Second,
	}

	engine, err := webapi.NewEngine(
		"/api/v1",
		fmt.Sprintf("0.0.0.0:%d", cfg.Port),
		webapi.WithRegister(func(group *gin.RouterGroup) {
			handler.RegisterRoutes(group, deps)
		}),
		webapi.WithExtraMiddlewares(
			middleware.RequestID(),
			middleware.CORS(cfg.CORSAllowlist),
			gzip.Gzip(gzip.DefaultCompression),
		),
	)
	if err != nil {
		return fmt.Errorf("init web engine: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	warm := job.NewEmbedWarmJob(cache, store)
	scheduler := schedule.NewCronScheduler()
	if err := scheduler.AddJob(warm, cfg.WarmSpec); err != nil {
		return fmt.Errorf("schedule warm job: %w", err)
	}
	scheduler.Start(ctx)
	defer scheduler.Stop()
	go func() {
		if err := warm.Run(ctx); err != nil {
			logutil.GetLogger(ctx).Warn("initial embedding warm failed", zap.Error(err))
		}
	}()

	logutil.GetLogger(context.Background()).Info("http server listening", zap.String("addr", fmt.Sprintf("0.0.0.0:%d", cfg.Port)))
	go func() {
		if err := engine.Run(); err != nil && err != http.ErrServerClosed {
			logutil.GetLogger(context.Background()).Error("server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logutil.GetLogger(context.Background()).Info("server stopping...")
	return nil
}
