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

	"github.com/docchat/docchat/internal/ai"
	"github.com/docchat/docchat/internal/config"
	"github.com/docchat/docchat/internal/handler"
	"github.com/docchat/docchat/internal/indexstore"
	"github.com/docchat/docchat/internal/middleware"
	"github.com/docchat/docchat/internal/pkg/jwt"
	"github.com/docchat/docchat/internal/prompt"
	"github.com/docchat/docchat/internal/qa"
	"github.com/docchat/docchat/internal/session"
	"github.com/docchat/docchat/internal/vectorindex"
)

func main() {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "docchat",
		Short: "document question answering backend",
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config.json")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run docchat server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			return runServer(cfg)
		},
	}

	var tokenUser, tokenEmail string
	tokenCmd := &cobra.Command{
		Use:   "token",
		Short: "mint a caller jwt for testing",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			if tokenUser == "" {
				return fmt.Errorf("--user is required")
			}
			ttl := time.Hour * time.Duration(cfg.JWTTTLHours)
			token, err := jwt.GenerateToken(tokenUser, tokenEmail, []byte(cfg.JWTSecret), ttl)
			if err != nil {
				return err
			}
			fmt.Println(token)
			return nil
		},
	}
	tokenCmd.Flags().StringVar(&tokenUser, "user", "", "user id to embed in the token")
	tokenCmd.Flags().StringVar(&tokenEmail, "email", "", "optional email claim")

	var uploadOwner, uploadDoc, uploadArtifact string
	indexUploadCmd := &cobra.Command{
		Use:   "upload",
		Short: "push a prebuilt index artifact into the index store",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			if uploadOwner == "" || uploadDoc == "" || uploadArtifact == "" {
				return fmt.Errorf("--owner, --document and --artifact are required")
			}
			return uploadIndex(cfg, uploadOwner, uploadDoc, uploadArtifact)
		},
	}
	indexUploadCmd.Flags().StringVar(&uploadOwner, "owner", "", "owner id")
	indexUploadCmd.Flags().StringVar(&uploadDoc, "document", "", "document name")
	indexUploadCmd.Flags().StringVar(&uploadArtifact, "artifact", "", "path to index artifact json")

	indexCmd := &cobra.Command{
		Use:   "index",
		Short: "index artifact operations",
	}
	indexCmd.AddCommand(indexUploadCmd)

	rootCmd.AddCommand(runCmd, tokenCmd, indexCmd)

	if err := rootCmd.Execute(); err != nil {
		logutil.GetLogger(context.Background()).Fatal("startup error", zap.Error(err))
	}
}

func loadConfig(configPath string) (*config.Config, error) {
	if configPath == "" {
		return nil, fmt.Errorf("--config is required")
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
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
	return cfg, nil
}

func runServer(cfg *config.Config) error {
	logutil.GetLogger(context.Background()).Info(
		"starting server",
		zap.Int("port", cfg.Port),
		zap.String("index_store", cfg.IndexStore.Type),
		zap.String("session_store", cfg.SessionStore.Type),
		zap.String("ai_provider", cfg.AI.Provider),
	)

	store, err := indexstore.New(cfg.IndexStore)
	if err != nil {
		return fmt.Errorf("init index store: %w", err)
	}
	sessions, err := session.New(cfg.SessionStore)
	if err != nil {
		return fmt.Errorf("init session store: %w", err)
	}
	generator, err := ai.NewProvider(cfg.AI.Provider, cfg.AI.Data)
	if err != nil {
		return fmt.Errorf("init ai provider: %w", err)
	}
	embedder, err := ai.NewEmbedProvider(cfg.AI.EmbedProvider, cfg.AI.Data)
	if err != nil {
		return fmt.Errorf("init ai embed provider: %w", err)
	}
	manager := ai.NewManager(generator, embedder, ai.ManagerConfig{
		Model:         cfg.AI.Model,
		EmbedModel:    cfg.AI.EmbedModel,
		Timeout:       cfg.AI.Timeout,
		MaxInputChars: cfg.AI.MaxInputChars,
	})

	loader := vectorindex.NewLoader(
		store,
		cfg.Retrieval.IndexCacheSize,
		time.Duration(cfg.Retrieval.IndexCacheTTLMin)*time.Minute,
	)
	engine := qa.NewEngine(loader, sessions, manager, manager, prompt.Default(), cfg.Retrieval.TopK)

	deps := handler.RouterDeps{
		Chat:            handler.NewChatHandler(engine),
		JWTSecret:       []byte(cfg.JWTSecret),
		RateLimitWindow: time.Duration(cfg.RateLimitSeconds) * time.Second,
	}

	webEngine, err := webapi.NewEngine(
		"/api/v1",
		fmt.Sprintf("0.0.0.0:%d", cfg.Port),
		webapi.WithRegister(func(group *gin.RouterGroup) {
			handler.RegisterRoutes(group, deps)
		}),
		webapi.WithExtraMiddlewares(
			middleware.RequestID(),
			middleware.CORS(),
			gzip.Gzip(gzip.DefaultCompression),
		),
	)
	if err != nil {
		return fmt.Errorf("init web engine: %w", err)
	}
	logutil.GetLogger(context.Background()).Info("http server listening", zap.String("addr", fmt.Sprintf("0.0.0.0:%d", cfg.Port)))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := webEngine.Run(); err != nil && err != http.ErrServerClosed {
			logutil.GetLogger(context.Background()).Error("server error", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logutil.GetLogger(context.Background()).Info("server stopping...")
	return nil
}

func uploadIndex(cfg *config.Config, owner, document, artifactPath string) error {
	data, err := os.ReadFile(artifactPath)
	if err != nil {
		return fmt.Errorf("read artifact: %w", err)
	}
	if err := vectorindex.ValidateArtifact(data); err != nil {
		return err
	}
	store, err := indexstore.New(cfg.IndexStore)
	if err != nil {
		return fmt.Errorf("init index store: %w", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	key := vectorindex.ArtifactKey(owner, document)
	if err := store.Save(ctx, key, data); err != nil {
		return fmt.Errorf("save artifact: %w", err)
	}
	logutil.GetLogger(ctx).Info("index artifact uploaded", zap.String("key", key))
	return nil
}
