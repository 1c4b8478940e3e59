package builder

import (
	"fmt"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/sakhi-dev/sakhi-backend/internal/api"
	queryapi "github.com/sakhi-dev/sakhi-backend/internal/api/query"
	"github.com/sakhi-dev/sakhi-backend/internal/config"
	"github.com/sakhi-dev/sakhi-backend/internal/integration/chatmodel"
	"github.com/sakhi-dev/sakhi-backend/internal/integration/storage"
	"github.com/sakhi-dev/sakhi-backend/internal/integration/translate"
	"github.com/sakhi-dev/sakhi-backend/internal/integration/vectorstore"
	"github.com/sakhi-dev/sakhi-backend/internal/registry"
	"github.com/sakhi-dev/sakhi-backend/internal/repository"
	"github.com/sakhi-dev/sakhi-backend/internal/usecase/query"
)

func Build() (*App, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := setupLogger(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("setup logger: %w", err)
	}

	logger.Info("Building application",
		zap.String("environment", cfg.Environment),
		zap.String("server_addr", cfg.ServerAddr),
	)

	disabled, err := registry.ParseDisabled(cfg.DisabledServices)
	if err != nil {
		return nil, fmt.Errorf("parse disabled services: %w", err)
	}

	// Resolve providers. Selection is fatal at startup: a capability either
	// has a known provider or is explicitly disabled.
	chatConn, err := registry.Resolve(registry.CapabilityChatModel, cfg.ChatProvider, disabled,
		registry.Builders[query.ChatModelConnector]{
			"openai": func() (query.ChatModelConnector, error) {
				return chatmodel.NewOpenAIConnector(cfg.ChatCfg, cfg.EngineCfg.Temperature, logger), nil
			},
			"azure": func() (query.ChatModelConnector, error) {
				return chatmodel.NewAzureConnector(cfg.ChatCfg, cfg.EngineCfg.Temperature, logger), nil
			},
			"ollama": func() (query.ChatModelConnector, error) {
				return chatmodel.NewOllamaConnector(cfg.ChatCfg, cfg.EngineCfg.Temperature, logger), nil
			},
			"mock": func() (query.ChatModelConnector, error) {
				return chatmodel.NewMockConnector(logger), nil
			},
		})
	if err != nil {
		return nil, err
	}
	if chatConn == nil {
		return nil, fmt.Errorf("chat model capability cannot be disabled")
	}

	vectorConn, err := registry.Resolve(registry.CapabilityVectorStore, cfg.VectorStoreProvider, disabled,
		registry.Builders[query.VectorStoreConnector]{
			"marqo": func() (query.VectorStoreConnector, error) {
				return vectorstore.NewConnector(cfg.VectorStoreCfg, logger), nil
			},
			"mock": func() (query.VectorStoreConnector, error) {
				return vectorstore.NewMockConnector(logger), nil
			},
		})
	if err != nil {
		return nil, err
	}
	if vectorConn == nil {
		return nil, fmt.Errorf("vector store capability cannot be disabled")
	}

	translateConn, err := registry.Resolve(registry.CapabilityTranslation, cfg.TranslationProvider, disabled,
		registry.Builders[query.TranslateConnector]{
			"dhruva": func() (query.TranslateConnector, error) {
				return translate.NewConnector(cfg.TranslateCfg, logger), nil
			},
			"mock": func() (query.TranslateConnector, error) {
				return translate.NewMockConnector(logger), nil
			},
		})
	if err != nil {
		return nil, err
	}

	storageConn, err := registry.Resolve(registry.CapabilityStorage, cfg.StorageProvider, disabled,
		registry.Builders[query.StorageConnector]{
			"oci": func() (query.StorageConnector, error) {
				return storage.NewConnector(cfg.StorageCfg, logger), nil
			},
			"mock": func() (query.StorageConnector, error) {
				return storage.NewMockConnector(logger), nil
			},
		})
	if err != nil {
		return nil, err
	}
	logger.Info("Providers resolved",
		zap.String("chat", cfg.ChatProvider),
		zap.String("vector_store", cfg.VectorStoreProvider),
		zap.String("translation", cfg.TranslationProvider),
		zap.String("storage", cfg.StorageProvider),
	)

	// Session history store: redis when an address is configured, otherwise
	// the in-process store.
	var historyStore repository.HistoryStore
	var redisClient *redis.Client
	if cfg.RedisCfg.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisCfg.Addr,
			Password: cfg.RedisCfg.Password,
			DB:       cfg.RedisCfg.DB,
		})
		historyStore = repository.NewHistoryRedis(redisClient)
		logger.Info("Using redis history store", zap.String("addr", cfg.RedisCfg.Addr))
	} else {
		historyStore = repository.NewHistoryMemory(cfg.RedisCfg.TTL)
		logger.Info("Using in-process history store")
	}

	// Initialize use case
	queryUC := query.NewUsecase(
		chatConn,
		vectorConn,
		translateConn,
		storageConn,
		historyStore,
		cfg.Indices,
		cfg.Prompts,
		cfg.EngineCfg,
		cfg.RedisCfg.TTL,
		logger,
	)
	logger.Info("Use case initialized")

	// Setup API handler
	queryHandler := queryapi.NewHandler(queryUC)
	logger.Info("API handler initialized")

	// Setup router
	router := api.SetupRouter(queryHandler, logger)
	logger.Info("HTTP router configured")

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.ServerAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Info("Application built successfully",
		zap.String("environment", cfg.Environment),
	)

	return &App{
		server: server,
		redis:  redisClient,
		logger: logger,
	}, nil
}
