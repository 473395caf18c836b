package application

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/hibiken/asynq"
	"golang.org/x/sync/errgroup"

	"eko_market/internal/config"
	"eko_market/internal/domain/entity"
	"eko_market/internal/domain/service/chat"
	"eko_market/internal/domain/service/logistics"
	"eko_market/internal/infrastructure/genai"
	"eko_market/internal/infrastructure/geo"
	"eko_market/internal/infrastructure/listener"
	"eko_market/internal/infrastructure/notifier"
	"eko_market/internal/infrastructure/persistence"
	"eko_market/internal/server"
	"eko_market/internal/worker"
	"eko_market/pkg/application/connectors"
	"eko_market/pkg/application/modules"
	"eko_market/pkg/contextx"
	"eko_market/pkg/httpx"
	"eko_market/pkg/logx"
	"eko_market/pkg/middlewarex"
)

const (
	logFieldMaxLen    = 4096
	outboundTimeout   = 30 * time.Second
	geoLookupTimeout  = 5 * time.Second
	alertsChannelSize = 100
)

func Run(ctx context.Context, log *slog.Logger) error { //nolint:funlen
	ctx = contextx.WithLogger(ctx, log)

	// 1. Config
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config.Load: %w", err)
	}

	// 2. Connectors
	pg := &connectors.Postgres{
		DSN:             cfg.Postgres.DSN,
		MaxOpenConns:    cfg.Postgres.MaxOpenConns,
		MaxIdleConns:    cfg.Postgres.MaxIdleConns,
		ConnMaxLifetime: cfg.Postgres.ConnMaxLifetime,
	}
	db := pg.Client(ctx)
	defer pg.Close(ctx)

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("db.PingContext: %w", err)
	}

	rd := &connectors.Redis{
		Address:            cfg.Redis.Address,
		Username:           cfg.Redis.Username,
		Password:           cfg.Redis.Password,
		DatabaseNumber:     cfg.Redis.DatabaseNumber,
		PoolSize:           cfg.Redis.PoolSize,
		MinIdleConnections: cfg.Redis.MinIdleConnections,
		MaxIdleConnections: cfg.Redis.MaxIdleConnections,
	}
	redisClient := rd.Client(ctx)
	defer rd.Close(ctx)

	// 3. Repositories and refresher
	dealRepo := persistence.NewDealRepository(db)
	refresher := worker.NewRefresher(dealRepo)

	if cfg.Bot.Token != "" {
		alerts := make(chan entity.Deal, alertsChannelSize)
		refresher.WithAlerts(alerts, cfg.Bot.MinProfit)

		alertBot, err := notifier.NewTelegramBot(cfg.Bot.Token, cfg.Bot.ChatID)
		if err != nil {
			return fmt.Errorf("notifier.NewTelegramBot: %w", err)
		}

		go func() {
			if err := alertBot.Run(ctx, alerts); err != nil && ctx.Err() == nil {
				log.Error("alert bot stopped", logx.Error(err))
			}
		}()
	}

	// 4. Refresh queue
	asynqClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     cfg.Redis.Address,
		Username: cfg.Redis.Username,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DatabaseNumber,
	})
	defer asynqClient.Close() //nolint:errcheck

	queue := worker.NewRefreshQueue(asynqClient)

	// 5. Domain services
	estimator := logistics.NewEstimator(cfg.Logistics.BaseFee, cfg.Logistics.PerKmRate)

	generator := genai.NewClient(cfg.Gemini.APIKey, cfg.Gemini.Model, &http.Client{
		Transport: httpx.NewLoggingRoundTripper(
			http.DefaultTransport,
			httpx.WithLogFieldMaxLen(logFieldMaxLen),
		),
		Timeout: outboundTimeout,
	})
	chatService := chat.NewService(generator)

	ipLocator := geo.NewLocator(cfg.Geo.Endpoint, &http.Client{Timeout: geoLookupTimeout})

	// 6. HTTP router
	srv := server.NewServer(
		server.NewDealsServer(refresher, queue, estimator, ipLocator),
		server.NewChatServer(chatService, refresher),
	)

	masker := logx.NewSensitiveDataMasker()

	router := chi.NewRouter()
	router.Use(
		middlewarex.TraceID,
		middlewarex.Logger,
		middlewarex.Recovery,
		middlewarex.RequestLogging(masker, logFieldMaxLen),
		middlewarex.ResponseLogging(masker, logFieldMaxLen),
	)
	srv.RegisterRoutes(router)

	// 7. Modules
	g, ctx := errgroup.WithContext(ctx)

	modules.ProbeServer{
		Name:          cfg.App.Name,
		Version:       cfg.App.Version,
		ListenAddress: cfg.Server.ProbeListenAddress,
	}.Run(ctx, g)

	modules.MetricServer{
		ListenAddress: cfg.Server.MetricListenAddress,
	}.Run(ctx, g)

	modules.AsynqServer{
		RedisUsername: cfg.Redis.Username,
		RedisPassword: cfg.Redis.Password,
		RedisAddress:  cfg.Redis.Address,
		RedisDB:       cfg.Redis.DatabaseNumber,
	}.Run(ctx, g,
		modules.AsynqQueues{"default": 1},
		modules.AsynqHandler{
			Pattern: worker.TypeDealsRefresh,
			Handle:  worker.HandleRefreshTask(refresher),
		},
	)

	modules.HTTPServer{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	}.Run(ctx, g, &http.Server{ //nolint:exhaustruct
		Addr:    cfg.Server.ListenAddress,
		Handler: router,
	})

	// 8. Change listener: every table change becomes a queued refresh.
	changes := listener.NewChangeListener(redisClient, cfg.Redis.ChangeChannel)

	g.Go(func() error {
		return changes.Listen(ctx, func(ctx context.Context) {
			if err := queue.EnqueueRefresh(ctx, worker.TriggerChange); err != nil {
				log.Error("enqueue refresh on change", logx.Error(err))
			}
		})
	})

	// 9. Initial collection load
	refresher.Start(ctx)
	defer refresher.Stop()

	return g.Wait()
}
