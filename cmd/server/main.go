package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	"loanengine/internal/audit"
	"loanengine/internal/decision"
	"loanengine/internal/decision/handler"
	decisionmetrics "loanengine/internal/decision/metrics"
	"loanengine/internal/platform/config"
	"loanengine/internal/platform/httpserver"
	"loanengine/internal/platform/logger"
	platformmetrics "loanengine/internal/platform/metrics"
	platformredis "loanengine/internal/platform/redis"
	ratelimitmetrics "loanengine/internal/ratelimit/metrics"
	ratelimitmw "loanengine/internal/ratelimit/middleware"
	"loanengine/internal/ratelimit/ports"
	"loanengine/internal/ratelimit/service/requestlimit"
	"loanengine/internal/ratelimit/store/bucket"
	httptransport "loanengine/internal/transport/http"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal packages.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "loanengine: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load(os.Getenv("LOANENGINE_CONFIG"))
	if err != nil {
		return err
	}
	log, err := logger.New(os.Stdout, cfg.Log)
	if err != nil {
		return err
	}
	slog.SetDefault(log)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	engine, err := decision.NewEngine(cfg.Engine.Decision())
	if err != nil {
		return err
	}

	readiness := map[string]httptransport.HealthCheck{}

	auditor, closeAudit, err := buildAuditor(ctx, cfg.Kafka, log, readiness)
	if err != nil {
		return err
	}
	defer closeAudit()

	svc, err := decision.NewService(engine,
		decision.WithLogger(log),
		decision.WithAuditor(auditor),
		decision.WithMetrics(decisionmetrics.NewWithRegistry(reg)),
	)
	if err != nil {
		return err
	}

	redisClient, err := platformredis.New(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	if redisClient != nil {
		defer redisClient.Close()
		readiness["redis"] = redisClient.Health
	}

	limiter, err := buildRateLimiter(cfg.RateLimit, redisClient, log, ratelimitmetrics.NewWithRegistry(reg))
	if err != nil {
		return err
	}

	router := httptransport.NewRouter(httptransport.Deps{
		Logger:      log,
		Decision:    handler.New(svc, log),
		RateLimit:   limiter,
		HTTPMetrics: platformmetrics.NewWithRegistry(reg),
		Gatherer:    reg,
		MetricsPath: cfg.Server.MetricsPath,
		Readiness:   readiness,
	})
	srv := httpserver.New(cfg.Server, router)

	log.Info("starting loanengine",
		"addr", cfg.Server.Addr,
		"search_floor", cfg.Engine.SearchFloor,
		"countries", engine.Config().AgePolicy.Countries(),
		"redis", redisClient != nil,
		"kafka", len(cfg.Kafka.Brokers) > 0,
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return httpserver.Serve(gctx, srv, cfg.Server.ShutdownTimeout)
	})
	if err := g.Wait(); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	log.Info("loanengine stopped")
	return nil
}

// buildAuditor returns the Kafka publisher, with a log fallback, behind an
// async buffer when brokers are configured, and a log publisher otherwise.
func buildAuditor(ctx context.Context, cfg config.KafkaConfig, log *slog.Logger, readiness map[string]httptransport.HealthCheck) (audit.Publisher, func(), error) {
	if len(cfg.Brokers) == 0 {
		return audit.NewLogPublisher(log), func() {}, nil
	}

	kafka, err := audit.NewKafkaPublisher(cfg.Brokers, cfg.Topic, log)
	if err != nil {
		return nil, nil, err
	}
	if err := kafka.EnsureTopic(ctx, cfg.Partitions, cfg.ReplicationFactor); err != nil {
		kafka.Close()
		return nil, nil, err
	}
	readiness["kafka"] = kafka.Ping

	sink := audit.NewFallbackPublisher(kafka, audit.NewLogPublisher(log), log)
	readiness["audit"] = sink.Health

	async := audit.NewAsyncPublisher(sink, cfg.BufferSize, log)
	return async, func() {
		async.Close()
		kafka.Close()
	}, nil
}

// buildRateLimiter picks the Redis store when Redis is configured, with an
// in-memory fallback for outages.
func buildRateLimiter(cfg config.RateLimitConfig, redisClient *platformredis.Client, log *slog.Logger, m *ratelimitmetrics.Metrics) (*ratelimitmw.Middleware, error) {
	if !cfg.Enabled {
		return ratelimitmw.New(nil, log, ratelimitmw.WithDisabled(true)), nil
	}
	limit := requestlimit.Limit{RequestsPerWindow: cfg.Requests, Window: cfg.Window}

	var store ports.BucketStore = bucket.New()
	if redisClient != nil {
		store = bucket.NewRedisBucketStore(redisClient.Client)
	}
	requests, err := requestlimit.New(store,
		requestlimit.WithLogger(log),
		requestlimit.WithLimit(limit),
		requestlimit.WithMetrics(m),
	)
	if err != nil {
		return nil, err
	}

	opts := []ratelimitmw.Option{ratelimitmw.WithMetrics(m)}
	if redisClient != nil {
		opts = append(opts, ratelimitmw.WithFallback(ratelimitmw.NewFallbackLimiter(limit, log)))
	}
	return ratelimitmw.New(requests, log, opts...), nil
}
