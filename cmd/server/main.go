package main

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/google.golang.org/grpc/otelgrpc"
	"go.uber.org/zap"
	"google.golang.org/grpc"

	"bookingdesk/backend/internal/audit"
	auditrepo "bookingdesk/backend/internal/audit/repository"
	"bookingdesk/backend/internal/config"
	"bookingdesk/backend/internal/db"
	healthhandler "bookingdesk/backend/internal/health/handler"
	"bookingdesk/backend/internal/logger"
	membershiprepo "bookingdesk/backend/internal/membership/repository"
	"bookingdesk/backend/internal/platform/rbac"
	"bookingdesk/backend/internal/policy/engine"
	policyrepo "bookingdesk/backend/internal/policy/repository"
	"bookingdesk/backend/internal/security"
	"bookingdesk/backend/internal/server"
	"bookingdesk/backend/internal/server/interceptors"
	"bookingdesk/backend/internal/source"
	"bookingdesk/backend/internal/source/cache"
	"bookingdesk/backend/internal/source/fixture"
	pgsource "bookingdesk/backend/internal/source/postgres"
	"bookingdesk/backend/internal/source/supabase"
	"bookingdesk/backend/internal/telemetry"
	telemetryotel "bookingdesk/backend/internal/telemetry/otel"
	"bookingdesk/backend/internal/telemetry/producer"
	"bookingdesk/backend/internal/view"
	viewhandler "bookingdesk/backend/internal/view/handler"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	log, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		fmt.Fprintln(os.Stderr, "logger:", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	ctx := context.Background()

	providers, err := telemetryotel.NewProviders(ctx, cfg.OTelEndpoint, cfg.OTelServiceName, cfg.OTelInsecure, log)
	if err != nil {
		log.Fatal("otel", zap.Error(err))
	}
	providers.SetGlobal()

	var sqlDB *sql.DB
	if cfg.DatabaseURL != "" {
		sqlDB, err = db.Open(cfg.DatabaseURL)
		if err != nil {
			log.Fatal("database", zap.Error(err))
		}
		defer sqlDB.Close()
	}

	var pingers []healthhandler.Pinger
	if sqlDB != nil {
		pingers = append(pingers, sqlDB)
	}

	src, err := newSource(cfg, sqlDB)
	if err != nil {
		log.Fatal("data source", zap.Error(err))
	}
	if cfg.RedisURL != "" {
		store, err := cache.NewRedisStore(ctx, cfg.RedisURL)
		if err != nil {
			log.Fatal("redis", zap.Error(err))
		}
		defer store.Close()
		pingers = append(pingers, store)
		src = cache.New(src, store, cfg.RecordCacheTTL(), log)
	}

	members := newMemberships(cfg, sqlDB)

	var policies policyrepo.Repository
	if sqlDB != nil {
		policies = policyrepo.NewPostgresRepository(sqlDB)
	}
	basePolicy := ""
	if cfg.AccessPolicyPath != "" {
		basePolicy, err = engine.LoadPolicyFile(cfg.AccessPolicyPath)
		if err != nil {
			log.Fatal("access policy", zap.Error(err))
		}
	}
	evaluator, err := engine.NewOPAEvaluator(ctx, basePolicy, policies, log)
	if err != nil {
		log.Fatal("access policy", zap.Error(err))
	}

	tokens, err := security.NewTokenProviderFromPEM("", cfg.JWTPublicKey, cfg.JWTIssuer, cfg.JWTAudience, cfg.AccessTTL())
	if err != nil {
		log.Fatal("jwt", zap.Error(err))
	}

	var emitter telemetry.EventEmitter
	if brokers := cfg.TelemetryKafkaBrokersList(); len(brokers) > 0 {
		kp := producer.NewKafkaProducer(brokers, cfg.TelemetryKafkaTopic)
		defer kp.Close()
		emitter = kp
		log.Info("telemetry: emitting to kafka", zap.Strings("brokers", brokers), zap.String("topic", kp.Topic()))
	} else {
		emitter = telemetryotel.NewEventEmitter(providers.LoggerProvider)
	}

	var auditLogger audit.AuditLogger
	if sqlDB != nil {
		auditLogger = audit.NewLogger(auditrepo.NewPostgresRepository(sqlDB), interceptors.ClientIP, log)
	}

	svc := view.NewService(src, evaluator, log, view.WithMeter(providers.Meter()))
	public := server.PublicMethods()
	s := grpc.NewServer(
		grpc.StatsHandler(otelgrpc.NewServerHandler()),
		grpc.ChainUnaryInterceptor(
			interceptors.AuthUnary(tokens, public),
			interceptors.AuditUnary(auditLogger, public),
			interceptors.TelemetryUnary(emitter, public, log),
		),
	)
	server.RegisterServices(s, server.Deps{
		View:   viewhandler.NewServer(svc, members, log),
		Health: healthhandler.NewServer(evaluator, log, pingers...),
	})

	lis, err := net.Listen("tcp", cfg.GRPCAddr)
	if err != nil {
		log.Fatal("listen", zap.Error(err))
	}
	defer lis.Close()

	go func() {
		log.Info("gRPC server listening",
			zap.String("addr", cfg.GRPCAddr), zap.String("data_source", cfg.DataSource), zap.Bool("cache", cfg.RedisURL != ""))
		if err := s.Serve(lis); err != nil {
			log.Fatal("serve", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("shutting down gRPC server...")
	s.GracefulStop()
	if !telemetry.Drain(telemetry.ShutdownDrainDuration) {
		log.Warn("telemetry: in-flight events not drained before shutdown")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := providers.Shutdown(shutdownCtx); err != nil {
		log.Warn("otel shutdown", zap.Error(err))
	}
	log.Info("gRPC server stopped")
}

// newSource returns the record source selected by DATA_SOURCE.
func newSource(cfg *config.Config, sqlDB *sql.DB) (source.Source, error) {
	switch cfg.DataSource {
	case config.DataSourceSupabase:
		sb, err := supabase.New(supabase.Config{ProjectURL: cfg.SupabaseURL, APIKey: cfg.SupabaseAPIKey})
		if err != nil {
			return nil, err
		}
		return sb, nil
	case config.DataSourceDemo:
		return fixture.New(nil), nil
	default:
		return pgsource.New(sqlDB), nil
	}
}

// newMemberships returns the membership store. Demo mode serves the fixture team so a dev token
// minted by cmd/seed resolves without a database.
func newMemberships(cfg *config.Config, sqlDB *sql.DB) rbac.OrgMembershipGetter {
	if cfg.IsDemo() || sqlDB == nil {
		return membershiprepo.NewMemoryRepository(fixture.Demo(time.Now()).Members...)
	}
	return membershiprepo.NewPostgresRepository(sqlDB)
}
