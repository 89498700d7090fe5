// Command server runs the registrar HTTP API. main wires configuration,
// stores, collaborator clients and the router; business logic lives in the
// internal service packages.
package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"golang.org/x/sync/errgroup"

	"registrar/internal/audit"
	"registrar/internal/authclient"
	"registrar/internal/chain"
	"registrar/internal/consent"
	"registrar/internal/credentialtypes"
	"registrar/internal/didresolve"
	groupstore "registrar/internal/group/store"
	"registrar/internal/invitation"
	"registrar/internal/jwtauth"
	"registrar/internal/monitor"
	"registrar/internal/notify"
	orghandler "registrar/internal/org/handler"
	orgmetrics "registrar/internal/org/metrics"
	orgservice "registrar/internal/org/service"
	orgstore "registrar/internal/org/store"
	"registrar/internal/platform/config"
	"registrar/internal/platform/errsink"
	"registrar/internal/platform/httpserver"
	"registrar/internal/platform/logger"
	"registrar/internal/platform/metrics"
	platformredis "registrar/internal/platform/redis"
	"registrar/internal/scope"
	httptransport "registrar/internal/transport/http"
)

func main() {
	cfg := config.FromEnv()
	log := logger.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Stores: Postgres when a DSN is configured, in-memory otherwise.
	var (
		orgs         orgservice.OrganizationStore
		scopeGroups  scope.GroupStore
		notifyGroups orgservice.GroupStore
		consents     orgservice.ConsentStore
		invitations  orgservice.InvitationStore
		auditStore   audit.Store
	)
	if cfg.PostgresDSN != "" {
		db, err := sql.Open("postgres", cfg.PostgresDSN)
		if err != nil {
			log.Error("failed to open postgres", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		if err := db.PingContext(ctx); err != nil {
			log.Error("failed to reach postgres", "error", err)
			os.Exit(1)
		}
		orgs = orgstore.NewPostgres(db)
		pgGroups := groupstore.NewPostgres(db)
		scopeGroups, notifyGroups = pgGroups, pgGroups
		consents = consent.NewPostgres(db)
		invitations = invitation.NewPostgres(db)
		auditStore = audit.NewPostgres(db)
	} else {
		log.Warn("DATABASE_URL not set, using in-memory stores")
		orgs = orgstore.NewInMemory()
		memGroups := groupstore.NewInMemory()
		scopeGroups, notifyGroups = memGroups, memGroups
		consents = consent.NewInMemory()
		invitations = invitation.NewInMemory()
		auditStore = audit.NewInMemory()
	}

	// Audit trail: buffered in-process, optionally mirrored to Kafka.
	if len(cfg.Kafka.Brokers) > 0 {
		kafka, err := audit.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.AuditTopic, log)
		if err != nil {
			log.Error("failed to connect kafka audit publisher", "error", err)
			os.Exit(1)
		}
		defer kafka.Close()
		auditStore = &audit.MirroredStore{Primary: auditStore, Kafka: kafka}
	}
	auditQueue := audit.NewQueue(auditStore, 256)
	auditWorker := audit.NewWorker(auditStore, auditQueue.Inbox())

	// DID resolution: live did:web fetches, cached in Redis when configured.
	var resolver didresolve.Resolver = didresolve.NewWebResolver(cfg.DIDResolutionTimeout)
	redisClient, err := platformredis.New(cfg.Redis)
	if err != nil {
		log.Error("failed to connect redis", "error", err)
		os.Exit(1)
	}
	if redisClient != nil {
		defer redisClient.Close()
		resolver = didresolve.NewCachedResolver(resolver, redisClient.Client, cfg.DIDCacheTTL, log)
	}

	// Collaborators: real clients when a URL is configured, deterministic
	// mocks otherwise so a bare process is still fully operable.
	var provisioner authclient.Provisioner = authclient.NewMock()
	if cfg.AuthProvisionerURL != "" {
		provisioner = authclient.NewHTTPProvisioner(cfg.AuthProvisionerURL, cfg.AuthProvisionerToken, 10*time.Second)
	}
	var monitors monitor.Client = monitor.NewMock()
	if cfg.MonitorServiceURL != "" {
		monitors = monitor.NewHTTPClient(cfg.MonitorServiceURL, 10*time.Second)
	}
	var chainUpdater chain.Updater = chain.NewMock()
	if cfg.ChainServiceURL != "" {
		chainUpdater = chain.NewHTTPUpdater(cfg.ChainServiceURL, cfg.ChainPermissionAudience, cfg.ChainServiceToken, 10*time.Second)
	}
	var dispatcher notify.Dispatcher = notify.NewRecorder()
	if cfg.SMTP.Host != "" {
		dispatcher = notify.NewSMTPDispatcher(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password, cfg.SMTP.From)
	}

	sink := errsink.NewSlogSink(log)
	lifecycle := orgservice.New(
		orgs,
		notifyGroups,
		consents,
		invitations,
		credentialtypes.NewRegistry(credentialtypes.DefaultTypes),
		resolver,
		orgservice.WithLogger(log),
		orgservice.WithErrorSink(sink),
		orgservice.WithAuditPublisher(audit.NewPublisher(auditQueue)),
		orgservice.WithMetrics(orgmetrics.New()),
		orgservice.WithProvisioner(provisioner),
		orgservice.WithDispatcher(dispatcher),
		orgservice.WithMonitorClient(monitors),
		orgservice.WithChainUpdater(chainUpdater, cfg.ChainPermissionAudience),
	)

	scopes := scope.NewResolver(scopeGroups, log, sink)
	jwtService := jwtauth.NewJWTService(cfg.JWTSigningKey, "registrar", "registrar")
	handler := orghandler.New(lifecycle, scopes, jwtService, log)
	router := httptransport.NewRouter(log, metrics.New(), handler)

	srv := httpserver.New(cfg.Addr, router)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		err := auditWorker.Run(gctx)
		if err == context.Canceled {
			return nil
		}
		return err
	})
	g.Go(func() error {
		log.Info("registrar listening", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("registrar stopped", "error", err)
		os.Exit(1)
	}
	log.Info("registrar stopped")
}
