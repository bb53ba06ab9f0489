package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/MandarSankhe/Frenchify-me-sub000/docs" // swagger docs

	"github.com/MandarSankhe/Frenchify-me-sub000/internal/cache"
	"github.com/MandarSankhe/Frenchify-me-sub000/internal/config"
	"github.com/MandarSankhe/Frenchify-me-sub000/internal/db"
	"github.com/MandarSankhe/Frenchify-me-sub000/internal/discovery"
	"github.com/MandarSankhe/Frenchify-me-sub000/internal/events"
	"github.com/MandarSankhe/Frenchify-me-sub000/internal/gql"
	"github.com/MandarSankhe/Frenchify-me-sub000/internal/handler"
	"github.com/MandarSankhe/Frenchify-me-sub000/internal/metrics"
	"github.com/MandarSankhe/Frenchify-me-sub000/internal/models"
	"github.com/MandarSankhe/Frenchify-me-sub000/internal/relay"
	"github.com/MandarSankhe/Frenchify-me-sub000/internal/repository"
	"github.com/MandarSankhe/Frenchify-me-sub000/internal/service"
	"github.com/MandarSankhe/Frenchify-me-sub000/internal/storage"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
)

// @title Frenchify API
// @version 1.0
// @description Preparación TEF/TCF: exámenes de práctica, sesiones con tutores, partidas H2H y relay en tiempo real (Mongo, Redis, RabbitMQ, MinIO)
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Mongo y Redis
	db.InitMongo(cfg)
	cache.InitRedis(cfg)
	if err := db.EnsureIndexes(ctx); err != nil {
		log.Fatalf("[mongo] error creando índices: %v", err)
	}

	// RabbitMQ (deshabilitado si no hay URI)
	pub, err := events.NewPublisher(cfg.RabbitURI, cfg.EventsExchange)
	if err != nil {
		log.Fatalf("[events] %v", err)
	}
	defer pub.Close()

	// repos
	userRepo := repository.NewUserRepository()
	historyRepo := repository.NewHistoryRepository()
	bookingRepo := repository.NewBookingRepository()
	tutorAppRepo := repository.NewTutorApplicationRepository()
	donationRepo := repository.NewDonationRepository()
	transcriptRepo := repository.NewTranscriptRepository()
	leaderboardRepo := repository.NewLeaderboardRepository(cache.Client())

	examStores := map[models.ExamKind]service.ExamStore{}
	for _, kind := range models.ExamKinds {
		examStores[kind] = repository.NewExamRepository(kind)
	}
	matchStores := map[models.MatchKind]service.MatchStore{}
	for _, kind := range models.MatchKinds {
		matchStores[kind] = repository.NewMatchRepository(kind)
	}

	// relay: con RELAY_REDIS_FANOUT las entregas pasan por Redis pub/sub
	var broker relay.Broker
	if cfg.RelayRedisFanout && cache.Client() != nil {
		broker = relay.NewRedisBroker(cache.Client(), "")
	}
	hub := relay.NewHub(service.NewRoomAccess(bookingRepo, matchStores), broker)
	go func() {
		if err := hub.Run(ctx); err != nil {
			log.Printf("[relay] broker detenido: %v", err)
		}
	}()

	// MinIO (opcional)
	var objects service.ObjectStore
	if store, err := storage.NewObjectStore(ctx, cfg); err != nil {
		log.Printf("[storage] MinIO no disponible, archivo deshabilitado: %v", err)
	} else if store != nil {
		objects = store
	}

	// services
	authSvc := service.NewAuthService(userRepo, pub, cfg.JWTSecret, cfg.TokenTTL)
	examSvc := service.NewExamService(examStores)
	historySvc := service.NewHistoryService(examSvc, historyRepo, userRepo, pub)
	bookingSvc := service.NewBookingService(bookingRepo, userRepo, pub, hub, cfg.BookingGrace)
	matchSvc := service.NewMatchService(matchStores, examSvc, userRepo, historyRepo, leaderboardRepo, pub, hub,
		service.MatchSettings{Duration: cfg.MatchDuration, InviteTTL: cfg.MatchInviteTTL})
	leaderboardSvc := service.NewLeaderboardService(leaderboardRepo, userRepo)
	tutorAppSvc := service.NewTutorApplicationService(tutorAppRepo, userRepo, pub)
	donationSvc := service.NewDonationService(donationRepo, pub)
	transcriptSvc := service.NewTranscriptService(userRepo, historyRepo, transcriptRepo, objects)
	adminMaintSvc := service.NewAdminMaintenanceService(bookingSvc, matchSvc, bookingRepo, matchStores)

	schema, err := gql.NewSchema(gql.Services{
		Auth:        authSvc,
		Exams:       examSvc,
		History:     historySvc,
		Bookings:    bookingSvc,
		Matches:     matchSvc,
		Leaderboard: leaderboardSvc,
	})
	if err != nil {
		log.Fatalf("[graphql] schema inválido: %v", err)
	}

	// handlers
	authH := handler.NewAuthHandler(authSvc)
	examH := handler.NewExamHandler(examSvc, historySvc)
	bookingH := handler.NewBookingHandler(bookingSvc)
	matchH := handler.NewMatchHandler(matchSvc)
	leaderboardH := handler.NewLeaderboardHandler(leaderboardSvc)
	tutorAppH := handler.NewTutorApplicationHandler(tutorAppSvc)
	donationH := handler.NewDonationHandler(donationSvc)
	transcriptH := handler.NewTranscriptHandler(transcriptSvc)
	adminMaintH := handler.NewAdminMaintenanceHandler(adminMaintSvc)
	relayH := handler.NewRelayHandler(hub, cfg.AllowedOrigins)
	gqlH := gql.NewHandler(schema, handler.Caller)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(metrics.Middleware)

	// =============
	// Rutas públicas
	// =============
	r.Get("/health", handler.Health)
	r.Handle("/metrics", promhttp.Handler())

	r.Post("/auth/register", authH.Register)
	r.Post("/auth/login", authH.Login)

	r.Get("/exams/{kind}", examH.List)
	r.Get("/exams/{kind}/{id}", examH.Get)
	r.Get("/trainers", authH.ListTrainers)
	r.Get("/leaderboard", leaderboardH.Top)

	// donación anónima o asociada al usuario si manda token
	r.With(handler.OptionalJWT(cfg.JWTSecret)).Post("/donations", donationH.Create)

	// ===========================
	// Rutas protegidas con JWT
	// ===========================
	authMw := handler.JWTAuth(cfg.JWTSecret)

	r.Group(func(r chi.Router) {
		r.Use(authMw)
		r.Use(handler.CurrentRole(authSvc))

		// ---- Endpoints /me ----
		r.Route("/me", func(r chi.Router) {
			r.Get("/", authH.Me)
			r.Put("/", authH.UpdateMe)

			r.Get("/history", examH.MyHistory)
			r.Post("/exams/{kind}/{id}/attempts", examH.SubmitAttempt)

			r.Get("/transcript", transcriptH.Get)
			r.Post("/transcript/archive", transcriptH.Archive)
			r.Get("/transcripts", transcriptH.ListArchives)

			r.Post("/tutor-application", tutorAppH.Apply)
			r.Get("/tutor-applications", tutorAppH.ListMine)
		})

		r.Route("/bookings", func(r chi.Router) {
			r.Post("/", bookingH.Create)
			r.Get("/", bookingH.List)
			r.Get("/{id}", bookingH.Get)
			r.Post("/{id}/rsvp", bookingH.RSVP)
			r.Post("/{id}/complete", bookingH.Complete)
		})

		r.Route("/matches/{kind}", func(r chi.Router) {
			r.Post("/", matchH.Create)
			r.Get("/", matchH.List)
			r.Get("/{id}", matchH.Get)
			r.Post("/{id}/accept", matchH.Accept())
			r.Post("/{id}/withdraw", matchH.Withdraw())
			r.Post("/{id}/answers", matchH.SubmitAnswer())
			r.Post("/{id}/finish", matchH.Finish())
		})

		// WebSocket (token por query param)
		r.Get("/ws", relayH.Serve)

		r.Post("/graphql", gqlH.ServeHTTP)

		// ---- Endpoints solo ADMIN ----
		r.Group(func(r chi.Router) {
			r.Use(handler.AdminOnly())

			r.Get("/users", authH.ListUsers)
			r.Get("/users/{id}", authH.GetUserByID)
			r.Put("/users/{id}", authH.AdminUpdateUser)

			r.Post("/admin/exams/{kind}", examH.Create)

			r.Get("/admin/tutor-applications", tutorAppH.ListAll)
			r.Post("/admin/tutor-applications/{id}/approve", tutorAppH.Approve)
			r.Post("/admin/tutor-applications/{id}/reject", tutorAppH.Reject)

			r.Get("/admin/donations", donationH.List)
			r.Get("/admin/donations/totals", donationH.Totals)
			r.Post("/admin/donations/{reference}/capture", donationH.Capture)

			// --- sweeper manual / resumen ---
			handler.MountAdminMaintenanceRoutes(r, adminMaintH)
		})
	})

	// Swagger UI
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	// sweeper en proceso (se puede apagar y correr cmd/sweeper aparte)
	if cfg.SweeperEnabled {
		go adminMaintSvc.RunSweeper(ctx, cfg.SweepInterval)
	}

	// Consul (opcional)
	if cfg.ConsulAddr != "" {
		registry, err := discovery.NewServiceRegistry(cfg.ConsulAddr, cfg.ServiceName, cfg.ServiceID, cfg.HTTPPort)
		if err != nil {
			log.Printf("[consul] %v", err)
		} else if err := registry.Register(); err != nil {
			log.Printf("[consul] %v", err)
		} else {
			defer func() {
				if err := registry.Deregister(); err != nil {
					log.Printf("[consul] %v", err)
				}
			}()
		}
	}

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("HTTP escuchando en :%s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("[http] %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("[http] apagando…")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("[http] shutdown: %v", err)
	}
	if err := cache.Close(); err != nil {
		log.Printf("[redis] close: %v", err)
	}
	if err := db.Disconnect(shutdownCtx); err != nil {
		log.Printf("[mongo] disconnect: %v", err)
	}
}
