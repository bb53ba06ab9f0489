package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/MandarSankhe/Frenchify-me-sub000/internal/cache"
	"github.com/MandarSankhe/Frenchify-me-sub000/internal/config"
	"github.com/MandarSankhe/Frenchify-me-sub000/internal/db"
	"github.com/MandarSankhe/Frenchify-me-sub000/internal/events"
	"github.com/MandarSankhe/Frenchify-me-sub000/internal/models"
	"github.com/MandarSankhe/Frenchify-me-sub000/internal/relay"
	"github.com/MandarSankhe/Frenchify-me-sub000/internal/repository"
	"github.com/MandarSankhe/Frenchify-me-sub000/internal/service"
)

// Proceso aparte que vence matches y completa bookings. Se usa cuando la API
// corre con SWEEPER_ENABLED=false (varias réplicas, un solo sweeper).
func main() {
	once := flag.Bool("once", false, "correr un barrido y salir")
	flag.Parse()

	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db.InitMongo(cfg)
	cache.InitRedis(cfg)
	defer func() {
		_ = cache.Close()
		_ = db.Disconnect(context.Background())
	}()

	pub, err := events.NewPublisher(cfg.RabbitURI, cfg.EventsExchange)
	if err != nil {
		log.Fatalf("[events] %v", err)
	}
	defer pub.Close()

	userRepo := repository.NewUserRepository()
	historyRepo := repository.NewHistoryRepository()
	bookingRepo := repository.NewBookingRepository()
	leaderboardRepo := repository.NewLeaderboardRepository(cache.Client())

	examStores := map[models.ExamKind]service.ExamStore{}
	for _, kind := range models.ExamKinds {
		examStores[kind] = repository.NewExamRepository(kind)
	}
	matchStores := map[models.MatchKind]service.MatchStore{}
	for _, kind := range models.MatchKinds {
		matchStores[kind] = repository.NewMatchRepository(kind)
	}

	// sin clientes propios: las notificaciones solo llegan a las APIs si hay
	// fan-out por Redis
	var notifier service.Notifier
	if cfg.RelayRedisFanout && cache.Client() != nil {
		notifier = relay.NewHub(nil, relay.NewRedisBroker(cache.Client(), ""))
	}

	examSvc := service.NewExamService(examStores)
	bookingSvc := service.NewBookingService(bookingRepo, userRepo, pub, notifier, cfg.BookingGrace)
	matchSvc := service.NewMatchService(matchStores, examSvc, userRepo, historyRepo, leaderboardRepo, pub, notifier,
		service.MatchSettings{Duration: cfg.MatchDuration, InviteTTL: cfg.MatchInviteTTL})
	maint := service.NewAdminMaintenanceService(bookingSvc, matchSvc, bookingRepo, matchStores)

	if *once {
		res, err := maint.Sweep(ctx)
		if err != nil {
			log.Fatalf("[sweeper] %v", err)
		}
		log.Printf("[sweeper] expirados=%d timeout=%d bookings=%d conflictos=%d",
			res.ExpiredMatches, res.TimedOutMatches, res.CompletedBookings, res.Conflicts)
		return
	}

	log.Printf("[sweeper] cada %s", cfg.SweepInterval)
	maint.RunSweeper(ctx, cfg.SweepInterval)
}
