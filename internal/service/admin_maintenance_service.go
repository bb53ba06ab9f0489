package service

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/MandarSankhe/Frenchify-me-sub000/internal/models"
)

// AdminMaintenanceService orquesta el barrido de matches vencidos y bookings
// terminados, y arma el resumen del panel admin.
type AdminMaintenanceService struct {
	bookings *BookingService
	matches  *MatchService

	bookingStore BookingStore
	matchStores  map[models.MatchKind]MatchStore

	now func() time.Time
}

// NewAdminMaintenanceService crea el servicio.
func NewAdminMaintenanceService(
	bookings *BookingService,
	matches *MatchService,
	bookingStore BookingStore,
	matchStores map[models.MatchKind]MatchStore,
) *AdminMaintenanceService {
	return &AdminMaintenanceService{
		bookings:     bookings,
		matches:      matches,
		bookingStore: bookingStore,
		matchStores:  matchStores,
		now:          time.Now,
	}
}

// ---------------------- SUMMARY ----------------------

// Summary cuenta documentos por estado. Cada colección se consulta en paralelo.
func (s *AdminMaintenanceService) Summary(ctx context.Context) (*models.MaintenanceSummary, error) {
	summary := &models.MaintenanceSummary{
		Matches:     make(map[string]map[string]int64, len(s.matchStores)),
		GeneratedAt: s.now().UTC(),
	}

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	setErr := func(err error) {
		mu.Lock()
		if firstErr == nil {
			firstErr = err
		}
		mu.Unlock()
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		counts, err := s.bookingStore.CountByStatus(ctx)
		if err != nil {
			setErr(err)
			return
		}
		mu.Lock()
		summary.Bookings = counts
		mu.Unlock()
	}()

	for kind, st := range s.matchStores {
		wg.Add(1)
		go func(kind models.MatchKind, st MatchStore) {
			defer wg.Done()
			counts, err := st.CountByStatus(ctx)
			if err != nil {
				setErr(err)
				return
			}
			mu.Lock()
			summary.Matches[string(kind)] = counts
			mu.Unlock()
		}(kind, st)
	}

	wg.Wait()
	if firstErr != nil {
		return nil, firstErr
	}
	if summary.Bookings == nil {
		summary.Bookings = map[string]int64{}
	}
	return summary, nil
}

// ---------------------- SWEEP ----------------------

// Sweep vence matches (invitaciones y partidas) y completa bookings terminados.
// Es seguro correrlo en varias instancias a la vez: cada cierre es un update
// con versión y el que pierde solo suma un conflicto.
func (s *AdminMaintenanceService) Sweep(ctx context.Context) (*models.SweepResult, error) {
	start := s.now()
	res := &models.SweepResult{}

	expired, timedOut, conflicts, err := s.matches.ExpireDue(ctx)
	res.ExpiredMatches = expired
	res.TimedOutMatches = timedOut
	res.Conflicts += conflicts
	if err != nil {
		return res, err
	}

	completed, conflicts, err := s.bookings.AutoCompleteDue(ctx)
	res.CompletedBookings = completed
	res.Conflicts += conflicts
	if err != nil {
		return res, err
	}

	res.Elapsed = s.now().Sub(start)
	return res, nil
}

// RunSweeper corre Sweep cada interval hasta que se cancele ctx.
func (s *AdminMaintenanceService) RunSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	log.Printf("[sweeper] corriendo cada %s", interval)
	for {
		select {
		case <-ctx.Done():
			log.Println("[sweeper] detenido")
			return
		case <-ticker.C:
			res, err := s.Sweep(ctx)
			if err != nil {
				log.Printf("[sweeper] error: %v", err)
				continue
			}
			if res.ExpiredMatches+res.TimedOutMatches+res.CompletedBookings+res.Conflicts > 0 {
				log.Printf("[sweeper] expired=%d timeout=%d bookings=%d conflicts=%d (%s)",
					res.ExpiredMatches, res.TimedOutMatches, res.CompletedBookings, res.Conflicts, res.Elapsed)
			}
		}
	}
}
