package service

import (
	"context"
	"strings"
	"time"

	"github.com/MandarSankhe/Frenchify-me-sub000/internal/events"
	"github.com/MandarSankhe/Frenchify-me-sub000/internal/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const defaultCurrency = "CAD"

type DonationService struct {
	donations DonationStore
	events    EventPublisher
	now       func() time.Time
}

func NewDonationService(donations DonationStore, pub EventPublisher) *DonationService {
	if pub == nil {
		pub = nopPublisher{}
	}
	return &DonationService{donations: donations, events: pub, now: time.Now}
}

type CreateDonationData struct {
	DonorID     *primitive.ObjectID
	DonorName   string
	AmountCents int64
	Currency    string
	Message     string
}

// Create registra una donación pendiente con una referencia nueva.
func (s *DonationService) Create(ctx context.Context, data CreateDonationData) (*models.Donation, error) {
	if data.AmountCents <= 0 {
		return nil, invalid("amountCents must be positive")
	}
	currency := strings.ToUpper(strings.TrimSpace(data.Currency))
	if currency == "" {
		currency = defaultCurrency
	}
	if len(currency) != 3 {
		return nil, invalid("currency must be an ISO 4217 code")
	}

	d := &models.Donation{
		ID:          primitive.NewObjectID(),
		Reference:   uuid.NewString(),
		DonorID:     data.DonorID,
		DonorName:   strings.TrimSpace(data.DonorName),
		AmountCents: data.AmountCents,
		Currency:    currency,
		Message:     strings.TrimSpace(data.Message),
		Status:      models.DonationPending,
		CreatedAt:   s.now().UTC(),
	}
	if err := s.donations.Insert(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

// Capture marca la donación como cobrada. Repetirlo no cambia nada.
func (s *DonationService) Capture(ctx context.Context, reference string) (*models.Donation, error) {
	captured, err := s.donations.MarkCaptured(ctx, reference, s.now().UTC())
	if err != nil {
		return nil, err
	}

	d, err := s.donations.FindByReference(ctx, reference)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, ErrNotFound
	}

	if captured {
		publish(ctx, s.events, events.DonationCaptured, map[string]any{
			"reference":   d.Reference,
			"amountCents": d.AmountCents,
			"currency":    d.Currency,
		})
	}
	return d, nil
}

func (s *DonationService) List(ctx context.Context, status string, limit, offset int) ([]models.Donation, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return s.donations.List(ctx, status, limit, offset)
}

func (s *DonationService) Totals(ctx context.Context) ([]models.DonationTotal, error) {
	return s.donations.Totals(ctx)
}
