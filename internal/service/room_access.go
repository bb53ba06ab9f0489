package service

import (
	"context"
	"strings"

	"github.com/MandarSankhe/Frenchify-me-sub000/internal/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RoomAccess decide quién puede entrar a una sala del relay.
// Salas válidas: booking:<id>, writing-match:<id>, image-match:<id>.
type RoomAccess struct {
	bookings BookingStore
	matches  map[models.MatchKind]MatchStore
}

func NewRoomAccess(bookings BookingStore, matches map[models.MatchKind]MatchStore) *RoomAccess {
	return &RoomAccess{bookings: bookings, matches: matches}
}

func (a *RoomAccess) CanJoin(ctx context.Context, userID primitive.ObjectID, role, room string) (bool, error) {
	prefix, rawID, ok := strings.Cut(room, ":")
	if !ok {
		return false, nil
	}
	id, err := primitive.ObjectIDFromHex(rawID)
	if err != nil {
		return false, nil
	}

	isAdmin := role == models.UserTypeAdmin

	if prefix == "booking" {
		b, err := a.bookings.FindByID(ctx, id)
		if err != nil {
			return false, err
		}
		if b == nil {
			return false, nil
		}
		return isAdmin || b.IsParticipant(userID), nil
	}

	kind, found := strings.CutSuffix(prefix, "-match")
	if !found {
		return false, nil
	}
	st, ok := a.matches[models.MatchKind(kind)]
	if !ok {
		return false, nil
	}
	m, err := st.FindByID(ctx, id)
	if err != nil {
		return false, err
	}
	if m == nil {
		return false, nil
	}
	return isAdmin || m.IsParticipant(userID), nil
}
