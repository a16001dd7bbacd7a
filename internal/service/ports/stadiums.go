package ports

import (
	"context"

	"github.com/goalpark/stadium-booking/internal/model"
)

// StadiumStore resolves stadiums for the booking flow.  Only active
// stadiums are visible through it.
type StadiumStore interface {
	GetActiveByName(ctx context.Context, name string) (*model.Stadium, error)
	ListActive(ctx context.Context) ([]*model.Stadium, error)
}
