package ports

import (
	"context"

	"github.com/goalpark/stadium-booking/internal/model"
)

// SlipStore records payment-slip metadata rows.
type SlipStore interface {
	Insert(ctx context.Context, s *model.PaymentSlip) error
}
