package service

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/goalpark/stadium-booking/internal/booking"
	"github.com/goalpark/stadium-booking/internal/model"
	"github.com/goalpark/stadium-booking/internal/queue"
	"github.com/goalpark/stadium-booking/internal/repository"
)

type mockBookingStore struct{ mock.Mock }

func (m *mockBookingStore) FindConflicts(ctx context.Context, stadium string, date time.Time, start, end booking.TimeOfDay) ([]model.Booking, error) {
	args := m.Called(ctx, stadium, date, start, end)
	if v := args.Get(0); v != nil {
		return v.([]model.Booking), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockBookingStore) Create(ctx context.Context, b *model.Booking) ([]model.Booking, error) {
	args := m.Called(ctx, b)
	if v := args.Get(0); v != nil {
		return v.([]model.Booking), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockBookingStore) GetByID(ctx context.Context, id uint64) (*model.Booking, error) {
	args := m.Called(ctx, id)
	if v := args.Get(0); v != nil {
		return v.(*model.Booking), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockBookingStore) GetByIDForUser(ctx context.Context, id, userID uint64) (*model.Booking, error) {
	args := m.Called(ctx, id, userID)
	if v := args.Get(0); v != nil {
		return v.(*model.Booking), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockBookingStore) ListByUser(ctx context.Context, userID uint64) ([]model.Booking, error) {
	args := m.Called(ctx, userID)
	if v := args.Get(0); v != nil {
		return v.([]model.Booking), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockBookingStore) ListForDate(ctx context.Context, stadium string, date time.Time) ([]model.Booking, error) {
	args := m.Called(ctx, stadium, date)
	if v := args.Get(0); v != nil {
		return v.([]model.Booking), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockBookingStore) ListAll(ctx context.Context, f repository.ListFilter) ([]model.Booking, error) {
	args := m.Called(ctx, f)
	if v := args.Get(0); v != nil {
		return v.([]model.Booking), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockBookingStore) Confirm(ctx context.Context, id uint64, slipPath, slipFilename string) (*model.Booking, error) {
	args := m.Called(ctx, id, slipPath, slipFilename)
	if v := args.Get(0); v != nil {
		return v.(*model.Booking), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockBookingStore) Cancel(ctx context.Context, id uint64, scopeUser, cancelledBy *uint64, reason string, now time.Time) (*model.CancelledBooking, error) {
	args := m.Called(ctx, id, scopeUser, cancelledBy, reason, now)
	if v := args.Get(0); v != nil {
		return v.(*model.CancelledBooking), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockBookingStore) Delete(ctx context.Context, id uint64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockBookingStore) ListCancelledByUser(ctx context.Context, userID uint64) ([]model.CancelledBooking, error) {
	args := m.Called(ctx, userID)
	if v := args.Get(0); v != nil {
		return v.([]model.CancelledBooking), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockStadiumStore struct{ mock.Mock }

func (m *mockStadiumStore) GetActiveByName(ctx context.Context, name string) (*model.Stadium, error) {
	args := m.Called(ctx, name)
	if v := args.Get(0); v != nil {
		return v.(*model.Stadium), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockStadiumStore) ListActive(ctx context.Context) ([]*model.Stadium, error) {
	args := m.Called(ctx)
	if v := args.Get(0); v != nil {
		return v.([]*model.Stadium), args.Error(1)
	}
	return nil, args.Error(1)
}

type mockSlipStore struct{ mock.Mock }

func (m *mockSlipStore) Insert(ctx context.Context, s *model.PaymentSlip) error {
	return m.Called(ctx, s).Error(0)
}

type mockObjectStore struct{ mock.Mock }

func (m *mockObjectStore) Put(ctx context.Context, name string, r io.Reader, size int64) (string, error) {
	args := m.Called(ctx, name, r, size)
	return args.String(0), args.Error(1)
}

func (m *mockObjectStore) PublicURL(name string) string {
	return m.Called(name).String(0)
}

func (m *mockObjectStore) Delete(ctx context.Context, name string) error {
	return m.Called(ctx, name).Error(0)
}

type mockPublisher struct{ mock.Mock }

func (m *mockPublisher) Publish(ctx context.Context, ev queue.BookingEvent) error {
	return m.Called(ctx, ev).Error(0)
}

type fixture struct {
	bookings *mockBookingStore
	stadiums *mockStadiumStore
	slips    *mockSlipStore
	objects  *mockObjectStore
	events   *mockPublisher
	svc      *BookingService
}

func newFixture(cfg Config) *fixture {
	f := &fixture{
		bookings: &mockBookingStore{},
		stadiums: &mockStadiumStore{},
		slips:    &mockSlipStore{},
		objects:  &mockObjectStore{},
		events:   &mockPublisher{},
	}
	f.svc = NewBookingService(f.bookings, f.stadiums, f.slips, f.objects, f.events, cfg, zerolog.Nop())
	return f
}

func mainStadium() *model.Stadium {
	return &model.Stadium{
		ID:           1,
		Name:         "Main Stadium",
		Address:      "1 Arena Way",
		OpenTime:     "08:00",
		CloseTime:    "22:00",
		PricePerHour: 500,
		IsActive:     true,
	}
}

func TestCreateComputesTotalFromHours(t *testing.T) {
	f := newFixture(Config{})
	f.stadiums.On("GetActiveByName", mock.Anything, "Main Stadium").Return(mainStadium(), nil)
	f.bookings.On("Create", mock.Anything, mock.MatchedBy(func(b *model.Booking) bool {
		return b.StadiumName == "Main Stadium" &&
			b.StartTime == "10:00" && b.EndTime == "12:00" &&
			b.Duration == 2.0 && b.TotalPrice == 1000.0
	})).Run(func(args mock.Arguments) {
		b := args.Get(1).(*model.Booking)
		b.ID = 42
		b.Status = model.StatusPendingPayment
		b.PaymentStatus = model.PaymentPending
	}).Return(nil, nil)
	f.events.On("Publish", mock.Anything, mock.MatchedBy(func(ev queue.BookingEvent) bool {
		return ev.Type == queue.EventBookingCreated && ev.BookingID == 42
	})).Return(nil)

	got, err := f.svc.Create(context.Background(), CreateBookingRequest{
		StadiumName: "Main Stadium",
		BookerName:  "Somsak",
		Date:        "2026-09-01",
		StartTime:   "10:00",
		EndTime:     "12:00",
	})
	require.NoError(t, err)
	assert.Equal(t, uint64(42), got.ID)
	assert.Equal(t, 1000.0, got.TotalPrice)
	assert.Equal(t, DefaultPaymentMethod, got.PaymentMethod)
	f.bookings.AssertExpectations(t)
	f.events.AssertExpectations(t)
}

func TestCreateRejectsInvalidInput(t *testing.T) {
	f := newFixture(Config{})
	cases := []struct {
		name string
		req  CreateBookingRequest
	}{
		{"missing stadium", CreateBookingRequest{BookerName: "A", Date: "2026-09-01", StartTime: "10:00", EndTime: "11:00"}},
		{"missing booker", CreateBookingRequest{StadiumName: "Main Stadium", Date: "2026-09-01", StartTime: "10:00", EndTime: "11:00"}},
		{"bad date", CreateBookingRequest{StadiumName: "Main Stadium", BookerName: "A", Date: "01/09/2026", StartTime: "10:00", EndTime: "11:00"}},
		{"bad start", CreateBookingRequest{StadiumName: "Main Stadium", BookerName: "A", Date: "2026-09-01", StartTime: "25:00", EndTime: "11:00"}},
		{"inverted range", CreateBookingRequest{StadiumName: "Main Stadium", BookerName: "A", Date: "2026-09-01", StartTime: "12:00", EndTime: "10:00"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.svc.Create(context.Background(), tc.req)
			be := booking.AsError(err)
			require.NotNil(t, be)
			assert.Equal(t, booking.KindValidation, be.Kind)
		})
	}
	f.bookings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateConflictCarriesCollidingRows(t *testing.T) {
	f := newFixture(Config{})
	taken := []model.Booking{{ID: 7, StartTime: "10:00", EndTime: "12:00"}}
	f.stadiums.On("GetActiveByName", mock.Anything, "Main Stadium").Return(mainStadium(), nil)
	f.bookings.On("Create", mock.Anything, mock.Anything).Return(taken, repository.ErrBookingConflict)

	_, err := f.svc.Create(context.Background(), CreateBookingRequest{
		StadiumName: "Main Stadium",
		BookerName:  "Somsak",
		Date:        "2026-09-01",
		StartTime:   "11:00",
		EndTime:     "13:00",
	})
	be := booking.AsError(err)
	require.NotNil(t, be)
	assert.Equal(t, booking.KindConflict, be.Kind)
	require.Len(t, be.Conflicts, 1)
	assert.Equal(t, uint64(7), be.Conflicts[0].ID)
	f.events.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestCreateUnknownStadium(t *testing.T) {
	f := newFixture(Config{})
	f.stadiums.On("GetActiveByName", mock.Anything, "Ghost Park").Return(nil, repository.ErrStadiumNotFound)

	_, err := f.svc.Create(context.Background(), CreateBookingRequest{
		StadiumName: "Ghost Park",
		BookerName:  "Somsak",
		Date:        "2026-09-01",
		StartTime:   "10:00",
		EndTime:     "11:00",
	})
	be := booking.AsError(err)
	require.NotNil(t, be)
	assert.Equal(t, booking.KindNotFound, be.Kind)
}

func TestCheckConflictFailsOpenByDefault(t *testing.T) {
	f := newFixture(Config{})
	f.bookings.On("FindConflicts", mock.Anything, "Main Stadium", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("read timeout"))

	rep, err := f.svc.CheckConflict(context.Background(), "Main Stadium", "2026-09-01", "10:00", "12:00")
	require.NoError(t, err)
	assert.False(t, rep.HasConflict)
	assert.Empty(t, rep.Conflicts)
}

func TestCheckConflictStrictModeSurfacesReadErrors(t *testing.T) {
	f := newFixture(Config{StrictConflicts: true})
	f.bookings.On("FindConflicts", mock.Anything, "Main Stadium", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("read timeout"))

	_, err := f.svc.CheckConflict(context.Background(), "Main Stadium", "2026-09-01", "10:00", "12:00")
	be := booking.AsError(err)
	require.NotNil(t, be)
	assert.Equal(t, booking.KindUnknown, be.Kind)
}

func TestCheckConflictReportsOverlaps(t *testing.T) {
	f := newFixture(Config{})
	taken := []model.Booking{{ID: 9}}
	f.bookings.On("FindConflicts", mock.Anything, "Main Stadium", mock.Anything, mock.Anything, mock.Anything).
		Return(taken, nil)

	rep, err := f.svc.CheckConflict(context.Background(), "Main Stadium", "2026-09-01", "10:00", "12:00")
	require.NoError(t, err)
	assert.True(t, rep.HasConflict)
	assert.Len(t, rep.Conflicts, 1)
}

func pendingBooking(id uint64) *model.Booking {
	return &model.Booking{
		ID:            id,
		StadiumName:   "Main Stadium",
		BookingDate:   time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		StartTime:     "10:00",
		EndTime:       "12:00",
		TotalPrice:    1000,
		Status:        model.StatusPendingPayment,
		PaymentStatus: model.PaymentPending,
	}
}

func slipUpload() *booking.SlipUpload {
	return &booking.SlipUpload{
		Filename:    "slip.jpg",
		ContentType: "image/jpeg",
		Size:        2048,
		Content:     strings.NewReader(strings.Repeat("x", 2048)),
	}
}

func TestAttachPaymentEvidenceConfirmsBooking(t *testing.T) {
	f := newFixture(Config{})
	userID := uint64(5)
	f.bookings.On("GetByIDForUser", mock.Anything, uint64(42), userID).Return(pendingBooking(42), nil)
	f.objects.On("Put", mock.Anything, mock.MatchedBy(func(name string) bool {
		return strings.HasPrefix(name, "slip_42_") && strings.HasSuffix(name, ".jpg")
	}), mock.Anything, int64(2048)).Return("payment-slips/slip_42_1.jpg", nil)
	f.objects.On("PublicURL", mock.Anything).Return("/storage/payment-slips/slip_42_1.jpg")
	f.slips.On("Insert", mock.Anything, mock.MatchedBy(func(s *model.PaymentSlip) bool {
		return s.BookingID == 42 &&
			s.VerificationStatus == model.SlipVerified &&
			s.VerifiedBy != nil && *s.VerifiedBy == model.VerifiedByAuto
	})).Return(nil)
	confirmed := pendingBooking(42)
	confirmed.Status = model.StatusConfirmed
	confirmed.PaymentStatus = model.PaymentPaid
	f.bookings.On("Confirm", mock.Anything, uint64(42), "/storage/payment-slips/slip_42_1.jpg", mock.Anything).
		Return(confirmed, nil)
	f.events.On("Publish", mock.Anything, mock.MatchedBy(func(ev queue.BookingEvent) bool {
		return ev.Type == queue.EventBookingConfirmed && ev.BookingID == 42
	})).Return(nil)

	got, err := f.svc.AttachPaymentEvidence(context.Background(), 42, &userID, slipUpload())
	require.NoError(t, err)
	assert.Equal(t, model.StatusConfirmed, got.Status)
	assert.Equal(t, model.PaymentPaid, got.PaymentStatus)
	f.slips.AssertExpectations(t)
	f.bookings.AssertExpectations(t)
}

func TestAttachPaymentEvidenceRejectsBadSlip(t *testing.T) {
	f := newFixture(Config{})
	userID := uint64(5)
	f.bookings.On("GetByIDForUser", mock.Anything, uint64(42), userID).Return(pendingBooking(42), nil)

	up := slipUpload()
	up.ContentType = "application/pdf"
	_, err := f.svc.AttachPaymentEvidence(context.Background(), 42, &userID, up)
	be := booking.AsError(err)
	require.NotNil(t, be)
	assert.Equal(t, booking.KindValidation, be.Kind)
	f.objects.AssertNotCalled(t, "Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	f.bookings.AssertNotCalled(t, "Confirm", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAttachPaymentEvidenceObjectWriteFailure(t *testing.T) {
	f := newFixture(Config{})
	userID := uint64(5)
	f.bookings.On("GetByIDForUser", mock.Anything, uint64(42), userID).Return(pendingBooking(42), nil)
	f.objects.On("Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return("", errors.New("disk full"))

	_, err := f.svc.AttachPaymentEvidence(context.Background(), 42, &userID, slipUpload())
	be := booking.AsError(err)
	require.NotNil(t, be)
	assert.Equal(t, booking.KindStorage, be.Kind)
	f.slips.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
	f.bookings.AssertNotCalled(t, "Confirm", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAttachPaymentEvidenceCleansUpOrphanObject(t *testing.T) {
	f := newFixture(Config{})
	userID := uint64(5)
	f.bookings.On("GetByIDForUser", mock.Anything, uint64(42), userID).Return(pendingBooking(42), nil)
	f.objects.On("Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return("payment-slips/slip_42_1.jpg", nil)
	f.slips.On("Insert", mock.Anything, mock.Anything).Return(errors.New("deadlock"))
	f.objects.On("Delete", mock.Anything, mock.MatchedBy(func(name string) bool {
		return strings.HasPrefix(name, "slip_42_")
	})).Return(nil)

	_, err := f.svc.AttachPaymentEvidence(context.Background(), 42, &userID, slipUpload())
	be := booking.AsError(err)
	require.NotNil(t, be)
	assert.Equal(t, booking.KindStorage, be.Kind)
	f.objects.AssertExpectations(t)
	f.bookings.AssertNotCalled(t, "Confirm", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAttachPaymentEvidenceScopedToOwner(t *testing.T) {
	f := newFixture(Config{})
	userID := uint64(6)
	f.bookings.On("GetByIDForUser", mock.Anything, uint64(42), userID).
		Return(nil, repository.ErrBookingNotFound)

	_, err := f.svc.AttachPaymentEvidence(context.Background(), 42, &userID, slipUpload())
	be := booking.AsError(err)
	require.NotNil(t, be)
	assert.Equal(t, booking.KindNotFound, be.Kind)
}

func TestCancelArchivesAndPublishes(t *testing.T) {
	f := newFixture(Config{})
	userID := uint64(5)
	arch := &model.CancelledBooking{
		OriginalBookingID: 42,
		UserID:            &userID,
		StadiumName:       "Main Stadium",
		BookingDate:       time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		StartTime:         "10:00",
		EndTime:           "12:00",
		TotalPrice:        1000,
		RefundStatus:      model.RefundPending,
		RefundAmount:      1000,
	}
	f.bookings.On("Cancel", mock.Anything, uint64(42), &userID, &userID, "changed plans", mock.Anything).
		Return(arch, nil)
	f.events.On("Publish", mock.Anything, mock.MatchedBy(func(ev queue.BookingEvent) bool {
		return ev.Type == queue.EventBookingCancelled && ev.RefundAmount == 1000
	})).Return(nil)

	got, err := f.svc.Cancel(context.Background(), 42, &userID, "changed plans")
	require.NoError(t, err)
	assert.Equal(t, model.RefundPending, got.RefundStatus)
	assert.Equal(t, 1000.0, got.RefundAmount)
	f.events.AssertExpectations(t)
}

func TestCancelPastDateIsValidationError(t *testing.T) {
	f := newFixture(Config{})
	userID := uint64(5)
	f.bookings.On("Cancel", mock.Anything, uint64(42), &userID, &userID, mock.Anything, mock.Anything).
		Return(nil, repository.ErrNotCancellable)

	_, err := f.svc.Cancel(context.Background(), 42, &userID, "")
	be := booking.AsError(err)
	require.NotNil(t, be)
	assert.Equal(t, booking.KindValidation, be.Kind)
}

func TestCancelMissingBookingIsNotFound(t *testing.T) {
	f := newFixture(Config{})
	userID := uint64(5)
	f.bookings.On("Cancel", mock.Anything, uint64(42), &userID, &userID, mock.Anything, mock.Anything).
		Return(nil, repository.ErrBookingNotFound)

	_, err := f.svc.Cancel(context.Background(), 42, &userID, "again")
	be := booking.AsError(err)
	require.NotNil(t, be)
	assert.Equal(t, booking.KindNotFound, be.Kind)
}

func TestPublishFailureDoesNotFailCreate(t *testing.T) {
	f := newFixture(Config{})
	f.stadiums.On("GetActiveByName", mock.Anything, "Main Stadium").Return(mainStadium(), nil)
	f.bookings.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		args.Get(1).(*model.Booking).ID = 42
	}).Return(nil, nil)
	f.events.On("Publish", mock.Anything, mock.Anything).Return(errors.New("broker down"))

	_, err := f.svc.Create(context.Background(), CreateBookingRequest{
		StadiumName: "Main Stadium",
		BookerName:  "Somsak",
		Date:        "2026-09-01",
		StartTime:   "10:00",
		EndTime:     "11:00",
	})
	assert.NoError(t, err)
}

func TestAvailabilityValidatesDate(t *testing.T) {
	f := newFixture(Config{})
	_, err := f.svc.Availability(context.Background(), "Main Stadium", "tomorrow")
	be := booking.AsError(err)
	require.NotNil(t, be)
	assert.Equal(t, booking.KindValidation, be.Kind)
}
