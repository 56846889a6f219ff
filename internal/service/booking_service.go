package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/NawfalRAZOUK7/hotel-management-sub000/internal/config"
	"github.com/NawfalRAZOUK7/hotel-management-sub000/internal/model"
	"github.com/NawfalRAZOUK7/hotel-management-sub000/internal/queue"
	"github.com/NawfalRAZOUK7/hotel-management-sub000/internal/repository"
	"github.com/NawfalRAZOUK7/hotel-management-sub000/internal/utils"
)

// BookingService drives every booking state transition. Each transition
// runs as one transaction: lock the booking row, check the guards, move
// inventory, write the booking, touch the token if the transition involves
// one, then commit. Cache invalidation and event publication happen only
// after a successful commit and are best effort.
type BookingService struct {
	bookings  *repository.BookingRepo
	inventory *repository.InventoryRepo
	rooms     *repository.RoomRepo
	hotels    *repository.HotelRepo
	tokens    *TokenService
	pricing   PricingOracle
	policy    CancellationPolicy
	rules     model.StayRules
	cache     CacheInvalidationPort
	notifier  NotificationPort
	txTimeout time.Duration
}

// NewBookingService wires the state machine and its collaborators.
func NewBookingService(
	bookings *repository.BookingRepo,
	inventory *repository.InventoryRepo,
	rooms *repository.RoomRepo,
	hotels *repository.HotelRepo,
	tokens *TokenService,
	pricing PricingOracle,
	cfg config.Config,
	cache CacheInvalidationPort,
	notifier NotificationPort,
) *BookingService {
	return &BookingService{
		bookings:  bookings,
		inventory: inventory,
		rooms:     rooms,
		hotels:    hotels,
		tokens:    tokens,
		pricing:   pricing,
		policy:    NewCancellationPolicy(cfg.Refund),
		rules: model.StayRules{
			MinNights:       cfg.Booking.MinStayNights,
			MaxNights:       cfg.Booking.MaxStayNights,
			MaxRoomsPerType: cfg.Booking.MaxRoomsPerType,
		},
		cache:     cache,
		notifier:  notifier,
		txTimeout: cfg.Booking.TxTimeout,
	}
}

// RoomRequest is one requested room-type line.
type RoomRequest struct {
	RoomTypeID uint64
	Quantity   int
}

// CreateBookingInput carries everything needed to open a booking.
type CreateBookingInput struct {
	HotelID    uint64
	CustomerID uint64
	CheckIn    time.Time
	CheckOut   time.Time
	Rooms      []RoomRequest
}

func (s *BookingService) begin(ctx context.Context) (context.Context, context.CancelFunc, *sql.Tx, error) {
	cancel := func() {}
	if s.txTimeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, s.txTimeout)
	}
	tx, err := s.bookings.DB().BeginTx(ctx, nil)
	if err != nil {
		cancel()
		return nil, nil, nil, repository.TranslateMySQL(err)
	}
	return ctx, cancel, tx, nil
}

func quantitiesOf(rooms []model.BookingRoom) []repository.RoomTypeQuantity {
	out := make([]repository.RoomTypeQuantity, 0, len(rooms))
	for _, rm := range rooms {
		out = append(out, repository.RoomTypeQuantity{RoomTypeID: rm.RoomTypeID, Quantity: rm.Quantity})
	}
	return out
}

// remainingStay clamps a stay to the days that have not started yet, so a
// release after check-in only returns future days to the pool. Days
// already slept in are retired, never re-sold.
func remainingStay(stay model.DateRange, now time.Time) model.DateRange {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	from := stay.From
	if today.After(from) {
		from = today
	}
	return model.DateRange{From: from, To: stay.To}
}

// afterCommit runs the best-effort collaborators. It uses a fresh context
// so a cancelled request cannot abandon invalidation of an already
// committed change.
func (s *BookingService) afterCommit(hotelID uint64, ev *queue.BookingLifecycleEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.cache.InvalidateHotel(ctx, hotelID); err != nil {
		log.Printf("cache invalidation failed for hotel %d: %v", hotelID, err)
	}
	if ev != nil {
		if err := s.notifier.Notify(ctx, *ev); err != nil {
			log.Printf("event publish failed for booking %d: %v", ev.BookingID, err)
		}
	}
}

func (s *BookingService) eventFor(kind string, b *model.Booking) *queue.BookingLifecycleEvent {
	name := ""
	if h, err := s.hotels.GetHotel(context.Background(), b.HotelID); err == nil {
		name = h.Name
	}
	rooms := 0
	for _, rm := range b.Rooms {
		rooms += rm.Quantity
	}
	return &queue.BookingLifecycleEvent{
		Event:         kind,
		BookingID:     b.ID,
		Reference:     b.Reference,
		CustomerID:    b.CustomerID,
		HotelID:       b.HotelID,
		HotelName:     name,
		CheckInDate:   b.CheckInDate.Format("2006-01-02"),
		CheckOutDate:  b.CheckOutDate.Format("2006-01-02"),
		RoomCount:     rooms,
		TotalCents:    b.TotalCents,
		RefundPercent: b.RefundPercent,
		OccurredAt:    time.Now().UTC().Format(time.RFC3339),
	}
}

// priceLines verifies every requested room type belongs to the hotel and
// converts requests into priced booking lines.
func (s *BookingService) priceLines(ctx context.Context, hotelID uint64, reqs []RoomRequest) ([]model.BookingRoom, error) {
	lines := make([]model.BookingRoom, 0, len(reqs))
	for _, req := range reqs {
		if _, err := s.hotels.GetRoomType(ctx, hotelID, req.RoomTypeID); err != nil {
			return nil, err
		}
		rate, err := s.pricing.NightlyRateCents(ctx, hotelID, req.RoomTypeID)
		if err != nil {
			return nil, err
		}
		lines = append(lines, model.BookingRoom{
			RoomTypeID: req.RoomTypeID,
			Quantity:   req.Quantity,
			PriceCents: rate,
		})
	}
	return lines, nil
}

func totalOf(lines []model.BookingRoom, nights int) int64 {
	var total int64
	for _, l := range lines {
		total += l.PriceCents * int64(l.Quantity) * int64(nights)
	}
	return total
}

// Create opens a booking in PENDING and reserves inventory for every
// requested room type over the whole stay, all-or-nothing.
func (s *BookingService) Create(ctx context.Context, in CreateBookingInput) (*model.Booking, error) {
	h, err := s.hotels.GetHotel(ctx, in.HotelID)
	if err != nil {
		return nil, err
	}
	if !h.IsActive {
		return nil, fmt.Errorf("%w: hotel %d is not accepting bookings", model.ErrValidation, in.HotelID)
	}

	lines, err := s.priceLines(ctx, in.HotelID, in.Rooms)
	if err != nil {
		return nil, err
	}
	stay := model.DateRange{From: in.CheckIn, To: in.CheckOut}
	if err := model.ValidateStay(stay, lines, s.rules); err != nil {
		return nil, err
	}

	b := &model.Booking{
		HotelID:      in.HotelID,
		CustomerID:   in.CustomerID,
		CheckInDate:  stay.From,
		CheckOutDate: stay.To,
		Status:       model.StatusPending,
		Rooms:        lines,
		TotalCents:   totalOf(lines, stay.Nights()),
	}

	ctx, cancel, tx, err := s.begin(ctx)
	if err != nil {
		return nil, err
	}
	defer cancel()
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if err := s.inventory.ReserveTx(ctx, tx, in.HotelID, quantitiesOf(lines), stay); err != nil {
		return nil, err
	}
	// Reference collisions are vanishingly rare but possible; regenerate
	// and retry the insert a few times before giving up.
	for attempt := 0; ; attempt++ {
		ref, err := utils.NewBookingReference()
		if err != nil {
			return nil, err
		}
		b.Reference = ref
		err = s.bookings.CreateTx(ctx, tx, b)
		if err == nil {
			break
		}
		if !errors.Is(err, repository.ErrDuplicateReference) || attempt >= 2 {
			return nil, err
		}
	}
	if err := s.bookings.AppendHistoryTx(ctx, tx, model.StatusHistoryEntry{
		BookingID: b.ID,
		ToStatus:  model.StatusPending,
		Reason:    "booking created",
		ActorID:   in.CustomerID,
	}); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, repository.TranslateMySQL(err)
	}
	committed = true

	s.afterCommit(b.HotelID, nil)
	return b, nil
}

// Validate is the staff decision on a PENDING booking. Approval re-checks
// that the ledger still holds the reservation, confirms the booking and
// issues the first check-in token; rejection releases the reservation.
func (s *BookingService) Validate(ctx context.Context, bookingID, actorID uint64, approve bool, reason string) (*model.Booking, *IssuedToken, error) {
	ctx, cancel, tx, err := s.begin(ctx)
	if err != nil {
		return nil, nil, err
	}
	defer cancel()
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	b, err := s.bookings.GetForUpdateTx(ctx, tx, bookingID)
	if err != nil {
		return nil, nil, err
	}

	to := model.StatusRejected
	if approve {
		to = model.StatusConfirmed
	}
	if err := model.GuardTransition(b.Status, to); err != nil {
		return nil, nil, err
	}

	var issued *IssuedToken
	if approve {
		// The reservation was taken at creation; this re-check only fails
		// after a manual ledger correction.
		if err := s.inventory.HoldsTx(ctx, tx, b.HotelID, quantitiesOf(b.Rooms), b.Stay()); err != nil {
			return nil, nil, err
		}
	} else {
		if err := s.inventory.ReleaseTx(ctx, tx, b.HotelID, quantitiesOf(b.Rooms), b.Stay()); err != nil {
			return nil, nil, err
		}
	}

	if err := s.bookings.UpdateStatusTx(ctx, tx, b.ID, to, nil); err != nil {
		return nil, nil, err
	}
	if err := s.bookings.AppendHistoryTx(ctx, tx, model.StatusHistoryEntry{
		BookingID:  b.ID,
		FromStatus: b.Status,
		ToStatus:   to,
		Reason:     reason,
		ActorID:    actorID,
	}); err != nil {
		return nil, nil, err
	}

	prev := b.Status
	b.Status = to
	if approve {
		issued, err = s.tokens.IssueTx(ctx, tx, b, model.SecurityContext{})
		if err != nil {
			b.Status = prev
			return nil, nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, nil, repository.TranslateMySQL(err)
	}
	committed = true

	kind := queue.EventBookingRejected
	if approve {
		kind = queue.EventBookingConfirmed
	}
	s.afterCommit(b.HotelID, s.eventFor(kind, b))
	return b, issued, nil
}

// CheckInInput carries the check-in command. RawToken is optional: a
// guest presents their credential, staff at the desk may check a guest in
// after manual verification without one.
type CheckInInput struct {
	BookingID uint64
	HotelID   uint64 // hotel the scan happens at
	RawToken  string
	ActorID   uint64
	ActorRole string
}

// CheckIn moves a CONFIRMED booking to CHECKED_IN. When a token is
// presented it is validated and consumed in the same transaction, so the
// token spend and the status change stand or fall together. Concrete
// rooms are assigned from the free pool of each booked type.
func (s *BookingService) CheckIn(ctx context.Context, in CheckInInput) (*model.Booking, string, error) {
	ctx, cancel, tx, err := s.begin(ctx)
	if err != nil {
		return nil, "", err
	}
	defer cancel()
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	b, err := s.bookings.GetForUpdateTx(ctx, tx, in.BookingID)
	if err != nil {
		return nil, "", err
	}
	if err := model.GuardTransition(b.Status, model.StatusCheckedIn); err != nil {
		return nil, "", err
	}
	if b.HotelID != in.HotelID {
		return nil, "", model.ErrTokenContextMismatch
	}

	warning := ""
	if in.RawToken != "" {
		res, err := s.tokens.ConsumeTx(ctx, tx, in.RawToken, model.TokenContext{
			HotelID:   in.HotelID,
			BookingID: in.BookingID,
		}, in.ActorID)
		if err != nil {
			return nil, "", err
		}
		warning = res.Warning
	} else if !model.StaffRole(in.ActorRole) {
		// Checking in without a token requires desk staff.
		return nil, "", repository.ErrForbidden
	}

	for i, line := range b.Rooms {
		free, err := s.rooms.FreeRoomsByTypeForUpdateTx(ctx, tx, b.HotelID, line.RoomTypeID, line.Quantity)
		if err != nil {
			return nil, "", err
		}
		if len(free) < line.Quantity {
			return nil, "", repository.ErrNoFreeRoom
		}
		assigned := make([]uint64, 0, line.Quantity)
		for _, rm := range free {
			if err := s.rooms.OccupyTx(ctx, tx, rm.ID, b.ID); err != nil {
				return nil, "", err
			}
			assigned = append(assigned, rm.ID)
		}
		if err := s.bookings.AssignRoomsTx(ctx, tx, b.ID, line.ID, assigned); err != nil {
			return nil, "", err
		}
		b.Rooms[i].AssignedRoomIDs = assigned
	}

	if err := s.bookings.UpdateStatusTx(ctx, tx, b.ID, model.StatusCheckedIn, nil); err != nil {
		return nil, "", err
	}
	if err := s.bookings.AppendHistoryTx(ctx, tx, model.StatusHistoryEntry{
		BookingID:  b.ID,
		FromStatus: b.Status,
		ToStatus:   model.StatusCheckedIn,
		Reason:     "guest checked in",
		ActorID:    in.ActorID,
	}); err != nil {
		return nil, "", err
	}

	if err := tx.Commit(); err != nil {
		return nil, "", repository.TranslateMySQL(err)
	}
	committed = true

	b.Status = model.StatusCheckedIn
	s.afterCommit(b.HotelID, s.eventFor(queue.EventBookingCheckedIn, b))
	return b, warning, nil
}

// CheckOut completes a CHECKED_IN booking. Occupied rooms return to the
// pool; ledger days already slept in are retired as consumed, while an
// early departure releases the remaining future days.
func (s *BookingService) CheckOut(ctx context.Context, bookingID, actorID uint64) (*model.Booking, error) {
	ctx, cancel, tx, err := s.begin(ctx)
	if err != nil {
		return nil, err
	}
	defer cancel()
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	b, err := s.bookings.GetForUpdateTx(ctx, tx, bookingID)
	if err != nil {
		return nil, err
	}
	if err := model.GuardTransition(b.Status, model.StatusCompleted); err != nil {
		return nil, err
	}

	if _, err := s.rooms.ReleaseByBookingTx(ctx, tx, b.ID); err != nil {
		return nil, err
	}
	if rest := remainingStay(b.Stay(), time.Now().UTC()); rest.Nights() > 0 {
		if err := s.inventory.ReleaseTx(ctx, tx, b.HotelID, quantitiesOf(b.Rooms), rest); err != nil {
			return nil, err
		}
	}

	if err := s.bookings.UpdateStatusTx(ctx, tx, b.ID, model.StatusCompleted, nil); err != nil {
		return nil, err
	}
	if err := s.bookings.AppendHistoryTx(ctx, tx, model.StatusHistoryEntry{
		BookingID:  b.ID,
		FromStatus: b.Status,
		ToStatus:   model.StatusCompleted,
		Reason:     "guest checked out",
		ActorID:    actorID,
	}); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, repository.TranslateMySQL(err)
	}
	committed = true

	b.Status = model.StatusCompleted
	s.afterCommit(b.HotelID, s.eventFor(queue.EventBookingCompleted, b))
	return b, nil
}

// CancelInput carries the cancellation command. Override, when set by a
// staff actor, replaces the computed refund percentage.
type CancelInput struct {
	BookingID uint64
	ActorID   uint64
	ActorRole string
	Reason    string
	Override  *int
}

// Cancel moves a PENDING or CONFIRMED booking to CANCELLED. The refund
// percentage is computed from the hours remaining until check-in, persisted
// on the booking for audit and never recomputed. The ledger reservation is
// released and any ACTIVE token revoked, all in one transaction.
func (s *BookingService) Cancel(ctx context.Context, in CancelInput) (*model.Booking, error) {
	ctx, cancel, tx, err := s.begin(ctx)
	if err != nil {
		return nil, err
	}
	defer cancel()
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	b, err := s.bookings.GetForUpdateTx(ctx, tx, in.BookingID)
	if err != nil {
		return nil, err
	}
	if !model.StaffRole(in.ActorRole) && in.ActorID != b.CustomerID {
		return nil, repository.ErrForbidden
	}
	if err := model.GuardTransition(b.Status, model.StatusCancelled); err != nil {
		return nil, err
	}

	refund := s.policy.RefundPercent(b, time.Now().UTC())
	refund, err = ApplyOverride(in.ActorRole, refund, in.Override)
	if err != nil {
		return nil, err
	}

	if err := s.inventory.ReleaseTx(ctx, tx, b.HotelID, quantitiesOf(b.Rooms), b.Stay()); err != nil {
		return nil, err
	}
	if err := s.tokens.RevokeActiveForBookingTx(ctx, tx, b.ID); err != nil {
		return nil, err
	}
	if err := s.bookings.UpdateStatusTx(ctx, tx, b.ID, model.StatusCancelled, &refund); err != nil {
		return nil, err
	}
	if err := s.bookings.AppendHistoryTx(ctx, tx, model.StatusHistoryEntry{
		BookingID:  b.ID,
		FromStatus: b.Status,
		ToStatus:   model.StatusCancelled,
		Reason:     in.Reason,
		ActorID:    in.ActorID,
	}); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, repository.TranslateMySQL(err)
	}
	committed = true

	b.Status = model.StatusCancelled
	b.RefundPercent = &refund
	s.afterCommit(b.HotelID, s.eventFor(queue.EventBookingCancelled, b))
	return b, nil
}

// ModifyInput carries the modification command. Nil fields keep the
// current value. Revalidate lets staff modify a CONFIRMED booking, which
// sends it back through validation as PENDING.
type ModifyInput struct {
	BookingID  uint64
	ActorID    uint64
	ActorRole  string
	CheckIn    *time.Time
	CheckOut   *time.Time
	Rooms      []RoomRequest // nil keeps current lines
	Revalidate bool
}

// Modify swaps a booking's reservation for a new one in a single
// transaction: the old hold is released, the new one acquired, and if
// acquisition fails everything rolls back with the booking untouched.
// Only PENDING bookings may be modified; staff may modify a CONFIRMED
// booking with the explicit revalidation flag, which demotes it to
// PENDING for a fresh staff decision.
func (s *BookingService) Modify(ctx context.Context, in ModifyInput) (*model.Booking, error) {
	ctx, cancel, tx, err := s.begin(ctx)
	if err != nil {
		return nil, err
	}
	defer cancel()
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	b, err := s.bookings.GetForUpdateTx(ctx, tx, in.BookingID)
	if err != nil {
		return nil, err
	}
	if !model.StaffRole(in.ActorRole) && in.ActorID != b.CustomerID {
		return nil, repository.ErrForbidden
	}
	demote := false
	switch b.Status {
	case model.StatusPending:
	case model.StatusConfirmed:
		if !in.Revalidate || !model.StaffRole(in.ActorRole) {
			return nil, fmt.Errorf("%w: CONFIRMED bookings require staff revalidation", model.ErrInvalidTransition)
		}
		demote = true
	default:
		return nil, fmt.Errorf("%w: cannot modify a booking in %s", model.ErrInvalidTransition, b.Status)
	}

	newStay := b.Stay()
	if in.CheckIn != nil {
		newStay.From = *in.CheckIn
	}
	if in.CheckOut != nil {
		newStay.To = *in.CheckOut
	}
	newLines := b.Rooms
	if in.Rooms != nil {
		newLines, err = s.priceLines(ctx, b.HotelID, in.Rooms)
		if err != nil {
			return nil, err
		}
	}
	if err := model.ValidateStay(newStay, newLines, s.rules); err != nil {
		return nil, err
	}

	// Release old, acquire new. Both happen inside this transaction, so a
	// failed acquisition rolls the release back too.
	if err := s.inventory.ReleaseTx(ctx, tx, b.HotelID, quantitiesOf(b.Rooms), b.Stay()); err != nil {
		return nil, err
	}
	if err := s.inventory.ReserveTx(ctx, tx, b.HotelID, quantitiesOf(newLines), newStay); err != nil {
		return nil, err
	}

	total := totalOf(newLines, newStay.Nights())
	if err := s.bookings.UpdateStayTx(ctx, tx, b.ID, newStay, total); err != nil {
		return nil, err
	}
	if in.Rooms != nil {
		b.Rooms = newLines
		if err := s.bookings.ReplaceRoomsTx(ctx, tx, b); err != nil {
			return nil, err
		}
	}
	if demote {
		if err := s.tokens.RevokeActiveForBookingTx(ctx, tx, b.ID); err != nil {
			return nil, err
		}
		if err := s.bookings.UpdateStatusTx(ctx, tx, b.ID, model.StatusPending, nil); err != nil {
			return nil, err
		}
		if err := s.bookings.AppendHistoryTx(ctx, tx, model.StatusHistoryEntry{
			BookingID:  b.ID,
			FromStatus: model.StatusConfirmed,
			ToStatus:   model.StatusPending,
			Reason:     "modified, requires revalidation",
			ActorID:    in.ActorID,
		}); err != nil {
			return nil, err
		}
		b.Status = model.StatusPending
	}

	if err := tx.Commit(); err != nil {
		return nil, repository.TranslateMySQL(err)
	}
	committed = true

	b.CheckInDate = newStay.From
	b.CheckOutDate = newStay.To
	b.TotalCents = total
	s.afterCommit(b.HotelID, nil)
	return b, nil
}

// MarkNoShow retires a CONFIRMED booking whose check-in date has passed
// without the guest arriving. Staff only. Remaining ledger days return to
// the pool and any ACTIVE token is revoked.
func (s *BookingService) MarkNoShow(ctx context.Context, bookingID, actorID uint64, actorRole string) (*model.Booking, error) {
	if !model.StaffRole(actorRole) {
		return nil, repository.ErrForbidden
	}
	ctx, cancel, tx, err := s.begin(ctx)
	if err != nil {
		return nil, err
	}
	defer cancel()
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	b, err := s.bookings.GetForUpdateTx(ctx, tx, bookingID)
	if err != nil {
		return nil, err
	}
	if err := model.GuardTransition(b.Status, model.StatusNoShow); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	if !now.After(b.CheckInDate) {
		return nil, fmt.Errorf("%w: check-in date has not passed yet", model.ErrValidation)
	}

	if rest := remainingStay(b.Stay(), now); rest.Nights() > 0 {
		if err := s.inventory.ReleaseTx(ctx, tx, b.HotelID, quantitiesOf(b.Rooms), rest); err != nil {
			return nil, err
		}
	}
	if err := s.tokens.RevokeActiveForBookingTx(ctx, tx, b.ID); err != nil {
		return nil, err
	}
	if err := s.bookings.UpdateStatusTx(ctx, tx, b.ID, model.StatusNoShow, nil); err != nil {
		return nil, err
	}
	if err := s.bookings.AppendHistoryTx(ctx, tx, model.StatusHistoryEntry{
		BookingID:  b.ID,
		FromStatus: b.Status,
		ToStatus:   model.StatusNoShow,
		Reason:     "guest did not arrive",
		ActorID:    actorID,
	}); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, repository.TranslateMySQL(err)
	}
	committed = true

	b.Status = model.StatusNoShow
	s.afterCommit(b.HotelID, s.eventFor(queue.EventBookingNoShow, b))
	return b, nil
}

// Get loads a booking with its room lines. Customers may only read their
// own bookings.
func (s *BookingService) Get(ctx context.Context, bookingID, actorID uint64, actorRole string) (*model.Booking, error) {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !model.StaffRole(actorRole) && actorID != b.CustomerID {
		return nil, repository.ErrForbidden
	}
	return b, nil
}

// History returns the append-only transition audit trail.
func (s *BookingService) History(ctx context.Context, bookingID, actorID uint64, actorRole string) ([]model.StatusHistoryEntry, error) {
	if _, err := s.Get(ctx, bookingID, actorID, actorRole); err != nil {
		return nil, err
	}
	return s.bookings.History(ctx, bookingID)
}

// ListByCustomer returns the customer's bookings, newest first.
func (s *BookingService) ListByCustomer(ctx context.Context, customerID uint64) ([]model.Booking, error) {
	return s.bookings.ListByCustomer(ctx, customerID)
}

// ListByHotelAndStatus is the staff work-queue view, e.g. PENDING bookings
// awaiting validation.
func (s *BookingService) ListByHotelAndStatus(ctx context.Context, hotelID uint64, status model.BookingStatus) ([]model.Booking, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", model.ErrValidation, status)
	}
	return s.bookings.ListByHotelAndStatus(ctx, hotelID, status)
}

// Availability answers the browsing query. Reads go to the authoritative
// store here; response-level caching with bounded staleness happens in the
// transport layer and is invalidated on every committed mutation.
func (s *BookingService) Availability(ctx context.Context, hotelID uint64, roomTypeIDs []uint64, from, to time.Time) ([]model.AvailabilitySnapshot, error) {
	stay := model.DateRange{From: from, To: to}
	if stay.Nights() <= 0 {
		return nil, fmt.Errorf("%w: date range must span at least one night", model.ErrValidation)
	}
	if _, err := s.hotels.GetHotel(ctx, hotelID); err != nil {
		return nil, err
	}
	if len(roomTypeIDs) == 0 {
		types, err := s.hotels.ListRoomTypes(ctx, hotelID)
		if err != nil {
			return nil, err
		}
		for _, rt := range types {
			roomTypeIDs = append(roomTypeIDs, rt.ID)
		}
	}
	return s.inventory.Snapshot(ctx, hotelID, roomTypeIDs, stay)
}
