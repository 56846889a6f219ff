package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/NawfalRAZOUK7/hotel-management-sub000/internal/model"
	"github.com/NawfalRAZOUK7/hotel-management-sub000/internal/service"
)

// BookingHandler exposes the booking lifecycle over HTTP. Every transition
// endpoint is a thin adapter: parse, call the service, map the error.
type BookingHandler struct {
	Bookings *service.BookingService
}

func NewBookingHandler(b *service.BookingService) *BookingHandler {
	return &BookingHandler{Bookings: b}
}

// ----- DTOs -----

type roomLineReq struct {
	RoomTypeID uint64 `json:"room_type_id" validate:"required"`
	Quantity   int    `json:"quantity" validate:"required,min=1"`
}

type createBookingReq struct {
	HotelID  uint64        `json:"hotel_id" validate:"required"`
	CheckIn  string        `json:"check_in" validate:"required,datetime=2006-01-02"`
	CheckOut string        `json:"check_out" validate:"required,datetime=2006-01-02"`
	Rooms    []roomLineReq `json:"rooms" validate:"required,min=1,dive"`
}

type validateBookingReq struct {
	Decision string `json:"decision" validate:"required,oneof=approve reject APPROVE REJECT"`
	Reason   string `json:"reason"`
}

type checkInReq struct {
	HotelID uint64 `json:"hotel_id" validate:"required"`
	Token   string `json:"token"` // optional: staff may check in after manual verification
}

type cancelBookingReq struct {
	Reason   string `json:"reason"`
	Override *int   `json:"refund_override"` // staff only, percentage
}

type modifyBookingReq struct {
	CheckIn    *string       `json:"check_in" validate:"omitempty,datetime=2006-01-02"`
	CheckOut   *string       `json:"check_out" validate:"omitempty,datetime=2006-01-02"`
	Rooms      []roomLineReq `json:"rooms" validate:"omitempty,min=1,dive"`
	Revalidate bool          `json:"revalidate"`
}

type roomLineView struct {
	RoomTypeID      uint64   `json:"room_type_id"`
	Quantity        int      `json:"quantity"`
	PriceCents      int64    `json:"price_cents"`
	AssignedRoomIDs []uint64 `json:"assigned_room_ids,omitempty"`
}

type bookingView struct {
	ID            uint64         `json:"id"`
	Reference     string         `json:"reference"`
	HotelID       uint64         `json:"hotel_id"`
	CustomerID    uint64         `json:"customer_id"`
	CheckIn       string         `json:"check_in"`
	CheckOut      string         `json:"check_out"`
	Status        string         `json:"status"`
	Rooms         []roomLineView `json:"rooms,omitempty"`
	TotalCents    int64          `json:"total_cents"`
	RefundPercent *uint8         `json:"refund_percent,omitempty"`
	CancelledAt   *time.Time     `json:"cancelled_at,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
}

func viewOf(b *model.Booking) bookingView {
	v := bookingView{
		ID:            b.ID,
		Reference:     b.Reference,
		HotelID:       b.HotelID,
		CustomerID:    b.CustomerID,
		CheckIn:       b.CheckInDate.Format("2006-01-02"),
		CheckOut:      b.CheckOutDate.Format("2006-01-02"),
		Status:        string(b.Status),
		TotalCents:    b.TotalCents,
		RefundPercent: b.RefundPercent,
		CancelledAt:   b.CancelledAt,
		CreatedAt:     b.CreatedAt,
	}
	for _, rm := range b.Rooms {
		v.Rooms = append(v.Rooms, roomLineView{
			RoomTypeID:      rm.RoomTypeID,
			Quantity:        rm.Quantity,
			PriceCents:      rm.PriceCents,
			AssignedRoomIDs: rm.AssignedRoomIDs,
		})
	}
	return v
}

func parseDay(s string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", s, time.UTC)
}

func roomRequests(lines []roomLineReq) []service.RoomRequest {
	out := make([]service.RoomRequest, 0, len(lines))
	for _, l := range lines {
		out = append(out, service.RoomRequest{RoomTypeID: l.RoomTypeID, Quantity: l.Quantity})
	}
	return out
}

// Create opens a booking in PENDING. Customer only; the customer id comes
// from the access token, never the body.
func (h *BookingHandler) Create(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req createBookingReq
	if !bindAndValidate(c, &req) {
		return nil
	}
	checkIn, err := parseDay(req.CheckIn)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid check_in date"})
	}
	checkOut, err := parseDay(req.CheckOut)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid check_out date"})
	}

	b, err := h.Bookings.Create(c.Request().Context(), service.CreateBookingInput{
		HotelID:    req.HotelID,
		CustomerID: uid,
		CheckIn:    checkIn,
		CheckOut:   checkOut,
		Rooms:      roomRequests(req.Rooms),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, viewOf(b))
}

// Validate is the staff decision endpoint: approve confirms the booking and
// returns the first check-in token, reject releases the hold.
func (h *BookingHandler) Validate(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	var req validateBookingReq
	if !bindAndValidate(c, &req) {
		return nil
	}
	approve := strings.EqualFold(req.Decision, "approve")

	b, issued, err := h.Bookings.Validate(c.Request().Context(), id, uid, approve, req.Reason)
	if err != nil {
		return writeError(c, err)
	}
	resp := echo.Map{"booking": viewOf(b)}
	if issued != nil {
		resp["checkin_token"] = issued
	}
	return c.JSON(http.StatusOK, resp)
}

// CheckIn moves a CONFIRMED booking to CHECKED_IN, consuming the presented
// token in the same transaction.
func (h *BookingHandler) CheckIn(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	var req checkInReq
	if !bindAndValidate(c, &req) {
		return nil
	}

	b, warning, err := h.Bookings.CheckIn(c.Request().Context(), service.CheckInInput{
		BookingID: id,
		HotelID:   req.HotelID,
		RawToken:  req.Token,
		ActorID:   uid,
		ActorRole: getRole(c),
	})
	if err != nil {
		return writeError(c, err)
	}
	resp := echo.Map{"booking": viewOf(b)}
	if warning != "" {
		resp["warning"] = warning
	}
	return c.JSON(http.StatusOK, resp)
}

// CheckOut completes a stay.
func (h *BookingHandler) CheckOut(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	b, err := h.Bookings.CheckOut(c.Request().Context(), id, uid)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, viewOf(b))
}

// Cancel cancels a PENDING or CONFIRMED booking and reports the persisted
// refund percentage.
func (h *BookingHandler) Cancel(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	var req cancelBookingReq
	_ = c.Bind(&req) // body optional

	b, err := h.Bookings.Cancel(c.Request().Context(), service.CancelInput{
		BookingID: id,
		ActorID:   uid,
		ActorRole: getRole(c),
		Reason:    req.Reason,
		Override:  req.Override,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, viewOf(b))
}

// Modify swaps dates and/or room lines while the booking is PENDING.
func (h *BookingHandler) Modify(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	var req modifyBookingReq
	if !bindAndValidate(c, &req) {
		return nil
	}

	in := service.ModifyInput{
		BookingID:  id,
		ActorID:    uid,
		ActorRole:  getRole(c),
		Revalidate: req.Revalidate,
	}
	if req.CheckIn != nil {
		d, err := parseDay(*req.CheckIn)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid check_in date"})
		}
		in.CheckIn = &d
	}
	if req.CheckOut != nil {
		d, err := parseDay(*req.CheckOut)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid check_out date"})
		}
		in.CheckOut = &d
	}
	if req.Rooms != nil {
		in.Rooms = roomRequests(req.Rooms)
	}

	b, err := h.Bookings.Modify(c.Request().Context(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, viewOf(b))
}

// MarkNoShow retires a CONFIRMED booking whose guest never arrived.
func (h *BookingHandler) MarkNoShow(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	b, err := h.Bookings.MarkNoShow(c.Request().Context(), id, uid, getRole(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, viewOf(b))
}

// Get returns one booking with its room lines.
func (h *BookingHandler) Get(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	b, err := h.Bookings.Get(c.Request().Context(), id, uid, getRole(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, viewOf(b))
}

// History returns the append-only transition trail.
func (h *BookingHandler) History(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid booking id"})
	}
	entries, err := h.Bookings.History(c.Request().Context(), id, uid, getRole(c))
	if err != nil {
		return writeError(c, err)
	}
	type historyView struct {
		From      string    `json:"from,omitempty"`
		To        string    `json:"to"`
		Reason    string    `json:"reason,omitempty"`
		ActorID   uint64    `json:"actor_id"`
		CreatedAt time.Time `json:"created_at"`
	}
	out := make([]historyView, 0, len(entries))
	for _, e := range entries {
		out = append(out, historyView{
			From:      string(e.FromStatus),
			To:        string(e.ToStatus),
			Reason:    e.Reason,
			ActorID:   e.ActorID,
			CreatedAt: e.CreatedAt,
		})
	}
	return c.JSON(http.StatusOK, out)
}

// ListMine returns the caller's bookings.
func (h *BookingHandler) ListMine(c echo.Context) error {
	uid, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	list, err := h.Bookings.ListByCustomer(c.Request().Context(), uid)
	if err != nil {
		return writeError(c, err)
	}
	out := make([]bookingView, 0, len(list))
	for i := range list {
		out = append(out, viewOf(&list[i]))
	}
	return c.JSON(http.StatusOK, out)
}

// ListByHotel is the staff work queue: bookings of one hotel filtered by
// status, defaulting to PENDING.
func (h *BookingHandler) ListByHotel(c echo.Context) error {
	hotelID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid hotel id"})
	}
	status := model.BookingStatus(strings.ToUpper(c.QueryParam("status")))
	if status == "" {
		status = model.StatusPending
	}
	list, err := h.Bookings.ListByHotelAndStatus(c.Request().Context(), hotelID, status)
	if err != nil {
		return writeError(c, err)
	}
	out := make([]bookingView, 0, len(list))
	for i := range list {
		out = append(out, viewOf(&list[i]))
	}
	return c.JSON(http.StatusOK, out)
}
