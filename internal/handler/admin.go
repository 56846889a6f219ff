package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/NawfalRAZOUK7/hotel-management-sub000/internal/model"
	"github.com/NawfalRAZOUK7/hotel-management-sub000/internal/repository"
)

// AdminHandler manages the hotel catalogue: properties, room types and
// physical rooms. These endpoints seed the state the booking engine runs
// against and are restricted to the ADMIN role.
type AdminHandler struct {
	Hotels *repository.HotelRepo
	Rooms  *repository.RoomRepo
}

func NewAdminHandler(hotels *repository.HotelRepo, rooms *repository.RoomRepo) *AdminHandler {
	if hotels == nil || rooms == nil {
		panic("nil repository passed to NewAdminHandler")
	}
	return &AdminHandler{Hotels: hotels, Rooms: rooms}
}

type createHotelReq struct {
	Name     string `json:"name" validate:"required,min=2"`
	Timezone string `json:"timezone"`
}

type createRoomTypeReq struct {
	Name          string `json:"name" validate:"required,min=2"`
	TotalRooms    int    `json:"total_rooms" validate:"required,min=1"`
	BaseRateCents int64  `json:"base_rate_cents" validate:"required,min=1"`
}

type createRoomReq struct {
	RoomTypeID uint64 `json:"room_type_id" validate:"required"`
	Number     string `json:"number" validate:"required"`
}

func (h *AdminHandler) CreateHotel(c echo.Context) error {
	var req createHotelReq
	if !bindAndValidate(c, &req) {
		return nil
	}
	tz := req.Timezone
	if tz == "" {
		tz = "UTC"
	}
	hotel := &model.Hotel{Name: req.Name, Timezone: tz, IsActive: true}
	if err := h.Hotels.CreateHotel(c.Request().Context(), hotel); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, hotel)
}

func (h *AdminHandler) ListHotels(c echo.Context) error {
	hotels, err := h.Hotels.ListHotels(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, hotels)
}

func (h *AdminHandler) CreateRoomType(c echo.Context) error {
	hotelID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid hotel id"})
	}
	var req createRoomTypeReq
	if !bindAndValidate(c, &req) {
		return nil
	}
	rt := &model.RoomType{
		HotelID:       hotelID,
		Name:          req.Name,
		TotalRooms:    req.TotalRooms,
		BaseRateCents: req.BaseRateCents,
	}
	if err := h.Hotels.CreateRoomType(c.Request().Context(), rt); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, rt)
}

func (h *AdminHandler) ListRoomTypes(c echo.Context) error {
	hotelID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid hotel id"})
	}
	types, err := h.Hotels.ListRoomTypes(c.Request().Context(), hotelID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, types)
}

func (h *AdminHandler) CreateRoom(c echo.Context) error {
	hotelID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid hotel id"})
	}
	var req createRoomReq
	if !bindAndValidate(c, &req) {
		return nil
	}
	// The room type must belong to this hotel.
	if _, err := h.Hotels.GetRoomType(c.Request().Context(), hotelID, req.RoomTypeID); err != nil {
		return writeError(c, err)
	}
	room := &model.Room{HotelID: hotelID, RoomTypeID: req.RoomTypeID, Number: req.Number}
	if err := h.Rooms.Create(c.Request().Context(), room); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, room)
}

func (h *AdminHandler) ListRooms(c echo.Context) error {
	hotelID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid hotel id"})
	}
	rooms, err := h.Rooms.ListByHotel(c.Request().Context(), hotelID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, rooms)
}
