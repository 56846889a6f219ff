package router

import (
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/NawfalRAZOUK7/hotel-management-sub000/internal/handler"
)

func hasRoute(e *echo.Echo, method, path string) bool {
	for _, r := range e.Routes() {
		if r.Method == method && r.Path == path {
			return true
		}
	}
	return false
}

// Modify and cancel must be reachable by every authenticated role: the
// refund override and the modify-with-revalidation of a CONFIRMED booking
// are staff actions on the same endpoints customers use.
func TestSharedRoutesIncludeModifyAndCancel(t *testing.T) {
	e := echo.New()
	RegisterShared(e, handler.NewBookingHandler(nil), "secret")

	for _, rt := range []struct{ method, path string }{
		{http.MethodGet, "/v1/bookings/:id"},
		{http.MethodGet, "/v1/bookings/:id/history"},
		{http.MethodPatch, "/v1/bookings/:id"},
		{http.MethodPost, "/v1/bookings/:id/cancel"},
	} {
		if !hasRoute(e, rt.method, rt.path) {
			t.Errorf("expected %s %s to be registered for all roles", rt.method, rt.path)
		}
	}
}

func TestCustomerRoutesLeaveModifyAndCancelToShared(t *testing.T) {
	e := echo.New()
	RegisterCustomer(e, handler.NewBookingHandler(nil), handler.NewTokenHandler(nil), "secret")

	if hasRoute(e, http.MethodPatch, "/v1/bookings/:id") ||
		hasRoute(e, http.MethodPost, "/v1/bookings/:id/cancel") {
		t.Error("modify and cancel belong to the shared group, not the customer-only group")
	}
	if !hasRoute(e, http.MethodPost, "/v1/bookings") {
		t.Error("expected POST /v1/bookings on the customer group")
	}
}
