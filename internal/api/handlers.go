package api

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"pousada/internal/metrics"
	"pousada/internal/models"
)

const dateLayout = "2006-01-02"

func (s *HTTPServer) handleGuests(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("guests")

	switch r.Method {
	case http.MethodGet:
		page := intQuery(r, "page", 1)
		pageSize := intQuery(r, "pageSize", 0)
		search := strings.TrimSpace(r.URL.Query().Get("search"))

		result, err := s.guests.List(r.Context(), page, pageSize, search)
		respond(w, "guests", "list", http.StatusOK, result, err)

	case http.MethodPost:
		var input models.GuestInput
		if err := decodeBody(r, &input); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		guest, err := s.guests.Create(r.Context(), input)
		respond(w, "guests", "create", http.StatusCreated, guest, err)

	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *HTTPServer) handleGuestByID(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("guests")

	id := pathID(r.URL.Path, "/api/v1/guests/")
	if id == "" {
		writeError(w, http.StatusBadRequest, "guest id is required")
		return
	}

	switch r.Method {
	case http.MethodGet:
		guest, err := s.guests.Get(r.Context(), id)
		respond(w, "guests", "get", http.StatusOK, guest, err)

	case http.MethodPut, http.MethodPatch:
		var patch models.GuestPatch
		if err := decodeBody(r, &patch); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		guest, err := s.guests.Update(r.Context(), id, patch)
		respond(w, "guests", "update", http.StatusOK, guest, err)

	case http.MethodDelete:
		err := s.guests.Delete(r.Context(), id)
		respond(w, "guests", "delete", http.StatusNoContent, nil, err)

	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *HTTPServer) handleRooms(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("rooms")

	switch r.Method {
	case http.MethodGet:
		search := strings.TrimSpace(r.URL.Query().Get("search"))
		minCapacity := intQuery(r, "minCapacity", 0)

		rooms, err := s.rooms.List(r.Context(), search, minCapacity)
		respond(w, "rooms", "list", http.StatusOK, map[string]any{"rooms": rooms}, err)

	case http.MethodPost:
		var input models.RoomInput
		if err := decodeBody(r, &input); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		room, err := s.rooms.Create(r.Context(), input)
		respond(w, "rooms", "create", http.StatusCreated, room, err)

	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *HTTPServer) handleRoomsAvailable(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("rooms")

	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	checkIn, ok := dateQuery(w, r, "checkIn")
	if !ok {
		return
	}
	checkOut, ok := dateQuery(w, r, "checkOut")
	if !ok {
		return
	}
	minCapacity := intQuery(r, "minCapacity", 0)

	rooms, err := s.rooms.ListAvailable(r.Context(), checkIn, checkOut, minCapacity)
	respond(w, "rooms", "list_available", http.StatusOK, map[string]any{"rooms": rooms}, err)
}

func (s *HTTPServer) handleRoomByID(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("rooms")

	rest := strings.TrimPrefix(r.URL.Path, "/api/v1/rooms/")
	id, sub, _ := strings.Cut(rest, "/")
	if id == "" {
		writeError(w, http.StatusBadRequest, "room id is required")
		return
	}

	if sub == "flags" {
		if r.Method != http.MethodPut && r.Method != http.MethodPatch {
			writeError(w, http.StatusMethodNotAllowed, "method not allowed")
			return
		}
		var patch models.RoomFlagsPatch
		if err := decodeBody(r, &patch); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		room, err := s.rooms.UpdateFlags(r.Context(), id, patch)
		respond(w, "rooms", "update_flags", http.StatusOK, room, err)
		return
	}
	if sub != "" {
		writeError(w, http.StatusNotFound, "not found")
		return
	}

	switch r.Method {
	case http.MethodPut, http.MethodPatch:
		var patch models.RoomPatch
		if err := decodeBody(r, &patch); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		room, err := s.rooms.Update(r.Context(), id, patch)
		respond(w, "rooms", "update", http.StatusOK, room, err)

	case http.MethodDelete:
		err := s.rooms.Delete(r.Context(), id)
		respond(w, "rooms", "delete", http.StatusNoContent, nil, err)

	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *HTTPServer) handleBookings(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("bookings")

	switch r.Method {
	case http.MethodGet:
		filter := models.BookingFilter{
			Status: strings.TrimSpace(r.URL.Query().Get("status")),
		}
		if raw := strings.TrimSpace(r.URL.Query().Get("dateFrom")); raw != "" {
			from, err := time.Parse(dateLayout, raw)
			if err != nil {
				writeError(w, http.StatusBadRequest, "invalid dateFrom; expected YYYY-MM-DD")
				return
			}
			filter.DateFrom = from
		}
		if raw := strings.TrimSpace(r.URL.Query().Get("dateTo")); raw != "" {
			to, err := time.Parse(dateLayout, raw)
			if err != nil {
				writeError(w, http.StatusBadRequest, "invalid dateTo; expected YYYY-MM-DD")
				return
			}
			filter.DateTo = to
		}

		bookings, err := s.bookings.List(r.Context(), filter)
		respond(w, "bookings", "list", http.StatusOK, map[string]any{"bookings": bookings}, err)

	case http.MethodPost:
		var input models.BookingInput
		if err := decodeBody(r, &input); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		booking, err := s.bookings.Create(r.Context(), input)
		respond(w, "bookings", "create", http.StatusCreated, booking, err)

	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *HTTPServer) handleBookingByID(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("bookings")

	id := pathID(r.URL.Path, "/api/v1/bookings/")
	if id == "" {
		writeError(w, http.StatusBadRequest, "booking id is required")
		return
	}

	switch r.Method {
	case http.MethodGet:
		booking, err := s.bookings.Get(r.Context(), id)
		respond(w, "bookings", "get", http.StatusOK, booking, err)

	case http.MethodPut, http.MethodPatch:
		var patch models.BookingPatch
		if err := decodeBody(r, &patch); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		booking, err := s.bookings.Update(r.Context(), id, patch)
		respond(w, "bookings", "update", http.StatusOK, booking, err)

	case http.MethodDelete:
		err := s.bookings.Delete(r.Context(), id)
		respond(w, "bookings", "delete", http.StatusNoContent, nil, err)

	default:
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	}
}

func (s *HTTPServer) handleDashboardStats(w http.ResponseWriter, r *http.Request) {
	metrics.IncHTTP("dashboard")

	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	stats, err := s.dashboard.Stats(r.Context())
	respond(w, "dashboard", "stats", http.StatusOK, stats, err)
}

func pathID(path, prefix string) string {
	id := strings.TrimPrefix(path, prefix)
	id = strings.TrimSpace(id)
	if strings.Contains(id, "/") {
		return ""
	}
	return id
}

func intQuery(r *http.Request, name string, fallback int) int {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}

// dateQuery parses a required YYYY-MM-DD query parameter, writing a 400
// response when it is missing or malformed.
func dateQuery(w http.ResponseWriter, r *http.Request, name string) (time.Time, bool) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		writeError(w, http.StatusBadRequest, name+" is required")
		return time.Time{}, false
	}
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid "+name+"; expected YYYY-MM-DD")
		return time.Time{}, false
	}
	return t, true
}
