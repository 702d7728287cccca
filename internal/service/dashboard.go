package service

import (
	"context"
	"sort"
	"time"

	"pousada/internal/availability"
	"pousada/internal/models"
	"pousada/internal/store"

	"github.com/rs/zerolog"
)

type DashboardService struct {
	data   *store.Collections
	logger *zerolog.Logger
}

func NewDashboardService(data *store.Collections, logger *zerolog.Logger) *DashboardService {
	return &DashboardService{data: data, logger: logger}
}

// Stats aggregates the whole data set into the dashboard snapshot.
// Revenue counts the nightly rate of completed and in-progress bookings;
// the monthly figure keeps only stays checking in this calendar month.
func (s *DashboardService) Stats(ctx context.Context) (models.DashboardStats, error) {
	guests, err := s.data.Guests(ctx)
	if err != nil {
		return models.DashboardStats{}, err
	}
	bookings, err := s.data.Bookings(ctx)
	if err != nil {
		return models.DashboardStats{}, err
	}
	rooms, err := s.data.Rooms(ctx)
	if err != nil {
		return models.DashboardStats{}, err
	}

	now := time.Now()
	todayStart := availability.StartOfDay(now)
	todayEnd := todayStart.AddDate(0, 0, 1)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	monthEnd := monthStart.AddDate(0, 1, 0)

	stats := models.DashboardStats{
		BookingsByStatus: map[string]int{},
	}
	stats.Totals.Guests = len(guests)
	stats.Totals.Bookings = len(bookings)

	upcoming := []models.Booking{}
	for _, b := range bookings {
		stats.BookingsByStatus[b.Status]++

		if b.Status == models.BookingInProgress {
			stats.Totals.InProgress++
		}
		if withinDay(b.CheckIn, todayStart, todayEnd) {
			stats.Totals.CheckInsToday++
		}
		if withinDay(b.CheckOut, todayStart, todayEnd) {
			stats.Totals.CheckOutsToday++
		}

		if b.Status == models.BookingCompleted || b.Status == models.BookingInProgress {
			stats.Revenue.Total += b.Rate
			if withinDay(b.CheckIn, monthStart, monthEnd) {
				stats.Revenue.CurrentMonth += b.Rate
			}
		}

		if b.Status == models.BookingConfirmed && !b.CheckIn.Before(todayStart) {
			upcoming = append(upcoming, b)
		}
	}

	sort.SliceStable(upcoming, func(i, j int) bool {
		return upcoming[i].CheckIn.Before(upcoming[j].CheckIn)
	})
	if len(upcoming) > models.DashboardListSize {
		upcoming = upcoming[:models.DashboardListSize]
	}

	recent := append([]models.Booking(nil), bookings...)
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].CreatedAt.After(recent[j].CreatedAt)
	})
	if len(recent) > models.DashboardListSize {
		recent = recent[:models.DashboardListSize]
	}

	stats.UpcomingBookings = joinDetails(upcoming, guests, rooms)
	stats.RecentBookings = joinDetails(recent, guests, rooms)

	return stats, nil
}

func withinDay(t, start, end time.Time) bool {
	return !t.Before(start) && t.Before(end)
}

func joinDetails(bookings []models.Booking, guests []models.Guest, rooms []models.Room) []models.BookingDetails {
	details := make([]models.BookingDetails, 0, len(bookings))
	for _, b := range bookings {
		d := models.BookingDetails{Booking: b}
		if g, ok := findGuest(guests, b.GuestID); ok {
			d.Guest = &g
		}
		if r, ok := findRoom(rooms, b.RoomID); ok {
			d.Room = &r
		}
		details = append(details, d)
	}
	return details
}
