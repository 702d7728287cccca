package models

// DashboardTotals are the headline counters.
type DashboardTotals struct {
	Guests         int `json:"guests"`
	Bookings       int `json:"bookings"`
	InProgress     int `json:"inProgress"`
	CheckInsToday  int `json:"checkInsToday"`
	CheckOutsToday int `json:"checkOutsToday"`
}

// DashboardRevenue sums the nightly rate over COMPLETED and IN_PROGRESS bookings.
type DashboardRevenue struct {
	Total        float64 `json:"total"`
	CurrentMonth float64 `json:"currentMonth"`
}

// DashboardStats is the read-only snapshot over guests and bookings.
type DashboardStats struct {
	Totals           DashboardTotals  `json:"totals"`
	Revenue          DashboardRevenue `json:"revenue"`
	BookingsByStatus map[string]int   `json:"bookingsByStatus"`
	UpcomingBookings []BookingDetails `json:"upcomingBookings"`
	RecentBookings   []BookingDetails `json:"recentBookings"`
}
