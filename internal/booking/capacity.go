// Package booking holds the seat accounting rules shared by the read
// path (remaining capacity shown on a package) and the write path
// (validating a new booking). One rule, applied everywhere: only paid
// bookings on the package's departure day hold seats.
package booking

import (
	"time"

	"go-travel-api/internal/models"
)

// CountsTowardCapacity reports whether a booking holds seats.
// "settlement" is accepted alongside "confirmed" because older rows
// mirrored the raw gateway status onto the booking.
func CountsTowardCapacity(status string) bool {
	return status == models.BookingConfirmed || status == "settlement"
}

// SameDay compares calendar days, ignoring the time-of-day component.
func SameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// Booked sums the party sizes of paid bookings for the given departure date.
func Booked(bookings []models.Booking, departure time.Time) int {
	total := 0
	for _, b := range bookings {
		if CountsTowardCapacity(b.Status) && SameDay(b.TanggalBooking, departure) {
			total += b.JumlahOrang
		}
	}
	return total
}

// Remaining computes the seats still open on a package. Never negative:
// if the data is inconsistent (oversold), callers see 0 and booking is
// blocked rather than showing a nonsense number.
func Remaining(w models.Wisata, bookings []models.Booking) int {
	sisa := w.Kapasitas - Booked(bookings, w.Pemberangkatan)
	if sisa < 0 {
		return 0
	}
	return sisa
}
