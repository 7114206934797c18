package database

import (
	"time"

	"go-travel-api/internal/models"
)

// BookingReportResult holds the data the dashboard and the AI assistant need
type BookingReportResult struct {
	TotalRevenue float64
	TotalCount   int64
	TotalSeats   int64
}

// GetBookingReport aggregates confirmed bookings within a date range.
// Pending and cancelled bookings never count as revenue.
func GetBookingReport(start, end time.Time) (*BookingReportResult, error) {
	var result BookingReportResult

	// COALESCE ensures we get 0 instead of NULL if no bookings exist
	err := DB.Model(&models.Booking{}).
		Where("status = ? AND created_at BETWEEN ? AND ?", models.BookingConfirmed, start, end).
		Select("COALESCE(SUM(total_harga), 0)").
		Scan(&result.TotalRevenue).Error
	if err != nil {
		return nil, err
	}

	err = DB.Model(&models.Booking{}).
		Where("status = ? AND created_at BETWEEN ? AND ?", models.BookingConfirmed, start, end).
		Count(&result.TotalCount).Error
	if err != nil {
		return nil, err
	}

	err = DB.Model(&models.Booking{}).
		Where("status = ? AND created_at BETWEEN ? AND ?", models.BookingConfirmed, start, end).
		Select("COALESCE(SUM(jumlah_orang), 0)").
		Scan(&result.TotalSeats).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}
