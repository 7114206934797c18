package handlers

import (
	"net/http"

	"go-travel-api/internal/database"
	"go-travel-api/internal/models"

	"github.com/gin-gonic/gin"
)

// ReportData feeds the admin dashboard
type ReportData struct {
	TotalRevenue float64 `json:"totalRevenue"`
	TotalBooking int64   `json:"totalBooking"`
	TotalWisata  int64   `json:"totalWisata"`
	TotalUser    int64   `json:"totalUser"`
	TopWisata    []struct {
		Nama    string  `json:"nama"`
		Seats   int     `json:"seats"`
		Revenue float64 `json:"revenue"`
	} `json:"topWisata"`
	RecentBookings []models.Booking `json:"recentBookings"`
}

// --- GET: /getreport (admin) ---
func GetReport(c *gin.Context) {
	var data ReportData

	// 1. Total Revenue: confirmed bookings only
	err := database.DB.Model(&models.Booking{}).
		Where("status = ?", models.BookingConfirmed).
		Select("COALESCE(SUM(total_harga), 0)").
		Scan(&data.TotalRevenue).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Gagal menghitung pendapatan"})
		return
	}

	// 2. Counters
	if err := database.DB.Model(&models.Booking{}).Count(&data.TotalBooking).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Gagal menghitung booking"})
		return
	}
	if err := database.DB.Model(&models.Wisata{}).Count(&data.TotalWisata).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Gagal menghitung wisata"})
		return
	}
	if err := database.DB.Model(&models.User{}).Count(&data.TotalUser).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Gagal menghitung user"})
		return
	}

	// 3. Top 5 packages by confirmed seats
	err = database.DB.Table("bookings").
		Select("wisatas.nama as nama, SUM(bookings.jumlah_orang) as seats, SUM(bookings.total_harga) as revenue").
		Joins("JOIN wisatas ON bookings.wisata_id = wisatas.id").
		Where("bookings.status = ?", models.BookingConfirmed).
		Group("wisatas.nama").
		Order("seats desc").
		Limit(5).
		Scan(&data.TopWisata).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Gagal memuat wisata terlaris"})
		return
	}

	// 4. Last 10 bookings, newest first
	err = database.DB.Preload("Wisata").Preload("User").
		Order("created_at desc").Limit(10).Find(&data.RecentBookings).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Gagal memuat booking terbaru"})
		return
	}

	c.JSON(http.StatusOK, data)
}
