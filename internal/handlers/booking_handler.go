package handlers

import (
	"fmt"
	"net/http"

	"go-travel-api/internal/booking"
	"go-travel-api/internal/database"
	"go-travel-api/internal/models"

	"github.com/gin-gonic/gin"
)

// BookingRequest defines what the booking form sends us. tanggalBooking
// is accepted for compatibility but the departure date of the package
// always wins; customers cannot pick their own date.
type BookingRequest struct {
	WisataID       uint   `json:"wisataId" binding:"required"`
	TanggalBooking string `json:"tanggalBooking"`
	JumlahOrang    int    `json:"jumlahOrang"`
}

func CreateBooking(c *gin.Context) {
	var req BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Data booking tidak valid"})
		return
	}

	userID := c.MustGet("userID").(uint)

	// 1. Cheap validation first: no DB work for an obviously bad request
	if req.JumlahOrang < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Jumlah orang harus minimal 1"})
		return
	}

	// 2. Start a Database Transaction (ACID Safety)
	tx := database.DB.Begin()

	// Lock the wisata row so two submissions cannot both pass the
	// capacity check and oversell the departure.
	var wisata models.Wisata
	if err := database.LockForUpdate(tx).First(&wisata, req.WisataID).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusNotFound, gin.H{"message": "Data wisata tidak ditemukan"})
		return
	}

	if wisata.Status == "cancelled" {
		tx.Rollback()
		c.JSON(http.StatusBadRequest, gin.H{"message": "Wisata ini sudah dibatalkan"})
		return
	}

	// 3. Capacity check against paid bookings on the departure date
	var existing []models.Booking
	if err := tx.Where("wisata_id = ?", wisata.ID).Find(&existing).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Gagal memuat data booking"})
		return
	}

	sisa := booking.Remaining(wisata, existing)
	if req.JumlahOrang > sisa {
		tx.Rollback()
		c.JSON(http.StatusBadRequest, gin.H{"message": fmt.Sprintf("Jumlah orang melebihi kapasitas tersisa (%d)", sisa)})
		return
	}

	// 4. Create the booking. Total price is computed here and only here.
	newBooking := models.Booking{
		UserID:         userID,
		WisataID:       wisata.ID,
		TanggalBooking: wisata.Pemberangkatan,
		JumlahOrang:    req.JumlahOrang,
		TotalHarga:     wisata.Harga * float64(req.JumlahOrang),
		Status:         models.BookingPending,
	}

	if err := tx.Create(&newBooking).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Gagal menyimpan booking"})
		return
	}

	tx.Commit()

	newBooking.Wisata = wisata
	c.JSON(http.StatusCreated, gin.H{
		"message": "Booking berhasil dibuat",
		"booking": newBooking,
	})
}

// --- GET: Booking list. Admins see everything, customers only their own. ---
func GetBookings(c *gin.Context) {
	role := c.MustGet("role").(string)
	userID := c.MustGet("userID").(uint)

	query := database.DB.Preload("Wisata").Preload("User").Order("created_at desc")
	if role != "admin" && role != "superadmin" {
		query = query.Where("user_id = ?", userID)
	}

	var bookings []models.Booking
	if err := query.Find(&bookings).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Gagal memuat data booking"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": bookings})
}

// --- GET: One booking by id. Every step of the payment flow can re-fetch
// its data from here, so a page refresh never loses the flow. ---
func GetBookingByID(c *gin.Context) {
	id := c.Param("id")
	role := c.MustGet("role").(string)
	userID := c.MustGet("userID").(uint)

	var b models.Booking
	err := database.DB.Preload("Wisata").Preload("Wisata.Kategori").Preload("User").First(&b, id).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Data booking tidak ditemukan"})
		return
	}

	if b.UserID != userID && role != "admin" && role != "superadmin" {
		c.JSON(http.StatusForbidden, gin.H{"message": "Anda tidak memiliki akses ke booking ini"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": b})
}

// --- DELETE: Remove a booking (admin) ---
func DeleteBooking(c *gin.Context) {
	id := c.Param("id")

	if err := database.DB.Delete(&models.Booking{}, id).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Booking tidak dapat dihapus"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Booking berhasil dihapus"})
}
