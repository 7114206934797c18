package handlers

import (
	"net/http"
	"testing"

	"go-travel-api/internal/database"
	"go-travel-api/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bookingRouter(user *models.User) *gin.Engine {
	r := gin.New()
	r.Use(authAs(user))
	r.POST("/createbooking", CreateBooking)
	r.GET("/getbooking", GetBookings)
	r.GET("/getbooking/:id", GetBookingByID)
	r.GET("/getwisata/:id", GetWisataByID)
	return r
}

func TestCreateBookingComputesTotalPrice(t *testing.T) {
	setupTestDB(t)
	user := createUser(t, "budi", "user")
	wisata := createWisata(t, 10, 350000)
	r := bookingRouter(&user)

	w := performJSON(t, r, http.MethodPost, "/createbooking", gin.H{
		"wisataId":    wisata.ID,
		"jumlahOrang": 4,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	body := decodeBody(t, w)
	booking := body["booking"].(map[string]interface{})
	assert.Equal(t, float64(4), booking["jumlahOrang"])
	assert.Equal(t, 1400000.0, booking["totalHarga"]) // 350000 * 4
	assert.Equal(t, models.BookingPending, booking["status"])
}

func TestCreateBookingForcesDepartureDate(t *testing.T) {
	setupTestDB(t)
	user := createUser(t, "budi", "user")
	wisata := createWisata(t, 10, 350000)
	r := bookingRouter(&user)

	// The client-sent date must be ignored
	w := performJSON(t, r, http.MethodPost, "/createbooking", gin.H{
		"wisataId":       wisata.ID,
		"tanggalBooking": "2030-12-31",
		"jumlahOrang":    1,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var stored models.Booking
	require.NoError(t, database.DB.First(&stored).Error)
	assert.True(t, stored.TanggalBooking.Equal(wisata.Pemberangkatan))
}

func TestCreateBookingRejectsPartySizeBelowOne(t *testing.T) {
	setupTestDB(t)
	user := createUser(t, "budi", "user")
	wisata := createWisata(t, 10, 350000)
	r := bookingRouter(&user)

	for _, jumlah := range []int{0, -3} {
		w := performJSON(t, r, http.MethodPost, "/createbooking", gin.H{
			"wisataId":    wisata.ID,
			"jumlahOrang": jumlah,
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Jumlah orang harus minimal 1", decodeBody(t, w)["message"])
	}

	var count int64
	database.DB.Model(&models.Booking{}).Count(&count)
	assert.Equal(t, int64(0), count, "rejected requests must not create bookings")
}

func TestCreateBookingEnforcesRemainingCapacity(t *testing.T) {
	setupTestDB(t)
	user := createUser(t, "budi", "user")
	wisata := createWisata(t, 10, 500000)
	r := bookingRouter(&user)

	// 8 seats already paid for on the departure date -> remaining 2
	paid := models.Booking{
		UserID:         user.ID,
		WisataID:       wisata.ID,
		TanggalBooking: wisata.Pemberangkatan,
		JumlahOrang:    8,
		TotalHarga:     8 * 500000,
		Status:         models.BookingConfirmed,
	}
	require.NoError(t, database.DB.Create(&paid).Error)

	w := performJSON(t, r, http.MethodPost, "/createbooking", gin.H{
		"wisataId":    wisata.ID,
		"jumlahOrang": 3,
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Jumlah orang melebihi kapasitas tersisa (2)", decodeBody(t, w)["message"])

	w = performJSON(t, r, http.MethodPost, "/createbooking", gin.H{
		"wisataId":    wisata.ID,
		"jumlahOrang": 2,
	})
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestCreateBookingPendingSeatsDoNotHoldCapacity(t *testing.T) {
	setupTestDB(t)
	user := createUser(t, "budi", "user")
	wisata := createWisata(t, 5, 500000)
	r := bookingRouter(&user)

	pending := models.Booking{
		UserID:         user.ID,
		WisataID:       wisata.ID,
		TanggalBooking: wisata.Pemberangkatan,
		JumlahOrang:    5,
		TotalHarga:     5 * 500000,
		Status:         models.BookingPending,
	}
	require.NoError(t, database.DB.Create(&pending).Error)

	// An unpaid booking does not block the seats
	w := performJSON(t, r, http.MethodPost, "/createbooking", gin.H{
		"wisataId":    wisata.ID,
		"jumlahOrang": 5,
	})
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestCreateBookingUnknownWisata(t *testing.T) {
	setupTestDB(t)
	user := createUser(t, "budi", "user")
	r := bookingRouter(&user)

	w := performJSON(t, r, http.MethodPost, "/createbooking", gin.H{
		"wisataId":    999,
		"jumlahOrang": 1,
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Data wisata tidak ditemukan", decodeBody(t, w)["message"])
}

func TestGetWisataByIDExposesRemainingCapacity(t *testing.T) {
	setupTestDB(t)
	user := createUser(t, "budi", "user")
	wisata := createWisata(t, 10, 500000)
	r := bookingRouter(&user)

	paid := models.Booking{
		UserID:         user.ID,
		WisataID:       wisata.ID,
		TanggalBooking: wisata.Pemberangkatan,
		JumlahOrang:    6,
		TotalHarga:     6 * 500000,
		Status:         models.BookingConfirmed,
	}
	require.NoError(t, database.DB.Create(&paid).Error)

	w := performJSON(t, r, http.MethodGet, "/getwisata/1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(4), decodeBody(t, w)["sisaKapasitas"])
}

func TestGetBookingByIDUnknownIDIsRecoverable(t *testing.T) {
	setupTestDB(t)
	user := createUser(t, "budi", "user")
	r := bookingRouter(&user)

	// A step page refreshed with a stale id gets a message it can key
	// its recovery view on, not a crash.
	w := performJSON(t, r, http.MethodGet, "/getbooking/424242", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Data booking tidak ditemukan", decodeBody(t, w)["message"])
}

func TestGetBookingsScopedByRole(t *testing.T) {
	setupTestDB(t)
	budi := createUser(t, "budi", "user")
	siti := createUser(t, "siti", "user")
	admin := createUser(t, "admin", "admin")
	wisata := createWisata(t, 10, 500000)

	for _, u := range []models.User{budi, siti} {
		b := models.Booking{
			UserID:         u.ID,
			WisataID:       wisata.ID,
			TanggalBooking: wisata.Pemberangkatan,
			JumlahOrang:    1,
			TotalHarga:     500000,
			Status:         models.BookingPending,
		}
		require.NoError(t, database.DB.Create(&b).Error)
	}

	w := performJSON(t, bookingRouter(&budi), http.MethodGet, "/getbooking", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeBody(t, w)["data"], 1)

	w = performJSON(t, bookingRouter(&admin), http.MethodGet, "/getbooking", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decodeBody(t, w)["data"], 2)
}

func TestBookingOwnershipGuard(t *testing.T) {
	setupTestDB(t)
	budi := createUser(t, "budi", "user")
	siti := createUser(t, "siti", "user")
	wisata := createWisata(t, 10, 500000)

	b := models.Booking{
		UserID:         budi.ID,
		WisataID:       wisata.ID,
		TanggalBooking: wisata.Pemberangkatan,
		JumlahOrang:    1,
		TotalHarga:     500000,
		Status:         models.BookingPending,
	}
	require.NoError(t, database.DB.Create(&b).Error)

	w := performJSON(t, bookingRouter(&siti), http.MethodGet, "/getbooking/1", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestCreateBookingCancelledWisata(t *testing.T) {
	setupTestDB(t)
	user := createUser(t, "budi", "user")
	wisata := createWisata(t, 10, 500000)
	require.NoError(t, database.DB.Model(&wisata).Update("status", "cancelled").Error)
	r := bookingRouter(&user)

	w := performJSON(t, r, http.MethodPost, "/createbooking", gin.H{
		"wisataId":    wisata.ID,
		"jumlahOrang": 1,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// Oversold data (capacity lowered after paid bookings) must clamp to 0
// and block further booking instead of going negative.
func TestOversoldWisataClampsToZero(t *testing.T) {
	setupTestDB(t)
	user := createUser(t, "budi", "user")
	wisata := createWisata(t, 10, 500000)
	r := bookingRouter(&user)

	paid := models.Booking{
		UserID:         user.ID,
		WisataID:       wisata.ID,
		TanggalBooking: wisata.Pemberangkatan,
		JumlahOrang:    10,
		TotalHarga:     10 * 500000,
		Status:         models.BookingConfirmed,
	}
	require.NoError(t, database.DB.Create(&paid).Error)
	require.NoError(t, database.DB.Model(&wisata).Update("kapasitas", 8).Error)

	w := performJSON(t, r, http.MethodGet, "/getwisata/1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(0), decodeBody(t, w)["sisaKapasitas"])

	w = performJSON(t, r, http.MethodPost, "/createbooking", gin.H{
		"wisataId":    wisata.ID,
		"jumlahOrang": 1,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Jumlah orang melebihi kapasitas tersisa (0)", decodeBody(t, w)["message"])
}
