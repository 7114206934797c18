package handlers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"go-travel-api/internal/database"
	"go-travel-api/internal/models"
	"go-travel-api/internal/payment"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB points the package-wide database.DB at a fresh in-memory
// SQLite with the production schema.
func setupTestDB(t *testing.T) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// A single connection keeps every query on the same :memory: database
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	database.Migrate(db)
	database.DB = db
}

// authAs injects the identity the auth middleware would have set.
func authAs(user *models.User) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("userID", user.ID)
		c.Set("role", user.Role)
		c.Next()
	}
}

func createUser(t *testing.T, username, role string) models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("secret123"), bcrypt.MinCost)
	require.NoError(t, err)
	user := models.User{
		Username:     username,
		Email:        username + "@example.com",
		Phone:        "08123456789",
		PasswordHash: string(hash),
		Role:         role,
	}
	require.NoError(t, database.DB.Create(&user).Error)
	return user
}

func createWisata(t *testing.T, kapasitas int, harga float64) models.Wisata {
	t.Helper()
	kategori := models.Kategori{Nama: "Pantai-" + t.Name()}
	require.NoError(t, database.DB.Create(&kategori).Error)

	wisata := models.Wisata{
		Nama:           "Paket Bromo",
		Deskripsi:      "Sunrise di Bromo",
		Lokasi:         "Jawa Timur",
		Harga:          harga,
		Kapasitas:      kapasitas,
		Pemberangkatan: time.Date(2024, 8, 1, 0, 0, 0, 0, time.UTC),
		Status:         "tersedia",
		KategoriID:     kategori.ID,
	}
	require.NoError(t, database.DB.Create(&wisata).Error)
	return wisata
}

func performJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

// stubGateway replaces the Midtrans client in tests.
type stubGateway struct {
	calls int
}

func (s *stubGateway) CreateSnapSession(orderID string, amount int64, customer models.User) (*payment.SnapSession, error) {
	s.calls++
	return &payment.SnapSession{
		Token:       "stub-token",
		RedirectURL: "https://app.sandbox.midtrans.com/snap/v2/vtweb/stub-token",
	}, nil
}

func installStubGateway(t *testing.T) *stubGateway {
	t.Helper()
	stub := &stubGateway{}
	previous := payment.Client
	payment.Client = stub
	t.Cleanup(func() { payment.Client = previous })
	return stub
}
