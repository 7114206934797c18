package models

import (
	"time"

	"gorm.io/datatypes"
)

// User - Customers and back-office staff share one table
type User struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Username      string    `gorm:"uniqueIndex;size:50" json:"username"`
	Email         string    `gorm:"uniqueIndex;size:100" json:"email"`
	Phone         string    `gorm:"size:20" json:"phone"`
	PasswordHash  string    `json:"-"` // Never return this in JSON
	RememberToken string    `json:"-"` // Hashed remember-me token, empty when not opted in
	Role          string    `json:"role"` // 'user', 'admin', 'superadmin'
	Bookings      []Booking `gorm:"foreignKey:UserID" json:"bookings,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

// Kategori classifies travel packages (many wisata -> one kategori)
type Kategori struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Nama string `gorm:"uniqueIndex;size:100" json:"nama"`
}

// Wisata - A bookable travel package
type Wisata struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Nama           string    `json:"nama"`
	Deskripsi      string    `gorm:"type:text" json:"deskripsi"`
	Lokasi         string    `json:"lokasi"`
	Harga          float64   `json:"harga"` // Price per person, IDR
	Kapasitas      int       `json:"kapasitas"`
	Pemberangkatan time.Time `json:"pemberangkatan"`
	Status         string    `gorm:"default:tersedia" json:"status"` // 'tersedia', 'penuh', 'cancelled'
	KategoriID     uint      `json:"kategoriId"`
	Kategori       Kategori  `json:"kategori,omitempty"`
	Gambar         string    `json:"gambar"` // Filename under uploads/wisata
}

// Booking statuses. Only paid bookings hold seats.
const (
	BookingPending   = "pending"
	BookingConfirmed = "confirmed"
	BookingCancelled = "cancelled"
	BookingExpired   = "expired"
)

// Booking - A reservation against a package for its departure date
type Booking struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	UserID         uint      `gorm:"index" json:"userId"`
	User           User      `json:"user,omitempty"`
	WisataID       uint      `gorm:"index" json:"wisataId"`
	Wisata         Wisata    `json:"wisata,omitempty"`
	TanggalBooking time.Time `json:"tanggalBooking"` // Fixed to the wisata's departure date
	JumlahOrang    int       `json:"jumlahOrang"`
	TotalHarga     float64   `json:"totalHarga"` // Always harga * jumlahOrang at creation
	Status         string    `gorm:"default:pending;index" json:"status"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// Transaksi - One payment attempt against a booking via the gateway.
// A booking can accumulate several attempts (retried payments); the
// newest row is the authoritative one for status checks.
type Transaksi struct {
	ID              uint           `gorm:"primaryKey" json:"id"`
	BookingID       uint           `gorm:"index" json:"bookingId"`
	Booking         Booking        `json:"booking,omitempty"`
	OrderID         string         `gorm:"uniqueIndex;size:64" json:"orderId"` // Our id at the gateway
	TransactionID   string         `gorm:"size:64" json:"transactionId"`       // Gateway's id, set by notification
	Status          string         `gorm:"default:pending;index" json:"status"`
	Amount          float64        `json:"amount"`
	PaymentType     string         `json:"paymentType"`
	PaymentTime     *time.Time     `json:"paymentTime"`
	PaymentURL      string         `json:"paymentUrl"`
	SnapToken       string         `json:"snapToken"`
	RawNotification datatypes.JSON `json:"-"` // Last gateway payload, kept for audit
	CreatedAt       time.Time      `json:"createdAt"`
	UpdatedAt       time.Time      `json:"updatedAt"`
}

// Konfigurasi - Singleton site branding record. Read by the landing
// page, only ever updated, never created twice or deleted.
type Konfigurasi struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	NamaTravel   string `json:"namaTravel"`
	AlamatTravel string `json:"alamatTravel"`
	NoTelpTravel string `json:"noTelpTravel"`
	Email        string `json:"email"`
	Text         string `gorm:"type:text" json:"text"` // Hero tagline
	TentangKami  string `gorm:"type:text" json:"tentangKami"`
	Footer       string `json:"footer"`
	LogoTravel   string `json:"logoTravel"` // Filename under uploads/config
	Background   string `json:"background"`
}

// Slide - Promotional slide on the landing carousel
type Slide struct {
	ID            uint        `gorm:"primaryKey" json:"id"`
	KonfigurasiID uint        `json:"konfigurasiId"`
	Konfigurasi   Konfigurasi `json:"konfigurasi,omitempty"`
	Deskripsi     string      `json:"deskripsi"`
	Urutan        int         `json:"urutan"` // Display order
	URLGambar     string      `json:"urlGambar"`
}
