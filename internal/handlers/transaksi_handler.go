package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"go-travel-api/internal/database"
	"go-travel-api/internal/models"
	"go-travel-api/internal/payment"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type TransaksiRequest struct {
	BookingID uint `json:"bookingId" binding:"required"`
}

// --- POST: Open a payment session for a pending booking ---
// Returns the Snap redirect URL; the frontend shows a manual "Bayar
// Sekarang" button that opens it in a new tab.
func CreateTransaksi(c *gin.Context) {
	var req TransaksiRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "ID Booking tidak ditemukan"})
		return
	}

	role := c.MustGet("role").(string)
	userID := c.MustGet("userID").(uint)

	var b models.Booking
	if err := database.DB.Preload("User").Preload("Wisata").First(&b, req.BookingID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Data booking tidak ditemukan"})
		return
	}

	if b.UserID != userID && role != "admin" && role != "superadmin" {
		c.JSON(http.StatusForbidden, gin.H{"message": "Anda tidak memiliki akses ke booking ini"})
		return
	}

	if b.Status != models.BookingPending {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Booking ini tidak lagi menunggu pembayaran"})
		return
	}

	// Reuse the newest still-pending attempt instead of opening a
	// duplicate session at the gateway.
	var existing models.Transaksi
	err := database.DB.Where("booking_id = ? AND status = ?", b.ID, "pending").
		Order("id desc").First(&existing).Error
	if err == nil && existing.PaymentURL != "" {
		c.JSON(http.StatusOK, transaksiPayload(existing))
		return
	}

	orderID := "TRV-" + uuid.NewString()
	session, err := payment.Client.CreateSnapSession(orderID, int64(b.TotalHarga), b.User)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"message": "Gagal memproses pembayaran. Silakan coba lagi."})
		return
	}

	transaksi := models.Transaksi{
		BookingID:  b.ID,
		OrderID:    orderID,
		Status:     "pending",
		Amount:     b.TotalHarga,
		PaymentURL: session.RedirectURL,
		SnapToken:  session.Token,
	}

	if err := database.DB.Create(&transaksi).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Gagal menyimpan transaksi"})
		return
	}

	c.JSON(http.StatusCreated, transaksiPayload(transaksi))
}

func transaksiPayload(t models.Transaksi) gin.H {
	return gin.H{
		"paymentUrl": t.PaymentURL,
		"orderId":    t.OrderID,
		"bookingId":  t.BookingID,
		"status":     t.Status,
		"amount":     t.Amount,
		"snapToken":  t.SnapToken,
	}
}

// --- GET: Latest transaction for a booking, with the rendered badge ---
// A booking can have several payment attempts; the newest one is
// authoritative. No transaction at all is a distinct condition from a
// failed one: the client shows "not found, view booking" for the former
// and a status banner for the latter.
func GetTransaksiByBookingID(c *gin.Context) {
	bookingID := c.Param("bookingId")
	role := c.MustGet("role").(string)
	userID := c.MustGet("userID").(uint)

	var t models.Transaksi
	err := database.DB.Preload("Booking").Preload("Booking.Wisata").Preload("Booking.User").
		Where("booking_id = ?", bookingID).Order("id desc").First(&t).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Transaksi tidak ditemukan"})
		return
	}

	if t.Booking.UserID != userID && role != "admin" && role != "superadmin" {
		c.JSON(http.StatusForbidden, gin.H{"message": "Anda tidak memiliki akses ke transaksi ini"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data":       t,
		"statusInfo": payment.StatusBadge(t.Status),
	})
}

// midtransNotification is the payload Midtrans POSTs on every status change.
type midtransNotification struct {
	OrderID           string `json:"order_id"`
	TransactionID     string `json:"transaction_id"`
	TransactionStatus string `json:"transaction_status"`
	StatusCode        string `json:"status_code"`
	GrossAmount       string `json:"gross_amount"`
	SignatureKey      string `json:"signature_key"`
	PaymentType       string `json:"payment_type"`
	SettlementTime    string `json:"settlement_time"`
	TransactionTime   string `json:"transaction_time"`
}

// --- POST: Gateway webhook. The only writer of payment state. ---
// The client never transitions a transaction itself, it just re-reads
// after this endpoint has run.
func MidtransNotification(c *gin.Context) {
	raw, err := c.GetRawData()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid notification body"})
		return
	}

	var notif midtransNotification
	if err := json.Unmarshal(raw, &notif); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid notification body"})
		return
	}

	if !payment.VerifySignature(notif.OrderID, notif.StatusCode, notif.GrossAmount, notif.SignatureKey) {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid signature"})
		return
	}

	var t models.Transaksi
	if err := database.DB.Where("order_id = ?", notif.OrderID).First(&t).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Transaksi tidak ditemukan"})
		return
	}

	t.Status = notif.TransactionStatus
	t.TransactionID = notif.TransactionID
	t.PaymentType = notif.PaymentType
	t.RawNotification = datatypes.JSON(raw)
	if paidAt := parseGatewayTime(notif.SettlementTime, notif.TransactionTime); paidAt != nil && payment.IsPaid(t.Status) {
		t.PaymentTime = paidAt
	}

	if err := database.DB.Save(&t).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Gagal menyimpan transaksi"})
		return
	}

	// Propagate to the booking so seat accounting sees paid bookings.
	// A non-200 answer makes the gateway redeliver, so a failed write
	// here cannot strand a paid booking in pending.
	if next := payment.BookingStatusFor(t.Status); next != models.BookingPending {
		err := database.DB.Model(&models.Booking{}).Where("id = ?", t.BookingID).Update("status", next).Error
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Gagal memperbarui booking"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "OK"})
}

// parseGatewayTime picks the settlement time when present, otherwise the
// transaction time. Midtrans formats both as "2006-01-02 15:04:05". Nil
// when neither field carries a parseable value; the payment time then
// stays empty rather than recording a made-up local clock reading.
func parseGatewayTime(settlement, transaction string) *time.Time {
	for _, v := range []string{settlement, transaction} {
		if v == "" {
			continue
		}
		if ts, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
			return &ts
		}
	}
	return nil
}
