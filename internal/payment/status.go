package payment

import "go-travel-api/internal/models"

// StatusInfo is the (severity, label) pair the frontend renders as a
// badge. Severity values follow the Bootstrap variants the frontend uses.
type StatusInfo struct {
	Severity string `json:"severity"`
	Label    string `json:"label"`
}

// statusMap covers every gateway status we have seen. The enumeration
// is open: Midtrans may add values, so lookups must never fail.
var statusMap = map[string]StatusInfo{
	"pending":        {Severity: "warning", Label: "Menunggu Pembayaran"},
	"settlement":     {Severity: "success", Label: "Pembayaran Berhasil"},
	"capture":        {Severity: "success", Label: "Pembayaran Ditangkap"},
	"success":        {Severity: "success", Label: "Pembayaran Berhasil"},
	"deny":           {Severity: "danger", Label: "Pembayaran Ditolak"},
	"cancel":         {Severity: "danger", Label: "Pembayaran Dibatalkan"},
	"expire":         {Severity: "secondary", Label: "Pembayaran Kedaluwarsa"},
	"failure":        {Severity: "danger", Label: "Pembayaran Gagal"},
	"refund":         {Severity: "info", Label: "Pembayaran Dikembalikan"},
	"partial_refund": {Severity: "info", Label: "Pembayaran Dikembalikan Sebagian"},
	"authorize":      {Severity: "primary", Label: "Pembayaran Diotorisasi"},
}

// StatusBadge maps any gateway status string to a badge. Unknown values
// get a neutral badge instead of breaking the status page.
func StatusBadge(status string) StatusInfo {
	if info, ok := statusMap[status]; ok {
		return info
	}
	return StatusInfo{Severity: "secondary", Label: "Status Tidak Diketahui"}
}

// IsPaid reports whether a gateway status means the money arrived.
func IsPaid(status string) bool {
	switch status {
	case "settlement", "capture", "success":
		return true
	}
	return false
}

// BookingStatusFor translates a gateway status into the booking's own
// lifecycle. Unknown or in-flight statuses leave the booking pending.
func BookingStatusFor(gatewayStatus string) string {
	switch gatewayStatus {
	case "settlement", "capture", "success":
		return models.BookingConfirmed
	case "deny", "cancel", "failure":
		return models.BookingCancelled
	case "expire":
		return models.BookingExpired
	}
	return models.BookingPending
}
