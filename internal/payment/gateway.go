package payment

import (
	"crypto/sha512"
	"encoding/hex"
	"errors"
	"log"
	"os"

	"go-travel-api/internal/models"

	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
)

// SnapSession is the hosted-payment-page handle returned by the gateway.
// The customer opens RedirectURL in a new tab and pays there.
type SnapSession struct {
	Token       string
	RedirectURL string
}

// Gateway creates hosted payment sessions. The production implementation
// talks to Midtrans Snap; tests install a stub.
type Gateway interface {
	CreateSnapSession(orderID string, amount int64, customer models.User) (*SnapSession, error)
}

// Client is the process-wide gateway, like database.DB. Connect swaps in
// the configured Midtrans client at startup; until then session requests
// fail fast.
var Client Gateway = &midtransGateway{}

type midtransGateway struct {
	snap       snap.Client
	configured bool
}

// Connect configures the Snap client from the environment. Runs once at
// startup, before the server accepts requests, so handlers never mutate
// the gateway.
func Connect() {
	serverKey := os.Getenv("MIDTRANS_SERVER_KEY")
	if serverKey == "" {
		log.Println("ℹ️ MIDTRANS_SERVER_KEY not set, payment gateway disabled")
		return
	}

	env := midtrans.Sandbox
	if os.Getenv("MIDTRANS_PRODUCTION") == "true" {
		env = midtrans.Production
	}

	gw := &midtransGateway{configured: true}
	gw.snap.New(serverKey, env)
	Client = gw
	log.Println("✅ Midtrans Snap client ready!")
}

func (m *midtransGateway) CreateSnapSession(orderID string, amount int64, customer models.User) (*SnapSession, error) {
	if !m.configured {
		return nil, errors.New("MIDTRANS_SERVER_KEY is not configured")
	}

	req := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  orderID,
			GrossAmt: amount,
		},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: customer.Username,
			Email: customer.Email,
			Phone: customer.Phone,
		},
	}

	resp, midErr := m.snap.CreateTransaction(req)
	if midErr != nil {
		return nil, midErr
	}

	return &SnapSession{Token: resp.Token, RedirectURL: resp.RedirectURL}, nil
}

// VerifySignature checks the signature_key Midtrans sends with every
// notification: sha512(order_id + status_code + gross_amount + server key).
func VerifySignature(orderID, statusCode, grossAmount, signatureKey string) bool {
	serverKey := os.Getenv("MIDTRANS_SERVER_KEY")
	hash := sha512.Sum512([]byte(orderID + statusCode + grossAmount + serverKey))
	return hex.EncodeToString(hash[:]) == signatureKey
}
