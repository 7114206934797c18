package payment

import (
	"sync"
	"testing"

	"go-travel-api/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The gateway is configured once at startup; a request can never mutate
// it, so concurrent session calls against an unconfigured gateway all
// fail fast without touching its state.
func TestUnconfiguredGatewayConcurrentCalls(t *testing.T) {
	gw := &midtransGateway{}

	var wg sync.WaitGroup
	errs := make([]error, 4)
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = gw.CreateSnapSession("TRV-race", 1000, models.User{Username: "budi"})
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		assert.Error(t, err)
	}
	assert.False(t, gw.configured)
}

func TestConnectInstallsConfiguredGateway(t *testing.T) {
	previous := Client
	t.Cleanup(func() { Client = previous })
	t.Setenv("MIDTRANS_SERVER_KEY", "SB-test-key")

	Connect()

	gw, ok := Client.(*midtransGateway)
	require.True(t, ok)
	assert.True(t, gw.configured)
}

func TestConnectWithoutKeyLeavesGatewayDisabled(t *testing.T) {
	previous := Client
	t.Cleanup(func() { Client = previous })
	t.Setenv("MIDTRANS_SERVER_KEY", "")

	Client = &midtransGateway{}
	Connect()

	_, err := Client.CreateSnapSession("TRV-x", 1000, models.User{})
	assert.Error(t, err)
}
