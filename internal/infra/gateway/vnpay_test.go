//go:build unit

package gateway_test

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"net/url"
	"sort"
	"strings"
	"testing"
	"time"

	"stayhub/internal/domain/booking"
	"stayhub/internal/infra/gateway"
	"stayhub/internal/pkg/clock"
	"stayhub/internal/pkg/config"
	"stayhub/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testGateway(t *testing.T) (*gateway.VNPay, config.GatewayConfig, *clock.MockClock) {
	t.Helper()
	cfg := config.NewTestConfig().Gateway
	cfg.TimeZone = "UTC"

	clk := clock.NewMockClock(time.Date(2025, 6, 2, 10, 30, 0, 0, time.UTC))
	gw, err := gateway.NewVNPay(cfg, clk)
	require.NoError(t, err)
	return gw, cfg, clk
}

// signValues reproduces the signature the gateway expects: parameters sorted
// by name, empty values dropped, values URL-encoded, HMAC-SHA512 over the
// joined string.
func signValues(secret string, values url.Values) string {
	keys := make([]string, 0, len(values))
	for k := range values {
		if !strings.HasPrefix(k, "vnp_") || k == "vnp_SecureHash" || k == "vnp_SecureHashType" {
			continue
		}
		if values.Get(k) == "" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+url.QueryEscape(values.Get(k)))
	}

	mac := hmac.New(sha512.New, []byte(secret))
	mac.Write([]byte(strings.Join(pairs, "&")))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVNPay_BuildPaymentURL(t *testing.T) {
	gw, cfg, _ := testGateway(t)
	paymentID := uuid.New()

	result, err := gw.BuildPaymentURL(gateway.PaymentRequest{
		PaymentID: paymentID,
		Amount:    booking.NewMoney(15000),
		OrderInfo: "booking 42",
		ClientIP:  "203.0.113.7",
	})
	require.NoError(t, err)

	t.Run("txn ref carries the payment id and creation millis", func(t *testing.T) {
		prefix, millis, found := strings.Cut(result.TxnRef, "_")
		require.True(t, found)
		assert.Equal(t, paymentID.String(), prefix)
		assert.Equal(t, "1748860200000", millis)

		recovered, err := gateway.PaymentIDFromRef(result.TxnRef)
		require.NoError(t, err)
		assert.Equal(t, paymentID, recovered)
	})

	parsed, err := url.Parse(result.RedirectURL)
	require.NoError(t, err)
	query := parsed.Query()

	t.Run("redirect URL carries the initiation parameters", func(t *testing.T) {
		assert.Equal(t, cfg.PayURL, parsed.Scheme+"://"+parsed.Host+parsed.Path)
		assert.Equal(t, "15000", query.Get("vnp_Amount"))
		assert.Equal(t, cfg.MerchantCode, query.Get("vnp_TmnCode"))
		assert.Equal(t, cfg.ReturnURL, query.Get("vnp_ReturnUrl"))
		assert.Equal(t, result.TxnRef, query.Get("vnp_TxnRef"))
		assert.Equal(t, "booking 42", query.Get("vnp_OrderInfo"))
		assert.Equal(t, "20250602103000", query.Get("vnp_CreateDate"))
	})

	t.Run("secure hash matches an independent computation", func(t *testing.T) {
		assert.Equal(t, signValues(cfg.HashSecret, query), query.Get("vnp_SecureHash"))
	})
}

func TestVNPay_ParseCallback(t *testing.T) {
	gw, cfg, _ := testGateway(t)

	makeCallback := func(mutate func(url.Values)) url.Values {
		values := url.Values{}
		values.Set("vnp_TxnRef", uuid.New().String()+"_1748860200000")
		values.Set("vnp_Amount", "15000")
		values.Set("vnp_ResponseCode", "00")
		values.Set("vnp_TransactionNo", "14423616")
		values.Set("vnp_BankCode", "NCB")
		values.Set("vnp_OrderInfo", "booking 42")
		values.Set("vnp_PayDate", "20250602104500")
		if mutate != nil {
			mutate(values)
		}
		values.Set("vnp_SecureHash", signValues(cfg.HashSecret, values))
		return values
	}

	t.Run("valid success callback", func(t *testing.T) {
		values := makeCallback(nil)

		data, err := gw.ParseCallback(values)
		require.NoError(t, err)

		assert.True(t, data.IsSuccess())
		assert.Equal(t, values.Get("vnp_TxnRef"), data.TxnRef)
		assert.Equal(t, "14423616", data.TransactionNo)
		assert.Equal(t, int64(15000), data.Amount.Cents())
		assert.Equal(t, time.Date(2025, 6, 2, 10, 45, 0, 0, time.UTC), data.PaidAt)
	})

	t.Run("failure response code", func(t *testing.T) {
		values := makeCallback(func(v url.Values) { v.Set("vnp_ResponseCode", "24") })

		data, err := gw.ParseCallback(values)
		require.NoError(t, err)
		assert.False(t, data.IsSuccess())
	})

	t.Run("uppercase signature is accepted", func(t *testing.T) {
		values := makeCallback(nil)
		values.Set("vnp_SecureHash", strings.ToUpper(values.Get("vnp_SecureHash")))

		_, err := gw.ParseCallback(values)
		require.NoError(t, err)
	})

	t.Run("non-gateway parameters do not affect the signature", func(t *testing.T) {
		values := makeCallback(nil)
		values.Set("utm_source", "email")

		_, err := gw.ParseCallback(values)
		require.NoError(t, err)
	})

	t.Run("tampered amount NG", func(t *testing.T) {
		values := makeCallback(nil)
		values.Set("vnp_Amount", "1")

		_, err := gw.ParseCallback(values)
		require.ErrorIs(t, err, gateway.ErrInvalidSignature)
	})

	t.Run("missing hash NG", func(t *testing.T) {
		values := makeCallback(nil)
		values.Del("vnp_SecureHash")

		_, err := gw.ParseCallback(values)
		require.ErrorIs(t, err, gateway.ErrInvalidSignature)
	})

	t.Run("missing pay date falls back to current time", func(t *testing.T) {
		values := makeCallback(func(v url.Values) { v.Del("vnp_PayDate") })

		data, err := gw.ParseCallback(values)
		require.NoError(t, err)
		assert.Equal(t, time.Date(2025, 6, 2, 10, 30, 0, 0, time.UTC), data.PaidAt)
	})
}

func TestPaymentIDFromRef(t *testing.T) {
	t.Run("valid ref", func(t *testing.T) {
		id := uuid.New()
		got, err := gateway.PaymentIDFromRef(id.String() + "_1748860200000")
		require.NoError(t, err)
		assert.Equal(t, id, got)
	})

	t.Run("no separator NG", func(t *testing.T) {
		_, err := gateway.PaymentIDFromRef(uuid.New().String())
		require.ErrorIs(t, err, gateway.ErrMalformedRef)
	})

	t.Run("junk prefix NG", func(t *testing.T) {
		_, err := gateway.PaymentIDFromRef("not-a-uuid_1748860200000")
		// The parse failure is marked, not wrapped, so matching goes
		// through the errs facade.
		require.Error(t, err)
		assert.True(t, errs.Is(err, gateway.ErrMalformedRef))
	})
}
