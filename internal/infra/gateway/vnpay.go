package gateway

import (
	"context"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"stayhub/internal/domain/booking"
	"stayhub/internal/pkg/clock"
	"stayhub/internal/pkg/config"
	"stayhub/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrInvalidSignature = errs.New("gateway signature mismatch")
	ErrMalformedRef     = errs.New("malformed gateway transaction reference")
	ErrRefundRejected   = errs.New("gateway rejected refund")
)

const (
	payDateLayout    = "20060102150405"
	responseCodeOK   = "00"
	secureHashParam  = "vnp_SecureHash"
	secureHashTypeID = "vnp_SecureHashType"
)

type PaymentRequest struct {
	PaymentID uuid.UUID
	Amount    booking.Money
	OrderInfo string
	ClientIP  string
}

type InitiationResult struct {
	RedirectURL string
	TxnRef      string
}

type CallbackData struct {
	TxnRef        string
	TransactionNo string
	ResponseCode  string
	Amount        booking.Money
	PaidAt        time.Time
	BankCode      string
	OrderInfo     string
}

func (c CallbackData) IsSuccess() bool {
	return c.ResponseCode == responseCodeOK
}

// VNPay builds signed payment-initiation URLs and validates inbound callback
// data. It holds no per-payment state: the transaction reference travels on
// the Payment row.
type VNPay struct {
	cfg        config.GatewayConfig
	clock      clock.Clock
	location   *time.Location
	httpClient *http.Client
}

func NewVNPay(cfg config.GatewayConfig, clk clock.Clock) (*VNPay, error) {
	loc, err := time.LoadLocation(cfg.TimeZone)
	if err != nil {
		return nil, errs.Wrap(err, "invalid gateway timezone")
	}
	return &VNPay{
		cfg:        cfg,
		clock:      clk,
		location:   loc,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}, nil
}

// BuildPaymentURL signs the initiation parameters and returns the redirect
// URL plus the generated {paymentID}_{epochMillis} reference.
func (v *VNPay) BuildPaymentURL(req PaymentRequest) (InitiationResult, error) {
	now := v.clock.Now()
	txnRef := fmt.Sprintf("%s_%d", req.PaymentID, now.UnixMilli())

	params := map[string]string{
		"vnp_Version":    v.cfg.Version,
		"vnp_Command":    v.cfg.Command,
		"vnp_TmnCode":    v.cfg.MerchantCode,
		"vnp_Amount":     strconv.FormatInt(req.Amount.Cents(), 10),
		"vnp_CurrCode":   v.cfg.CurrencyCode,
		"vnp_TxnRef":     txnRef,
		"vnp_OrderInfo":  req.OrderInfo,
		"vnp_OrderType":  v.cfg.OrderType,
		"vnp_Locale":     v.cfg.Locale,
		"vnp_ReturnUrl":  v.cfg.ReturnURL,
		"vnp_IpAddr":     req.ClientIP,
		"vnp_CreateDate": now.In(v.location).Format(payDateLayout),
	}

	canonical := canonicalize(params)
	signature := v.sign(canonical)

	return InitiationResult{
		RedirectURL: v.cfg.PayURL + "?" + canonical + "&" + secureHashParam + "=" + signature,
		TxnRef:      txnRef,
	}, nil
}

// ParseCallback validates the inbound signature and extracts the fields the
// settlement path needs. The raw values stay untouched so a mismatched
// signature never half-applies.
func (v *VNPay) ParseCallback(values url.Values) (CallbackData, error) {
	received := values.Get(secureHashParam)
	if received == "" {
		return CallbackData{}, ErrInvalidSignature
	}

	params := make(map[string]string)
	for key := range values {
		if key == secureHashParam || key == secureHashTypeID {
			continue
		}
		if strings.HasPrefix(key, "vnp_") {
			params[key] = values.Get(key)
		}
	}

	expected := v.sign(canonicalize(params))
	if !hmac.Equal([]byte(strings.ToLower(received)), []byte(expected)) {
		return CallbackData{}, ErrInvalidSignature
	}

	amount, err := strconv.ParseInt(values.Get("vnp_Amount"), 10, 64)
	if err != nil {
		return CallbackData{}, errs.Wrap(err, "invalid callback amount")
	}

	data := CallbackData{
		TxnRef:        values.Get("vnp_TxnRef"),
		TransactionNo: values.Get("vnp_TransactionNo"),
		ResponseCode:  values.Get("vnp_ResponseCode"),
		Amount:        booking.NewMoney(amount),
		BankCode:      values.Get("vnp_BankCode"),
		OrderInfo:     values.Get("vnp_OrderInfo"),
	}

	if payDate := values.Get("vnp_PayDate"); payDate != "" {
		t, err := time.ParseInLocation(payDateLayout, payDate, v.location)
		if err != nil {
			return CallbackData{}, errs.Wrap(err, "invalid callback pay date")
		}
		data.PaidAt = t
	} else {
		data.PaidAt = v.clock.Now()
	}

	return data, nil
}

// ExecuteRefund posts a signed refund command. The engine treats the call as
// fire-and-confirm: an accepted response completes the refund, anything else
// fails it.
func (v *VNPay) ExecuteRefund(ctx context.Context, txnRef, gatewayTxnID string, amount booking.Money, reason string) error {
	now := v.clock.Now()
	params := map[string]string{
		"vnp_Version":         v.cfg.Version,
		"vnp_Command":         "refund",
		"vnp_TmnCode":         v.cfg.MerchantCode,
		"vnp_TxnRef":          txnRef,
		"vnp_TransactionNo":   gatewayTxnID,
		"vnp_Amount":          strconv.FormatInt(amount.Cents(), 10),
		"vnp_OrderInfo":       reason,
		"vnp_TransactionDate": now.In(v.location).Format(payDateLayout),
		"vnp_CreateDate":      now.In(v.location).Format(payDateLayout),
	}

	canonical := canonicalize(params)
	body := canonical + "&" + secureHashParam + "=" + v.sign(canonical)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, v.cfg.PayURL, strings.NewReader(body))
	if err != nil {
		return errs.Wrap(err, "failed to build refund request")
	}
	httpReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := v.httpClient.Do(httpReq)
	if err != nil {
		return errs.Wrap(err, "refund request failed")
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err != nil {
		return errs.Wrap(err, "failed to read refund response")
	}

	var parsed struct {
		ResponseCode string `json:"vnp_ResponseCode"`
		Message      string `json:"vnp_Message"`
	}
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return errs.Wrap(err, "failed to decode refund response")
	}
	if parsed.ResponseCode != responseCodeOK {
		return errs.Mark(errs.New("refund response code "+parsed.ResponseCode+": "+parsed.Message), ErrRefundRejected)
	}
	return nil
}

// PaymentIDFromRef recovers the internal payment id from the numeric prefix
// before the underscore. Fallback path for rows missing the stored
// reference.
func PaymentIDFromRef(ref string) (uuid.UUID, error) {
	prefix, _, found := strings.Cut(ref, "_")
	if !found {
		return uuid.Nil, ErrMalformedRef
	}
	id, err := uuid.Parse(prefix)
	if err != nil {
		return uuid.Nil, errs.Mark(err, ErrMalformedRef)
	}
	return id, nil
}

// canonicalize sorts parameters lexicographically by name and joins them as
// key=urlencoded(value) pairs. Empty values are excluded from signing.
func canonicalize(params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k, val := range params {
		if val == "" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var sb strings.Builder
	for i, k := range keys {
		if i > 0 {
			sb.WriteByte('&')
		}
		sb.WriteString(k)
		sb.WriteByte('=')
		sb.WriteString(url.QueryEscape(params[k]))
	}
	return sb.String()
}

func (v *VNPay) sign(canonical string) string {
	mac := hmac.New(sha512.New, []byte(v.cfg.HashSecret))
	mac.Write([]byte(canonical))
	return hex.EncodeToString(mac.Sum(nil))
}
