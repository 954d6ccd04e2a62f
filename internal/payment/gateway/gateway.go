package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrConfigInvalid   = errors.New("gateway config invalid")
	ErrRequestFailed   = errors.New("gateway request failed")
	ErrResponseInvalid = errors.New("gateway response invalid")
)

const (
	defaultAPIBaseURL = "https://api.payvault.dev"
	defaultTimeout    = 12 * time.Second
)

var zeroDecimalCurrencies = map[string]struct{}{
	"JPY": {},
	"KRW": {},
	"VND": {},
}

// Config 支付网关配置。
type Config struct {
	APIBaseURL string `json:"api_base_url"`
	SecretKey  string `json:"secret_key"`
	Currency   string `json:"currency"`
	TimeoutMS  int    `json:"timeout_ms"`
}

// CreateIntentInput 创建支付意向输入。
type CreateIntentInput struct {
	ClaimID        uint
	IdempotencyKey string
	Amount         string
	Currency       string
	Description    string
}

// CreateIntentResult 创建支付意向返回。
type CreateIntentResult struct {
	IntentID     string
	ClientSecret string
	Status       string
	Raw          map[string]interface{}
}

// QueryIntentResult 查询支付意向返回。
type QueryIntentResult struct {
	IntentID string
	Status   string
	Amount   string
	Currency string
	PaidAt   *time.Time
	Raw      map[string]interface{}
}

// ValidateConfig 校验配置。
func ValidateConfig(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("%w: config is nil", ErrConfigInvalid)
	}
	if strings.TrimSpace(cfg.SecretKey) == "" {
		return fmt.Errorf("%w: secret_key is required", ErrConfigInvalid)
	}
	if strings.TrimSpace(cfg.APIBaseURL) == "" {
		return fmt.Errorf("%w: api_base_url is required", ErrConfigInvalid)
	}
	if _, err := url.ParseRequestURI(strings.TrimSpace(cfg.APIBaseURL)); err != nil {
		return fmt.Errorf("%w: api_base_url is invalid", ErrConfigInvalid)
	}
	return nil
}

// CreateIntent 在网关侧创建支付意向。
func CreateIntent(ctx context.Context, cfg *Config, input CreateIntentInput) (*CreateIntentResult, error) {
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	if ctx == nil {
		ctx = context.Background()
	}
	cfg.normalize()
	if input.ClaimID == 0 {
		return nil, fmt.Errorf("%w: claim_id is required", ErrConfigInvalid)
	}
	currency := strings.ToUpper(strings.TrimSpace(input.Currency))
	if currency == "" {
		currency = cfg.Currency
	}
	if currency == "" {
		return nil, fmt.Errorf("%w: currency is required", ErrConfigInvalid)
	}
	minorAmount, err := toMinorAmount(input.Amount, currency)
	if err != nil {
		return nil, err
	}

	payload := map[string]interface{}{
		"amount":   minorAmount,
		"currency": strings.ToLower(currency),
		"metadata": map[string]interface{}{
			"claim_id": strconv.FormatUint(uint64(input.ClaimID), 10),
		},
	}
	if desc := strings.TrimSpace(input.Description); desc != "" {
		payload["description"] = desc
	}

	headers := map[string]string{}
	if key := strings.TrimSpace(input.IdempotencyKey); key != "" {
		headers["Idempotency-Key"] = key
	}

	respBody, statusCode, err := doJSONRequest(ctx, cfg, http.MethodPost, "/v1/payment_intents", payload, headers)
	if err != nil {
		return nil, err
	}
	if statusCode < 200 || statusCode >= 300 {
		return nil, fmt.Errorf("%w: create payment intent status %d", ErrResponseInvalid, statusCode)
	}

	raw, err := decodeRawMap(respBody)
	if err != nil {
		return nil, err
	}
	result := &CreateIntentResult{Raw: raw}
	result.IntentID = strings.TrimSpace(readString(raw, "id"))
	result.ClientSecret = strings.TrimSpace(readString(raw, "client_secret"))
	result.Status = mapIntentStatus(strings.TrimSpace(readString(raw, "status")))
	if result.IntentID == "" {
		return nil, fmt.Errorf("%w: missing intent id", ErrResponseInvalid)
	}
	return result, nil
}

// QueryIntent 按网关意向 ID 查询支付状态。
func QueryIntent(ctx context.Context, cfg *Config, intentID string) (*QueryIntentResult, error) {
	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	if ctx == nil {
		ctx = context.Background()
	}
	cfg.normalize()
	intentID = strings.TrimSpace(intentID)
	if intentID == "" {
		return nil, fmt.Errorf("%w: intent_id is required", ErrConfigInvalid)
	}

	path := fmt.Sprintf("/v1/payment_intents/%s", url.PathEscape(intentID))
	respBody, statusCode, err := doJSONRequest(ctx, cfg, http.MethodGet, path, nil, nil)
	if err != nil {
		return nil, err
	}
	if statusCode < 200 || statusCode >= 300 {
		return nil, fmt.Errorf("%w: query payment intent status %d", ErrResponseInvalid, statusCode)
	}

	raw, err := decodeRawMap(respBody)
	if err != nil {
		return nil, err
	}
	result := &QueryIntentResult{Raw: raw}
	result.IntentID = strings.TrimSpace(readString(raw, "id"))
	result.Currency = strings.ToUpper(strings.TrimSpace(readString(raw, "currency")))
	amountMinor := readInt64(raw, "amount_received")
	if amountMinor <= 0 {
		amountMinor = readInt64(raw, "amount")
	}
	if amountMinor > 0 && result.Currency != "" {
		result.Amount = fromMinorAmount(amountMinor, result.Currency)
	}
	result.Status = mapIntentStatus(strings.TrimSpace(readString(raw, "status")))
	if created := readInt64(raw, "created"); created > 0 {
		paidAt := time.Unix(created, 0)
		result.PaidAt = &paidAt
	}
	if result.IntentID == "" {
		return nil, fmt.Errorf("%w: missing intent id", ErrResponseInvalid)
	}
	return result, nil
}

func mapIntentStatus(status string) string {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "succeeded":
		return "success"
	case "canceled", "requires_payment_method":
		return "failed"
	case "processing", "requires_action", "requires_confirmation", "requires_capture":
		return "pending"
	default:
		return "pending"
	}
}

func (c *Config) normalize() {
	c.SecretKey = strings.TrimSpace(c.SecretKey)
	c.Currency = strings.ToUpper(strings.TrimSpace(c.Currency))
	c.APIBaseURL = strings.TrimRight(strings.TrimSpace(c.APIBaseURL), "/")
	if c.APIBaseURL == "" {
		c.APIBaseURL = defaultAPIBaseURL
	}
}

func (c *Config) timeout() time.Duration {
	if c.TimeoutMS > 0 {
		return time.Duration(c.TimeoutMS) * time.Millisecond
	}
	return defaultTimeout
}

func toMinorAmount(amount string, currency string) (int64, error) {
	parsed, err := decimal.NewFromString(strings.TrimSpace(amount))
	if err != nil {
		return 0, fmt.Errorf("%w: amount is invalid", ErrConfigInvalid)
	}
	if parsed.LessThanOrEqual(decimal.Zero) {
		return 0, fmt.Errorf("%w: amount must be greater than zero", ErrConfigInvalid)
	}
	scale := currencyScale(currency)
	minor := parsed.Shift(int32(scale)).Round(0)
	return minor.IntPart(), nil
}

func fromMinorAmount(minor int64, currency string) string {
	scale := currencyScale(currency)
	return decimal.NewFromInt(minor).Shift(int32(-scale)).StringFixed(int32(scale))
}

func currencyScale(currency string) int {
	upper := strings.ToUpper(strings.TrimSpace(currency))
	if _, ok := zeroDecimalCurrencies[upper]; ok {
		return 0
	}
	return 2
}

func doJSONRequest(ctx context.Context, cfg *Config, method, path string, payload map[string]interface{}, headers map[string]string) ([]byte, int, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	endpoint := strings.TrimRight(strings.TrimSpace(cfg.APIBaseURL), "/") + path

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, 0, fmt.Errorf("%w: encode request failed", ErrRequestFailed)
		}
		body = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: build request failed", ErrRequestFailed)
	}
	req.Header.Set("Authorization", "Bearer "+cfg.SecretKey)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := (&http.Client{Timeout: cfg.timeout()}).Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	defer resp.Body.Close()
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("%w: read response failed", ErrResponseInvalid)
	}
	return respBody, resp.StatusCode, nil
}

func decodeRawMap(body []byte) (map[string]interface{}, error) {
	var raw map[string]interface{}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("%w: decode response failed", ErrResponseInvalid)
	}
	return raw, nil
}

func readString(raw map[string]interface{}, key string) string {
	if raw == nil || strings.TrimSpace(key) == "" {
		return ""
	}
	value, ok := raw[key]
	if !ok || value == nil {
		return ""
	}
	switch typed := value.(type) {
	case string:
		return strings.TrimSpace(typed)
	case json.Number:
		return strings.TrimSpace(typed.String())
	case float64:
		return strings.TrimSpace(strconv.FormatInt(int64(typed), 10))
	default:
		return ""
	}
}

func readInt64(raw map[string]interface{}, key string) int64 {
	if raw == nil || strings.TrimSpace(key) == "" {
		return 0
	}
	value, ok := raw[key]
	if !ok || value == nil {
		return 0
	}
	switch typed := value.(type) {
	case int64:
		return typed
	case int:
		return int64(typed)
	case float64:
		return int64(typed)
	case json.Number:
		parsed, err := typed.Int64()
		if err != nil {
			return 0
		}
		return parsed
	case string:
		parsed, err := strconv.ParseInt(strings.TrimSpace(typed), 10, 64)
		if err != nil {
			return 0
		}
		return parsed
	default:
		return 0
	}
}
