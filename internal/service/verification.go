package service

import (
	"encoding/base64"
	"encoding/json"
	"regexp"
	"strings"
)

// qrPayload 二维码载荷结构
type qrPayload struct {
	ReferenceCode string `json:"referenceCode"`
}

var referenceCodePattern = regexp.MustCompile(`^[A-Z0-9]{8}$`)

// BuildQRPayload 构造取件二维码载荷（base64 编码的 JSON）
func BuildQRPayload(referenceCode string) (string, error) {
	data, err := json.Marshal(qrPayload{ReferenceCode: referenceCode})
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(data), nil
}

// ParseVerificationInput 解析核销输入，统一归一为大写取件码。
// 依次尝试：base64 编码的二维码载荷、裸 JSON 载荷、手工输入的取件码。
func ParseVerificationInput(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", ErrReferenceCodeInvalid
	}

	if decoded, err := base64.StdEncoding.DecodeString(trimmed); err == nil {
		if code, ok := parseQRPayload(decoded); ok {
			return normalizeReferenceCode(code)
		}
	}
	if code, ok := parseQRPayload([]byte(trimmed)); ok {
		return normalizeReferenceCode(code)
	}
	return normalizeReferenceCode(trimmed)
}

func parseQRPayload(data []byte) (string, bool) {
	var payload qrPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return "", false
	}
	if strings.TrimSpace(payload.ReferenceCode) == "" {
		return "", false
	}
	return payload.ReferenceCode, true
}

func normalizeReferenceCode(code string) (string, error) {
	normalized := strings.ToUpper(strings.TrimSpace(code))
	if !referenceCodePattern.MatchString(normalized) {
		return "", ErrReferenceCodeInvalid
	}
	return normalized, nil
}
