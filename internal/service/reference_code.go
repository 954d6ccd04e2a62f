package service

import (
	"crypto/rand"
	"fmt"
)

const (
	referenceCodeCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	referenceCodeLength  = 8
)

// generateReferenceCode 生成 8 位大写字母数字取件码
func generateReferenceCode() (string, error) {
	buf := make([]byte, referenceCodeLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate reference code: %w", err)
	}
	code := make([]byte, referenceCodeLength)
	for i, b := range buf {
		code[i] = referenceCodeCharset[int(b)%len(referenceCodeCharset)]
	}
	return string(code), nil
}
