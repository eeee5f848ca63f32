package utils

import (
	"crypto/rand"
	"fmt"
	"strings"
	"time"
	"unicode"
)

const orderCodeCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateOrderCode membentuk kode order format {PREFIX}-{YYMMDD}-{6 acak},
// contoh: KP-251003-7W2B9I. Suffix dari crypto/rand; 36^6 kombinasi per
// tenant per hari sehingga tabrakan praktis tidak terjadi.
func GenerateOrderCode(prefix string, now time.Time) (string, error) {
	prefix = normalizeCodePrefix(prefix)

	// 252 = kelipatan 36 terbesar di bawah 256; byte di atasnya dibuang
	// supaya tiap karakter charset berpeluang sama (tanpa modulo bias).
	const rejectAbove = 252

	suffix := make([]byte, 0, 6)
	buf := make([]byte, 16)
	for len(suffix) < 6 {
		if _, err := rand.Read(buf); err != nil {
			return "", fmt.Errorf("failed to read random bytes: %w", err)
		}
		for _, b := range buf {
			if b >= rejectAbove {
				continue
			}
			suffix = append(suffix, orderCodeCharset[int(b)%len(orderCodeCharset)])
			if len(suffix) == 6 {
				break
			}
		}
	}

	return fmt.Sprintf("%s-%s-%s", prefix, now.Format("060102"), string(suffix)), nil
}

// normalizeCodePrefix menjaga prefix selalu 2-4 huruf/angka kapital.
// Input kosong atau penuh karakter aneh jatuh ke "WR".
func normalizeCodePrefix(prefix string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(strings.TrimSpace(prefix)) {
		if unicode.IsUpper(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			if b.Len() >= 4 {
				break
			}
		}
	}
	if b.Len() < 2 {
		return "WR"
	}
	return b.String()
}
