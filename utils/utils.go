package utils

import (
	"crypto/rand"
	"encoding/json"
	"fmt"
	"math/big"
	"strings"
	"time"

	"venue-booking/models/reservation"
	"venue-booking/types"

	"github.com/gofiber/fiber/v2"
)

// confirmationPrefixes maps each reservation kind to its human-facing
// confirmation number prefix. Distinct prefixes make collisions across
// kinds impossible by construction.
var confirmationPrefixes = map[reservation.Kind]string{
	reservation.KindEvento:     "EVT",
	reservation.KindHabitacion: "HAB",
	reservation.KindMasaje:     "MAS",
}

const confirmationSuffixChars = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// NewConfirmationNumber builds a unique, human-presentable confirmation
// number: kind prefix + UTC timestamp + random suffix, e.g.
// HAB-20250410153012-7KQ2.
func NewConfirmationNumber(kind reservation.Kind) string {
	prefix, ok := confirmationPrefixes[kind]
	if !ok {
		prefix = "RSV"
	}
	return fmt.Sprintf("%s-%s-%s", prefix, time.Now().UTC().Format("20060102150405"), randomSuffix(4))
}

func randomSuffix(n int) string {
	b := make([]byte, n)
	max := big.NewInt(int64(len(confirmationSuffixChars)))
	for i := range b {
		idx, err := rand.Int(rand.Reader, max)
		if err != nil {
			// crypto/rand only fails when the OS entropy source is broken;
			// fall back to a time-derived index rather than panicking.
			b[i] = confirmationSuffixChars[int(time.Now().UnixNano())%len(confirmationSuffixChars)]
			continue
		}
		b[i] = confirmationSuffixChars[idx.Int64()]
	}
	return string(b)
}

// NormalizeRoomLetter canonicalizes a human-entered room letter. Letters are
// only accepted at the input boundary; everything internal keys on room id.
func NormalizeRoomLetter(letter string) string {
	return strings.ToUpper(strings.TrimSpace(letter))
}

// sanitizeRequestBody sanitizes request body for large or encoded content
func sanitizeRequestBody(c *fiber.Ctx) string {
	contentType := c.Get("Content-Type")
	if strings.Contains(contentType, "multipart/form-data") {
		formData := make(map[string]interface{})
		if form, err := c.MultipartForm(); err == nil {
			for key, values := range form.Value {
				if len(values) > 0 {
					formData[key] = values[0]
				}
			}
		}
		if jsonBytes, err := json.Marshal(formData); err == nil {
			return string(jsonBytes)
		}
		return "[MULTIPART_FORM_DATA]"
	}

	body := string(c.Body())
	if len(body) > 10000 {
		return "[LARGE_REQUEST_BODY_TRUNCATED]"
	}
	return body
}

// CreateSanitizedLogEntry creates a deep copied and sanitized log entry for logging
func CreateSanitizedLogEntry(c *fiber.Ctx) types.LogEntry {
	// Create deep copies of all data to prevent memory reference issues
	method := string([]byte(c.Method()))
	url := string([]byte(c.OriginalURL()))
	requestBody := sanitizeRequestBody(c)
	responseBody := string(append([]byte(nil), c.Response().Body()...))

	// Deep copy headers
	requestHeaders := make([]byte, len(c.Request().Header.Header()))
	copy(requestHeaders, c.Request().Header.Header())

	responseHeaders := make([]byte, len(c.Response().Header.Header()))
	copy(responseHeaders, c.Response().Header.Header())

	return types.LogEntry{
		Method:          method,
		URL:             url,
		RequestBody:     requestBody,
		ResponseBody:    responseBody,
		RequestHeaders:  string(requestHeaders),
		ResponseHeaders: string(responseHeaders),
		StatusCode:      c.Response().StatusCode(),
		CreatedAt:       time.Now(),
	}
}
