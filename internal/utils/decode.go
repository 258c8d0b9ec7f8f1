package utils

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/transform"
)

// DecodeText converts raw file bytes into valid UTF-8 text. Valid UTF-8 input
// passes through unchanged. Other input is decoded using the detected
// character set; bytes that survive as invalid sequences are dropped. The
// result is always usable text, never an error.
func DecodeText(data []byte) string {
	if utf8.Valid(data) {
		return string(data)
	}

	detectedEncoding, _, _ := charset.DetermineEncoding(data, "")
	if detectedEncoding != nil {
		decodedBytes, _, transformError := transform.Bytes(detectedEncoding.NewDecoder(), data)
		if transformError == nil && utf8.Valid(decodedBytes) {
			return string(decodedBytes)
		}
	}

	return strings.ToValidUTF8(string(data), "")
}
