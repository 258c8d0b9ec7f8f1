package utils_test

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/embedhead-io/tree-cli/internal/utils"
)

// TestDecodeTextPassesThroughValidUTF8 verifies UTF-8 input is returned unchanged.
func TestDecodeTextPassesThroughValidUTF8(testingInstance *testing.T) {
	testCases := []struct {
		testName string
		input    []byte
	}{
		{testName: "ascii", input: []byte("hello world")},
		{testName: "multibyte", input: []byte("héllo wörld")},
		{testName: "empty", input: []byte{}},
	}
	for index, testCase := range testCases {
		actual := utils.DecodeText(testCase.input)
		if actual != string(testCase.input) {
			testingInstance.Errorf("case %d (%s): expected %q, got %q", index, testCase.testName, string(testCase.input), actual)
		}
	}
}

// TestDecodeTextRecoversLegacyEncoding verifies single-byte encoded input decodes to readable text.
func TestDecodeTextRecoversLegacyEncoding(testingInstance *testing.T) {
	latinInput := []byte{'c', 'a', 'f', 0xe9}
	decoded := utils.DecodeText(latinInput)
	if !utf8.ValidString(decoded) {
		testingInstance.Fatalf("decoded text is not valid UTF-8: %q", decoded)
	}
	if !strings.HasPrefix(decoded, "caf") {
		testingInstance.Fatalf("decoded text lost leading bytes: %q", decoded)
	}
	if decoded == "caf" {
		testingInstance.Fatalf("decoded text dropped the encoded character: %q", decoded)
	}
}

// TestDecodeTextNeverReturnsInvalidUTF8 verifies arbitrary byte sequences always decode to valid text.
func TestDecodeTextNeverReturnsInvalidUTF8(testingInstance *testing.T) {
	testCases := []struct {
		testName string
		input    []byte
	}{
		{testName: "lone continuation byte", input: []byte{0x80}},
		{testName: "truncated multibyte", input: []byte{0xe4, 0xb8}},
		{testName: "mixed junk", input: []byte{0xff, 0xfe, 0x41, 0x00, 0x42}},
		{testName: "text with stray byte", input: append([]byte("prefix"), 0xf5)},
	}
	for index, testCase := range testCases {
		decoded := utils.DecodeText(testCase.input)
		if !utf8.ValidString(decoded) {
			testingInstance.Errorf("case %d (%s): decoded text is not valid UTF-8: %q", index, testCase.testName, decoded)
		}
	}
}
