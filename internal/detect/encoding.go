// Package detect classifies raw statement files into document types using
// byte content first and filename extension as a fallback.
package detect

import (
	"bytes"

	"golang.org/x/text/encoding/unicode"

	"github.com/ledgerloom/ledgerloom/internal/model"
)

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// DetectEncoding inspects a byte-order mark and reports the text encoding.
// Content without a BOM is assumed to be UTF-8.
func DetectEncoding(content []byte) model.Encoding {
	switch {
	case bytes.HasPrefix(content, bomUTF8):
		return model.EncodingUTF8
	case bytes.HasPrefix(content, bomUTF16LE):
		return model.EncodingUTF16LE
	case bytes.HasPrefix(content, bomUTF16BE):
		return model.EncodingUTF16BE
	default:
		return model.EncodingUTF8
	}
}

// DecodeText converts raw statement bytes to a string, honoring the BOM
// and stripping it. Decoding failures degrade to treating the bytes as
// UTF-8; detection must never fail outright.
func DecodeText(content []byte) string {
	switch DetectEncoding(content) {
	case model.EncodingUTF16LE:
		decoder := unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM).NewDecoder()
		if decoded, err := decoder.Bytes(content); err == nil {
			return string(decoded)
		}
	case model.EncodingUTF16BE:
		decoder := unicode.UTF16(unicode.BigEndian, unicode.ExpectBOM).NewDecoder()
		if decoded, err := decoder.Bytes(content); err == nil {
			return string(decoded)
		}
	case model.EncodingUTF8:
		return string(bytes.TrimPrefix(content, bomUTF8))
	}
	return string(content)
}
