package site

import (
	"bytes"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"

	"git.home.luguber.info/inful/fragsync/internal/foundation/errors"
)

// Encoding is the on-disk text encoding of a document.
type Encoding struct {
	name string
	enc  encoding.Encoding
}

var (
	UTF8    = Encoding{name: "utf-8", enc: unicode.UTF8}
	UTF8BOM = Encoding{name: "utf-8-bom", enc: unicode.UTF8BOM}
	UTF16LE = Encoding{name: "utf-16le", enc: unicode.UTF16(unicode.LittleEndian, unicode.UseBOM)}
	UTF16BE = Encoding{name: "utf-16be", enc: unicode.UTF16(unicode.BigEndian, unicode.UseBOM)}
)

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

func (e Encoding) String() string { return e.name }

// DetectEncoding picks an encoding from the byte order mark; no mark means UTF-8.
func DetectEncoding(b []byte) Encoding {
	switch {
	case bytes.HasPrefix(b, bomUTF8):
		return UTF8BOM
	case bytes.HasPrefix(b, bomUTF16LE):
		return UTF16LE
	case bytes.HasPrefix(b, bomUTF16BE):
		return UTF16BE
	default:
		return UTF8
	}
}

// Decode converts raw file bytes to text, reporting the detected encoding.
func Decode(b []byte) (string, Encoding, error) {
	enc := DetectEncoding(b)
	switch enc.name {
	case UTF8.name:
		if !utf8.Valid(b) {
			return "", enc, errors.EncodingError("document is not valid UTF-8").Build()
		}
		return string(b), enc, nil
	case UTF8BOM.name:
		if !utf8.Valid(b[len(bomUTF8):]) {
			return "", enc, errors.EncodingError("document is not valid UTF-8").Build()
		}
	}
	out, err := enc.enc.NewDecoder().Bytes(b)
	if err != nil {
		return "", enc, errors.WrapError(err, errors.CategoryEncoding, "failed to decode document").
			WithContext("encoding", enc.name).
			Build()
	}
	return string(out), enc, nil
}

// Encode converts text back to enc, restoring any byte order mark.
func Encode(text string, enc Encoding) ([]byte, error) {
	if enc.name == UTF8.name || enc.enc == nil {
		return []byte(text), nil
	}
	out, err := enc.enc.NewEncoder().Bytes([]byte(text))
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryEncoding, "failed to encode document").
			WithContext("encoding", enc.name).
			Build()
	}
	return out, nil
}
