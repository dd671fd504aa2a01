package fetcher

import (
	"bytes"
	"io"
	"strings"

	"github.com/klauspost/compress/zstd"
	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"
)

// zstd frame magic bytes. Some intermediaries hand back zstd bodies with
// the Content-Encoding header stripped, so sniff the payload too.
var zstdMagic = []byte{0x28, 0xB5, 0x2F, 0xFD}

// DecodeBody decompresses and re-encodes a response body to UTF-8 text.
// contentType, when known, feeds the charset detection.
func DecodeBody(body []byte, contentType string) ([]byte, error) {
	if isZstd(body, contentType) {
		decoder, err := zstd.NewReader(nil)
		if err != nil {
			return nil, err
		}
		defer decoder.Close()

		body, err = decoder.DecodeAll(body, nil)
		if err != nil {
			return nil, err
		}
	}

	return convertToUTF8(body, contentType)
}

// isZstd reports whether the body is zstd-compressed
func isZstd(body []byte, contentType string) bool {
	if strings.Contains(contentType, "zstd") {
		return true
	}
	return len(body) >= 4 && bytes.Equal(body[:4], zstdMagic)
}

// convertToUTF8 converts content from its detected encoding to UTF-8
func convertToUTF8(content []byte, contentType string) ([]byte, error) {
	enc := detectEncoding(content, contentType)
	if enc == "utf-8" || enc == "utf8" || enc == "" {
		return content, nil
	}

	e, err := htmlindex.Get(enc)
	if err != nil {
		// Unknown encoding, return as-is
		return content, nil
	}

	reader := transform.NewReader(bytes.NewReader(content), e.NewDecoder())
	return io.ReadAll(reader)
}

// detectEncoding detects the character encoding of HTML content
func detectEncoding(content []byte, contentType string) string {
	peek := content
	if len(peek) > 1024 {
		peek = peek[:1024]
	}

	_, name, _ := charset.DetermineEncoding(peek, contentType)
	return name
}
