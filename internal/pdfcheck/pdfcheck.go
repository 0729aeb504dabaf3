// Package pdfcheck performs structural sanity checks on a PDF byte stream
// before it is written to disk.
package pdfcheck

import (
	"bytes"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Errors returned by [Verify].
var (
	ErrEmpty     = errors.New("pdf is empty")
	ErrNoHeader  = errors.New("missing %PDF- header")
	ErrNoXRef    = errors.New("startxref not found")
	ErrTruncated = errors.New("missing %%EOF marker")
)

// Magic is the signature every PDF file starts with.
var Magic = []byte("%PDF-")

// tailWindow is how far from the end startxref and %%EOF are searched for.
const tailWindow = 1024

// pageObject matches a leaf page dictionary; "/Type /Pages" tree nodes are
// excluded by the trailing boundary.
var pageObject = regexp.MustCompile(`/Type\s*/Page[\s/>]`)

// Info summarises a verified document.
type Info struct {
	Version string
	// Pages is the number of page objects found in uncompressed object
	// dictionaries; 0 means they are hidden in object streams.
	Pages int
	Size  int
}

// HasMagic reports whether data starts with the PDF signature.
func HasMagic(data []byte) bool {
	return bytes.HasPrefix(data, Magic)
}

// Verify checks that data is a complete PDF: header, startxref pointer
// within the file, and a trailing %%EOF.
func Verify(data []byte) (Info, error) {
	if len(data) == 0 {
		return Info{}, ErrEmpty
	}
	if !HasMagic(data) {
		return Info{}, ErrNoHeader
	}

	tail := data[max(0, len(data)-tailWindow):]
	if !bytes.Contains(tail, []byte("%%EOF")) {
		return Info{}, ErrTruncated
	}
	offset, err := startXRef(tail)
	if err != nil {
		return Info{}, err
	}
	if offset < 0 || offset >= int64(len(data)) {
		return Info{}, fmt.Errorf("%w: offset %d out of bounds", ErrNoXRef, offset)
	}

	return Info{
		Version: version(data),
		Pages:   len(pageObject.FindAllIndex(data, -1)),
		Size:    len(data),
	}, nil
}

// version returns the header version string, e.g. "1.4".
func version(data []byte) string {
	head := data[len(Magic):min(len(data), 20)]
	if end := bytes.IndexAny(head, "\r\n"); end >= 0 {
		head = head[:end]
	}
	v := strings.TrimSpace(string(head))
	if v == "" {
		return "?"
	}
	return v
}

// startXRef reads the byte offset following the last "startxref" keyword.
func startXRef(tail []byte) (int64, error) {
	idx := bytes.LastIndex(tail, []byte("startxref"))
	if idx < 0 {
		return 0, ErrNoXRef
	}
	rest := bytes.TrimLeft(tail[idx+len("startxref"):], " \t\r\n\f\x00")
	end := 0
	for end < len(rest) && rest[end] >= '0' && rest[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, fmt.Errorf("%w: invalid startxref value", ErrNoXRef)
	}
	offset, err := strconv.ParseInt(string(rest[:end]), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrNoXRef, err)
	}
	return offset, nil
}
