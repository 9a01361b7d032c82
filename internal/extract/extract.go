package extract

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"

	"hvac-ats-backend/internal/shared/storage/object"
)

// ErrUnsupportedFile is returned for anything that is not a PDF.
var ErrUnsupportedFile = errors.New("Only PDF files are currently supported")

// ErrNoText is returned when a PDF parses but carries no extractable text,
// typically a scanned image.
var ErrNoText = errors.New("no text found in PDF")

// IsPDF reports whether fileName has a .pdf extension.
func IsPDF(fileName string) bool {
	return strings.EqualFold(filepath.Ext(fileName), ".pdf")
}

// FromStore reads a stored upload and extracts its text.
func FromStore(ctx context.Context, store object.Store, key string, fileName string) (string, error) {
	if !IsPDF(fileName) {
		return "", ErrUnsupportedFile
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	body, err := store.Open(ctx, key)
	if err != nil {
		return "", fmt.Errorf("extract text key=%s: %w", key, err)
	}
	defer body.Close()

	raw, err := io.ReadAll(body)
	if err != nil {
		return "", fmt.Errorf("extract text key=%s: read: %w", key, err)
	}
	text, err := FromBytes(ctx, raw, fileName)
	if err != nil {
		return "", fmt.Errorf("extract text key=%s: %w", key, err)
	}
	return text, nil
}

// FromBytes extracts text from an in-memory PDF.
func FromBytes(ctx context.Context, data []byte, fileName string) (string, error) {
	if !IsPDF(fileName) {
		return "", ErrUnsupportedFile
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if !bytes.HasPrefix(bytes.TrimLeft(data, "\x00\t\r\n "), []byte("%PDF-")) {
		return "", fmt.Errorf("%w: missing PDF header", ErrUnsupportedFile)
	}
	text, err := extractPDF(data)
	if err != nil {
		return "", fmt.Errorf("parse pdf: %w", err)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrNoText
	}
	return text, nil
}

func extractPDF(data []byte) (text string, err error) {
	// ledongthuc/pdf panics on some malformed inputs.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("malformed pdf: %v", r)
		}
	}()
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}
	plain, err := reader.GetPlainText()
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", err
	}
	return buf.String(), nil
}
