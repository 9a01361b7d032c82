package object

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"path"
	"strings"
	"unicode"

	"github.com/google/uuid"
)

// maxFileNameLen bounds the sanitized name; the random prefix is extra.
const maxFileNameLen = 120

// ErrInvalidFileName is returned for names that sanitize to nothing or try
// to escape their namespace.
var ErrInvalidFileName = errors.New("invalid file name")

// NamespaceDir maps a namespace (a job id, or "cli") to a fixed-width,
// path-safe directory name.
func NamespaceDir(namespace string) string {
	sum := sha256.Sum256([]byte(namespace))
	return hex.EncodeToString(sum[:16])
}

// SafeFileName strips directories and control characters from an uploaded
// file name and caps its length, keeping the extension.
func SafeFileName(name string) (string, error) {
	if strings.Contains(name, "..") {
		return "", ErrInvalidFileName
	}
	name = strings.ReplaceAll(strings.TrimSpace(name), "\\", "/")
	name = path.Base(name)
	name = strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, name)
	name = strings.TrimSpace(name)
	if name == "" || name == "." || name == "/" {
		return "", ErrInvalidFileName
	}
	if len(name) > maxFileNameLen {
		ext := path.Ext(name)
		if len(ext) > 10 {
			ext = ""
		}
		name = strings.ToValidUTF8(name[:maxFileNameLen-len(ext)], "") + ext
	}
	return name, nil
}

// UniqueName prefixes the sanitized name with a random id so uploads of the
// same file never collide.
func UniqueName(fileName string) (string, error) {
	safe, err := SafeFileName(fileName)
	if err != nil {
		return "", err
	}
	return strings.ReplaceAll(uuid.NewString(), "-", "") + "_" + safe, nil
}
