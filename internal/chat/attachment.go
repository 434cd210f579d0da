package chat

import (
	"encoding/base64"
	"fmt"
	"log/slog"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// Normalize converts raw file bytes into the form sent to the assistant:
// text as UTF-8, images as a base64 data URL and anything else as a short
// placeholder naming the type.
func Normalize(name, mimeType string, data []byte) Attachment {
	if mimeType == "" {
		mimeType = DetectType(name, data)
	}
	a := Attachment{Name: name, Type: mimeType}
	base, _, _ := mime.ParseMediaType(mimeType)
	if base == "" {
		base = mimeType
	}
	switch {
	case strings.HasPrefix(base, "text/"):
		a.Content = strings.ToValidUTF8(string(data), string(utf8.RuneError))
	case strings.HasPrefix(base, "image/"):
		a.Content = "data:" + base + ";base64," + base64.StdEncoding.EncodeToString(data)
	default:
		a.Content = fmt.Sprintf("[File of type %s]", mimeType)
	}
	return a
}

// DetectType guesses a MIME type from the file extension, falling back to
// content sniffing.
func DetectType(name string, data []byte) string {
	if t := mime.TypeByExtension(strings.ToLower(filepath.Ext(name))); t != "" {
		return t
	}
	return http.DetectContentType(data)
}

// LoadFiles reads and normalizes paths. Files that cannot be read are
// logged and skipped; the rest of the batch still goes through.
func LoadFiles(paths []string, log *slog.Logger) []Attachment {
	if log == nil {
		log = slog.Default()
	}
	out := make([]Attachment, 0, len(paths))
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			log.Warn("skipping attachment", "path", p, "err", err)
			continue
		}
		out = append(out, Normalize(filepath.Base(p), "", data))
	}
	return out
}
