package text

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// DefaultLoader loads fonts from file paths and http(s) URLs.
var DefaultLoader Loader = LoaderFunc(LoadFont)

// maxFontSize bounds the bytes read from a font URL.
var maxFontSize int64 = 64 << 20

func isURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// LoadFont reads the font at key (a file path or an http(s) URL) and
// decodes it with DecodeFont. Atlas page paths of bmfont descriptors are
// resolved relative to the descriptor.
func LoadFont(ctx context.Context, key string) (*Font, error) {
	var (
		data []byte
		err  error
	)
	if isURL(key) {
		data, err = fetch(ctx, key)
	} else {
		// #nosec G304 -- font location is provided by the application
		data, err = os.ReadFile(key)
	}
	if err != nil {
		return nil, err
	}
	return DecodeFont(data, baseDir(key))
}

// baseDir returns the directory of a file path or URL.
func baseDir(key string) string {
	if isURL(key) {
		if i := strings.LastIndex(key, "/"); i > len("https://") {
			return key[:i]
		}
		return key
	}
	return filepath.Dir(key)
}

// resolvePage resolves an atlas page location relative to dir.
func resolvePage(dir, page string) string {
	switch {
	case dir == "", isURL(page), filepath.IsAbs(page), strings.HasPrefix(page, "/"):
		return page
	case isURL(dir):
		return strings.TrimSuffix(dir, "/") + "/" + page
	default:
		return filepath.Join(dir, page)
	}
}

func fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("text: fetch %s: %s", url, resp.Status)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxFontSize+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > maxFontSize {
		return nil, fmt.Errorf("text: fetch %s: %w", url, ErrFontTooLarge)
	}
	return data, nil
}

// DecodeFont detects the font format: a JSON object is an msdf-bmfont
// descriptor (pages resolved against dir), TrueType/OpenType magic numbers
// select NewFontFromTTF.
func DecodeFont(data []byte, dir string) (*Font, error) {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	switch {
	case len(trimmed) == 0:
		return nil, ErrEmptyFontData
	case trimmed[0] == '{':
		return parseBMFont(trimmed, dir)
	case isSFNT(data):
		return NewFontFromTTF(data)
	default:
		return nil, ErrUnknownFormat
	}
}

// isSFNT checks for the TrueType, OpenType (CFF) and TrueType collection tags.
func isSFNT(data []byte) bool {
	if len(data) < 4 {
		return false
	}
	switch string(data[:4]) {
	case "\x00\x01\x00\x00", "OTTO", "true", "ttcf":
		return true
	}
	return false
}
