package project

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"screwboard/internal/editor"
)

// DefaultBaseURL is used for share links when no base is configured.
const DefaultBaseURL = "https://screwboard.app/"

// ErrNoConfig means a link carries no config parameter.
var ErrNoConfig = errors.New("link has no config parameter")

// EncodeConfig builds the config parameter for s: base64 of the percent-encoded
// JSON. The template rotation is not included.
func EncodeConfig(s editor.State) (string, error) {
	d := NewDocument(s)
	data, err := json.Marshal(shareDocument{
		Parts:           d.Parts,
		Screws:          d.Screws,
		CurrentColor:    d.CurrentColor,
		BackgroundColor: d.BackgroundColor,
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode share data: %w", err)
	}
	return base64.StdEncoding.EncodeToString([]byte(escapeComponent(string(data)))), nil
}

// ShareLink returns baseURL with the config parameter for s set. Other query
// parameters on baseURL are kept.
func ShareLink(baseURL string, s editor.State) (string, error) {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("invalid share base URL %q: %w", baseURL, err)
	}
	config, err := EncodeConfig(s)
	if err != nil {
		return "", err
	}
	q := u.Query()
	q.Set("config", config)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// ConfigValue extracts the config parameter from link. A string that is not a URL
// with a query is taken to be the parameter value itself.
func ConfigValue(link string) (string, error) {
	link = strings.TrimSpace(link)
	if link == "" {
		return "", ErrNoConfig
	}
	if !strings.Contains(link, "?") && !strings.Contains(link, "config=") {
		return link, nil
	}
	rawQuery := link
	if i := strings.Index(link, "?"); i >= 0 {
		rawQuery = link[i+1:]
	}
	if i := strings.Index(rawQuery, "#"); i >= 0 {
		rawQuery = rawQuery[:i]
	}
	q, err := url.ParseQuery(rawQuery)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	value := q.Get("config")
	if value == "" {
		return "", ErrNoConfig
	}
	return value, nil
}

// DecodeConfig reverses EncodeConfig and returns the JSON payload. Spaces are read
// as '+', which an unescaped query turns them into.
func DecodeConfig(value string) ([]byte, error) {
	value = strings.ReplaceAll(strings.TrimSpace(value), " ", "+")
	raw, err := base64.StdEncoding.DecodeString(value)
	if err != nil {
		raw, err = base64.RawStdEncoding.DecodeString(strings.TrimRight(value, "="))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
	}
	text, err := url.PathUnescape(string(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return []byte(text), nil
}

// ParseLink applies the payload of a share link, or of a bare config value, on
// top of base.
func (l Loader) ParseLink(link string, base editor.State) (editor.State, error) {
	value, err := ConfigValue(link)
	if err != nil {
		return base, err
	}
	data, err := DecodeConfig(value)
	if err != nil {
		return base, err
	}
	return l.Parse(data, base)
}

// escapeComponent percent-encodes every byte outside A-Z a-z 0-9 and -_.!~*'().
func escapeComponent(s string) string {
	const hex = "0123456789ABCDEF"
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if unreserved(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(hex[c>>4])
		b.WriteByte(hex[c&0x0f])
	}
	return b.String()
}

func unreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	return strings.IndexByte("-_.!~*'()", c) >= 0
}
