// Package share encodes drawing sessions into share links and back
package share

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/url"
	"strings"

	"github.com/pstuifzand/sketchboard/internal/geom"
	"github.com/pstuifzand/sketchboard/internal/model"
)

// Key is the query parameter carrying the share token
const Key = "v"

var (
	// ErrNoShareData is returned when a link has no share parameter
	ErrNoShareData = errors.New("no share data")
	// ErrMalformedToken is returned when a token is not valid base64
	ErrMalformedToken = errors.New("malformed share token")
	// ErrInvalidPayload is returned when a token does not hold a drawing
	ErrInvalidPayload = errors.New("invalid share payload")
)

// Codec builds and parses share links for one origin
type Codec struct {
	origin string
}

// NewCodec creates a codec producing links under origin (scheme://host[:port])
func NewCodec(origin string) *Codec {
	return &Codec{origin: strings.TrimRight(origin, "/")}
}

// Origin returns the origin links are created under
func (c *Codec) Origin() string {
	return c.origin
}

// CreateURL encodes lines and options into a full share link
func (c *Codec) CreateURL(lines []geom.Line, options model.ShareOptions) (string, error) {
	token, err := Encode(lines, options)
	if err != nil {
		return "", err
	}
	return c.origin + "?" + url.Values{Key: {token}}.Encode(), nil
}

// ParseURL returns the drawing carried by a share link.
// Missing or broken share data yields nil: a bad link means an empty session.
func (c *Codec) ParseURL(rawURL string) *model.SharedInfo {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		log.Printf("Ignoring unparsable share link: %v", err)
		return nil
	}
	return ParseQuery(u.Query())
}

// ParseQuery returns the drawing carried by query values, or nil
func ParseQuery(q url.Values) *model.SharedInfo {
	token := q.Get(Key)
	if token == "" {
		return nil
	}
	info, err := Decode(token)
	if err != nil {
		log.Printf("Ignoring share token: %v", err)
		return nil
	}
	return info
}

// Encode serializes lines and options into a token. The token is padded
// standard base64, the same bytes the web client's btoa produces, so links
// made here open there. CreateURL query-escapes it.
func Encode(lines []geom.Line, options model.ShareOptions) (string, error) {
	raw, err := json.Marshal(model.SharedInfo{Lines: lines, Options: options})
	if err != nil {
		return "", fmt.Errorf("failed to marshal share payload: %w", err)
	}
	return base64.StdEncoding.EncodeToString(raw), nil
}

// Decode reverses Encode and reports why a token could not be read.
//
// Both the URL-safe and the standard base64 alphabets are accepted, with or
// without padding, as are standard tokens whose '+' was turned into a space
// by query unescaping.
func Decode(token string) (*model.SharedInfo, error) {
	if strings.TrimSpace(token) == "" {
		return nil, ErrNoShareData
	}

	raw, err := decodeBase64(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedToken, err)
	}

	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '{' {
		return nil, fmt.Errorf("%w: not a JSON object", ErrInvalidPayload)
	}

	var info model.SharedInfo
	if err := json.Unmarshal(raw, &info); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPayload, err)
	}
	return &info, nil
}

func decodeBase64(token string) ([]byte, error) {
	token = strings.ReplaceAll(token, " ", "+")
	token = strings.TrimRight(token, "=")

	enc := base64.RawStdEncoding
	if strings.ContainsAny(token, "-_") {
		enc = base64.RawURLEncoding
	}
	return enc.DecodeString(token)
}
