package layers

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	// decoders registered with image.DecodeConfig
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ImageSource is a file-like input for AddLayer
type ImageSource interface {
	Name() string
	Open() (io.ReadCloser, error)
}

type fileSource struct {
	path string
}

// FileSource returns an ImageSource reading from a file on disk.
// The layer name is the file's base name.
func FileSource(path string) ImageSource {
	return fileSource{path: path}
}

func (s fileSource) Name() string { return filepath.Base(s.path) }

func (s fileSource) Open() (io.ReadCloser, error) { return os.Open(s.path) }

type bytesSource struct {
	name string
	data []byte
}

// BytesSource returns an ImageSource over an in-memory blob
func BytesSource(name string, data []byte) ImageSource {
	return bytesSource{name: name, data: data}
}

func (s bytesSource) Name() string { return s.name }

func (s bytesSource) Open() (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(s.data)), nil
}

// readDataURL reads the whole source into a data URI.
// The MIME type comes from the file extension, falling back to sniffing.
func readDataURL(src ImageSource) (string, error) {
	r, err := src.Open()
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrUnreadable, err)
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrUnreadable, err)
	}

	mimeType := mime.TypeByExtension(strings.ToLower(filepath.Ext(src.Name())))
	if mimeType == "" {
		mimeType = http.DetectContentType(data)
	}
	if i := strings.IndexByte(mimeType, ';'); i >= 0 {
		mimeType = mimeType[:i]
	}

	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

// decodeDimensions decodes the image behind a data URI far enough to learn
// its intrinsic size.
func decodeDimensions(dataURL string) (width, height int, err error) {
	payload, ok := strings.CutPrefix(dataURL, "data:")
	if !ok {
		return 0, 0, fmt.Errorf("%w: not a data URI", ErrUndecodable)
	}
	meta, encoded, ok := strings.Cut(payload, ",")
	if !ok || !strings.HasSuffix(meta, ";base64") {
		return 0, 0, fmt.Errorf("%w: not a base64 data URI", ErrUndecodable)
	}

	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %w", ErrUndecodable, err)
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %w", ErrUndecodable, err)
	}
	return cfg.Width, cfg.Height, nil
}
