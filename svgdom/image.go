package svgdom

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"strings"

	"golang.org/x/net/html"

	"github.com/planktonid/taxocard/htmltree"

	// Raster formats of the supporting images. EcoTaxa-style instances
	// serve png and jpeg; the x/image decoders cover the stragglers.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ErrNoImageData means the <image> element carries no decodable data URI.
var ErrNoImageData = errors.New("svgdom: image element carries no decodable data")

// RasterImage is a decoded embedded raster with its pixel dimensions.
type RasterImage struct {
	Data   []byte
	Format string
	Width  int
	Height int
}

// DecodeImageElement decodes the data URI of an <image> element and
// returns the raw bytes with their pixel dimensions.
func DecodeImageElement(n *html.Node) (*RasterImage, error) {
	href, ok := htmltree.Attr(n, "xlink:href")
	if !ok {
		href, ok = htmltree.Attr(n, "href")
	}
	if !ok {
		return nil, ErrNoImageData
	}
	return DecodeDataURI(href)
}

// DecodeDataURI decodes a base64 data: URI into raster bytes and reads
// the image dimensions from its header.
func DecodeDataURI(uri string) (*RasterImage, error) {
	const prefix = "data:"
	if !strings.HasPrefix(uri, prefix) {
		return nil, ErrNoImageData
	}
	comma := strings.IndexByte(uri, ',')
	if comma < 0 {
		return nil, ErrNoImageData
	}
	meta, payload := uri[len(prefix):comma], uri[comma+1:]
	if !strings.HasSuffix(meta, ";base64") {
		return nil, fmt.Errorf("svgdom: unsupported data URI encoding %q", meta)
	}
	// Embedded payloads may be wrapped over several lines.
	payload = strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\n', '\r':
			return -1
		}
		return r
	}, payload)
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("svgdom: undecodable base64 image data: %w", err)
	}
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("svgdom: undecodable image: %w", err)
	}
	return &RasterImage{Data: data, Format: format, Width: cfg.Width, Height: cfg.Height}, nil
}
