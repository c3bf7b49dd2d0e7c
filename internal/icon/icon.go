// SPDX-License-Identifier: MPL-2.0

// Package icon converts a mod's DDS store icon into a browser-ready
// PNG data URI, optionally scaled down to thumbnail size.
package icon

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"

	"github.com/lukegb/dds"
	"golang.org/x/image/draw"
)

// thumbnailSize is the edge length of the scaled-down icon.
const thumbnailSize = 128

// Decode decodes DDS image bytes and returns a PNG data URI. When
// wantThumbnail is true the image is scaled to 128x128 first.
func Decode(raw []byte, wantThumbnail bool) (string, error) {
	img, err := dds.Decode(bytes.NewReader(raw))
	if err != nil {
		return "", fmt.Errorf("decode dds icon: %w", err)
	}

	if wantThumbnail {
		img = scale(img, thumbnailSize)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("encode icon png: %w", err)
	}

	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

func scale(img image.Image, size int) image.Image {
	if b := img.Bounds(); b.Dx() == size && b.Dy() == size {
		return img
	}
	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	return dst
}
