package favicon

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"  // decoder registration
	_ "image/jpeg" // decoder registration
	_ "image/png"  // decoder registration

	_ "golang.org/x/image/bmp" // decoder registration
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp" // decoder registration
)

// Swatch downsamples favicon image data to a single pixel and returns it as
// "#rrggbb", which the terminal renders as the row's icon. ICO files and
// undecodable data report false.
func Swatch(data []byte) (string, bool) {
	if len(data) == 0 {
		return "", false
	}
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return "", false
	}

	dst := image.NewRGBA(image.Rect(0, 0, 1, 1))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)

	px := dst.RGBAAt(0, 0)
	if px.A == 0 {
		return "", false
	}
	return fmt.Sprintf("#%02x%02x%02x", px.R, px.G, px.B), true
}
