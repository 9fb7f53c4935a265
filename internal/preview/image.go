package preview

import (
	"fmt"
	"image"
	"os"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/charmbracelet/lipgloss"
	"github.com/nfnt/resize"

	"quickswitch/internal/errors"
)

// ImageRaster is a terminal rendering of an image. Each row is a string
// of styled half-block cells, so one character cell carries two pixels.
type ImageRaster struct {
	Rows   []string
	Width  int // Cells
	Height int // Cells
	Format string
	Bounds image.Point // Source pixel dimensions
}

// image decodes and rasterizes an image file for terminal display.
// Decode failures downgrade to a size summary rather than an error so a
// mislabeled file still previews.
func (d *Dispatcher) image(path string, size int64, width, height int) Payload {
	if size > d.limits.MaxFileBytes {
		return Payload{Kind: KindBinary, Path: path, Size: size}
	}

	f, err := os.Open(path)
	if err != nil {
		return errorPayload(path, errors.FromListError(path, err))
	}
	defer f.Close()

	img, format, err := image.Decode(f)
	if err != nil {
		return Payload{Kind: KindBinary, Path: path, Size: size}
	}

	raster := rasterize(img, width, height)
	raster.Format = format
	raster.Bounds = img.Bounds().Size()

	return Payload{Kind: KindImage, Path: path, Image: raster}
}

// rasterize scales img to fit within width x height character cells and
// renders it with the upper-half-block glyph, foreground carrying the
// top pixel and background the bottom pixel of each cell.
func rasterize(img image.Image, width, height int) ImageRaster {
	if width < 1 {
		width = 40
	}
	if height < 1 {
		height = 20
	}

	// Two pixel rows per cell row.
	scaled := resize.Thumbnail(uint(width), uint(height*2), img, resize.Lanczos3)
	bounds := scaled.Bounds()
	cols := bounds.Dx()
	rows := (bounds.Dy() + 1) / 2

	out := ImageRaster{
		Rows:   make([]string, 0, rows),
		Width:  cols,
		Height: rows,
	}

	for y := bounds.Min.Y; y < bounds.Max.Y; y += 2 {
		var row string
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			top := cellColor(scaled, x, y)
			style := lipgloss.NewStyle().Foreground(top)
			if y+1 < bounds.Max.Y {
				style = style.Background(cellColor(scaled, x, y+1))
			}
			row += style.Render("▀")
		}
		out.Rows = append(out.Rows, row)
	}

	return out
}

func cellColor(img image.Image, x, y int) lipgloss.Color {
	r, g, b, _ := img.At(x, y).RGBA()
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", r>>8, g>>8, b>>8))
}
