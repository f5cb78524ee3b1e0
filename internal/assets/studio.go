package assets

import (
	"image"
	"image/color"
	"math"
)

// softbox is a rectangular area light painted into the studio panorama,
// in degrees of longitude and latitude.
type softbox struct {
	lon, lat      float64
	width, height float64
	level         float64
}

var studioSoftboxes = []softbox{
	{lon: -60, lat: 35, width: 50, height: 25, level: 1},
	{lon: 110, lat: 20, width: 30, height: 40, level: 0.8},
	{lon: 180, lat: 60, width: 80, height: 15, level: 0.6},
}

// StudioEnvironment paints an equirectangular studio backdrop: a vertical
// gradient from a cool ceiling to a dark floor with a few soft rectangular
// lights. It is the reflection source until a loaded map replaces it.
func StudioEnvironment(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		// +90 at the top row, -90 at the bottom
		lat := 90 - (float64(y)+0.5)/float64(height)*180
		base := skyGradient(lat)
		for x := 0; x < width; x++ {
			lon := (float64(x)+0.5)/float64(width)*360 - 180
			c := base
			for _, sb := range studioSoftboxes {
				w := sb.weight(lon, lat) * sb.level
				for i := range c {
					c[i] += (1 - c[i]) * w
				}
			}
			img.SetRGBA(x, y, color.RGBA{R: toByte(c[0]), G: toByte(c[1]), B: toByte(c[2]), A: 255})
		}
	}
	return img
}

func skyGradient(lat float64) [3]float64 {
	top := [3]float64{0.42, 0.45, 0.52}
	horizon := [3]float64{0.16, 0.16, 0.18}
	floor := [3]float64{0.02, 0.02, 0.025}

	var from, to [3]float64
	var t float64
	if lat >= 0 {
		from, to, t = horizon, top, lat/90
	} else {
		from, to, t = horizon, floor, math.Min(1, -lat/30)
	}
	t = t * t * (3 - 2*t)
	var c [3]float64
	for i := range c {
		c[i] = from[i] + (to[i]-from[i])*t
	}
	return c
}

// weight is 1 inside the box and fades to 0 over a few degrees at its edges.
func (sb softbox) weight(lon, lat float64) float64 {
	const feather = 6.0
	dLon := math.Abs(math.Remainder(lon-sb.lon, 360))
	dLat := math.Abs(lat - sb.lat)
	fx := clamp01((sb.width/2 + feather - dLon) / feather)
	fy := clamp01((sb.height/2 + feather - dLat) / feather)
	return fx * fy
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

func toByte(v float64) uint8 {
	return uint8(math.Round(clamp01(v) * 255))
}
