package mockup

import (
	"image"
	"image/draw"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"

	"github.com/msgwebdev-git/goqode-sub000/pkg/config"
)

// Fixed decoration colors.
const (
	cameraColor = "#3a3a3c"
	notchColor  = "#8e8e93"
	screenColor = "#000000"
)

// trafficLights are the window controls drawn in the laptop top bezel.
var trafficLights = []string{"#ff5f57", "#febc2e", "#28c840"}

// =============================================================================
// Laptop
// =============================================================================

// LaptopSize returns the pixel size of a laptop mockup.
func LaptopSize(f config.LaptopFrame) (w, h int) {
	lidW := f.ScreenWidth + 2*f.Bezel
	lidH := f.ScreenHeight + f.TopBezel + f.Bezel
	return lidW + 2*f.BaseOverhang, lidH + f.BaseHeight
}

// Laptop places screenshot inside a laptop frame. The screenshot is
// cover-fitted to the screen area, anchored at the top.
func Laptop(screenshot image.Image, f config.LaptopFrame) image.Image {
	w, h := LaptopSize(f)
	lidW := float64(f.ScreenWidth + 2*f.Bezel)
	lidH := float64(f.ScreenHeight + f.TopBezel + f.Bezel)
	lidX := float64(f.BaseOverhang)

	dc := gg.NewContext(w, h)

	// Lid
	dc.SetHexColor(f.ShellColor)
	dc.DrawRoundedRectangle(lidX, 0, lidW, lidH, float64(f.Radius))
	dc.Fill()

	// Camera
	dc.SetHexColor(cameraColor)
	dc.DrawCircle(lidX+lidW/2, float64(f.TopBezel)/2, float64(f.TopBezel)/8)
	dc.Fill()

	// Window controls
	r := float64(f.TopBezel) / 6
	for i, c := range trafficLights {
		dc.SetHexColor(c)
		dc.DrawCircle(lidX+float64(f.Bezel)+r+float64(i)*3*r, float64(f.TopBezel)/2, r)
		dc.Fill()
	}

	// Screen
	screen := imaging.Fill(screenshot, f.ScreenWidth, f.ScreenHeight, imaging.Top, imaging.Lanczos)
	dc.DrawImage(screen, f.BaseOverhang+f.Bezel, f.TopBezel)

	// Base with the opening notch
	base := float64(f.BaseHeight)
	dc.SetHexColor(f.BaseColor)
	dc.DrawRoundedRectangle(0, lidH, float64(w), base, base/2)
	dc.Fill()

	notchW := lidW / 8
	dc.SetHexColor(notchColor)
	dc.DrawRoundedRectangle(float64(w)/2-notchW/2, lidH, notchW, base/3, base/6)
	dc.Fill()

	return dc.Image()
}

// =============================================================================
// Phone
// =============================================================================

// PhoneSize returns the pixel size of a phone mockup.
func PhoneSize(f config.PhoneFrame) (w, h int) {
	return f.ScreenWidth + 2*f.Bezel, f.ScreenHeight + 2*f.Bezel
}

// Phone places screenshot inside a phone frame. The screenshot is
// cover-fitted to the screen, anchored at the top, and its corners are
// cut to the screen radius.
func Phone(screenshot image.Image, f config.PhoneFrame) image.Image {
	w, h := PhoneSize(f)
	bezel := float64(f.Bezel)
	sw, sh := float64(f.ScreenWidth), float64(f.ScreenHeight)

	dc := gg.NewContext(w, h)

	// Shell and screen cutout
	dc.SetHexColor(f.ShellColor)
	dc.DrawRoundedRectangle(0, 0, float64(w), float64(h), float64(f.Radius))
	dc.Fill()
	dc.SetHexColor(screenColor)
	dc.DrawRoundedRectangle(bezel, bezel, sw, sh, float64(f.ScreenRadius))
	dc.Fill()

	// Screen
	screen := imaging.Fill(screenshot, f.ScreenWidth, f.ScreenHeight, imaging.Top, imaging.Lanczos)
	dc.DrawImage(RoundCorners(screen, float64(f.ScreenRadius)), f.Bezel, f.Bezel)

	// Dynamic island
	iw, ih := float64(f.IslandWidth), float64(f.IslandHeight)
	dc.SetHexColor(screenColor)
	dc.DrawRoundedRectangle(float64(w)/2-iw/2, bezel+ih/3, iw, ih, ih/2)
	dc.Fill()

	return dc.Image()
}

// RoundCorners keeps only the part of img inside a rounded rectangle of
// radius r covering its bounds; everything outside becomes transparent.
func RoundCorners(img image.Image, r float64) *image.NRGBA {
	b := img.Bounds()
	mask := gg.NewContext(b.Dx(), b.Dy())
	mask.SetRGBA(1, 1, 1, 1)
	mask.DrawRoundedRectangle(0, 0, float64(b.Dx()), float64(b.Dy()), r)
	mask.Fill()

	out := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.DrawMask(out, out.Bounds(), img, b.Min, mask.AsMask(), image.Point{}, draw.Src)
	return out
}
