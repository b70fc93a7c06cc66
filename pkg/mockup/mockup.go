// Package mockup composites viewport screenshots into device mockups.
//
// Three artifacts are produced per page: the desktop screenshot in a
// laptop frame, the mobile screenshot in a phone frame, and a hero image
// showing both devices on a flat canvas. Mockups are decoration over the
// screenshots; a mockup whose input is missing is skipped, never fatal.
package mockup

import (
	"bufio"
	"image"
	"image/color"
	"io"
	"os"
	"path/filepath"

	"github.com/HugoSmits86/nativewebp"
	"github.com/charmbracelet/log"
	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	_ "golang.org/x/image/webp" // register the webp decoder for imaging.Open

	"github.com/msgwebdev-git/goqode-sub000/pkg/config"
	"github.com/msgwebdev-git/goqode-sub000/pkg/errors"
	"github.com/msgwebdev-git/goqode-sub000/pkg/store"
)

// Compositor renders mockups.
type Compositor struct {
	Config config.Mockup
	Logger *log.Logger
}

// New returns a Compositor. A nil logger discards output.
func New(cfg config.Mockup, logger *log.Logger) *Compositor {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Compositor{Config: cfg, Logger: logger}
}

// Generate writes the macbook, iphone and multi-device mockups of page
// into s from the page's desktop and mobile viewport screenshots (stored
// with extension ext). Mockups whose inputs do not exist are skipped. It
// returns the store-relative paths written and the first error
// encountered; a failing mockup does not stop the others.
func (c *Compositor) Generate(s *store.FileStore, page, ext string) ([]string, error) {
	desktop := store.ViewportFile(page, config.ViewportDesktop, ext)
	mobile := store.ViewportFile(page, config.ViewportMobile, ext)

	var (
		written  []string
		firstErr error
		laptop   image.Image
		phone    image.Image
	)
	fail := func(kind string, err error) {
		c.Logger.Warn("mockup failed", "mockup", kind, "err", err)
		if firstErr == nil {
			firstErr = errors.Wrap(errors.ErrCodeMockup, err, "%s mockup", kind)
		}
	}
	save := func(kind string, img image.Image) {
		rel := store.MockupFile(page, kind)
		if err := Save(img, s.Path(rel)); err != nil {
			fail(kind, err)
			return
		}
		written = append(written, rel)
	}

	if shot, ok, err := load(s, desktop); err != nil {
		fail(store.MockupLaptop, err)
	} else if !ok {
		c.Logger.Info("no desktop screenshot, skipping laptop mockup", "path", desktop)
	} else {
		laptop = Laptop(shot, c.Config.Laptop)
		save(store.MockupLaptop, laptop)
	}

	if shot, ok, err := load(s, mobile); err != nil {
		fail(store.MockupPhone, err)
	} else if !ok {
		c.Logger.Info("no mobile screenshot, skipping phone mockup", "path", mobile)
	} else {
		phone = Phone(shot, c.Config.Phone)
		save(store.MockupPhone, phone)
	}

	if laptop != nil && phone != nil {
		save(store.MockupMulti, MultiDevice(laptop, phone, c.Config))
	}

	return written, firstErr
}

// MultiDevice lays out the laptop and phone mockups on a flat canvas: the
// laptop left of center with a soft shadow behind it, the phone anchored
// to the bottom right.
func MultiDevice(laptop, phone image.Image, cfg config.Mockup) image.Image {
	cw, ch := cfg.CanvasWidth, cfg.CanvasHeight
	canvas := imaging.New(cw, ch, hexColor(cfg.CanvasColor))

	lw := int(float64(laptop.Bounds().Dx()) * cfg.LaptopScale)
	lh := int(float64(laptop.Bounds().Dy()) * cfg.LaptopScale)
	lx := (cw-lw)/2 - cw/16
	ly := (ch-lh)/2 - ch/20

	// Shadow
	blur := cfg.ShadowBlur
	sdc := gg.NewContext(cw, ch)
	sdc.SetRGBA(0, 0, 0, 1)
	sdc.DrawRoundedRectangle(float64(lx)+blur, float64(ly)+2*blur, float64(lw)-2*blur, float64(lh)-blur, blur)
	sdc.Fill()
	shadow := imaging.Blur(sdc.Image(), blur/2)
	canvas = imaging.Overlay(canvas, shadow, image.Pt(0, 0), cfg.ShadowOpacity)

	// Devices
	canvas = imaging.Overlay(canvas, imaging.Resize(laptop, lw, lh, imaging.Lanczos), image.Pt(lx, ly), 1)

	pw := int(float64(phone.Bounds().Dx()) * cfg.PhoneScale)
	ph := int(float64(phone.Bounds().Dy()) * cfg.PhoneScale)
	px := cw - pw - cw/12
	py := ch - ph - ch/16
	canvas = imaging.Overlay(canvas, imaging.Resize(phone, pw, ph, imaging.Lanczos), image.Pt(px, py), 1)

	return canvas
}

// Save encodes img as lossless webp at path.
func Save(img image.Image, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(f)
	if err := nativewebp.Encode(w, img, nil); err != nil {
		f.Close()
		return err
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// load decodes the image at rel. A missing file reports ok == false.
func load(s *store.FileStore, rel string) (img image.Image, ok bool, err error) {
	if !s.Exists(rel) {
		return nil, false, nil
	}
	img, err = imaging.Open(s.Path(rel))
	if err != nil {
		return nil, false, err
	}
	return img, true, nil
}

// hexColor parses a "#rgb", "#rrggbb" or "#rrggbbaa" color.
func hexColor(s string) color.Color {
	dc := gg.NewContext(1, 1)
	dc.SetHexColor(s)
	dc.Clear()
	return dc.Image().At(0, 0)
}
