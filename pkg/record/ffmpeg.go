package record

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/msgwebdev-git/goqode-sub000/pkg/browser"
	"github.com/msgwebdev-git/goqode-sub000/pkg/config"
	"github.com/msgwebdev-git/goqode-sub000/pkg/errors"
)

// minFrameDuration keeps ffmpeg from dropping frames that arrived in the
// same millisecond.
const minFrameDuration = time.Millisecond

// FFmpeg encodes screencast frames by shelling out to ffmpeg. Frame timing
// is preserved with a concat list carrying one duration per frame.
// Requires ffmpeg: brew install ffmpeg (macOS), apt install ffmpeg (Linux).
type FFmpeg struct {
	Bin       string // binary name or path; "ffmpeg" when empty
	Container string // config.ContainerWebM or config.ContainerMP4
}

// Encode implements Encoder.
func (f FFmpeg) Encode(ctx context.Context, frames []browser.Frame, end time.Time, dst string) error {
	bin := f.Bin
	if bin == "" {
		bin = "ffmpeg"
	}
	if _, err := exec.LookPath(bin); err != nil {
		return errors.New(errors.ErrCodeRecording, "video recording requires ffmpeg. Install with:\n  macOS:  brew install ffmpeg\n  Linux:  apt install ffmpeg\nor pass --no-video")
	}
	if len(frames) == 0 {
		return errors.New(errors.ErrCodeRecording, "no frames to encode")
	}

	dir, err := os.MkdirTemp("", "case-capture-frames-")
	if err != nil {
		return errors.Wrap(errors.ErrCodeFilesystem, err, "create frame directory")
	}
	defer os.RemoveAll(dir)

	list, err := writeFrames(dir, frames, end)
	if err != nil {
		return err
	}

	args := append([]string{
		"-y", "-loglevel", "error",
		"-f", "concat", "-safe", "0", "-i", list,
		"-vsync", "vfr",
		"-vf", "scale=trunc(iw/2)*2:trunc(ih/2)*2",
		"-pix_fmt", "yuv420p",
	}, codecArgs(f.Container)...)
	args = append(args, "-f", muxer(f.Container), dst)

	cmd := exec.CommandContext(ctx, bin, args...)
	var errBuf bytes.Buffer
	cmd.Stderr = &errBuf
	if err := cmd.Run(); err != nil {
		return errors.New(errors.ErrCodeEncode, "ffmpeg: %v: %s", err, strings.TrimSpace(errBuf.String()))
	}
	return nil
}

// writeFrames stores every frame as a JPEG in dir and returns the path of
// an ffmpeg concat list that shows each frame until the next one arrives.
// The last frame lasts until end.
func writeFrames(dir string, frames []browser.Frame, end time.Time) (string, error) {
	var list strings.Builder
	var last string
	for i, fr := range frames {
		name := filepath.Join(dir, fmt.Sprintf("frame-%05d.jpg", i))
		if err := os.WriteFile(name, fr.Data, 0644); err != nil {
			return "", errors.Wrap(errors.ErrCodeFilesystem, err, "write frame %d", i)
		}

		next := end
		if i+1 < len(frames) {
			next = frames[i+1].At
		}
		d := next.Sub(fr.At)
		if d < minFrameDuration {
			d = minFrameDuration
		}

		fmt.Fprintf(&list, "file '%s'\nduration %.3f\n", name, d.Seconds())
		last = name
	}
	// The concat demuxer ignores the duration of the final entry unless the
	// file is listed once more.
	fmt.Fprintf(&list, "file '%s'\n", last)

	path := filepath.Join(dir, "frames.txt")
	if err := os.WriteFile(path, []byte(list.String()), 0644); err != nil {
		return "", errors.Wrap(errors.ErrCodeFilesystem, err, "write frame list")
	}
	return path, nil
}

func codecArgs(container string) []string {
	if container == config.ContainerMP4 {
		return []string{"-c:v", "libx264", "-crf", "28", "-preset", "veryfast", "-movflags", "+faststart"}
	}
	return []string{"-c:v", "libvpx-vp9", "-b:v", "0", "-crf", "40", "-row-mt", "1"}
}

func muxer(container string) string {
	if container == config.ContainerMP4 {
		return config.ContainerMP4
	}
	return config.ContainerWebM
}
