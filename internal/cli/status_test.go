package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/msgwebdev-git/goqode-sub000/pkg/errors"
)

func TestStatusHooks(t *testing.T) {
	ctx := context.Background()
	failure := errors.New(errors.ErrCodeNavigation, "load https://acme.com/about")

	tests := []struct {
		name string
		emit func(h *statusHooks)
		want []string
	}{
		{
			name: "discovery",
			emit: func(h *statusHooks) { h.OnDiscoveryComplete(ctx, []string{"/", "/about"}, time.Second, nil) },
			want: []string{iconDiscover, "Found 2 pages"},
		},
		{
			name: "discovery failure",
			emit: func(h *statusHooks) { h.OnDiscoveryComplete(ctx, []string{"/"}, time.Second, failure) },
			want: []string{iconWarning, "home page only"},
		},
		{
			name: "page start is one-based",
			emit: func(h *statusHooks) { h.OnPageStart(ctx, "/about", 1, 3) },
			want: []string{iconPage, "[2/3]", "/about"},
		},
		{
			name: "analysis",
			emit: func(h *statusHooks) { h.OnPageAnalyzed(ctx, "/", 1, 5, nil) },
			want: []string{iconAnalyze, "1 section,", "5 colors"},
		},
		{
			name: "analysis failure",
			emit: func(h *statusHooks) { h.OnPageAnalyzed(ctx, "/about", 0, 0, failure) },
			want: []string{iconWarning, "Skipping /about"},
		},
		{
			name: "viewport",
			emit: func(h *statusHooks) { h.OnViewportCaptured(ctx, "/", "desktop", 4, 0, time.Second, nil) },
			want: []string{iconCapture, "desktop: 4 sections"},
		},
		{
			name: "viewport partial",
			emit: func(h *statusHooks) { h.OnViewportCaptured(ctx, "/", "mobile", 3, 1, time.Second, nil) },
			want: []string{iconWarning, "mobile", "1 failed"},
		},
		{
			name: "video",
			emit: func(h *statusHooks) { h.OnVideoRecorded(ctx, "/", "desktop", 5*time.Second, nil) },
			want: []string{iconVideo, "desktop scroll video"},
		},
		{
			name: "video skipped",
			emit: func(h *statusHooks) {
				h.OnVideoRecorded(ctx, "/", "mobile", 0, errors.New(errors.ErrCodeRecording, "ffmpeg not found"))
			},
			want: []string{iconWarning, "mobile video skipped", "ffmpeg not found"},
		},
		{
			name: "mockups",
			emit: func(h *statusHooks) { h.OnMockupsComplete(ctx, "/", 3, nil) },
			want: []string{iconMockup, "3 mockups"},
		},
		{
			name: "manifest",
			emit: func(h *statusHooks) { h.OnManifestWritten(ctx, "public/cases/acme/meta.json", 2, nil) },
			want: []string{iconManifest, "meta.json with 2 pages", iconArrow, "public/cases/acme/meta.json"},
		},
		{
			name: "manifest failure",
			emit: func(h *statusHooks) {
				h.OnManifestWritten(ctx, "", 0, errors.New(errors.ErrCodeFilesystem, "disk full"))
			},
			want: []string{iconError, "disk full"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.emit(newStatusHooks(&buf))

			out := buf.String()
			for _, s := range tt.want {
				if !strings.Contains(out, s) {
					t.Errorf("output %q missing %q", out, s)
				}
			}
		})
	}
}

func TestStatusHooksNoMockups(t *testing.T) {
	var buf bytes.Buffer
	newStatusHooks(&buf).OnMockupsComplete(context.Background(), "/", 0, nil)
	if buf.Len() != 0 {
		t.Errorf("expected no output when nothing was written, got %q", buf.String())
	}
}
