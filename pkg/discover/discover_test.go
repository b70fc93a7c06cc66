package discover

import (
	"context"
	"reflect"
	"testing"

	"github.com/msgwebdev-git/goqode-sub000/pkg/browser/browsertest"
	"github.com/msgwebdev-git/goqode-sub000/pkg/config"
	"github.com/msgwebdev-git/goqode-sub000/pkg/errors"
)

func TestSegments(t *testing.T) {
	tests := []struct {
		path string
		want int
	}{
		{"/", 0},
		{"", 0},
		{"/about", 1},
		{"/about/", 1},
		{"/blog/post", 2},
		{"//double//slash", 2},
	}
	for _, tt := range tests {
		if got := Segments(tt.path); got != tt.want {
			t.Errorf("Segments(%q) = %d, want %d", tt.path, got, tt.want)
		}
	}
}

func TestFilterPaths(t *testing.T) {
	links := []string{"/about", "/", "/blog/post", "/about", "/pricing", "/a/b/c"}

	tests := []struct {
		depth int
		want  []string
	}{
		{0, []string{"/"}},
		{1, []string{"/", "/about", "/pricing"}},
		{2, []string{"/", "/about", "/blog/post", "/pricing"}},
		{5, []string{"/", "/about", "/blog/post", "/pricing", "/a/b/c"}},
	}

	for _, tt := range tests {
		got := FilterPaths(links, tt.depth)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("FilterPaths(depth %d) = %v, want %v", tt.depth, got, tt.want)
		}

		roots := 0
		seen := map[string]bool{}
		for _, p := range got {
			if p == "/" {
				roots++
			}
			if seen[p] {
				t.Errorf("duplicate %q in %v", p, got)
			}
			seen[p] = true
		}
		if roots != 1 {
			t.Errorf("%q appears %d times, want once", "/", roots)
		}
	}
}

func TestDiscover(t *testing.T) {
	b := browsertest.New()
	b.Add("https://acme.test", &browsertest.Document{HTML: `<html><body>
		<a href="/">Home</a>
		<a href="/about">About</a>
		<a href="/pricing#plans">Plans</a>
		<a href="/blog/hello">Hello</a>
		<a href="https://twitter.com/acme">Twitter</a>
		<a href="/files/deck.zip">Deck</a>
		<a href="/about">About</a>
	</body></html>`})

	got, err := Discover(context.Background(), b, "https://acme.test", 1, config.Fast())
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	if want := []string{"/", "/about"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Discover() = %v, want %v", got, want)
	}
	if b.OpenPages() != 0 {
		t.Errorf("OpenPages() = %d after Discover, want 0", b.OpenPages())
	}
}

func TestDiscoverNavigationFailure(t *testing.T) {
	b := browsertest.New()
	b.Add("https://acme.test", &browsertest.Document{})
	b.FailNavigate["https://acme.test"] = true

	got, err := Discover(context.Background(), b, "https://acme.test", 1, config.Fast())
	if err == nil {
		t.Fatal("Discover() error = nil, want timeout")
	}
	if !errors.Is(err, errors.ErrCodeTimeout) {
		t.Errorf("code = %v, want TIMEOUT", errors.GetCode(err))
	}
	if !reflect.DeepEqual(got, []string{"/"}) {
		t.Errorf("Discover() = %v, want [/]", got)
	}
	if b.OpenPages() != 0 {
		t.Error("page left open after failure")
	}
}
