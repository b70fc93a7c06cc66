// Package pkg provides the core libraries for case-capture, a tool that turns
// a live website into the raw material of a portfolio case study.
//
// # Overview
//
// Given the root URL of a site and a slug, case-capture loads the site in a
// headless browser and writes section screenshots, viewport screenshots,
// scroll videos and device mockups for every page, plus a meta.json
// manifest describing the site. The pkg directory is organized into:
//
//  1. Stages: [discover], [analyze], [capture], [record], [mockup]
//  2. Orchestration: [pipeline]
//  3. Infrastructure: [browser], [dom], [store], [manifest], [config]
//  4. Cross-cutting: [errors], [observability], [buildinfo]
//
// # Architecture
//
// The data flow of one run:
//
//	root URL
//	    ↓
//	[discover] home page links up to a path depth
//	    ↓
//	per page: [analyze] sections, colors, metadata
//	    ↓
//	[capture] section + viewport screenshots per viewport
//	    ↓
//	[record] scroll video per viewport (CDP screencast + ffmpeg)
//	    ↓
//	[mockup] laptop, phone and multi-device composites
//	    ↓
//	[manifest] meta.json
//
// Every stage talks to the browser through the [browser.Browser] interface.
// Production uses the go-rod backed [browser.Rod]; tests use the scripted
// fake in browser/browsertest.
//
// # Quick Start
//
//	b, err := browser.Launch(ctx, cfg.Browser, logger)
//	if err != nil {
//	    return err
//	}
//	defer b.Close()
//
//	res, err := pipeline.NewRunner(b, nil, logger).Execute(ctx, pipeline.Options{
//	    URL:    "https://acme.com",
//	    Slug:   "acme",
//	    Depth:  1,
//	    Config: config.Default(),
//	})
//
// # Output Layout
//
//	<root>/<slug>/
//	    meta.json
//	    pages/<page>/sections/<nn>-<name>-<viewport>.webp
//	    pages/<page>/sections/viewport-<viewport>.webp
//	    pages/<page>/video/scroll-<viewport>.webm
//	    pages/<page>/mockups/{macbook,iphone,multi-device}.webp
//
// [discover]: https://pkg.go.dev/github.com/msgwebdev-git/goqode-sub000/pkg/discover
// [analyze]: https://pkg.go.dev/github.com/msgwebdev-git/goqode-sub000/pkg/analyze
// [capture]: https://pkg.go.dev/github.com/msgwebdev-git/goqode-sub000/pkg/capture
// [record]: https://pkg.go.dev/github.com/msgwebdev-git/goqode-sub000/pkg/record
// [mockup]: https://pkg.go.dev/github.com/msgwebdev-git/goqode-sub000/pkg/mockup
// [pipeline]: https://pkg.go.dev/github.com/msgwebdev-git/goqode-sub000/pkg/pipeline
// [browser]: https://pkg.go.dev/github.com/msgwebdev-git/goqode-sub000/pkg/browser
// [dom]: https://pkg.go.dev/github.com/msgwebdev-git/goqode-sub000/pkg/dom
// [store]: https://pkg.go.dev/github.com/msgwebdev-git/goqode-sub000/pkg/store
// [manifest]: https://pkg.go.dev/github.com/msgwebdev-git/goqode-sub000/pkg/manifest
// [config]: https://pkg.go.dev/github.com/msgwebdev-git/goqode-sub000/pkg/config
// [errors]: https://pkg.go.dev/github.com/msgwebdev-git/goqode-sub000/pkg/errors
// [observability]: https://pkg.go.dev/github.com/msgwebdev-git/goqode-sub000/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/msgwebdev-git/goqode-sub000/pkg/buildinfo
package pkg
