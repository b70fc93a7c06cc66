package store_test

import (
	"fmt"

	"github.com/msgwebdev-git/goqode-sub000/pkg/store"
)

func ExamplePageName() {
	for _, p := range []string{"/", "/about", "/blog/post/", "/Pricing Plans"} {
		fmt.Printf("%s -> %s\n", p, store.PageName(p))
	}
	// Output:
	// / -> home
	// /about -> about
	// /blog/post/ -> blog-post
	// /Pricing Plans -> pricing-plans
}
