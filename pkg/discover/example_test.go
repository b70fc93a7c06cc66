package discover_test

import (
	"fmt"

	"github.com/msgwebdev-git/goqode-sub000/pkg/discover"
)

func ExampleFilterPaths() {
	// Links collected from the home page, already normalized to paths
	links := []string{"/about", "/blog", "/blog/first-post", "/about", "/"}

	fmt.Println(discover.FilterPaths(links, 1))
	fmt.Println(discover.FilterPaths(links, 2))
	// Output:
	// [/ /about /blog]
	// [/ /about /blog /blog/first-post]
}
