package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/Vodeneev/livescore/internal/pkg/feed"
)

func main() {
	timeout := flag.Duration("timeout", 30*time.Second, "Resolution timeout (HTTP redirects, then headless Chrome)")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [-timeout 30s] <mirror-url>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	baseURL, err := feed.ResolveMirrorToBaseURL(ctx, flag.Arg(0), *timeout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(baseURL)
}
