// Command mediacachectl is an operator CLI for the media stream cache: it
// warms and inspects cache entries by driving the exact same
// internal/streamcache package a live HTTP request would, against a
// local-filesystem backend rooted at --storage-root.
package main

import (
	"fmt"
	"os"

	"brm/cmd/mediacachectl/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
