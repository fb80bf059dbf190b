// Package main provides the CLI entrypoint for rowmap-generator.
//
// rowmap-generator reads Go packages, finds struct types marked with
// //rowmap:generate and writes, next to each of them, a case-insensitive
// property setter and a materializer that turns a row cursor into a slice.
package main

import (
	"os"
)

func main() {
	os.Exit(execute(os.Args[1:], os.Stdout, os.Stderr))
}
