// Command hash-generator prints bcrypt hashes for the auth.users section of
// the server configuration.
//
// Usage:
//
//	hash-generator [-cost N] password [password...]
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/phrazzld/blog-api/internal/service/auth"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	cost := flag.Int("cost", bcrypt.DefaultCost, "bcrypt cost factor")
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: hash-generator [-cost N] password [password...]")
		os.Exit(2)
	}

	failed := false
	for _, password := range flag.Args() {
		hash, err := auth.HashPassword(password, *cost)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error generating hash: %v\n", err)
			failed = true
			continue
		}
		fmt.Printf("Password: %s\nHash: %s\n\n", password, hash)
	}

	if failed {
		os.Exit(1)
	}
}
