// Command genhash prints the bcrypt hash of a password, for seeding accounts
// out of band.
package main

import (
	"fmt"
	"os"

	"github.com/sjperalta/propostas-api/internal/services"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: genhash <password>")
		os.Exit(2)
	}
	hash, err := services.HashPassword(os.Args[1])
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
	fmt.Println(hash)
}
