// Command hash-gen prints the stored hash for a password, for seeding
// accounts by hand or checking what the database should contain.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"hostel-desk.backend/pkg/crypto"
)

func main() {
	password := flag.String("password", "", "password to hash")
	check := flag.String("check", "", "existing hash to verify the password against")
	flag.Parse()

	if err := run(os.Stdout, *password, *check); err != nil {
		log.Fatal(err)
	}
}

func run(out io.Writer, password, check string) error {
	if password == "" {
		flag.Usage()
		os.Exit(2)
	}
	if len(password) < 6 {
		return fmt.Errorf("password must be at least 6 characters")
	}

	if check != "" {
		if !crypto.CheckPassword(password, check) {
			return fmt.Errorf("password does not match the given hash")
		}
		fmt.Fprintln(out, "OK")
		return nil
	}

	hash, err := crypto.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	fmt.Fprintln(out, hash)
	return nil
}
