// Command hash-generator prints bcrypt password hashes in the format stored
// in users.password_hash. Passwords are read from stdin, one per line, so
// they never appear in shell history.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/phrazzld/studytrack/internal/service/auth"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "hash-generator: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("hash-generator", flag.ContinueOnError)
	fs.SetOutput(stderr)
	cost := fs.Int("cost", bcrypt.DefaultCost, "bcrypt work factor")
	if err := fs.Parse(args); err != nil {
		return err
	}

	hasher := auth.NewBcryptHasher(*cost)

	scanner := bufio.NewScanner(stdin)
	line := 0
	for scanner.Scan() {
		line++
		password := strings.TrimRight(scanner.Text(), "\r")
		if password == "" {
			continue
		}

		hash, err := hasher.Hash(password)
		if err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}
		if _, err := fmt.Fprintln(stdout, hash); err != nil {
			return err
		}
	}
	return scanner.Err()
}
