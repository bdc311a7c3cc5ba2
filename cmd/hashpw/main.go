// Command hashpw prints the bcrypt hash of the admin password for
// INKWELL_ADMIN_PASSWORD_HASH and, with -secret, a random JWT secret.
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/inkwell/internal/prompt"
	"github.com/dmitrijs2005/inkwell/internal/server/auth"
	"github.com/dmitrijs2005/inkwell/internal/shared"
)

const minPasswordLen = 8

func main() {
	if err := run(os.Args[1:], int(os.Stdin.Fd()), os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "hashpw:", err)
		os.Exit(1)
	}
}

func run(args []string, fd int, in io.Reader, out, errOut io.Writer) error {
	fs := flag.NewFlagSet("hashpw", flag.ContinueOnError)
	fs.SetOutput(errOut)
	withSecret := fs.Bool("secret", false, "also print a random INKWELL_SECRET_KEY")
	if err := fs.Parse(args); err != nil {
		return err
	}

	reader := bufio.NewReader(in)
	pw, err := prompt.GetPassword(fd, reader, "Admin password", errOut)
	if err != nil {
		return err
	}
	if len(pw) < minPasswordLen {
		return fmt.Errorf("password must be at least %d characters", minPasswordLen)
	}
	again, err := prompt.GetPassword(fd, reader, "Repeat password", errOut)
	if err != nil {
		return err
	}
	if pw != again {
		return errors.New("passwords do not match")
	}

	hash, err := auth.HashPassword(pw)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "INKWELL_ADMIN_PASSWORD_HASH='%s'\n", hash)

	if *withSecret {
		secret, err := shared.MakeRandHexString(32)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "INKWELL_SECRET_KEY=%s\n", secret)
	}
	return nil
}
