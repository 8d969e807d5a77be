package main

import (
	"os"

	"github.com/goliatone/go-formvalidator/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
