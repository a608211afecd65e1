package main

import (
	"os"

	"github.com/heyvito/oxio/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
