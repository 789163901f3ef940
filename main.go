package main

import (
	"os"

	"github.com/SocialCareData/initiatives/cmd/cli"
)

// main executes the initiatives command-line application.
func main() {
	os.Exit(cli.Main())
}
