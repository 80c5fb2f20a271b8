package main

import (
	"os"

	"github.com/davidhbaek/gemini-audio/internal/setup"
)

func main() {
	os.Exit(setup.CLI(os.Args[1:]))
}
