package main

import (
	"os"

	"github.com/davidhbaek/gemini-audio/internal/audiotest"
)

func main() {
	os.Exit(audiotest.CLI(os.Args[1:]))
}
