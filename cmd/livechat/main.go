package main

import (
	"os"

	"github.com/davidhbaek/gemini-audio/internal/livechat"
)

func main() {
	os.Exit(livechat.CLI(os.Args[1:]))
}
