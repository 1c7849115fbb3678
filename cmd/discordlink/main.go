package main

import (
	"github.com/vtt-tools/discordlink/internal/cli"
)

func main() {
	cli.Execute()
}
