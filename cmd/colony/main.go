package main

import (
	"github.com/andrescamacho/spacecolony-go/internal/adapters/cli"
)

func main() {
	cli.Execute()
}
