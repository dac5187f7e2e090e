package main

import (
	"github.com/matjam/setroot/internal/cli"
)

func main() {
	cli.Execute()
}
