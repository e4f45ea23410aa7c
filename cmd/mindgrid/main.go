package main

import (
	"github.com/mindgrid/mindgrid-server/internal/cli"
)

func main() {
	cli.Execute()
}
