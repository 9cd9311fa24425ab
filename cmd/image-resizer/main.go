package main

import (
	"github.com/idr4n/image-resizer-go/internal/cli"
)

func main() {
	cli.Execute()
}
