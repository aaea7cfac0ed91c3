package main

import (
	"github.com/skolica-digital/faqctl/internal/adapters/driving/cli"
)

func main() {
	cli.Execute()
}
