package main

import (
	"os"

	"github.com/autotrack/proforma-extractor/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
