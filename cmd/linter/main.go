// Command linter runs the forbiddencalls analyzer.
//
//	go run ./cmd/linter ./...
package main

import (
	"github.com/MikhailRaia/shortener-form/cmd/linter/analyzer"
	"golang.org/x/tools/go/analysis/singlechecker"
)

func main() {
	singlechecker.Main(analyzer.Analyzer)
}
