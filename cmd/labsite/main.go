// cmd/labsite/main.go

package main

import (
	"fmt"
	"os"

	"github.com/nlplab/labsite/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
