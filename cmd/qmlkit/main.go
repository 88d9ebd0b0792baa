// Command qmlkit generates molecular descriptors and kernel matrices.
package main

import (
	"os"

	"github.com/katalvlaran/qmlkit/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
