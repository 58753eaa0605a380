// Entrypoint that delegates to the Cobra root command in cmd/root.go.

package main

import (
	"github.com/JeremiahGelb/A-PLUS-Q/cmd"
)

func main() {
	cmd.Execute()
}
