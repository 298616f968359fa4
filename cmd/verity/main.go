// Command verity runs declarative test suites.
package main

import (
	"github.com/probelab/verity/cmd"
)

func main() {
	cmd.Execute()
}
