// Package main is the entry point for the rsc CLI.
package main

import (
	"github.com/donaldgifford/rocketsource-go/cmd/rsc/cmd"
)

func main() {
	cmd.Execute()
}
