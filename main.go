// Package main is tridentctl's entry point.
package main

import "github.com/gravitylab/trident/cmd"

func main() {
	cmd.Execute()
}
