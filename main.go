// Package main is the entry point for the mutfix CLI.
package main

import "gooze.dev/pkg/mutfix/cmd"

func main() {
	cmd.Execute()
}
