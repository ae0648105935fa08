// Package main is the entry point of the motionsim command line tool.
package main

import "github.com/sarchlab/motionsim/motionsim/cmd"

func main() {
	cmd.Execute()
}
