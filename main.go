// Package main is the entry point for the htprobe CLI.
package main

import "htprobe.dev/pkg/htprobe/cmd"

func main() {
	cmd.Execute()
}
