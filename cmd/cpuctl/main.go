package main

import "codeberg.org/vintar/cpuctl/internal/cli"

func main() {
	cli.Execute()
}
