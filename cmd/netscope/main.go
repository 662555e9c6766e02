package main

import "github.com/tnguyen21/netscope/internal/cli"

func main() {
	cli.Execute()
}
