package main

import "github.com/andrescamacho/blueprint-optimizer/internal/adapters/cli"

func main() {
	cli.Execute()
}
