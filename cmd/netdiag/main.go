package main

import "netdiag/internal/cli"

func main() {
	cli.Execute()
}
