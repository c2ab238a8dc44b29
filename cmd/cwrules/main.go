package main

import "github.com/mcoot/cwrules/internal/cli"

func main() {
	cli.Execute()
}
