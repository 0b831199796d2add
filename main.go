package main

import "github.com/samsimpson1/stonks/cmd"

func main() {
	cmd.Execute()
}
