package main

import "github.com/angoly-ara/inventory/cmd"

func main() {
	cmd.Execute()
}
