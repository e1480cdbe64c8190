package main

import "pharmacy/cmd/pharmacy/commands"

func main() {
	commands.Execute()
}
