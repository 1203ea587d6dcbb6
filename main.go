package main

import "github.com/August-Icekimo/DEV-DB-Cloner/cmd"

func main() {
	cmd.Execute()
}
