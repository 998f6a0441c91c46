package main

import "github.com/tronicjosh/emfcompliancev1/cmd"

func main() {
	cmd.Execute()
}
