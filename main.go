package main

import "github.com/intonado/intonado/cmd"

func main() {
	cmd.Execute()
}
