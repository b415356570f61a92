package main

import "promptloom/cmd/promptloom/cmd"

func main() {
	cmd.Execute()
}
