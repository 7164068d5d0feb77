package main

import "github.com/killallgit/promptkit/cmd"

func main() {
	cmd.Execute()
}
