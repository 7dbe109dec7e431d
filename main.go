package main

import "github.com/iksnae/chat-wrapped/cmd"

func main() {
	cmd.Execute()
}
