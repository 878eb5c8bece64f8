package main

import "github.com/saravenpi/chatflow/cmd"

func main() {
	cmd.Execute()
}
