package main

import "DiscordBuddy/cmd"

func main() {
	cmd.Execute()
}
