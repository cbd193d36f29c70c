package main

import "gamedata-sync/cmd"

func main() {
	cmd.Execute()
}
