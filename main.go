package main

import "mod-sync/cmd"

func main() {
	cmd.Execute()
}
