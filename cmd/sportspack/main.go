package main

import "sportspack/cmd/sportspack/cmd"

func main() {
	cmd.Execute()
}
