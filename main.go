package main

import "hostdash/cmd"

func main() {
	cmd.Execute()
}
