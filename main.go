package main

import "immo-dashboard/cmd"

func main() {
	cmd.Execute()
}
