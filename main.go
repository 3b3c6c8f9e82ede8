package main

import "list-scanner/cmd"

func main() {
	cmd.Execute()
}
