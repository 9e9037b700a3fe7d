package main

import "github.com/Bitlatte/notebook/cmd"

func main() {
	cmd.Execute()
}
