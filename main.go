package main

import "github.com/theirongolddev/tarifa/cmd"

func main() {
	cmd.Execute()
}
