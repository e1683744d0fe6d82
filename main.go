package main

import "github.com/elayemu/KAIM-W3-Car-Insurance-Marketing-Analytics/cmd"

func main() {
	cmd.Execute()
}
