package main

import "github.com/kamusis/sitesearch/cmd"

func main() {
	cmd.Execute()
}
