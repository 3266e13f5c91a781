package main

import "github.com/gaurav-prasanna/mfformat/cmd"

func main() {
	cmd.Execute()
}
