package main

import "github.com/haritha1313/smartnotes/cmd"

func main() {
	cmd.Execute()
}
