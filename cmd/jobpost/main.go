package main

import "github.com/emrgen/jobpost/cmd"

func main() {
	cmd.Execute()
}
