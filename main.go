package main

import "github.com/pensionfolio/pensionfolio/cmd"

func main() {
	cmd.Execute()
}
