package main

import "github.com/inovacc/autofetch/cmd"

func main() {
	cmd.Execute()
}
