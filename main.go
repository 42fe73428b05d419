package main

import "github.com/naka-gawa/ncu/cmd"

func main() {
	cmd.Execute()
}
