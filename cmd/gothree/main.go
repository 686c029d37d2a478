package main

import "github.com/ShimmyTheDev/GameOfThree/internal/cli"

func main() {
	cli.Execute()
}
