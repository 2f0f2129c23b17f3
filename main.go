package main

import "github.com/DYK-Team/Chan-BH-loop-model/internal/cli"

func main() {
	cli.Execute()
}
