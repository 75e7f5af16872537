package main

import "github.com/iamvenkatgiri/AccessAI/internal/cli"

func main() {
	cli.Execute()
}
