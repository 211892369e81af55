package main

import "github.com/yx043749/beaver-farm/internal/cli"

func main() {
	cli.Execute()
}
