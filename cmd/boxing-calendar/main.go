package main

import "github.com/sciAnima/boxing-calendar/internal/cli"

func main() {
	cli.Execute()
}
