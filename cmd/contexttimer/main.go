package main

import "github.com/jeblackburn/contexttimer/internal/cli"

var version = "dev"

func main() {
	cli.Execute(version)
}
