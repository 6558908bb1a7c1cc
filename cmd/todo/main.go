package main

import (
	"os"

	"todo/cmd/todo/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
