package main

import (
	"os"

	"github.com/josephleon/leonweb/app"
)

func main() {
	err := app.Execute()
	if err != nil {
		os.Exit(1)
	}
}
