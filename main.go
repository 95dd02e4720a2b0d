package main

import (
	"os"

	"github.com/eingabe/eingabe/app"
)

func main() {
	err := app.Execute()
	if err != nil {
		os.Exit(1)
	}
}
