package main

import (
	"os"

	"github.com/ptrumpis-ups/loader-quiz-app/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
