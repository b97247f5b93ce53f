package main

import (
	"os"

	"github.com/quizsmith/quizsmith/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
