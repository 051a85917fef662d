package main

import (
	"os"

	"github.com/expomatematica/quizmat/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
