package main

import (
	"log"

	"github.com/sitansu1aapt/employeetrack-agent/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		log.Fatal(err)
	}
}
