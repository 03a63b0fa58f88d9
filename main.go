package main

import (
	"log"

	"github.com/spigell/careerlens/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
