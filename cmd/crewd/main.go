package main

import (
	"fmt"
	"os"

	"github.com/stagecrew/crew-scheduler/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "crewd:", err)
		os.Exit(1)
	}
}
