package main

import (
	"fmt"
	"os"

	"git.home.luguber.info/inful/mdhtml/cmd/mdhtml/commands"
	"git.home.luguber.info/inful/mdhtml/internal/config"
)

func main() {
	if _, err := config.LoadEnvFile(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "warning: failed to load environment file: %v\n", err)
	}
	args, argsFile := config.ExpandArgs(os.LookupEnv, os.Args[1:])

	os.Exit(commands.Execute(args, argsFile, commands.IO{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}))
}
