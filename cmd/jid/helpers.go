package main

import "os"

// flagArgs returns the arguments after the subcommand name.
func flagArgs() []string {
	if len(os.Args) < 2 {
		return nil
	}
	return os.Args[1:]
}
