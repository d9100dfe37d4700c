package main

import (
	"fmt"
	"os"

	"github.com/babarot/rsycle/internal/cli"
)

const appName = "rsycle"

var (
	version   = "unset"
	revision  = "unset"
	buildDate = "unset"
)

func main() {
	if err := cli.Run(cli.Version{
		AppName:   appName,
		Version:   version,
		Revision:  revision,
		BuildDate: buildDate,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", appName, err)
		os.Exit(1)
	}
}
