package main

import (
	"flag"
	"fmt"
	"os"

	"fgd/internal/di"
	"fgd/internal/structures"
)

func main() {
	flags := &structures.CliFlags{}
	flag.StringVar(&flags.ConfigPath, "config", "config.yaml", "path to the config file")
	flag.BoolVar(&flags.DebugMode, "debug", false, "log to console as well as files")
	flag.BoolVar(&flags.Once, "once", false, "run a single refresh and exit")
	flag.Parse()

	if _, err := di.InitApp(flags); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}
