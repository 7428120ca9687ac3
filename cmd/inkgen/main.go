package main

import (
	"fmt"
	"os"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "build":
		configPath := "site.yaml"
		if len(os.Args) > 2 {
			configPath = os.Args[2]
		}
		if err := runBuild(configPath); err != nil {
			os.Exit(1)
		}
	case "version":
		fmt.Printf("inkgen %s\n", version)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`inkgen - a static blog generation engine built with Go and templ

Usage:
  inkgen <command> [arguments]

Commands:
  build [config]  Build the site (config defaults to site.yaml)
  version         Print the inkgen version
  help            Show this help message

Examples:
  inkgen build
  inkgen build blog/site.yaml`)
}
