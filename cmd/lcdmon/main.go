package main

import "github.com/rileyhilliard/lcdmon/internal/cli"

// Release builds stamp these for 'lcdmon version':
//
//	go build -ldflags "-X main.version=0.3.0 -X main.commit=$(git rev-parse --short HEAD) -X main.date=$(date -u +%F)" ./cmd/lcdmon
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	cli.SetVersionInfo(version, commit, date)
	cli.Execute()
}
