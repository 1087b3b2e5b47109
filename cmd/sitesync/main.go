package main

import (
	"github.com/statichost/site-sync/cmd/sitesync/cmd"
)

func main() {
	cmd.Execute()
}
