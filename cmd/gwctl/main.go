package main

import (
	"os"

	gwctlcmd "github.com/telekom/gateway-client-go/pkg/gwctl/cmd"
)

func main() {
	root := gwctlcmd.NewRootCommand(gwctlcmd.DefaultConfig())
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
