package main

import (
	"fmt"
	"os"

	"github.com/Gustitos/gustitosgo-backend/cmd/report"
	"github.com/Gustitos/gustitosgo-backend/cmd/resolve"
	"github.com/Gustitos/gustitosgo-backend/cmd/root"
	"github.com/Gustitos/gustitosgo-backend/cmd/serve"
)

func init() {
	root.Cmd.AddCommand(serve.Cmd)
	root.Cmd.AddCommand(report.Cmd)
	root.Cmd.AddCommand(resolve.Cmd)
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
