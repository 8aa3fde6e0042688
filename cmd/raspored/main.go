package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/oslobodiboze/RASPOREDnew/cmd/raspored/cmds"
)

func main() {
	cobra.CheckErr(cmds.NewRootCLI().ExecuteContext(context.Background()))
}
