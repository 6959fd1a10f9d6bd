package version

import (
	"fmt"

	"github.com/spf13/cobra"

	buildinfo "banking/internal/shared/version"
)

func NewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			info := buildinfo.Get()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "banking %s\n", info.Version)
			fmt.Fprintf(out, "  api:        %s\n", buildinfo.APIVersion())
			fmt.Fprintf(out, "  commit:     %s\n", info.Commit)
			fmt.Fprintf(out, "  built:      %s\n", info.BuildTime)
			fmt.Fprintf(out, "  go version: %s\n", info.GoVersion)
		},
	}
}
