package commands

import (
	"fmt"
	"runtime"

	goversion "github.com/hashicorp/go-version"
	"github.com/spf13/cobra"
)

func newVersionCommand(buildVersion, commit string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			// Development builds carry a non-semver placeholder.
			if v, err := goversion.NewVersion(buildVersion); err == nil {
				buildVersion = v.String()
			}
			fmt.Printf("rowfold %s (commit %s, %s/%s)\n",
				buildVersion, commit, runtime.GOOS, runtime.GOARCH)
		},
	}
	return cmd
}
