// kanairy-deploy is the deployment CLI for the KanAIRY trading platform.
// It replaces the shell launchers with two subcommands: a containerized
// path (docker) and a local build-and-run path (local).
package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"kanairy_backend/internal/deploy"
	"kanairy_backend/internal/deploy/execx"
)

func main() {
	var dir string

	root := &cobra.Command{
		Use:           "kanairy-deploy",
		Short:         "Deploy the KanAIRY trading platform",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&dir, "dir", "C", ".", "project directory")

	newDeployer := func() *deploy.Deployer {
		return deploy.New(&execx.System{Dir: dir}, dir, os.Stdout)
	}

	root.AddCommand(&cobra.Command{
		Use:   "docker",
		Short: "Build and start the containerized stack",
		RunE: func(cmd *cobra.Command, args []string) error {
			return newDeployer().Docker(context.Background())
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "local",
		Short: "Build the server and run it in the foreground",
		RunE: func(cmd *cobra.Command, args []string) error {
			return newDeployer().Local(context.Background())
		},
	})

	if err := root.Execute(); err != nil {
		_, _ = root.ErrOrStderr().Write([]byte(err.Error() + "\n"))
		os.Exit(deploy.ExitCode(err))
	}
}
