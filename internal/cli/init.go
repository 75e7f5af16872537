package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/iamvenkatgiri/AccessAI/internal/infra/fsworkspace"
	"github.com/iamvenkatgiri/AccessAI/internal/infra/workspacefinder"
	"github.com/iamvenkatgiri/AccessAI/internal/usecase"
)

func initCmd() *cobra.Command {
	var path string
	var apiURL string
	var force bool

	c := &cobra.Command{
		Use:   "init",
		Short: "Create accessai.yaml, reports/ and snapshots/ in a directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			root := path
			if root == "" {
				wd, err := os.Getwd()
				if err != nil {
					return fmt.Errorf("get working directory: %w", err)
				}
				root = wd
			}
			root, err := filepath.Abs(root)
			if err != nil {
				return fmt.Errorf("invalid path: %w", err)
			}

			uc := usecase.NewInitWorkspace(fsworkspace.NewInitializer())
			if err := uc.Execute(root, apiURL, force); err != nil {
				return err
			}

			fmt.Fprintf(cmdOut(cmd), "Workspace ready: %s\n", filepath.Join(root, workspacefinder.ConfigFile))
			return nil
		},
	}

	c.Flags().StringVar(&path, "path", "", "Directory to initialise (defaults to the working directory)")
	c.Flags().StringVar(&apiURL, "api-url", "", "Analysis service URL written to accessai.yaml")
	c.Flags().BoolVar(&force, "force", false, "Overwrite an existing accessai.yaml")
	return c
}
