package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

func Run() error {
	ctx := context.Background()

	cmd := &cobra.Command{
		Use:   "comicbay",
		Short: "comicbay client daemon: syncs comics, favorites, ratings and comments for the reader UI",
	}

	cmd.AddCommand(HTTPCommand(ctx))

	if err := cmd.Execute(); err != nil {
		return err
	}

	return nil
}
