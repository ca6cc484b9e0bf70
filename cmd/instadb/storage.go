package main

import (
	"os"
	"path/filepath"

	"github.com/autom8ter/instadb"
	"github.com/spf13/cobra"
)

func storageCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "storage",
		Short: "manage the app's file storage",
	}

	var contentType string
	upload := &cobra.Command{
		Use:   "upload <local-file> [storage-path]",
		Short: "upload a local file",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			path := filepath.Base(args[0])
			if len(args) == 2 {
				path = args[1]
			}
			var opts []instadb.UploadOption
			if contentType != "" {
				opts = append(opts, instadb.WithContentType(contentType))
			}
			info, err := client.UploadFile(cmd.Context(), path, f, opts...)
			if err != nil {
				return err
			}
			printJSON(info)
			return nil
		},
	}
	upload.Flags().StringVar(&contentType, "content-type", "", "content type of the uploaded file")

	rm := &cobra.Command{
		Use:   "rm <path>...",
		Short: "delete one or more stored files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}
			if len(args) == 1 {
				return client.DeleteFile(cmd.Context(), args[0])
			}
			return client.DeleteFiles(cmd.Context(), args)
		},
	}

	ls := &cobra.Command{
		Use:   "ls",
		Short: "list stored files",
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := newClient()
			if err != nil {
				return err
			}
			files, err := client.ListFiles(cmd.Context())
			if err != nil {
				return err
			}
			printJSON(files)
			return nil
		},
	}

	cmd.AddCommand(upload, rm, ls)
	return cmd
}
