package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/glintkit/glint"
	"github.com/glintkit/glint/pkg/snapshot"
	"github.com/glintkit/glint/pkg/titlebar"
)

func renderCmd() *cobra.Command {
	var (
		out    string
		bucket string
		prefix string
		region string
	)

	cmd := &cobra.Command{
		Use:   "render <tag>",
		Short: "Render an element once",
		Long: `Render one defined element and print the HTML to stdout.

With --out the snapshot is written to a local directory instead;
with --bucket it is published to S3.

Examples:
  glint render glint-titlebar
  glint render glint-titlebar --out=snapshots
  glint render glint-titlebar --bucket=my-bucket --region=us-east-1`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(args[0], out, bucket, prefix, region)
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "Directory to save the snapshot to")
	cmd.Flags().StringVar(&bucket, "bucket", "", "S3 bucket to publish the snapshot to")
	cmd.Flags().StringVar(&prefix, "prefix", "", "Key prefix inside the bucket")
	cmd.Flags().StringVar(&region, "region", "", "AWS region for --bucket")

	return cmd
}

func runRender(tag, out, bucket, prefix, region string) error {
	app := glint.New()
	if err := app.Define(titlebar.Tag, titlebar.Factory); err != nil {
		return err
	}

	store, err := renderStore(out, bucket, prefix, region)
	if err != nil {
		return err
	}

	if store == nil {
		html, err := app.RenderToString(tag)
		if err != nil {
			return err
		}
		fmt.Println(html)
		return nil
	}

	html, err := app.RenderToString(tag)
	if err != nil {
		return err
	}
	location, err := store.Save(context.Background(), tag, html)
	if err != nil {
		return err
	}
	success("Snapshot saved to %s", location)
	return nil
}

// renderStore selects the snapshot destination from the flags. Nil
// means stdout.
func renderStore(out, bucket, prefix, region string) (snapshot.Store, error) {
	if bucket != "" {
		if region == "" {
			return nil, fmt.Errorf("--bucket requires --region")
		}
		client := snapshot.NewS3Client(region)
		return snapshot.NewS3Store(client, bucket, prefix), nil
	}
	if out != "" {
		return snapshot.NewDiskStore(out)
	}
	return nil, nil
}
