package main

import (
	"log"

	"github.com/spf13/cobra"

	"github.com/cyberinsights/inkwell/cmd/inkwell/internal/ui"
	"github.com/cyberinsights/inkwell/internal/content"
)

func newNewCommand(flags *rootFlags) *cobra.Command {
	var draft content.Draft
	var noInteractive bool

	cmd := &cobra.Command{
		Use:   "new [title]",
		Short: "Create a new post",
		Long:  `Scaffolds a draft Markdown post under <content>/posts, using an interactive form unless --no-interactive is set.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				draft.Title = args[0]
			}

			dir := flags.contentDir
			if dir == "" {
				cfg, err := flags.loadConfig()
				if err != nil {
					return err
				}
				dir = cfg.Content.Dir
			}
			if dir == "" {
				dir = "content"
			}

			if !noInteractive {
				d, err := ui.RunNewPostTUI(draft.Title)
				if err != nil {
					return err
				}
				draft = d
			}

			path, err := content.WritePost(dir, draft)
			if err != nil {
				return err
			}
			log.Printf("✅ Created %s", path)
			log.Println("   Remove `draft: true` from the front matter to publish it.")
			return nil
		},
	}

	cmd.Flags().StringVar(&draft.Slug, "slug", "", "URL slug (derived from the title when empty)")
	cmd.Flags().StringVarP(&draft.Description, "description", "d", "", "Card description")
	cmd.Flags().StringSliceVarP(&draft.Authors, "author", "a", nil, "Author name (repeatable)")
	cmd.Flags().BoolVar(&draft.Featured, "featured", false, "Feature the post on the home page")
	cmd.Flags().BoolVar(&noInteractive, "no-interactive", false, "Skip the interactive form")

	return cmd
}
