package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/deckgrid/deckgrid/pkg/catalog"
)

// schemesCommand creates the schemes command group for the color-scheme
// catalog.
func (c *CLI) schemesCommand() *cobra.Command {
	var mongoURI string

	cmd := &cobra.Command{
		Use:   "schemes",
		Short: "Inspect the deck color-scheme catalog",
		Long: `Inspect the deck color-scheme catalog.

Schemes style deck chrome (title and divider backgrounds), never chart
elements. By default the built-in catalog is used; with --mongo-uri schemes
are read from a MongoDB collection instead.`,
	}

	cmd.PersistentFlags().StringVar(&mongoURI, "mongo-uri", "", "MongoDB connection string for a shared scheme catalog")

	cmd.AddCommand(c.schemesListCommand(&mongoURI))
	cmd.AddCommand(c.schemesShowCommand(&mongoURI))
	cmd.AddCommand(c.schemesSuggestCommand(&mongoURI))

	return cmd
}

func (c *CLI) schemesListCommand(mongoURI *string) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List available color schemes",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, cleanup, err := c.openStore(ctx, *mongoURI)
			if err != nil {
				return err
			}
			defer cleanup()

			schemes, err := store.List(ctx)
			if err != nil {
				return err
			}
			for _, s := range schemes {
				line := fmt.Sprintf("%-20s", s.Name)
				for _, hex := range []string{s.Primary, s.Secondary, s.Background, s.Text, s.Accent} {
					line += swatch(hex) + " "
				}
				fmt.Println(line)
			}
			return nil
		},
	}
}

func (c *CLI) schemesShowCommand(mongoURI *string) *cobra.Command {
	return &cobra.Command{
		Use:   "show [name]",
		Short: "Show one scheme with a contrast check",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, cleanup, err := c.openStore(ctx, *mongoURI)
			if err != nil {
				return err
			}
			defer cleanup()

			s, err := store.Get(ctx, args[0])
			if err != nil {
				return err
			}
			printScheme(s)
			return nil
		},
	}
}

func (c *CLI) schemesSuggestCommand(mongoURI *string) *cobra.Command {
	return &cobra.Command{
		Use:   "suggest [topic...]",
		Short: "Suggest a scheme for a presentation topic",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			topic := strings.Join(args, " ")
			name := catalog.Suggest(topic)

			store, cleanup, err := c.openStore(ctx, *mongoURI)
			if err != nil {
				return err
			}
			defer cleanup()

			s, err := store.Get(ctx, name)
			if err != nil {
				return err
			}
			printInfo("Suggested for %q:", topic)
			printScheme(s)
			printNewline()
			printDetail("Use in a manifest:")
			printCommand(fmt.Sprintf("scheme = %q", s.Name))
			return nil
		},
	}
}

func printScheme(s catalog.Scheme) {
	fmt.Println(StyleTitle.Render(s.Name))
	printKeyValue("primary", s.Primary+" "+swatch(s.Primary))
	printKeyValue("secondary", s.Secondary+" "+swatch(s.Secondary))
	printKeyValue("background", s.Background+" "+swatch(s.Background))
	printKeyValue("text", s.Text+" "+swatch(s.Text))
	printKeyValue("accent", s.Accent+" "+swatch(s.Accent))

	_, text, err := catalog.EnsureContrast(s.Background, s.Text)
	if err != nil {
		printWarning("contrast check failed: %v", err)
		return
	}
	if text != s.Text {
		printWarning("text fails WCAG contrast on this background; %s would be used", text)
	} else {
		printDetail("text/background contrast meets WCAG AA")
	}
}

// openStore selects the scheme store. Without a Mongo URI the built-in
// catalog is used; with one the shared collection is seeded and queried.
func (c *CLI) openStore(ctx context.Context, mongoURI string) (catalog.Store, func(), error) {
	if mongoURI == "" {
		return catalog.NewBuiltinStore(), func() {}, nil
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
	if err != nil {
		return nil, nil, fmt.Errorf("connect to catalog store: %w", err)
	}
	cleanup := func() {
		if derr := client.Disconnect(context.Background()); derr != nil {
			c.Logger.Warn("catalog store disconnect failed", "err", derr)
		}
	}

	store := catalog.NewMongoStore(client.Database(appName).Collection("schemes"))
	if err := store.SeedBuiltin(ctx); err != nil {
		cleanup()
		return nil, nil, err
	}
	return store, cleanup, nil
}
