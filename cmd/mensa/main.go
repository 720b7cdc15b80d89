// Package main provides the mensa CLI entry point.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/floork/mensa-cli/internal/bot"
	"github.com/floork/mensa-cli/internal/config"
	"github.com/floork/mensa-cli/internal/meme"
	"github.com/floork/mensa-cli/internal/mensa"
	"github.com/floork/mensa-cli/internal/openmensa"
	"github.com/floork/mensa-cli/internal/uselessfact"
)

// Version is set at build time via ldflags
var Version = "dev"

// factLanguage is what the one-shot fact flags request.
const factLanguage = "de"

var (
	flagLocation   string
	flagID         int
	flagDate       string
	flagDiscordBot bool
	flagToken      string
	flagEnvFile    string
	flagMeme       bool
	flagDailyFact  bool
	flagRandomFact bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "mensa",
	Short: "Look up canteen menus, or run the Discord bot",
	Long: `mensa resolves a canteen (by id, location, or the configured defaults)
and prints its menu for a date as a table.

With --discord-bot it instead runs a Discord bot exposing the same lookups
as slash commands, plus a couple of novelty commands.

Canteen and meal data comes from the OpenMensa API. The fallback canteen
set lives in ~/.config/mensa-cli/config.toml.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	flags := rootCmd.Flags()
	flags.StringVarP(&flagLocation, "location", "L", "", "free-text location to resolve canteens")
	flags.IntVarP(&flagID, "id", "I", 0, "canteen id")
	flags.StringVarP(&flagDate, "date", "D", "today", `date to query, YYYY-MM-DD or "today"`)
	flags.BoolVarP(&flagDiscordBot, "discord-bot", "B", false, "start the Discord bot instead of a one-shot lookup")
	flags.StringVarP(&flagToken, "token", "T", "", "Discord bot token (falls back to DISCORD_TOKEN)")
	flags.StringVarP(&flagEnvFile, "env-file", "E", "", "env file holding DISCORD_TOKEN")
	flags.BoolVarP(&flagMeme, "meme", "M", false, "fetch a random meme and exit")
	flags.BoolVarP(&flagDailyFact, "daily-fact", "F", false, "fetch the useless fact of the day and exit")
	flags.BoolVarP(&flagRandomFact, "random-fact", "R", false, "fetch a random useless fact and exit")
	rootCmd.Version = Version
}

func run(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	switch {
	case flagMeme:
		return runMeme(ctx)
	case flagDailyFact:
		return runFact(ctx, uselessfact.NewClient().Daily)
	case flagRandomFact:
		return runFact(ctx, uselessfact.NewClient().Random)
	case flagDiscordBot:
		return runBot()
	default:
		return runLookup(ctx, cmd)
	}
}

// runLookup is the one-shot meal lookup: resolve date and canteens, fetch
// each canteen's menu, print a table per canteen. Recoverable failures are
// printed and end the invocation cleanly.
func runLookup(ctx context.Context, cmd *cobra.Command) error {
	cfg := mustLoadConfig()

	sel := mensa.Selection{
		Location: flagLocation,
		Fallback: cfg.Locations.Canteens,
	}
	if cmd.Flags().Changed("id") {
		id := flagID
		sel.ID = &id
	}

	date := mensa.ResolveDate(flagDate)
	provider := openmensa.NewClient()

	canteens, err := mensa.ResolveCanteens(ctx, provider, sel)
	if err != nil {
		reportError("resolving canteens: %v", err)
		return nil
	}
	if len(canteens) == 0 {
		reportError("no canteens resolved")
		return nil
	}

	for _, result := range mensa.FetchAll(ctx, provider, canteens, date) {
		switch {
		case result.Err != nil:
			reportError("fetching meals for %s: %v", result.Canteen.Name, result.Err)
		case len(result.Meals) == 0:
			fmt.Printf("No meals found for %s\n", result.Canteen.Name)
		default:
			printMealTable(os.Stdout, result.Canteen.Name, mensa.Rows(result.Meals))
		}
	}

	return nil
}

func runMeme(ctx context.Context) error {
	m, err := meme.NewClient().Get(ctx)
	if err != nil {
		reportError("fetching meme: %v", err)
		return nil
	}
	fmt.Println(m.URL)
	return nil
}

func runFact(ctx context.Context, fetch func(context.Context, string) (*uselessfact.Fact, error)) error {
	fact, err := fetch(ctx, factLanguage)
	if err != nil {
		reportError("fetching fact: %v", err)
		return nil
	}
	fmt.Println(fact.Text)
	return nil
}

// runBot resolves the bot token and hands off to the long-running Discord
// listener. Missing token and unreadable config are startup-fatal.
func runBot() error {
	token := resolveToken()
	if token == "" {
		exitWithError(ExitError, "no Discord token: pass --token, set DISCORD_TOKEN, or point --env-file at a file that sets it")
	}

	// The bot loads the config once at startup for parity with CLI mode;
	// it is never reloaded.
	mustLoadConfig()

	b, err := bot.New(bot.Options{
		Token: token,
		Menu:  openmensa.NewClient(),
		Memes: meme.NewClient(),
		Facts: uselessfact.NewClient(),
	})
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}

	if err := b.Start(); err != nil {
		exitWithError(ExitError, "starting bot: %v", err)
	}
	return nil
}

// resolveToken applies the token precedence: flag, then DISCORD_TOKEN,
// optionally populated from an env file first.
func resolveToken() string {
	if flagToken != "" {
		return flagToken
	}
	if flagEnvFile != "" {
		if err := godotenv.Load(config.ExpandTilde(flagEnvFile)); err != nil {
			exitWithError(ExitConfigError, "loading env file: %v", err)
		}
	}
	return os.Getenv("DISCORD_TOKEN")
}

// mustLoadConfig loads the configuration, exits on error. There is no
// synthesized default config.
func mustLoadConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}
	return cfg
}
