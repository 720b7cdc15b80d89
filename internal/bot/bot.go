// Package bot implements the Discord front end: slash commands, the text
// prefix aliases, and the gateway lifecycle.
package bot

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/charmbracelet/log"

	"github.com/floork/mensa-cli/internal/meme"
	"github.com/floork/mensa-cli/internal/openmensa"
	"github.com/floork/mensa-cli/internal/uselessfact"
)

// MenuProvider is the canteen-data surface the bot commands need.
// *openmensa.Client satisfies it.
type MenuProvider interface {
	ListCanteens(ctx context.Context) ([]openmensa.Canteen, error)
	GetCanteenByName(ctx context.Context, name string) (*openmensa.Canteen, error)
	GetMeals(ctx context.Context, canteen *openmensa.Canteen, date time.Time) ([]openmensa.Meal, error)
}

// MemeProvider serves random meme links.
type MemeProvider interface {
	Get(ctx context.Context) (*meme.Meme, error)
}

// FactProvider serves daily and random text facts.
type FactProvider interface {
	Daily(ctx context.Context, language string) (*uselessfact.Fact, error)
	Random(ctx context.Context, language string) (*uselessfact.Fact, error)
}

// Options configures a Bot.
type Options struct {
	Token string

	Menu  MenuProvider
	Memes MemeProvider
	Facts FactProvider

	// Denied rejects a caller before any command body runs. Nil allows
	// everyone.
	Denied func(userID string) bool

	Logger *log.Logger
}

// Bot is the long-running Discord command listener.
type Bot struct {
	token  string
	menu   MenuProvider
	memes  MemeProvider
	facts  FactProvider
	denied func(string) bool
	logger *log.Logger

	// votes is an extension point for per-user counters; no command reads
	// or writes it yet. Any future use must hold votesMu around the
	// read-modify-write.
	votesMu sync.Mutex
	votes   map[string]int
}

// New creates a Bot. An empty token is refused up front so the process can
// abort with a clear message instead of failing deep inside the gateway
// handshake.
func New(opts Options) (*Bot, error) {
	if opts.Token == "" {
		return nil, errors.New("invalid token: provide a bot token via --token, DISCORD_TOKEN, or an env file")
	}

	denied := opts.Denied
	if denied == nil {
		denied = func(string) bool { return false }
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(os.Stderr)
	}

	return &Bot{
		token:  opts.Token,
		menu:   opts.Menu,
		memes:  opts.Memes,
		facts:  opts.Facts,
		denied: denied,
		logger: logger,
		votes:  make(map[string]int),
	}, nil
}

// Start opens the gateway connection, registers the slash commands, and
// blocks until the process is interrupted. Setup failures are returned to the
// caller, which treats them as fatal.
func (b *Bot) Start() error {
	session, err := discordgo.New("Bot " + b.token)
	if err != nil {
		return fmt.Errorf("creating session: %w", err)
	}

	// Message content is needed for the ~ and "hey bot" prefixes.
	session.Identify.Intents = discordgo.IntentsAllWithoutPrivileged | discordgo.IntentMessageContent

	session.AddHandler(func(_ *discordgo.Session, r *discordgo.Ready) {
		b.logger.Info("logged in", "user", r.User.Username)
	})
	session.AddHandler(b.handleInteraction)
	session.AddHandler(b.handleMessage)
	session.AddHandler(func(_ *discordgo.Session, e *discordgo.Event) {
		b.logger.Debug("gateway event", "type", e.Type)
	})

	if err := session.Open(); err != nil {
		return fmt.Errorf("opening gateway connection: %w", err)
	}
	defer session.Close()

	for _, cmd := range commandDefinitions() {
		if _, err := session.ApplicationCommandCreate(session.State.User.ID, "", cmd); err != nil {
			return fmt.Errorf("registering command %q: %w", cmd.Name, err)
		}
	}

	b.logger.Info("bot is running, press ctrl-c to exit")

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	return nil
}
