package bot

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/floork/mensa-cli/internal/mensa"
)

// prefixes that trigger commands in plain messages, tried in order. The
// comma variant must come before the bare phrase so it is stripped whole.
var prefixes = []string{"~", "hey bot,", "hey bot"}

// parseCommand extracts a command name and its arguments from a prefixed
// message. ok is false when the message carries no recognized prefix or no
// command name.
func parseCommand(content string) (name string, args []string, ok bool) {
	trimmed := strings.TrimSpace(content)

	var rest string
	for _, prefix := range prefixes {
		if strings.HasPrefix(trimmed, prefix) {
			rest = strings.TrimPrefix(trimmed, prefix)
			ok = true
			break
		}
	}
	if !ok {
		return "", nil, false
	}

	fields := strings.Fields(rest)
	if len(fields) == 0 {
		return "", nil, false
	}
	return fields[0], fields[1:], true
}

// splitMealArgs separates a trailing date token from the canteen name.
// Canteen names contain spaces, so everything that is not a date belongs to
// the name.
func splitMealArgs(args []string) (canteenName, dateToken string) {
	if len(args) > 1 {
		last := args[len(args)-1]
		if _, err := time.Parse(mensa.DateFormat, last); err == nil {
			return strings.Join(args[:len(args)-1], " "), last
		}
	}
	return strings.Join(args, " "), ""
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

func (b *Bot) handleMessage(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || (s.State != nil && s.State.User != nil && m.Author.ID == s.State.User.ID) {
		return
	}

	name, args, ok := parseCommand(m.Content)
	if !ok {
		return
	}

	if b.denied(m.Author.ID) {
		b.logger.Warn("rejected denylisted caller", "user", m.Author.ID)
		return
	}

	ctx := context.Background()
	b.logger.Info("executing command", "command", name, "user", m.Author.ID)

	send := func(text string) {
		if _, err := s.ChannelMessageSend(m.ChannelID, text); err != nil {
			b.logger.Warn("sending reply failed", "err", err)
		}
	}

	switch name {
	case "meal":
		canteenName, dateToken := splitMealArgs(args)
		text, embeds := b.mealReply(ctx, canteenName, dateToken)
		if text != "" {
			send(text)
			break
		}
		msg := &discordgo.MessageSend{Embeds: embeds}
		if _, err := s.ChannelMessageSendComplex(m.ChannelID, msg); err != nil {
			b.logger.Warn("sending embeds failed", "err", err)
		}
	case "meme":
		send(b.memeReply(ctx))
	case "daily_fact":
		send(b.dailyFactReply(ctx))
	case "random_fact":
		send(b.randomFactReply(ctx))
	case "bot":
		send(infoURL)
	default:
		b.logger.Debug("ignoring unknown prefix command", "command", name)
		return
	}

	b.logger.Info("executed command", "command", name)
}
