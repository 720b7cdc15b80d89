package bot

import (
	"context"
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"github.com/floork/mensa-cli/internal/mensa"
	"github.com/floork/mensa-cli/internal/openmensa"
)

const (
	// factLanguage is what both fact commands request.
	factLanguage = "de"

	// infoURL is the fixed reply of the bot command.
	infoURL = "https://github.com/floork/discord-bot.git"

	// maxChoices is Discord's cap on autocomplete choices per response.
	maxChoices = 25
)

func commandDefinitions() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{
		{
			Name:        "meal",
			Description: "Show the meals a canteen offers",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:         discordgo.ApplicationCommandOptionString,
					Name:         "canteen",
					Description:  "choose a canteen",
					Required:     true,
					Autocomplete: true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "date",
					Description: "Choose a date",
				},
			},
		},
		{Name: "meme", Description: "Fetch a random meme"},
		{Name: "daily_fact", Description: "Fetch the useless fact of the day"},
		{Name: "random_fact", Description: "Fetch a random useless fact"},
		{Name: "bot", Description: "Show where the bot comes from"},
	}
}

func (b *Bot) handleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionApplicationCommandAutocomplete:
		b.handleAutocomplete(s, i)

	case discordgo.InteractionApplicationCommand:
		userID := interactionUserID(i)
		if b.denied(userID) {
			b.logger.Warn("rejected denylisted caller", "user", userID)
			return
		}

		ctx := context.Background()
		data := i.ApplicationCommandData()
		b.logger.Info("executing command", "command", data.Name, "user", userID)

		switch data.Name {
		case "meal":
			canteenName, dateToken := mealOptions(data.Options)
			text, embeds := b.mealReply(ctx, canteenName, dateToken)
			if text != "" {
				b.respondText(s, i, text)
			} else {
				b.respondEmbeds(s, i, embeds)
			}
		case "meme":
			b.respondText(s, i, b.memeReply(ctx))
		case "daily_fact":
			b.respondText(s, i, b.dailyFactReply(ctx))
		case "random_fact":
			b.respondText(s, i, b.randomFactReply(ctx))
		case "bot":
			b.respondText(s, i, infoURL)
		default:
			b.logger.Warn("unknown command", "command", data.Name)
			return
		}

		b.logger.Info("executed command", "command", data.Name)
	}
}

func (b *Bot) handleAutocomplete(s *discordgo.Session, i *discordgo.InteractionCreate) {
	var partial string
	for _, opt := range i.ApplicationCommandData().Options {
		if opt.Name == "canteen" && opt.Focused {
			partial = opt.StringValue()
		}
	}

	canteens, err := b.menu.ListCanteens(context.Background())
	if err != nil {
		b.logger.Warn("autocomplete canteen list failed", "err", err)
		canteens = nil
	}

	resp := &discordgo.InteractionResponse{
		Type: discordgo.InteractionApplicationCommandAutocompleteResult,
		Data: &discordgo.InteractionResponseData{
			Choices: canteenChoices(canteens, partial),
		},
	}
	if err := s.InteractionRespond(i.Interaction, resp); err != nil {
		b.logger.Warn("sending autocomplete choices failed", "err", err)
	}
}

// canteenChoices filters canteen names by a partial string, capped at
// Discord's choice limit.
func canteenChoices(canteens []openmensa.Canteen, partial string) []*discordgo.ApplicationCommandOptionChoice {
	choices := []*discordgo.ApplicationCommandOptionChoice{}
	for _, canteen := range canteens {
		if !containsFold(canteen.Name, partial) {
			continue
		}
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{
			Name:  canteen.Name,
			Value: canteen.Name,
		})
		if len(choices) == maxChoices {
			break
		}
	}
	return choices
}

func mealOptions(opts []*discordgo.ApplicationCommandInteractionDataOption) (canteenName, dateToken string) {
	for _, opt := range opts {
		switch opt.Name {
		case "canteen":
			canteenName = opt.StringValue()
		case "date":
			dateToken = opt.StringValue()
		}
	}
	return canteenName, dateToken
}

// mealReply resolves a canteen by name and builds the meal embeds. A
// non-empty text reply means the lookup ended early (unknown canteen, fetch
// failure, or an empty menu).
func (b *Bot) mealReply(ctx context.Context, canteenName, dateToken string) (string, []*discordgo.MessageEmbed) {
	date := mensa.ResolveDate(dateToken)

	canteen, err := b.menu.GetCanteenByName(ctx, canteenName)
	if err != nil {
		if errors.Is(err, openmensa.ErrNotFound) {
			b.logger.Warn("canteen not found", "canteen", canteenName)
			return "Canteen not found.", nil
		}
		b.logger.Error("fetching canteen failed", "canteen", canteenName, "err", err)
		return "Failed to fetch canteen.", nil
	}

	meals, err := b.menu.GetMeals(ctx, canteen, date)
	if err != nil {
		b.logger.Error("fetching meals failed", "canteen", canteen.Name, "err", err)
		return "Failed to fetch meals.", nil
	}
	if len(meals) == 0 {
		return "No meals found for the selected canteen.", nil
	}

	return "", buildMealEmbeds(meals)
}

// buildMealEmbeds renders one embed per meal with the four price tiers and
// the joined notes.
func buildMealEmbeds(meals []openmensa.Meal) []*discordgo.MessageEmbed {
	embeds := make([]*discordgo.MessageEmbed, 0, len(meals))
	for _, meal := range meals {
		row := mensa.ToRow(meal)
		priceInfo := fmt.Sprintf(
			"Students: %v\nEmployees: %v\nPupils: %v\nOthers: %v",
			row.StudentPrice,
			row.EmployeePrice,
			row.GuestPrice,
			mensa.PriceOrZero(meal.Prices.Others),
		)

		embeds = append(embeds, &discordgo.MessageEmbed{
			Title: row.Name,
			Fields: []*discordgo.MessageEmbedField{
				{
					Name:  fmt.Sprintf("Category: %s", meal.Category),
					Value: fmt.Sprintf("Prices:\n%s\nNotes: %s", priceInfo, row.Notes),
				},
			},
		})
	}
	return embeds
}

func (b *Bot) memeReply(ctx context.Context) string {
	m, err := b.memes.Get(ctx)
	if err != nil {
		b.logger.Error("fetching meme failed", "err", err)
		return "Failed to fetch meme."
	}
	return m.URL
}

func (b *Bot) dailyFactReply(ctx context.Context) string {
	fact, err := b.facts.Daily(ctx, factLanguage)
	if err != nil {
		b.logger.Error("fetching daily fact failed", "err", err)
		return "Failed to fetch daily fact."
	}
	return fact.Text
}

func (b *Bot) randomFactReply(ctx context.Context) string {
	fact, err := b.facts.Random(ctx, factLanguage)
	if err != nil {
		b.logger.Error("fetching random fact failed", "err", err)
		return "Failed to fetch random fact."
	}
	return fact.Text
}

func (b *Bot) respondText(s *discordgo.Session, i *discordgo.InteractionCreate, text string) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Content: text},
	})
	if err != nil {
		b.logger.Warn("sending reply failed", "err", err)
	}
}

func (b *Bot) respondEmbeds(s *discordgo.Session, i *discordgo.InteractionCreate, embeds []*discordgo.MessageEmbed) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Embeds: embeds},
	})
	if err != nil {
		b.logger.Warn("sending embeds failed", "err", err)
	}
}

func interactionUserID(i *discordgo.InteractionCreate) string {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User.ID
	}
	if i.User != nil {
		return i.User.ID
	}
	return ""
}
