package crazyeights

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/fadedpez/crazyeights/pkg/entities"
	engine "github.com/fadedpez/crazyeights/pkg/services/crazyeights"
)

// Component custom ids. Every id starts with ComponentPrefix.
const (
	ComponentPrefix = "crazyeights_"

	ButtonDeal    = ComponentPrefix + "deal"
	ButtonDraw    = ComponentPrefix + "draw"
	ButtonRestart = ComponentPrefix + "restart"
	ButtonMenu    = ComponentPrefix + "menu"
	ButtonPause   = ComponentPrefix + "pause"
	ButtonResume  = ComponentPrefix + "resume"
	SelectPlay    = ComponentPrefix + "play"
	suitPrefix    = ComponentPrefix + "suit_"
)

// maxSelectOptions is the most options Discord accepts in one select menu
const maxSelectOptions = 25

// SuitButtonID returns the custom id of the button choosing suit
func SuitButtonID(suit entities.Suit) string {
	return suitPrefix + string(suit)
}

// RenderView formats a view as message content
func RenderView(view engine.View) string {
	var sb strings.Builder
	sb.WriteString("🎴 **Crazy Eights**\n")

	if view.Status == engine.StatusMenu {
		sb.WriteString(view.LastAction)
		sb.WriteString("\nMatch the top card by suit or rank. Eights are wild.")
		return sb.String()
	}

	if view.TopCard != nil {
		sb.WriteString(fmt.Sprintf("Top card: **%s**", view.TopCard.Short()))
		if view.ActiveSuit != entities.NoSuit {
			sb.WriteString(fmt.Sprintf(" (suit called: %s %s)", view.ActiveSuit.Symbol(), view.ActiveSuit))
		}
		sb.WriteString("\n")
	}
	sb.WriteString(fmt.Sprintf("Opponent: %d cards | Draw pile: %d | Discard: %d\n",
		view.OpponentCount, view.DrawCount, view.DiscardCount))
	sb.WriteString(fmt.Sprintf("Your hand (%d): %s\n", len(view.PlayerHand), formatHand(view.PlayerHand)))

	switch {
	case view.Status == engine.StatusWon:
		sb.WriteString(fmt.Sprintf("\n🏆 **You won!** (%d moves)", view.Moves))
		return sb.String()
	case view.Status == engine.StatusLost:
		sb.WriteString(fmt.Sprintf("\n💀 **Opponent won!** (%d moves)", view.Moves))
		return sb.String()
	case view.Paused:
		sb.WriteString("\n⏸️ Paused")
	case view.AwaitingSuit && view.PendingCard != nil:
		sb.WriteString(fmt.Sprintf("\n▶️ Choose a suit for your %s", view.PendingCard.Short()))
	case view.Turn == engine.TurnPlayer:
		if len(view.PlayableCards) == 0 {
			sb.WriteString("\n▶️ Your turn. No card fits, draw one.")
		} else {
			sb.WriteString("\n▶️ Your turn.")
		}
	default:
		sb.WriteString("\n⏳ Opponent is thinking...")
	}

	if view.LastAction != "" {
		sb.WriteString("\n_" + view.LastAction + "_")
	}
	return sb.String()
}

func formatHand(hand []entities.Card) string {
	if len(hand) == 0 {
		return "-"
	}
	cards := make([]string, len(hand))
	for i, card := range hand {
		cards[i] = card.Short()
	}
	return strings.Join(cards, " ")
}

// Components returns the controls offered for a view
func Components(view engine.View) []discordgo.MessageComponent {
	switch {
	case view.Status == engine.StatusMenu:
		return []discordgo.MessageComponent{
			discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{
					discordgo.Button{
						Label:    "Deal",
						Style:    discordgo.SuccessButton,
						CustomID: ButtonDeal,
					},
				},
			},
		}

	case view.Status.IsFinished():
		return []discordgo.MessageComponent{
			discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{
					discordgo.Button{
						Label:    "Play Again",
						Style:    discordgo.SuccessButton,
						CustomID: ButtonRestart,
					},
					menuButton(),
				},
			},
		}

	case view.Paused:
		return []discordgo.MessageComponent{
			discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{
					discordgo.Button{
						Label:    "Resume",
						Style:    discordgo.SuccessButton,
						CustomID: ButtonResume,
					},
					restartButton(),
					menuButton(),
				},
			},
		}

	case view.AwaitingSuit:
		suits := make([]discordgo.MessageComponent, 0, len(entities.Suits))
		for _, suit := range entities.Suits {
			suits = append(suits, discordgo.Button{
				Label:    suit.Symbol() + " " + suitLabel(suit),
				Style:    discordgo.PrimaryButton,
				CustomID: SuitButtonID(suit),
			})
		}
		return []discordgo.MessageComponent{
			discordgo.ActionsRow{Components: suits},
			discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{
					restartButton(),
					menuButton(),
				},
			},
		}
	}

	components := make([]discordgo.MessageComponent, 0, 2)
	if view.PlayerCanAct() && len(view.PlayableCards) > 0 {
		components = append(components, discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{playSelect(view.PlayableCards)},
		})
	}
	components = append(components, discordgo.ActionsRow{
		Components: []discordgo.MessageComponent{
			discordgo.Button{
				Label:    "Draw",
				Style:    discordgo.PrimaryButton,
				CustomID: ButtonDraw,
				Disabled: !view.PlayerCanAct(),
			},
			discordgo.Button{
				Label:    "Pause",
				Style:    discordgo.SecondaryButton,
				CustomID: ButtonPause,
			},
			restartButton(),
			menuButton(),
		},
	})
	return components
}

func playSelect(playable []entities.Card) discordgo.SelectMenu {
	if len(playable) > maxSelectOptions {
		playable = playable[:maxSelectOptions]
	}
	options := make([]discordgo.SelectMenuOption, 0, len(playable))
	for _, card := range playable {
		options = append(options, discordgo.SelectMenuOption{
			Label:       card.Short(),
			Value:       card.ID,
			Description: card.String(),
		})
	}

	minValues := 1
	return discordgo.SelectMenu{
		MenuType:    discordgo.StringSelectMenu,
		CustomID:    SelectPlay,
		Placeholder: "Play a card",
		MinValues:   &minValues,
		MaxValues:   1,
		Options:     options,
	}
}

func restartButton() discordgo.Button {
	return discordgo.Button{
		Label:    "Restart",
		Style:    discordgo.SecondaryButton,
		CustomID: ButtonRestart,
	}
}

func menuButton() discordgo.Button {
	return discordgo.Button{
		Label:    "Menu",
		Style:    discordgo.DangerButton,
		CustomID: ButtonMenu,
	}
}

func suitLabel(suit entities.Suit) string {
	name := strings.ToLower(string(suit))
	return strings.ToUpper(name[:1]) + name[1:]
}
