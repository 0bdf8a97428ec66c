package entities

import (
	"fmt"
	"strings"
)

// Suit represents a card suit

type Suit string

const (
	Hearts   Suit = "HEARTS"
	Diamonds Suit = "DIAMONDS"
	Clubs    Suit = "CLUBS"
	Spades   Suit = "SPADES"

	// NoSuit is the zero Suit, used where no suit override is active
	NoSuit Suit = ""
)

// Suits lists every suit in a fixed order. Suit selection uses this order to
// break ties.
var Suits = []Suit{Hearts, Diamonds, Clubs, Spades}

// Valid reports whether s is one of the four suits
func (s Suit) Valid() bool {
	switch s {
	case Hearts, Diamonds, Clubs, Spades:
		return true
	}
	return false
}

// Symbol returns the unicode pip for the suit

func (s Suit) Symbol() string {
	switch s {
	case Hearts:
		return "♥"
	case Diamonds:
		return "♦"
	case Clubs:
		return "♣"
	case Spades:
		return "♠"
	}
	return "?"
}

// ParseSuit converts a case-insensitive suit name into a Suit
func ParseSuit(name string) (Suit, error) {
	suit := Suit(strings.ToUpper(strings.TrimSpace(name)))
	if !suit.Valid() {
		return NoSuit, fmt.Errorf("unknown suit %q", name)
	}
	return suit, nil
}

// Rank represents a card rank

type Rank string

const (
	Ace   Rank = "A"
	Two   Rank = "2"
	Three Rank = "3"
	Four  Rank = "4"
	Five  Rank = "5"
	Six   Rank = "6"
	Seven Rank = "7"
	Eight Rank = "8"
	Nine  Rank = "9"
	Ten   Rank = "10"
	Jack  Rank = "J"
	Queen Rank = "Q"
	King  Rank = "K"
)

// Ranks lists every rank from ace to king
var Ranks = []Rank{Ace, Two, Three, Four, Five, Six, Seven, Eight, Nine, Ten, Jack, Queen, King}

// Card represents a playing card. Two cards are the same card only when their
// IDs match.

type Card struct {
	ID   string `json:"id"`
	Suit Suit   `json:"suit"`
	Rank Rank   `json:"rank"`
}

// NewCard creates a new card

func NewCard(id string, suit Suit, rank Rank) Card {
	return Card{
		ID:   id,
		Suit: suit,
		Rank: rank,
	}
}

// IsWild reports whether the card is an eight
func (c Card) IsWild() bool {
	return c.Rank == Eight
}

// String returns the string representation of the card

func (c Card) String() string {
	return fmt.Sprintf("%s of %s", c.Rank, c.Suit)
}

// Short returns the compact rank+pip form, e.g. "10♦"
func (c Card) Short() string {
	return string(c.Rank) + c.Suit.Symbol()
}
