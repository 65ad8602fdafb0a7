package domain

import (
	"math/rand"

	"github.com/google/uuid"
)

// CardColor is one of the five true train card colors or the wildcard.
type CardColor string

const (
	ColorRed    CardColor = "red"
	ColorBlue   CardColor = "blue"
	ColorYellow CardColor = "yellow"
	ColorGreen  CardColor = "green"
	ColorBlack  CardColor = "black"
	// ColorRainbow is the wildcard color; it substitutes for any true color.
	ColorRainbow CardColor = "rainbow"
)

// TrueColors lists the non-wildcard colors in their fixed enumeration order.
// Matching and tie-breaking iterate this order, so it must stay stable.
func TrueColors() []CardColor {
	return []CardColor{ColorRed, ColorBlue, ColorYellow, ColorGreen, ColorBlack}
}

// Card is a single train card.
type Card struct {
	ID    uuid.UUID `json:"id"`
	Color CardColor `json:"color"`
}

// IsWild reports whether the card is a wildcard.
func (c Card) IsWild() bool {
	return c.Color == ColorRainbow
}

// NewDeck builds the full train card deck in color order, unshuffled:
// CardsPerColor of each true color followed by WildcardCount wildcards.
func NewDeck() []Card {
	deck := make([]Card, 0, DeckSize)
	for _, color := range TrueColors() {
		for i := 0; i < CardsPerColor; i++ {
			deck = append(deck, Card{ID: uuid.New(), Color: color})
		}
	}
	for i := 0; i < WildcardCount; i++ {
		deck = append(deck, Card{ID: uuid.New(), Color: ColorRainbow})
	}
	return deck
}

// ShuffleDeck permutes the deck in place using the provided rng.
func ShuffleDeck(deck []Card, rng *rand.Rand) {
	rng.Shuffle(len(deck), func(i, j int) { deck[i], deck[j] = deck[j], deck[i] })
}

// DrawCard removes and returns the front card of the deck. Draw order is the
// shuffle order; drawing itself never re-randomizes. ok is false when the
// deck is empty.
func DrawCard(deck []Card) (card Card, remaining []Card, ok bool) {
	if len(deck) == 0 {
		return Card{}, deck, false
	}
	return deck[0], deck[1:], true
}

// ReturnAndReshuffle appends consumed cards back to the deck and reshuffles
// the whole deck. There is no discard pile: cards spent on a route claim go
// straight back into the supply.
func ReturnAndReshuffle(deck, cards []Card, rng *rand.Rand) []Card {
	out := make([]Card, 0, len(deck)+len(cards))
	out = append(out, deck...)
	out = append(out, cards...)
	ShuffleDeck(out, rng)
	return out
}

// CountColor returns how many cards in hand have the given color.
func CountColor(hand []Card, color CardColor) int {
	n := 0
	for _, c := range hand {
		if c.Color == color {
			n++
		}
	}
	return n
}

// RemoveCards removes the given cards from a hand by card id and returns the
// updated hand.
func RemoveCards(hand []Card, toRemove []Card) []Card {
	removeIDs := make(map[uuid.UUID]bool, len(toRemove))
	for _, c := range toRemove {
		removeIDs[c.ID] = true
	}
	updated := make([]Card, 0, len(hand))
	for _, c := range hand {
		if removeIDs[c.ID] {
			delete(removeIDs, c.ID)
			continue
		}
		updated = append(updated, c)
	}
	return updated
}
