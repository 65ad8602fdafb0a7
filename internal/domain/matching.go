package domain

// SelectCardsForRoute picks the cards a player must spend to claim the route,
// or ok=false when the hand cannot satisfy the requirement.
//
// With a required color, true-color cards are preferred and wildcards fill
// the remainder. With no required color, true colors are tried in their fixed
// enumeration order and the first color whose count plus wildcards reaches
// the route length wins; an all-wildcard claim is the final fallback. The
// enumeration-order tie-break is deliberate so replays are reproducible.
func SelectCardsForRoute(hand []Card, route *Route) (cards []Card, ok bool) {
	need := route.Length

	if route.RequiredColor != nil {
		color := *route.RequiredColor
		if CountColor(hand, color)+CountColor(hand, ColorRainbow) < need {
			return nil, false
		}
		return takeColorThenWild(hand, color, need), true
	}

	wilds := CountColor(hand, ColorRainbow)
	for _, color := range TrueColors() {
		if CountColor(hand, color)+wilds >= need {
			return takeColorThenWild(hand, color, need), true
		}
	}
	if wilds >= need {
		return takeColor(hand, ColorRainbow, need), true
	}
	return nil, false
}

// takeColorThenWild selects up to need cards of the given color in hand
// order, then wildcards for the remainder. The caller has already verified
// the hand holds enough.
func takeColorThenWild(hand []Card, color CardColor, need int) []Card {
	cards := takeColor(hand, color, need)
	if len(cards) < need {
		cards = append(cards, takeColor(hand, ColorRainbow, need-len(cards))...)
	}
	return cards
}

func takeColor(hand []Card, color CardColor, limit int) []Card {
	var out []Card
	for _, c := range hand {
		if len(out) == limit {
			break
		}
		if c.Color == color {
			out = append(out, c)
		}
	}
	return out
}
