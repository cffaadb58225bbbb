package blackjack

import (
	"fmt"
	"math/rand"
	"strconv"
)

// Suit is a card suit.
type Suit int

const (
	Spades Suit = iota
	Hearts
	Diamonds
	Clubs
)

// Symbol returns the suit glyph.
func (s Suit) Symbol() string {
	switch s {
	case Hearts:
		return "♥"
	case Diamonds:
		return "♦"
	case Clubs:
		return "♣"
	default:
		return "♠"
	}
}

// Red reports whether the suit is drawn in red.
func (s Suit) Red() bool {
	return s == Hearts || s == Diamonds
}

var ranks = []string{"A", "2", "3", "4", "5", "6", "7", "8", "9", "10", "J", "Q", "K"}

// Card is one ticket in the backlog deck.
type Card struct {
	Rank   string
	Suit   Suit
	Value  int    // aces count 11 here; HandValue softens them
	Ticket string // e.g. BUG-3, STORY-9
}

func (c Card) String() string {
	return c.Rank + c.Suit.Symbol()
}

// TicketID names a rank as a backlog ticket.
func TicketID(rank string) string {
	switch rank {
	case "A":
		return "EPIC-1"
	case "J":
		return "SPIKE-J"
	case "Q":
		return "FEATURE-Q"
	case "K":
		return "FEATURE-K"
	}
	n, err := strconv.Atoi(rank)
	switch {
	case err != nil:
		return "TICKET-" + rank
	case n <= 4:
		return fmt.Sprintf("BUG-%d", n)
	case n <= 7:
		return fmt.Sprintf("TASK-%d", n)
	default:
		return fmt.Sprintf("STORY-%d", n)
	}
}

// NewDeck returns the 52 cards in suit then rank order.
func NewDeck() []Card {
	deck := make([]Card, 0, 52)
	for s := Spades; s <= Clubs; s++ {
		for _, r := range ranks {
			v, err := strconv.Atoi(r)
			switch {
			case r == "A":
				v = 11
			case err != nil:
				v = 10
			}
			deck = append(deck, Card{Rank: r, Suit: s, Value: v, Ticket: TicketID(r)})
		}
	}
	return deck
}

// HandValue sums a hand, counting aces as 1 while the total would bust.
func HandValue(hand []Card) int {
	total, aces := 0, 0
	for _, c := range hand {
		total += c.Value
		if c.Rank == "A" {
			aces++
		}
	}
	for total > 21 && aces > 0 {
		total -= 10
		aces--
	}
	return total
}

// Shoe is the shuffled draw pile. It starts a fresh deck when it runs low.
type Shoe struct {
	cards []Card
	rng   *rand.Rand
	min   int
}

// NewShoe creates a shuffled shoe that reshuffles below min cards.
func NewShoe(rng *rand.Rand, min int) *Shoe {
	s := &Shoe{rng: rng, min: min}
	s.Shuffle()
	return s
}

// Shuffle replaces the pile with a freshly shuffled deck.
func (s *Shoe) Shuffle() {
	s.cards = NewDeck()
	s.rng.Shuffle(len(s.cards), func(i, j int) {
		s.cards[i], s.cards[j] = s.cards[j], s.cards[i]
	})
}

// Draw takes the top card.
func (s *Shoe) Draw() Card {
	if len(s.cards) < s.min || len(s.cards) == 0 {
		s.Shuffle()
	}
	c := s.cards[0]
	s.cards = s.cards[1:]
	return c
}

// Len returns the cards left.
func (s *Shoe) Len() int {
	return len(s.cards)
}

