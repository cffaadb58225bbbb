package blackjack

import (
	"encoding/json"

	"github.com/vovakirdan/pm-arcade/internal/engine"
)

// Persistence keys.
const (
	StatsKey    = "sprintBlackjackStats"
	TutorialKey = "sprintBlackjackTutorialSeen"
)

// Stats is the career record kept across sessions.
type Stats struct {
	BestStreak        int `json:"bestStreak"`
	CurrentStreak     int `json:"currentStreak"`
	HighestConfidence int `json:"highestConfidence"`
	TotalSprints      int `json:"totalSprints"`
}

// LoadStats reads the record. Missing or corrupt data yields a fresh
// record starting at the given confidence.
func LoadStats(kv engine.KV, start int) Stats {
	fresh := Stats{HighestConfidence: start}
	if kv == nil {
		return fresh
	}
	raw, ok := kv.Get(StatsKey)
	if !ok {
		return fresh
	}
	var s Stats
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return fresh
	}
	return s
}

// Save writes the record. Failures are ignored; the game goes on.
func (s Stats) Save(kv engine.KV) {
	if kv == nil {
		return
	}
	data, err := json.Marshal(s)
	if err != nil {
		return
	}
	_ = kv.Set(StatsKey, string(data))
}

// Record folds one finished sprint into the stats.
func (s Stats) Record(won bool, confidence int) Stats {
	s.TotalSprints++
	if won {
		s.CurrentStreak++
		s.BestStreak = max(s.BestStreak, s.CurrentStreak)
	} else {
		s.CurrentStreak = 0
	}
	s.HighestConfidence = max(s.HighestConfidence, confidence)
	return s
}
