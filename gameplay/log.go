package gameplay

import (
	"time"

	"github.com/google/uuid"

	"brawl/queue"
)

// BattleLogEntry records one finished battle.
type BattleLogEntry struct {
	ID        uuid.UUID        `json:"id"`
	Players   []PlayerLogEntry `json:"players"`
	GameMode  string           `json:"game_mode"`
	Timestamp time.Time        `json:"timestamp"`
}

func NewBattleLogEntry(players []PlayerLogEntry, gameMode string) BattleLogEntry {
	return BattleLogEntry{
		ID:        uuid.New(),
		Players:   players,
		GameMode:  gameMode,
		Timestamp: time.Now().UTC(),
	}
}

// PlayerLogEntry is one player's share of a battle log entry.
type PlayerLogEntry struct {
	ID      PlayerID        `json:"id"`
	Brawler BrawlerLogEntry `json:"brawler"`
	// Trophies gained (or, negative, lost) from the battle.
	RewardTrophies int32 `json:"reward_trophies"`
	Won            bool  `json:"won"`
}

// BrawlerLogEntry is the brawler a player used in a logged battle.
type BrawlerLogEntry struct {
	Name     string `json:"name"`
	Level    uint32 `json:"level"`
	Trophies uint32 `json:"trophies"`
}

// BattleLog collects finished battles. Writers never block; readers
// drain at their own pace.
type BattleLog struct {
	entries *queue.Queue[BattleLogEntry]
}

func NewBattleLog() *BattleLog {
	return &BattleLog{entries: queue.New[BattleLogEntry]()}
}

func (l *BattleLog) Record(e BattleLogEntry) {
	l.entries.Push(e)
}

// Next pops the oldest unread entry.
func (l *BattleLog) Next() (BattleLogEntry, bool) {
	return l.entries.Pop()
}

// Drain pops every unread entry.
func (l *BattleLog) Drain() []BattleLogEntry {
	return l.entries.Drain()
}
