package model

import (
	"encoding/json"
	"fmt"
)

// RewardKind is the kind of a trophy road reward. The values are the
// reward code numbers used by the game data files.
type RewardKind uint8

const (
	RewardGold          RewardKind = 1
	RewardBrawler       RewardKind = 3
	RewardBrawlBox      RewardKind = 6
	RewardTokenDoublers RewardKind = 9
	RewardMegaBox       RewardKind = 10
	RewardPowerPoints   RewardKind = 12
	RewardGameMode      RewardKind = 13
	RewardBigBox        RewardKind = 14
)

// RewardKindFromCode validates a reward code. Valid codes: 1, 3, 6, 9,
// 10, 12, 13, 14.
func RewardKindFromCode(code uint8) (RewardKind, bool) {
	switch RewardKind(code) {
	case RewardGold, RewardBrawler, RewardBrawlBox, RewardTokenDoublers,
		RewardMegaBox, RewardPowerPoints, RewardGameMode, RewardBigBox:
		return RewardKind(code), true
	}
	return 0, false
}

// IsBox reports whether the reward is a box of any size.
func (k RewardKind) IsBox() bool {
	return k == RewardBrawlBox || k == RewardBigBox || k == RewardMegaBox
}

func (k RewardKind) MarshalJSON() ([]byte, error) {
	if _, ok := RewardKindFromCode(uint8(k)); !ok {
		return nil, fmt.Errorf("model: unexpected reward kind %d", uint8(k))
	}
	return json.Marshal(uint8(k))
}

func (k *RewardKind) UnmarshalJSON(data []byte) error {
	var code uint8
	if err := json.Unmarshal(data, &code); err != nil {
		return err
	}
	kind, ok := RewardKindFromCode(code)
	if !ok {
		return fmt.Errorf("model: expected one of 1, 3, 6, 9, 10, 12, 13 or 14, got %d", code)
	}
	*k = kind
	return nil
}

// TrophyRoadReward is a single reward on the trophy road.
type TrophyRoadReward struct {
	// Trophies at which the reward is gained.
	Trophies uint32     `json:"trophies"`
	Kind     RewardKind `json:"kind"`
	Count    uint32     `json:"count"`
	// Extra data associated with the reward, e.g. the brawler or game
	// mode name.
	ExtraData string `json:"extra_data,omitempty"`
}

// CanCollect checks the trophy threshold only; it does not know whether
// the reward was collected before.
func (r TrophyRoadReward) CanCollect(trophies uint32) bool {
	return trophies >= r.Trophies
}

// TrophyRoad holds every reward available on the trophy road.
type TrophyRoad struct {
	Rewards []TrophyRoadReward `json:"rewards"`
}

func NewTrophyRoad(rewards []TrophyRoadReward) TrophyRoad {
	return TrophyRoad{Rewards: rewards}
}

// CanCollect checks if a player with the given trophies can unlock the
// reward at index. Out-of-bounds indexes are simply not collectable.
func (t TrophyRoad) CanCollect(index int, trophies uint32) bool {
	if index < 0 || index >= len(t.Rewards) {
		return false
	}
	return t.Rewards[index].CanCollect(trophies)
}

// Collectables returns the rewards reachable with the given trophies.
func (t TrophyRoad) Collectables(trophies uint32) []TrophyRoadReward {
	var out []TrophyRoadReward
	for _, r := range t.Rewards {
		if r.CanCollect(trophies) {
			out = append(out, r)
		}
	}
	return out
}
