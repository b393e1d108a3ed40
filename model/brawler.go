// Package model holds the static game data: brawlers, game modes, the
// trophy road and tier tables. The types here mirror the in-game
// models; their battle-time interactions live in package gameplay.
package model

import (
	"encoding/json"
	"fmt"
)

// DefaultAmmo is the amount of ammo a brawler has unless its attack
// says otherwise.
const DefaultAmmo = 3

// DefaultDescriptor is the default attack/super descriptor text.
const DefaultDescriptor = "Damage"

// Brawler is a playable character.
type Brawler struct {
	Name string `json:"name"`
	// Health at level 1.
	Health uint32 `json:"health"`
	Speed  uint32 `json:"speed"`
	Rarity Rarity `json:"rarity"`
	// Attack at level 1.
	Attack Attack `json:"attack"`
	// Super at level 1.
	Super      Super     `json:"super"`
	Gadget1    Gadget    `json:"gadget1"`
	Gadget2    Gadget    `json:"gadget2"`
	StarPower1 StarPower `json:"sp1"`
	StarPower2 StarPower `json:"sp2"`
	Skins      []Skin    `json:"skins,omitempty"`
}

// RarityKind discriminates the rarity variants.
type RarityKind uint8

const (
	RarityTrophyRoad RarityKind = iota
	RarityRare
	RaritySuperRare
	RarityEpic
	RarityMythic
	RarityLegendary
	RarityChromatic
)

// ChromaticSeason is the season of a chromatic brawler. Each season
// maps onto a regular rarity: first is legendary, second mythic, third
// epic.
type ChromaticSeason uint8

const (
	SeasonFirst ChromaticSeason = iota + 1
	SeasonSecond
	SeasonThird
)

func (s ChromaticSeason) String() string {
	switch s {
	case SeasonFirst:
		return "First"
	case SeasonSecond:
		return "Second"
	case SeasonThird:
		return "Third"
	}
	return fmt.Sprintf("ChromaticSeason(%d)", uint8(s))
}

// Rarity is the rarity of a brawler. Trophies is set for trophy-road
// brawlers, Season for chromatic ones.
type Rarity struct {
	Kind     RarityKind      `json:"kind"`
	Trophies uint32          `json:"trophies,omitempty"`
	Season   ChromaticSeason `json:"season,omitempty"`
}

func TrophyRoadRarity(trophies uint32) Rarity {
	return Rarity{Kind: RarityTrophyRoad, Trophies: trophies}
}

func ChromaticRarity(season ChromaticSeason) Rarity {
	return Rarity{Kind: RarityChromatic, Season: season}
}

// Lower returns the rarity right under the current one. Trophy road,
// rare and chromatic have no lower rarity.
func (r Rarity) Lower() (Rarity, bool) {
	switch r.Kind {
	case RarityLegendary:
		return Rarity{Kind: RarityMythic}, true
	case RarityMythic:
		return Rarity{Kind: RarityEpic}, true
	case RarityEpic:
		return Rarity{Kind: RaritySuperRare}, true
	case RaritySuperRare:
		return Rarity{Kind: RarityRare}, true
	}
	return Rarity{}, false
}

func (r Rarity) String() string {
	switch r.Kind {
	case RarityTrophyRoad:
		return fmt.Sprintf("Trophy Road: %d Trophies", r.Trophies)
	case RarityRare:
		return "Rare"
	case RaritySuperRare:
		return "Super Rare"
	case RarityEpic:
		return "Epic"
	case RarityMythic:
		return "Mythic"
	case RarityLegendary:
		return "Legendary"
	case RarityChromatic:
		return fmt.Sprintf("Chromatic: %s Season", r.Season)
	}
	return fmt.Sprintf("Rarity(%d)", uint8(r.Kind))
}

// Attack is a brawler's normal attack.
type Attack struct {
	Name        string  `json:"name"`
	Damage      uint32  `json:"damage"`
	Description string  `json:"description"`
	MaxAmmo     uint8   `json:"max_ammo"`
	Range       float32 `json:"range"`
	Reload      float32 `json:"reload"`
	Projectiles uint32  `json:"projectiles"`
	// Extra text for the attack, e.g. "Damage per shell" for Shelly.
	Descriptor string `json:"descriptor,omitempty"`
}

// UnmarshalJSON applies the ammo and descriptor defaults.
func (a *Attack) UnmarshalJSON(data []byte) error {
	type plain Attack
	p := plain{MaxAmmo: DefaultAmmo, Descriptor: DefaultDescriptor}
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*a = Attack(p)
	return nil
}

// Super is a brawler's super ability.
type Super struct {
	Name string `json:"name"`
	// Damage is zero for brawlers with special supers.
	Damage      uint32 `json:"damage,omitempty"`
	Description string `json:"description"`
	// Range is zero for spawners.
	Range        float32 `json:"range,omitempty"`
	Projectiles  uint32  `json:"projectiles"`
	HitsRequired uint32  `json:"hits_required"`
	Descriptor   string  `json:"descriptor,omitempty"`
	// Spawn is nil for most brawlers.
	Spawn *Spawn `json:"spawn,omitempty"`
}

func (s *Super) UnmarshalJSON(data []byte) error {
	type plain Super
	p := plain{Descriptor: DefaultDescriptor}
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*s = Super(p)
	return nil
}

// Spawn is a character summoned by a super.
type Spawn struct {
	Name   string  `json:"name"`
	Health uint32  `json:"health"`
	Damage uint32  `json:"damage"`
	Range  float32 `json:"range"`
	Speed  float32 `json:"speed"`
}

type Gadget struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type StarPower struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// SkinType tells how a skin is acquired.
type SkinType uint8

const (
	SkinGem SkinType = iota
	SkinStarToken
	SkinFree
)

func (t SkinType) IsFree() bool      { return t == SkinFree }
func (t SkinType) IsGem() bool       { return t == SkinGem }
func (t SkinType) IsStarToken() bool { return t == SkinStarToken }

type Skin struct {
	Name    string   `json:"name"`
	Cost    uint32   `json:"cost"`
	Kind    SkinType `json:"kind"`
	Special bool     `json:"special"`
}
