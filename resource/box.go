package resource

import (
	"math/rand/v2"

	"brawl/internal/rng"
	"brawl/metrics"
	"brawl/model"
)

const (
	// TokenDoublerOdds is the base odds (out of 100) to get token
	// doublers from a box. Every missed item doubles it.
	TokenDoublerOdds uint32 = 9
	// TokenDoublerQuantity is the amount of token doublers rewarded.
	TokenDoublerQuantity uint32 = 200
)

// BoxOdds are the odds to pull each item kind out of a box slot.
type BoxOdds struct {
	PowerPoints float64
	Rare        float64
	SuperRare   float64
	Epic        float64
	Mythic      float64
	Legendary   float64
	Gadget      float64
	StarPower   float64
}

// DefaultOdds returns the published box odds.
func DefaultOdds() BoxOdds {
	return BoxOdds{
		PowerPoints: 92.6516,
		Rare:        2.2103,
		SuperRare:   1.2218,
		Epic:        0.5527,
		Mythic:      0.2521,
		Legendary:   0.1115,
		Gadget:      2.0,
		StarPower:   1.0,
	}
}

// RarityOdds returns the odds for a rarity. Chromatic rarities decay to
// the regular rarity of their season; trophy road brawlers never drop.
func (o BoxOdds) RarityOdds(r model.Rarity) float64 {
	switch r.Kind {
	case model.RarityRare:
		return o.Rare
	case model.RaritySuperRare:
		return o.SuperRare
	case model.RarityEpic:
		return o.Epic
	case model.RarityMythic:
		return o.Mythic
	case model.RarityLegendary:
		return o.Legendary
	case model.RarityChromatic:
		switch r.Season {
		case model.SeasonFirst:
			return o.Legendary
		case model.SeasonSecond:
			return o.Mythic
		case model.SeasonThird:
			return o.Epic
		}
	}
	return 0
}

// BoxKind is the size of a box.
type BoxKind uint8

const (
	BrawlBoxKind BoxKind = iota
	BigBoxKind
	MegaBoxKind
	CustomBoxKind
)

func (k BoxKind) String() string {
	switch k {
	case BrawlBoxKind:
		return "brawl"
	case BigBoxKind:
		return "big"
	case MegaBoxKind:
		return "mega"
	}
	return "custom"
}

// BoxData sizes a box: total item slots plus the low/high/average
// ranges for power points and gold.
type BoxData struct {
	Total uint8
	// Low, high, average.
	PowerPoints [3]uint32
	Gold        [3]uint32
}

// Box is an openable brawl box.
type Box struct {
	Kind BoxKind
	Data BoxData
}

func NewBrawlBox() Box {
	return Box{Kind: BrawlBoxKind, Data: BoxData{Total: 2, PowerPoints: [3]uint32{7, 25, 14}, Gold: [3]uint32{12, 70, 19}}}
}

func NewBigBox() Box {
	return Box{Kind: BigBoxKind, Data: BoxData{Total: 5, PowerPoints: [3]uint32{27, 75, 46}, Gold: [3]uint32{36, 210, 63}}}
}

func NewMegaBox() Box {
	return Box{Kind: MegaBoxKind, Data: BoxData{Total: 9, PowerPoints: [3]uint32{81, 225, 132}, Gold: [3]uint32{6, 210, 63}}}
}

func NewCustomBox(data BoxData) Box {
	return Box{Kind: CustomBoxKind, Data: data}
}

// Variants records which of an item's two variants a player has (or, in
// rewards, gains).
type Variants struct {
	First  bool `json:"first"`
	Second bool `json:"second"`
}

func (v Variants) HasAtLeastOne() bool { return v.First || v.Second }

func (v *Variants) Combine(other Variants) {
	v.First = v.First || other.First
	v.Second = v.Second || other.Second
}

// chooseOne picks one variant when both are available; otherwise the
// value already names at most one variant and is returned as is.
func (v Variants) chooseOne(r *rand.Rand) Variants {
	if v.First && v.Second {
		if r.IntN(2) == 0 {
			return Variants{First: true}
		}
		return Variants{Second: true}
	}
	return v
}

// BrawlerData is the box-relevant state of one of the player's
// unlocked brawlers. PowerPoints holds only the points at the current
// level, not those consumed by earlier level-ups.
type BrawlerData struct {
	Name        string
	Level       uint8
	PowerPoints uint32
	Gadgets     Variants
	StarPowers  Variants
}

// PlayerStats is what box opening needs to know about a player.
type PlayerStats struct {
	Odds           BoxOdds
	AllBrawlers    []model.Brawler
	PlayerBrawlers []BrawlerData
}

func NewPlayerStats(all []model.Brawler, owned []BrawlerData) PlayerStats {
	return PlayerStats{Odds: DefaultOdds(), AllBrawlers: all, PlayerBrawlers: owned}
}

// BoxRewards is everything unlocked by opening a box.
type BoxRewards struct {
	// Names of brawlers unlocked.
	Brawlers []string
	// Power points collected, per brawler.
	PowerPoints map[string]PowerPoints
	// Gadgets unlocked, per brawler.
	Gadgets map[string]Variants
	// Star powers unlocked, per brawler.
	StarPowers map[string]Variants
	Gold       uint32
	// TokenDoublers is zero when none were rewarded.
	TokenDoublers uint32
}

func (rw *BoxRewards) AddBrawler(name string) {
	rw.Brawlers = append(rw.Brawlers, name)
}

func (rw *BoxRewards) AddPowerPoints(brawler string, pp PowerPoints) {
	if rw.PowerPoints == nil {
		rw.PowerPoints = map[string]PowerPoints{}
	}
	rw.PowerPoints[brawler] += pp
}

func (rw *BoxRewards) AddGadgets(brawler string, v Variants) {
	if rw.Gadgets == nil {
		rw.Gadgets = map[string]Variants{}
	}
	have := rw.Gadgets[brawler]
	have.Combine(v)
	rw.Gadgets[brawler] = have
}

func (rw *BoxRewards) AddStarPowers(brawler string, v Variants) {
	if rw.StarPowers == nil {
		rw.StarPowers = map[string]Variants{}
	}
	have := rw.StarPowers[brawler]
	have.Combine(v)
	rw.StarPowers[brawler] = have
}

func (rw *BoxRewards) AddTokenDoublers(quantity uint32) {
	rw.TokenDoublers += quantity
}

// Open rolls the box contents for a player. The generator is passed in
// so callers control seeding.
func (b Box) Open(r *rand.Rand, stats PlayerStats) BoxRewards {
	metrics.BoxesOpened.WithLabelValues(b.Kind.String()).Inc()

	data := b.Data
	gold := rng.WeightedRandom(r, data.Gold[0], data.Gold[1], data.Gold[2])

	var (
		rarities   []unlockableRarity
		gadgets    uint32
		starPowers uint32
		stacks     int
	)
	tokenDoublerOdds := TokenDoublerOdds

	for _, item := range selectItems(r, stats.Odds, data.Total) {
		switch item.kind {
		case itemPowerPoints:
			stacks++
		case itemBrawler:
			rarities = append(rarities, item.rarity)
		case itemGadget:
			gadgets++
		case itemStarPower:
			starPowers++
		}
	}

	unlockable := stats.unlockableData()

	// A player with nothing left to power up gets gold instead.
	switch {
	case unlockable.powerPoints.len() == 0:
		gold *= 3
		stacks = 0
	case unlockable.powerPoints.len() == 1:
		gold *= 2
		stacks = 1
	case unlockable.powerPoints.len() < stacks:
		stacks = unlockable.powerPoints.len()
	}

	rewards := BoxRewards{Gold: gold}

	addPowerPoints(r, stacks, data, unlockable.powerPoints, &rewards)

	missed := addBrawlers(r, rarities, unlockable.brawlers, &rewards)
	missed += addGadgets(r, gadgets, unlockable.gadgets, &rewards)
	missed += addStarPowers(r, starPowers, unlockable.starPowers, &rewards)
	for i := uint32(0); i < missed; i++ {
		tokenDoublerOdds *= 2
	}

	if tokenDoublerOdds >= r.Uint32N(100) {
		rewards.AddTokenDoublers(TokenDoublerQuantity)
	}

	return rewards
}
