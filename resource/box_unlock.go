package resource

import (
	"math/rand/v2"

	"brawl/internal/rng"
	"brawl/model"
)

// unlockableRarity is every rarity a box can drop a brawler in. Trophy
// road brawlers are excluded; chromatic ones decay to the regular
// rarity of their season.
type unlockableRarity uint8

const (
	unlockRare unlockableRarity = iota
	unlockSuperRare
	unlockEpic
	unlockMythic
	unlockLegendary
)

func unlockableFromRarity(r model.Rarity) (unlockableRarity, bool) {
	switch r.Kind {
	case model.RarityRare:
		return unlockRare, true
	case model.RaritySuperRare:
		return unlockSuperRare, true
	case model.RarityEpic:
		return unlockEpic, true
	case model.RarityMythic:
		return unlockMythic, true
	case model.RarityLegendary:
		return unlockLegendary, true
	case model.RarityChromatic:
		switch r.Season {
		case model.SeasonFirst:
			return unlockLegendary, true
		case model.SeasonSecond:
			return unlockMythic, true
		case model.SeasonThird:
			return unlockEpic, true
		}
	}
	return 0, false
}

func (u unlockableRarity) lower() (unlockableRarity, bool) {
	if u == unlockRare {
		return 0, false
	}
	return u - 1, true
}

// orderedCounts is a map with a stable, shuffleable key order, standing
// in for the ordered map the power point pool needs.
type orderedCounts struct {
	names []string
	need  map[string]uint32
}

func newOrderedCounts() *orderedCounts {
	return &orderedCounts{need: map[string]uint32{}}
}

func (c *orderedCounts) insert(name string, n uint32) {
	if _, ok := c.need[name]; !ok {
		c.names = append(c.names, name)
	}
	c.need[name] = n
}

func (c *orderedCounts) len() int { return len(c.names) }

func (c *orderedCounts) shuffle(r *rand.Rand) {
	r.Shuffle(len(c.names), func(i, j int) {
		c.names[i], c.names[j] = c.names[j], c.names[i]
	})
}

func (c *orderedCounts) remove(name string) {
	delete(c.need, name)
	for i, n := range c.names {
		if n == name {
			c.names[i] = c.names[len(c.names)-1]
			c.names = c.names[:len(c.names)-1]
			return
		}
	}
}

// variantsPool is a two-variant item pool with a stable key order so
// random picks are reproducible under a seeded generator.
type variantsPool struct {
	names []string
	items map[string]Variants
}

func newVariantsPool() *variantsPool {
	return &variantsPool{items: map[string]Variants{}}
}

func (p *variantsPool) insert(name string, v Variants) {
	if _, ok := p.items[name]; !ok {
		p.names = append(p.names, name)
	}
	p.items[name] = v
}

func (p *variantsPool) remove(name string) {
	delete(p.items, name)
	for i, n := range p.names {
		if n == name {
			p.names[i] = p.names[len(p.names)-1]
			p.names = p.names[:len(p.names)-1]
			return
		}
	}
}

// unlockable is everything a player can still get out of boxes.
type unlockable struct {
	// Rarity -> names of locked brawlers.
	brawlers map[unlockableRarity][]string
	// Brawler -> power points until maxed.
	powerPoints *orderedCounts
	// Brawler -> gadgets still locked (level >= 7 only).
	gadgets *variantsPool
	// Brawler -> star powers still locked (level >= 9 only).
	starPowers *variantsPool
}

func (s PlayerStats) unlockableData() unlockable {
	u := unlockable{
		brawlers:    map[unlockableRarity][]string{},
		powerPoints: newOrderedCounts(),
		gadgets:     newVariantsPool(),
		starPowers:  newVariantsPool(),
	}

	owned := map[string]bool{}
	for _, b := range s.PlayerBrawlers {
		owned[b.Name] = true
	}

	for _, b := range s.AllBrawlers {
		rarity, ok := unlockableFromRarity(b.Rarity)
		if !ok {
			continue
		}
		if !owned[b.Name] {
			u.brawlers[rarity] = append(u.brawlers[rarity], b.Name)
		}
	}

	for _, b := range s.PlayerBrawlers {
		total := TotalFrom(PowerPoints(b.PowerPoints), b.Level)
		if total < MaxPowerPoints {
			u.powerPoints.insert(b.Name, uint32(MaxPowerPoints-total))
		}

		if b.Level >= 7 {
			if open := (Variants{First: !b.Gadgets.First, Second: !b.Gadgets.Second}); open.HasAtLeastOne() {
				u.gadgets.insert(b.Name, open)
			}

			if b.Level >= 9 {
				if open := (Variants{First: !b.StarPowers.First, Second: !b.StarPowers.Second}); open.HasAtLeastOne() {
					u.starPowers.insert(b.Name, open)
				}
			}
		}
	}

	return u
}

type itemKind uint8

const (
	itemPowerPoints itemKind = iota
	itemBrawler
	itemGadget
	itemStarPower
)

type boxItem struct {
	kind   itemKind
	rarity unlockableRarity
}

// selectItems rolls total box slots against the odds.
func selectItems(r *rand.Rand, odds BoxOdds, total uint8) []boxItem {
	choices := []boxItem{
		{kind: itemPowerPoints},
		{kind: itemBrawler, rarity: unlockRare},
		{kind: itemBrawler, rarity: unlockSuperRare},
		{kind: itemBrawler, rarity: unlockEpic},
		{kind: itemBrawler, rarity: unlockMythic},
		{kind: itemBrawler, rarity: unlockLegendary},
		{kind: itemGadget},
		{kind: itemStarPower},
	}
	weights := []float64{
		odds.PowerPoints,
		odds.Rare,
		odds.SuperRare,
		odds.Epic,
		odds.Mythic,
		odds.Legendary,
		odds.Gadget,
		odds.StarPower,
	}

	items := make([]boxItem, 0, total)
	for i := uint8(0); i < total; i++ {
		idx := rng.WeightedIndex(r, weights)
		if idx < 0 {
			idx = 0
		}
		items = append(items, choices[idx])
	}
	return items
}

// addPowerPoints rolls one power point amount for the box, splits it
// into stacks pieces and hands each piece to a random brawler that can
// still hold it.
func addPowerPoints(r *rand.Rand, stacks int, data BoxData, pool *orderedCounts, rewards *BoxRewards) {
	if stacks <= 0 {
		return
	}

	total := rng.WeightedRandom(r, data.PowerPoints[0], data.PowerPoints[1], data.PowerPoints[2])
	pieces := rng.SplitInIntegers(r, total, uint32(stacks), 1)

	pool.shuffle(r)

	for _, piece := range pieces {
		for _, name := range pool.names {
			if pool.need[name] >= piece {
				rewards.AddPowerPoints(name, PowerPoints(piece))
				pool.remove(name)
				break
			}
		}
	}
}

// addBrawlers unlocks one brawler per rolled rarity, falling back to
// lower rarities when one is exhausted. Returns the number of rolls
// that found nothing to unlock.
func addBrawlers(r *rand.Rand, rarities []unlockableRarity, pool map[unlockableRarity][]string, rewards *BoxRewards) uint32 {
	var missed uint32
	for _, rolled := range rarities {
		rarity, ok := validRarity(rolled, pool)
		if !ok {
			missed++
			continue
		}
		names := pool[rarity]
		idx := r.IntN(len(names))
		rewards.AddBrawler(names[idx])
		names[idx] = names[len(names)-1]
		pool[rarity] = names[:len(names)-1]
	}
	return missed
}

func addGadgets(r *rand.Rand, total uint32, pool *variantsPool, rewards *BoxRewards) uint32 {
	var missed uint32
	for i := uint32(0); i < total; i++ {
		name, choice, ok := pickVariant(r, pool)
		if !ok {
			missed++
			continue
		}
		rewards.AddGadgets(name, choice)
	}
	return missed
}

func addStarPowers(r *rand.Rand, total uint32, pool *variantsPool, rewards *BoxRewards) uint32 {
	var missed uint32
	for i := uint32(0); i < total; i++ {
		name, choice, ok := pickVariant(r, pool)
		if !ok {
			missed++
			continue
		}
		rewards.AddStarPowers(name, choice)
	}
	return missed
}

// pickVariant selects a random brawler from the pool, picks one of its
// open variants and removes that variant from the pool.
func pickVariant(r *rand.Rand, pool *variantsPool) (string, Variants, bool) {
	if len(pool.names) == 0 {
		return "", Variants{}, false
	}

	name := pool.names[r.IntN(len(pool.names))]
	choice := pool.items[name].chooseOne(r)

	entry := pool.items[name]
	if choice.First {
		entry.First = false
	} else if choice.Second {
		entry.Second = false
	}
	if entry.HasAtLeastOne() {
		pool.items[name] = entry
	} else {
		pool.remove(name)
	}

	return name, choice, true
}

// validRarity walks down from rarity until it finds one with at least
// one locked brawler.
func validRarity(rarity unlockableRarity, pool map[unlockableRarity][]string) (unlockableRarity, bool) {
	current, ok := rarity, true
	for ok {
		if len(pool[current]) > 0 {
			return current, true
		}
		current, ok = current.lower()
	}
	return 0, false
}
