package gameplay

import "brawl/model"

// Shelly is the starter shotgunner.
type Shelly struct {
	Data model.Brawler
}

func NewShelly() *Shelly {
	return &Shelly{Data: model.Brawler{
		Name:   "Shelly",
		Health: 3600,
		Speed:  720,
		Rarity: model.TrophyRoadRarity(0),
		Attack: model.Attack{
			Name:        "Buckshot",
			Damage:      300,
			Description: "Shelly's boomstick fires a wide spread of pellets.",
			MaxAmmo:     model.DefaultAmmo,
			Range:       7.67,
			Reload:      1.5,
			Projectiles: 5,
			Descriptor:  "Damage per shell",
		},
		Super: model.Super{
			Name:         "Super Shell",
			Damage:       320,
			Description:  "A massive blast that shreds cover and knocks enemies back.",
			Range:        7.33,
			Projectiles:  9,
			HitsRequired: 4,
			Descriptor:   "Damage per shell",
		},
		Gadget1:    model.Gadget{Name: "Fast Forward", Description: "Shelly dashes ahead a short distance."},
		Gadget2:    model.Gadget{Name: "Clay Pigeons", Description: "Narrows the next attack for range and focus."},
		StarPower1: model.StarPower{Name: "Shell Shock", Description: "Super shells slow down enemies."},
		StarPower2: model.StarPower{Name: "Band-Aid", Description: "Heals instantly when dropping below 40% health."},
	}}
}

func (s *Shelly) Info() *model.Brawler { return &s.Data }

// Nita is the starter bruiser whose super summons a bear.
type Nita struct {
	Data model.Brawler
}

func NewNita() *Nita {
	return &Nita{Data: model.Brawler{
		Name:   "Nita",
		Health: 3800,
		Speed:  720,
		Rarity: model.TrophyRoadRarity(10),
		Attack: model.Attack{
			Name:        "Rupture",
			Damage:      800,
			Description: "Nita sends a shockwave rumbling through the ground.",
			MaxAmmo:     model.DefaultAmmo,
			Range:       5.5,
			Reload:      1.25,
			Projectiles: 1,
		},
		Super: model.Super{
			Name:         "Overbearing",
			Description:  "Nita summons Big Baby Bear to hunt her enemies.",
			Projectiles:  1,
			HitsRequired: 5,
			Spawn: &model.Spawn{
				Name:   "Big Baby Bear",
				Health: 4800,
				Damage: 500,
				Range:  3.33,
				Speed:  2.5,
			},
		},
		Gadget1:    model.Gadget{Name: "Bear Paws", Description: "The bear stuns nearby enemies."},
		Gadget2:    model.Gadget{Name: "Faux Fur", Description: "The bear gains a temporary shield."},
		StarPower1: model.StarPower{Name: "Bear With Me", Description: "Nita and her bear heal each other on hit."},
		StarPower2: model.StarPower{Name: "Hyper Bear", Description: "The bear attacks faster."},
	}}
}

func (n *Nita) Info() *model.Brawler { return &n.Data }

// DefaultBrawlers returns the built-in battle brawlers keyed by name.
func DefaultBrawlers() map[string]Brawler {
	shelly := NewShelly()
	nita := NewNita()
	return map[string]Brawler{
		shelly.Data.Name: shelly,
		nita.Data.Name:   nita,
	}
}
