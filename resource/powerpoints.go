// Package resource implements the economy items: power points and
// brawl boxes.
package resource

// PowerPoints is an amount of power points. Depending on context it is
// either a total over a brawler's lifetime or the amount collected at
// the current level; the conversion helpers move between the two.
type PowerPoints uint32

// Power points required to upgrade a brawler to each level from the
// level below. Unlocking (level 1) is free.
const (
	LevelOne   PowerPoints = 0
	LevelTwo   PowerPoints = 20
	LevelThree PowerPoints = 30
	LevelFour  PowerPoints = 50
	LevelFive  PowerPoints = 80
	LevelSix   PowerPoints = 130
	LevelSeven PowerPoints = 210
	LevelEight PowerPoints = 340
	LevelNine  PowerPoints = 550
)

// MaxPowerPoints is the total required to max out a brawler.
const MaxPowerPoints = LevelTwo + LevelThree + LevelFour + LevelFive +
	LevelSix + LevelSeven + LevelEight + LevelNine

// RequiredFor returns the power points needed to upgrade a brawler to
// level from level-1. Levels outside 2..9 cost nothing.
func RequiredFor(level uint8) PowerPoints {
	switch level {
	case 2:
		return LevelTwo
	case 3:
		return LevelThree
	case 4:
		return LevelFour
	case 5:
		return LevelFive
	case 6:
		return LevelSix
	case 7:
		return LevelSeven
	case 8:
		return LevelEight
	case 9:
		return LevelNine
	}
	return LevelOne
}

// MaxAtLevel returns the maximum total power points a brawler can hold
// at a level, i.e. everything consumed so far plus a full bar.
func MaxAtLevel(level uint8) PowerPoints {
	var total PowerPoints
	for l := uint8(1); l <= level; l++ {
		total += RequiredFor(l + 1)
	}
	return total
}

// TotalFrom converts level-specific power points to a lifetime total.
func TotalFrom(levelSpecific PowerPoints, level uint8) PowerPoints {
	return MaxAtLevel(level) + levelSpecific
}

// LevelSpecificFrom converts a lifetime total to the amount held at the
// given level.
func LevelSpecificFrom(total PowerPoints, level uint8) PowerPoints {
	return total - MaxAtLevel(level)
}

// ToNextLevel returns the power points still missing until the next
// level, where p is a lifetime total. Maxed brawlers need zero.
func (p PowerPoints) ToNextLevel() PowerPoints {
	for level := uint8(1); level < 10; level++ {
		if max := MaxAtLevel(level); max >= p {
			return max - p
		}
	}
	return 0
}

// CanUpgrade reports whether a brawler at level with total power points
// p can be upgraded. Brawlers at level 9 or above cannot.
func (p PowerPoints) CanUpgrade(level uint8) bool {
	return level < 9 && MaxAtLevel(level) >= p
}
