package loadout

// Item names as they appear in a player's inventory.
const (
	ItemDreamBreaker            = "Dream Breaker"
	ItemProgressiveDreamBreaker = "Progressive Dream Breaker"
	ItemStrikebreak             = "Strikebreak"
	ItemSoulCutter              = "Soul Cutter"
	ItemSunsetter               = "Sunsetter"
	ItemSlide                   = "Slide"
	ItemProgressiveSlide        = "Progressive Slide"
	ItemSolarWind               = "Solar Wind"
	ItemAscendantLight          = "Ascendant Light"
	ItemClingGem                = "Cling Gem"
	ItemSunGreaves              = "Sun Greaves"
	ItemHeliacalPower           = "Heliacal Power"
	ItemAirKick                 = "Air Kick"
	ItemSmallKey                = "Small Key"
)

// DefaultRequiredSmallKeys is how many small keys unlock the small_keys
// capability unless a player's tags lower it.
const DefaultRequiredSmallKeys = 7

// Inventory is one player's collected items.
type Inventory interface {
	Count(item string) int
}

// FromInventory derives the live loadout of a player. requiredSmallKeys is
// fixed per player before any rule is evaluated.
func FromInventory(inv Inventory, requiredSmallKeys int) Loadout {
	breakers := inv.Count(ItemProgressiveDreamBreaker)
	slides := inv.Count(ItemProgressiveSlide)

	clings := 0
	if inv.Count(ItemClingGem) > 0 {
		clings = 6
	}
	kicks := 0
	if inv.Count(ItemSunGreaves) > 0 {
		kicks = 3
	}
	kicks += inv.Count(ItemHeliacalPower)
	kicks += inv.Count(ItemAirKick)

	return Loadout{
		DreamBreaker:   inv.Count(ItemDreamBreaker) > 0 || breakers > 0,
		Strikebreak:    inv.Count(ItemStrikebreak) > 0 || breakers >= 2,
		SoulCutter:     inv.Count(ItemSoulCutter) > 0 || breakers >= 3,
		Sunsetter:      inv.Count(ItemSunsetter) > 0,
		Slide:          inv.Count(ItemSlide) > 0 || slides > 0,
		SolarWind:      inv.Count(ItemSolarWind) > 0 || slides >= 2,
		AscendantLight: inv.Count(ItemAscendantLight) > 0,
		Clings:         clings,
		Kicks:          kicks,
		SmallKeys:      inv.Count(ItemSmallKey) >= requiredSmallKeys,
	}
}
