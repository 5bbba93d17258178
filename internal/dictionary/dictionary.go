// Package dictionary is the single source of truth for grug-speak: the
// mapping between the site's caveman vocabulary and real product concepts.
package dictionary

import (
	"fmt"
	"math/rand"
	"net/url"
)

// Category maps a grug-named category to its real-world concept
type Category struct {
	ID          string   `json:"id"`
	GrugName    string   `json:"grug_name"`
	RealName    string   `json:"real_name"`
	Description string   `json:"description"`
	Emoji       string   `json:"emoji"`
	SearchTerms []string `json:"search_terms"`
}

// Categories is the full cave wall of product categories
var Categories = []Category{
	{
		ID:          "shiny-rocks-string",
		GrugName:    "Shiny Rocks on String",
		RealName:    "Necklaces",
		Description: "Womanfolk hang from neck. Very pretty.",
		Emoji:       "💎",
		SearchTerms: []string{"necklace", "pendant", "chain necklace", "diamond necklace"},
	},
	{
		ID:          "shiny-rocks-finger",
		GrugName:    "Shiny Rocks on Finger Thing",
		RealName:    "Rings",
		Description: "Go on finger. Make finger fancy.",
		Emoji:       "💍",
		SearchTerms: []string{"ring", "diamond ring", "gold ring", "silver ring"},
	},
	{
		ID:          "shiny-rocks-arm",
		GrugName:    "Shiny Rocks on Arm Circle",
		RealName:    "Bracelets",
		Description: "Wrap around arm. Jingle jingle.",
		Emoji:       "📿",
		SearchTerms: []string{"bracelet", "bangle", "charm bracelet", "tennis bracelet"},
	},
	{
		ID:          "soft-fuzzy-wraps",
		GrugName:    "Soft Fuzzy Wraps",
		RealName:    "Cozy Clothing",
		Description: "Keep womanfolk warm. Very soft.",
		Emoji:       "🧣",
		SearchTerms: []string{"robe", "blanket", "cardigan", "cashmere sweater", "fuzzy socks"},
	},
	{
		ID:          "magic-smell-water",
		GrugName:    "Magic Smell Water",
		RealName:    "Perfume",
		Description: "Spray on. Smell good. Grug like.",
		Emoji:       "✨",
		SearchTerms: []string{"perfume", "fragrance", "eau de parfum", "cologne for women"},
	},
	{
		ID:          "face-paint",
		GrugName:    "Face Paint Things",
		RealName:    "Makeup",
		Description: "Colors for face. Make pretty.",
		Emoji:       "💄",
		SearchTerms: []string{"makeup set", "lipstick", "eyeshadow palette", "makeup gift set"},
	},
	{
		ID:          "glowy-rectangles",
		GrugName:    "Glowy Rectangle Things",
		RealName:    "Electronics",
		Description: "Magic light box. Show pictures.",
		Emoji:       "📱",
		SearchTerms: []string{"tablet", "e-reader", "kindle", "ipad"},
	},
	{
		ID:          "noise-makers",
		GrugName:    "Noise Makers for Ears",
		RealName:    "Headphones & Audio",
		Description: "Put on ears. Hear music.",
		Emoji:       "🎧",
		SearchTerms: []string{"headphones", "airpods", "wireless earbuds", "bluetooth speaker"},
	},
	{
		ID:          "hot-leaf-water",
		GrugName:    "Hot Leaf Water Makers",
		RealName:    "Coffee & Tea",
		Description: "Make hot drink. Wake up juice.",
		Emoji:       "☕",
		SearchTerms: []string{"coffee maker", "tea set", "espresso machine", "mug set"},
	},
	{
		ID:          "dead-tree-marks",
		GrugName:    "Dead Tree with Marks",
		RealName:    "Books & Journals",
		Description: "Flat thing with words. Womanfolk stare at for hours.",
		Emoji:       "📚",
		SearchTerms: []string{"book", "journal", "planner", "bestseller book"},
	},
	{
		ID:          "soft-foot-wraps",
		GrugName:    "Soft Foot Wraps",
		RealName:    "Slippers & Socks",
		Description: "Keep feet warm. Very cozy.",
		Emoji:       "🧦",
		SearchTerms: []string{"slippers", "fuzzy socks", "ugg slippers", "cozy socks"},
	},
	{
		ID:          "flower-water",
		GrugName:    "Flower Water in Bottle",
		RealName:    "Skincare & Spa",
		Description: "Rub on face. Face happy.",
		Emoji:       "🧴",
		SearchTerms: []string{"skincare set", "face cream", "spa gift set", "moisturizer"},
	},
	{
		ID:          "bag-carry-things",
		GrugName:    "Bag for Carry Things",
		RealName:    "Handbags & Purses",
		Description: "Big pouch. Put stuff inside.",
		Emoji:       "👜",
		SearchTerms: []string{"handbag", "purse", "tote bag", "crossbody bag"},
	},
	{
		ID:          "shiny-time-circle",
		GrugName:    "Shiny Time Circle",
		RealName:    "Watches",
		Description: "Tell when sun go. On arm.",
		Emoji:       "⌚",
		SearchTerms: []string{"watch", "women watch", "smartwatch", "gold watch"},
	},
	{
		ID:          "fire-smell-sticks",
		GrugName:    "Fire Smell Sticks",
		RealName:    "Candles & Home",
		Description: "Light on fire. Smell good. No burn cave.",
		Emoji:       "🕯️",
		SearchTerms: []string{"candle", "candle set", "diffuser", "aromatherapy"},
	},
}

// PriceRange maps shiny-coin buckets to price bounds. Max of zero means
// unbounded.
type PriceRange struct {
	ID       string  `json:"id"`
	GrugName string  `json:"grug_name"`
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Coins    int     `json:"coins"`
}

// PriceRanges in shiny coins
var PriceRanges = []PriceRange{
	{ID: "few", GrugName: "Few Coins", Min: 0, Max: 25, Coins: 1},
	{ID: "some", GrugName: "Some Coins", Min: 25, Max: 50, Coins: 2},
	{ID: "many", GrugName: "Many Coins", Min: 50, Max: 100, Coins: 3},
	{ID: "big-pile", GrugName: "Big Rock Pile", Min: 100, Max: 250, Coins: 4},
	{ID: "whole-cave", GrugName: "Whole Cave Worth", Min: 250, Max: 0, Coins: 5},
}

// RecipientType maps a grug recipient name to its real meaning
type RecipientType struct {
	ID       string `json:"id"`
	GrugName string `json:"grug_name"`
	RealName string `json:"real_name"`
}

// RecipientTypes for special suns
var RecipientTypes = []RecipientType{
	{ID: "wife", GrugName: "Man Womanfolk", RealName: "Wife/Girlfriend"},
	{ID: "mother", GrugName: "Man Maker Womanfolk", RealName: "Mother"},
	{ID: "sister", GrugName: "Man Blood Sister", RealName: "Sister"},
	{ID: "grandmother", GrugName: "Man Maker's Maker", RealName: "Grandmother"},
	{ID: "daughter", GrugName: "Man Small Womanfolk", RealName: "Daughter"},
	{ID: "friend", GrugName: "Womanfolk From Other Cave", RealName: "Friend"},
	{ID: "coworker", GrugName: "Hunt Together Womanfolk", RealName: "Coworker"},
}

// OccasionType maps a grug occasion name to its real meaning
type OccasionType struct {
	ID       string `json:"id"`
	GrugName string `json:"grug_name"`
	RealName string `json:"real_name"`
}

// OccasionTypes for special suns
var OccasionTypes = []OccasionType{
	{ID: "birthday", GrugName: "Special Sun", RealName: "Birthday"},
	{ID: "anniversary", GrugName: "Remember First Hunt Day", RealName: "Anniversary"},
	{ID: "christmas", GrugName: "Cold Time Gift Sun", RealName: "Christmas"},
	{ID: "valentines", GrugName: "Heart Paint Sun", RealName: "Valentine's Day"},
	{ID: "mothers-day", GrugName: "Thank Maker Sun", RealName: "Mother's Day"},
	{ID: "just-because", GrugName: "Grug In Trouble", RealName: "Just Because / Apology"},
}

// Quotes Grug uses for various situations
var Quotes = map[string][]string{
	"welcome": {
		"Grug see man need help. Grug best at find shiny things.",
		"Man look confused. This normal. Grug here now.",
		"Welcome to Grug cave. Grug help man not sleep on rock tonight.",
	},
	"searching": {
		"Grug look in all caves...",
		"Grug ask other Grugs...",
		"Grug hunt for perfect thing...",
	},
	"found": {
		"GRUG FIND! Man look at these.",
		"These good things. Womanfolk make happy noise.",
		"Grug work hard. Here what Grug find.",
	},
	"panic": {
		"Man forget?! GRUG PANIC TOO! But Grug help.",
		"No worry. Grug see this many times. Grug have plan.",
		"Quick quick! Grug know what do.",
	},
	"empty": {
		"Grug search whole cave. Nothing here.",
		"Man try different words. Grug try again.",
	},
	"saved": {
		"Grug remember this for man.",
		"Saved in cave wall. Man find later.",
	},
	"error": {
		"Ugh. Something break. Grug confused.",
		"Cave have problem. Man try again?",
	},
}

// CategoryByID looks up a category by its ID
func CategoryByID(id string) (Category, bool) {
	for _, c := range Categories {
		if c.ID == id {
			return c, true
		}
	}
	return Category{}, false
}

// PriceRangeForValue returns the range a price falls into
func PriceRangeForValue(value float64) PriceRange {
	for _, r := range PriceRanges {
		if value >= r.Min && (r.Max == 0 || value <= r.Max) {
			return r
		}
	}
	return PriceRanges[0]
}

// RandomQuote picks a quote for a situation. Unknown situations get an
// error quote so callers always have something in-character to show.
func RandomQuote(situation string) string {
	quotes, ok := Quotes[situation]
	if !ok {
		quotes = Quotes["error"]
	}
	return quotes[rand.Intn(len(quotes))]
}

// DefaultAssociateTag is the affiliate tag appended to store links.
const DefaultAssociateTag = "giftgrug-21"

// AffiliateURL builds a product URL for a known ASIN
func AffiliateURL(asin, associateTag string) string {
	return fmt.Sprintf("https://www.amazon.co.uk/dp/%s?tag=%s", asin, associateTag)
}

// AffiliateSearchURL builds a search URL for a free-text term
func AffiliateSearchURL(term, associateTag string) string {
	return fmt.Sprintf("https://www.amazon.co.uk/s?k=%s&tag=%s", url.QueryEscape(term), associateTag)
}
