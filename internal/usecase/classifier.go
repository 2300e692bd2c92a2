package usecase

import "strings"

// FilterMode selects which content policy the normalizer applies.
// The two modes are intentionally distinct products: /search accepts any
// plausible shopping listing, /dupes additionally demands clothing keywords.
type FilterMode int

const (
	// ModeShopping accepts hits with general shopping signals (the /search policy)
	ModeShopping FilterMode = iota
	// ModeClothing requires clothing/fashion keywords (the stricter /dupes policy)
	ModeClothing
)

// strongShoppingSignals are phrases that almost only appear on product pages
var strongShoppingSignals = []string{
	"buy now", "add to cart", "add to bag", "in stock", "free returns",
	"checkout", "order now", "shop now",
}

// moderateShoppingSignals are weaker commerce hints; several are needed
var moderateShoppingSignals = []string{
	"price", "sale", "shipping", "discount", "deal", "$", "usd",
	"clearance", "off retail", "best seller",
}

// knownRetailers is the allow-list of hosts trusted to be shops outright.
// Matched by substring against the lower-cased host.
var knownRetailers = []string{
	"amazon.", "walmart.", "target.", "ebay.", "etsy.",
	"asos.", "zara.", "hm.com", "shein.", "aliexpress.",
	"nordstrom.", "macys.", "bloomingdales.", "saksfifthavenue.",
	"uniqlo.", "gap.com", "oldnavy.", "forever21.", "boohoo.",
	"prettylittlething.", "fashionnova.", "revolve.", "shopbop.",
	"zappos.", "dsw.", "footlocker.", "nike.", "adidas.",
	"urbanoutfitters.", "anthropologie.", "freepeople.", "lulus.",
	"everlane.", "mango.com", "stories.com", "cos.com", "quince.",
}

// excludedSites rejects hosts that are never product listings:
// video/social platforms, news, blogs, wikis, review and dupe-roundup sites.
var excludedSites = []string{
	"youtube.", "tiktok.", "instagram.", "facebook.", "twitter.",
	"x.com", "pinterest.", "reddit.", "tumblr.", "snapchat.",
	"wikipedia.", "wikihow.", "fandom.",
	"medium.", "substack.", "blogspot.", "wordpress.",
	"buzzfeed.", "nytimes.", "cnn.", "bbc.", "theguardian.",
	"cosmopolitan.", "vogue.", "elle.", "harpersbazaar.", "refinery29.",
	"popsugar.", "whowhatwear.", "byrdie.", "thecut.",
	"quora.", "stackexchange.",
	"dupefinder.", "dupeshop.", "lookalike.",
}

// excludedContentKeywords rejects editorial/advice content regardless of
// any shopping signals present.
var excludedContentKeywords = []string{
	"tutorial", "how to", "review:", "we tested", "we tried",
	"best dupes for", "top 10", "top 20", "listicle", "roundup",
	"ranked", "comparison guide", "everything you need to know",
	"watch now", "subscribe",
}

// clothingKeywords is the fashion vocabulary required by ModeClothing.
var clothingKeywords = []string{
	// garments
	"dress", "skirt", "top", "blouse", "shirt", "t-shirt", "tee",
	"sweater", "cardigan", "hoodie", "jacket", "coat", "blazer",
	"jeans", "pants", "trousers", "leggings", "shorts", "jumpsuit",
	"romper", "bodysuit", "swimsuit", "bikini", "lingerie", "bra",
	// footwear and accessories
	"shoes", "sneakers", "boots", "heels", "sandals", "loafers",
	"bag", "handbag", "purse", "tote", "backpack", "wallet",
	"scarf", "belt", "hat", "sunglasses", "jewelry", "necklace",
	"earrings", "bracelet", "ring", "watch",
	// generic fashion terms
	"outfit", "wear", "fashion", "style", "apparel", "clothing",
	"wardrobe", "designer", "couture", "activewear", "loungewear",
	"knit", "denim", "leather", "cashmere", "silk", "linen",
}

// excludedPathSegments rejects editorial URL paths even when clothing
// keywords match.
var excludedPathSegments = []string{"/blog/", "/article/", "/news/", "/guide/"}

// Classifier decides whether a raw search hit looks like a shopping
// listing and whether it is clothing/fashion relevant. Precision over
// recall: the upstream provider has no shopping filter, so these
// heuristics reject aggressively.
type Classifier struct{}

// NewClassifier creates a new content classifier
func NewClassifier() *Classifier {
	return &Classifier{}
}

// IsShoppingContent reports whether the hit looks like a product listing.
// First match wins: known retailer, then strong+moderate signals, then
// moderate signals with a dollar sign, then three moderate signals.
func (c *Classifier) IsShoppingContent(title, snippet, site string) bool {
	if title == "" || snippet == "" {
		return false
	}

	host := strings.ToLower(site)
	for _, retailer := range knownRetailers {
		if strings.Contains(host, retailer) {
			return true
		}
	}

	text := strings.ToLower(title + " " + snippet)
	strong := countMatches(text, strongShoppingSignals)
	moderate := countMatches(text, moderateShoppingSignals)

	switch {
	case strong >= 1 && moderate >= 1:
		return true
	case moderate >= 2 && strings.Contains(text, "$"):
		return true
	case moderate >= 3:
		return true
	}
	return false
}

// IsClothingRelevant reports whether the combined text mentions at least
// one garment, accessory, or generic fashion term.
func (c *Classifier) IsClothingRelevant(title, snippet string) bool {
	text := strings.ToLower(title + " " + snippet)
	for _, kw := range clothingKeywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

// IsExcludedSite reports whether the host matches the deny-list
func (c *Classifier) IsExcludedSite(site string) bool {
	host := strings.ToLower(site)
	for _, blocked := range excludedSites {
		if strings.Contains(host, blocked) {
			return true
		}
	}
	return false
}

// IsExcludedContent reports whether the text matches editorial/advice
// keywords that disqualify a hit regardless of shopping signals.
func (c *Classifier) IsExcludedContent(title, snippet string) bool {
	text := strings.ToLower(title + " " + snippet)
	for _, kw := range excludedContentKeywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

// IsExcludedPath reports whether the URL path contains an editorial segment
func (c *Classifier) IsExcludedPath(pageURL string) bool {
	lower := strings.ToLower(pageURL)
	for _, seg := range excludedPathSegments {
		if strings.Contains(lower, seg) {
			return true
		}
	}
	return false
}

// countMatches counts how many phrases from the list occur in text
func countMatches(text string, phrases []string) int {
	count := 0
	for _, p := range phrases {
		if strings.Contains(text, p) {
			count++
		}
	}
	return count
}
