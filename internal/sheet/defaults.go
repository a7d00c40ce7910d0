package sheet

// MaxPoints caps how many content points one issue may carry.
const MaxPoints = 10

// DefaultMaxSupply is the Bitcoin max supply used when the metadata sheet
// does not carry a usable figure.
const DefaultMaxSupply = 21_000_000

// DefaultSegmentColor fills distribution rows that leave the color blank.
const DefaultSegmentColor = "rgb(255, 66, 2)"

// DefaultMeta returns the built-in metadata defaults. Every key the
// document consumes has an entry, so an empty metadata sheet still
// renders a complete issue. The returned map is a fresh copy.
func DefaultMeta() map[string]string {
	return map[string]string{
		"eyebrow":                "Globalite Macro Brief",
		"main_title":             "WEEKLY TOP 10 ARGUMENTS",
		"subtitle":               "A clear weekly macro summary with the key arguments that matter.",
		"block_height":           "925000",
		"max_supply_btc":         "21000000",
		"circulating_supply_btc": "19960000",
		"hashrate_eh_s":          "820",
		"hashrate_scale_eh_s":    "1000",
		"snapshot_title":         "At The Time Of Writing",
		"snapshot_intro":         "At the time of writing, these on-chain supply anchors provide the baseline context.",
		"snapshot_note":          "Figures are rounded and updated with each issue.",
		"tldr_title":             "TL;DR",
		"tldr_content":           "Leverage reset first, liquidity expanded next, and structural adoption kept building.",
		"conclusion_title":       "GLOBALITE CONCLUSION",
		"conclusion_content":     "For deeper context on these points, visit globalite.co.\nOur team tracks macro shifts, liquidity, and positioning every week.",
		"cta_url":                "https://globalite.co",
		"cta_label":              "globalite.co",
		"address_line":           "Globalite, Lugano, Piazza dell'Indipendenza 3, CAP 6901",
		"footer_line":            "Globalite Macro Brief - For internal distribution.",
		"header_logo_url":        "brand_orange_bg_transparent@2xSite.svg",
		"footer_logo_url":        "public/logotosite.png",
		"footer_instagram_icon":  "public/instagram.png",
		"footer_x_icon":          "public/x:twitter.png",
		"footer_linkedin_icon":   "public/linkedin.png",
		"instagram_url":          "https://www.instagram.com/globalite.sa/",
		"x_url":                  "https://x.com/globalite_sa",
		"linkedin_url":           "https://www.linkedin.com/company/globalite-sa",
		"image_dir":              ".",
		"image_base_url":         "",
		"auto_image_by_order":    "true",
		"max_extra_images":       "6",
	}
}

// DefaultMetaKeys returns the metadata keys in authoring order, for
// places that materialize the defaults as rows (template workbooks).
func DefaultMetaKeys() []string {
	return []string{
		"eyebrow",
		"main_title",
		"subtitle",
		"block_height",
		"max_supply_btc",
		"circulating_supply_btc",
		"hashrate_eh_s",
		"hashrate_scale_eh_s",
		"snapshot_title",
		"snapshot_intro",
		"snapshot_note",
		"tldr_title",
		"tldr_content",
		"conclusion_title",
		"conclusion_content",
		"cta_url",
		"cta_label",
		"address_line",
		"footer_line",
		"header_logo_url",
		"footer_logo_url",
		"footer_instagram_icon",
		"footer_x_icon",
		"footer_linkedin_icon",
		"instagram_url",
		"x_url",
		"linkedin_url",
		"image_dir",
		"image_base_url",
		"auto_image_by_order",
		"max_extra_images",
	}
}

// DefaultSegments returns the built-in ownership breakdown used when the
// distribution sheet is absent or empty. Amounts are raw BTC figures;
// percents are derived by Normalize.
func DefaultSegments() []Segment {
	return []Segment{
		{Category: "Individuals", AmountBTC: 13_660_000, Color: "rgb(255, 66, 2)"},
		{Category: "Lost Bitcoin", AmountBTC: 1_570_000, Color: "rgb(153, 153, 153)"},
		{Category: "Funds & ETFs", AmountBTC: 1_490_000, Color: "rgb(255, 140, 90)"},
		{Category: "Businesses", AmountBTC: 1_390_000, Color: "rgb(255, 107, 61)"},
		{Category: "To Be Mined", AmountBTC: 1_040_000, Color: "rgb(204, 204, 204)"},
		{Category: "Satoshi / Patoshi", AmountBTC: 968_000, Color: "rgb(255, 200, 150)"},
		{Category: "Governments", AmountBTC: 432_000, Color: "rgb(255, 173, 120)"},
		{Category: "Other Entities", AmountBTC: 421_000, Color: "rgb(255, 227, 180)"},
	}
}

// DefaultDistribution returns the built-in breakdown normalized against
// maxSupply, ready for rendering.
func DefaultDistribution(maxSupply float64) []Segment {
	return Normalize(DefaultSegments(), maxSupply)
}
