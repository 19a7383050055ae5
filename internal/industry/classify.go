// Package industry tags news articles with industry categories using
// bilingual (English/Chinese) keyword buckets. Classification is
// non-exclusive: a fintech story is both Tech and Finance.
package industry

import "strings"

// Category is an industry classification tag.
type Category string

const (
	Tech          Category = "Tech"
	Finance       Category = "Finance"
	Healthcare    Category = "Healthcare"
	Energy        Category = "Energy"
	Consumer      Category = "Consumer"
	RealEstate    Category = "Real Estate"
	Manufacturing Category = "Manufacturing"
	Telecom       Category = "Telecom"

	// General is the fallback when no keyword bucket matches.
	General Category = "General"
)

// AllCategories returns the keyword-backed categories in canonical order.
func AllCategories() []Category {
	return []Category{Tech, Finance, Healthcare, Energy, Consumer, RealEstate, Manufacturing, Telecom}
}

// categoryKeywords maps each category to its bilingual keyword bucket.
// Matching is plain substring containment on lowercased text, no
// tokenization. Short tokens like "ai" can false-positive inside longer
// words; that looseness is intentional, favoring recall on terse headlines.
var categoryKeywords = map[Category][]string{
	Tech: {
		"tech", "software", "internet", "cloud", "semiconductor", "chip",
		"ai", "artificial intelligence", "e-commerce", "gaming", "app",
		"科技", "互联网", "软件", "芯片", "半导体", "人工智能", "电商", "游戏",
	},
	Finance: {
		"bank", "banking", "insurance", "securities", "fund", "fintech",
		"brokerage", "asset management", "lending", "payment",
		"银行", "保险", "证券", "基金", "金融", "支付", "理财",
	},
	Healthcare: {
		"pharma", "pharmaceutical", "biotech", "hospital", "medical",
		"drug", "vaccine", "healthcare", "clinical",
		"医药", "医疗", "生物", "疫苗", "制药", "医院",
	},
	Energy: {
		"oil", "gas", "energy", "coal", "solar", "renewable", "battery",
		"petroleum", "power plant", "electricity",
		"石油", "天然气", "能源", "煤炭", "光伏", "电池", "电力", "新能源",
	},
	Consumer: {
		"retail", "consumer", "food", "beverage", "apparel", "luxury",
		"restaurant", "supermarket", "brand",
		"零售", "消费", "食品", "饮料", "服装", "奢侈品", "餐饮",
	},
	RealEstate: {
		"property", "real estate", "developer", "housing", "reit",
		"land", "mortgage", "construction",
		"房地产", "地产", "楼市", "物业", "房价", "建筑",
	},
	Manufacturing: {
		"manufacturing", "factory", "industrial", "automobile", "auto",
		"ev", "machinery", "steel", "shipbuilding",
		"制造", "工厂", "工业", "汽车", "机械", "钢铁", "造船",
	},
	Telecom: {
		"telecom", "5g", "mobile network", "broadband", "carrier",
		"wireless", "operator",
		"电信", "通信", "运营商", "宽带",
	},
}

// Classify tags an article by its title and body text. The result is never
// empty: articles matching no bucket are tagged ["General"].
func Classify(title, body string) []string {
	text := strings.ToLower(title + " " + body)

	var matched []string
	for _, cat := range AllCategories() {
		for _, kw := range categoryKeywords[cat] {
			if strings.Contains(text, kw) {
				matched = append(matched, string(cat))
				break
			}
		}
	}

	if len(matched) == 0 {
		return []string{string(General)}
	}
	return matched
}

// Keywords returns the keyword bucket for a category. Used by the API layer
// to expose the taxonomy.
func Keywords(cat Category) []string {
	kws := categoryKeywords[cat]
	out := make([]string, len(kws))
	copy(out, kws)
	return out
}
