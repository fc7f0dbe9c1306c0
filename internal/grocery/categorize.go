package grocery

import (
	"cmp"
	"slices"
	"strings"
)

// Categorize suggests a store section for an item name. Matching is
// case-insensitive: whole-name matches win, then the longest keyword
// contained in the name. ok is false when nothing matches.
func Categorize(itemName string) (category string, ok bool) {
	name := strings.ToLower(strings.TrimSpace(itemName))
	if name == "" {
		return "", false
	}
	if c, found := wholeNames[name]; found {
		return c, true
	}
	for _, k := range keywords {
		if strings.Contains(name, k.word) {
			return k.category, true
		}
	}
	return "", false
}

type section struct {
	name  string
	whole []string
	parts []string
}

// sections is the catalogue behind Categorize, in aisle order.
var sections = []section{
	{
		name: "Produce",
		whole: []string{
			"apples", "bananas", "oranges", "lemons", "limes", "avocados",
			"tomatoes", "potatoes", "onions", "garlic", "lettuce", "kale",
			"broccoli", "carrots", "celery", "cucumbers", "peppers",
			"mushrooms", "corn", "grapes", "peaches", "pears", "cilantro",
			"basil", "parsley", "ginger", "zucchini", "asparagus",
			"green beans", "watermelon", "pineapple", "mango", "radishes",
			"beets", "leeks", "shallots", "rhubarb", "okra", "chard",
		},
		parts: []string{
			"salad mix", "baby spinach", "green onion", "sweet potato",
			"bell pepper", "cherry tomato", "heirloom", "microgreens",
			"romaine", "arugula", "cabbage", "cauliflower", "squash",
			"melon", "berries", "berry", "fruit", "herb", "spinach",
			"apple", "banana", "tomato", "potato", "onion", "carrot",
			"pepper", "lettuce",
		},
	},
	{
		name: "Dairy",
		whole: []string{
			"milk", "eggs", "butter", "cheese", "yogurt", "cream cheese",
			"sour cream", "heavy cream", "half and half", "cottage cheese",
		},
		parts: []string{
			"almond milk", "oat milk", "greek yogurt", "yogurt", "cheese",
			"milk", "butter", "cream", "egg",
		},
	},
	{
		name: "Meat & Seafood",
		whole: []string{
			"chicken", "beef", "pork", "turkey", "bacon", "sausage", "ham",
			"steak", "salmon", "shrimp", "tuna", "fish", "lamb", "crab",
			"tilapia", "hot dogs", "deli meat",
		},
		parts: []string{
			"chicken breast", "chicken thigh", "ground beef",
			"ground turkey", "pork chop", "hot dog", "chicken", "beef",
			"pork", "salmon", "shrimp", "sausage", "bacon",
		},
	},
	{
		name: "Bakery",
		whole: []string{
			"bread", "bagels", "tortillas", "rolls", "buns", "muffins",
			"croissants", "pita",
		},
		parts: []string{
			"sourdough", "whole wheat", "baguette", "bread", "bagel",
			"tortilla", "croissant", "muffin", "bun",
		},
	},
	{
		name: "Pantry",
		whole: []string{
			"rice", "pasta", "flour", "sugar", "salt", "oil", "vinegar",
			"ketchup", "mustard", "mayonnaise", "honey", "jam", "jelly",
			"cereal", "oatmeal", "soup", "broth", "beans", "lentils",
			"nuts", "almonds", "spaghetti", "noodles", "salsa",
		},
		parts: []string{
			"peanut butter", "olive oil", "maple syrup", "hot sauce",
			"soy sauce", "pasta sauce", "tomato sauce", "canned",
			"granola", "cereal", "rice", "pasta", "flour", "spice",
		},
	},
	{
		name:  "Frozen",
		whole: []string{"ice cream", "popsicles"},
		parts: []string{"frozen", "ice cream"},
	},
	{
		name: "Beverages",
		whole: []string{
			"water", "juice", "coffee", "tea", "soda", "beer", "wine",
			"kombucha", "lemonade", "sparkling water", "cider",
		},
		parts: []string{"juice", "coffee", "soda", "sparkling", "kombucha", "wine", "beer"},
	},
	{
		name: "Snacks",
		whole: []string{
			"chips", "crackers", "cookies", "popcorn", "pretzels", "candy",
			"chocolate", "trail mix", "granola bars",
		},
		parts: []string{"chips", "cracker", "cookie", "pretzel", "chocolate", "candy"},
	},
	{
		name: "Household",
		whole: []string{
			"paper towels", "toilet paper", "trash bags", "dish soap",
			"laundry detergent", "sponges", "aluminum foil", "plastic wrap",
			"napkins", "batteries", "light bulbs", "bleach",
		},
		parts: []string{"detergent", "paper towel", "trash bag", "foil", "cleaner"},
	},
	{
		name: "Personal Care",
		whole: []string{
			"shampoo", "conditioner", "soap", "body wash", "toothpaste",
			"toothbrush", "deodorant", "lotion", "sunscreen", "floss",
			"razors", "tissues",
		},
		parts: []string{"shampoo", "toothpaste", "deodorant", "lotion", "soap"},
	},
}

type keyword struct {
	word     string
	category string
}

var (
	wholeNames = map[string]string{}
	keywords   []keyword
)

func init() {
	for _, s := range sections {
		for _, w := range s.whole {
			wholeNames[w] = s.name
		}
		for _, p := range s.parts {
			keywords = append(keywords, keyword{word: p, category: s.name})
		}
	}
	// Longer keywords are more specific: "peanut butter" before "butter".
	slices.SortStableFunc(keywords, func(a, b keyword) int {
		return cmp.Compare(len(b.word), len(a.word))
	})
}
