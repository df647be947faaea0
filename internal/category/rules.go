// Package category implements the hybrid transaction categorization engine:
// a fixed keyword rule table checked first, with a trainable naive Bayes
// classifier as the statistical fallback for descriptions no rule claims.
package category

import (
	"strings"

	"github.com/ruvan/cardledger/internal/model"
)

// Payment is the reserved category for credit card bill payments. Downstream
// spending analytics must never count these as expenses.
const Payment = "Payment"

// Rule maps one category to its keyword triggers. Matching is a
// case-insensitive substring check against the transaction description.
type Rule struct {
	Category string
	Keywords []string
}

// DefaultRules returns the built-in keyword table. The slice order is a
// deliberate priority: a description matching keywords from two categories
// gets the one listed first.
func DefaultRules() []Rule {
	return []Rule{
		{Category: "Grocery", Keywords: []string{
			"CARGILLS", "KEELLS", "SUPERMARKET", "MARKET", "GROCERY", "FOOD CITY",
			"ARPICO", "LAUGFS", "SPAR", "LAUGHS", "KADA", "BAKERY", "FARM", "STORE",
			"MART", "SUPER CENTER",
		}},
		{Category: "Fuel", Keywords: []string{
			"CEYPETCO", "IOC", "FUEL", "PETROL", "LANKA IOC", "FILLING STATION",
			"GAS STATION", "DIESEL", "SHELL", "PETROLEUM",
		}},
		{Category: "Textile", Keywords: []string{
			"FASHION", "CLOTHING", "TEXTILE", "GARMENT", "FABRIC", "ODEL", "NOLIMIT",
			"COOL PLANET", "DRESS", "SAREE", "BOUTIQUE", "TAILOR", "ACCESSORY", "JEWELRY",
		}},
		{Category: "Dining/Restaurants", Keywords: []string{
			"RESTAURANT", "CAFE", "PIZZA", "BURGER", "DINE", "DINING", "FOOD", "EAT",
			"TAKEOUT", "DELIVERY", "BISTRO", "KITCHEN", "GRILL", "BUFFET", "BAR", "PUB",
			"FAST FOOD", "COFFEE", "TEA", "BAKE",
		}},
		{Category: "Utilities", Keywords: []string{
			"ELECTRICITY", "WATER", "GAS", "INTERNET", "PHONE", "MOBILE", "TELECOM",
			"BILL PAY", "UTILITY", "BROADBAND", "CELL", "SERVICE PROVIDER", "POWER",
			"ENERGY", "CONNECTION", "COMMUNICATION",
		}},
		{Category: "Housing", Keywords: []string{
			"RENT", "MORTGAGE", "PROPERTY", "TAX", "MAINTENANCE", "REPAIR", "HOUSING",
			"APARTMENT", "CONDO", "LEASE", "TENANT", "LANDLORD", "HOME", "REAL ESTATE",
			"HOA", "CLEANING", "PLUMBER", "ELECTRICIAN",
		}},
		{Category: "Healthcare", Keywords: []string{
			"MEDICAL", "HEALTH", "DOCTOR", "HOSPITAL", "PHARMACY", "PRESCRIPTION",
			"CLINIC", "INSURANCE", "DENTAL", "VISION", "THERAPY", "MEDICINE", "LABORATORY",
			"PHYSICIAN", "HEALTHCARE", "WELLNESS",
		}},
		{Category: "Entertainment", Keywords: []string{
			"ENTERTAINMENT", "MOVIE", "THEATRE", "CONCERT", "TICKET", "NETFLIX", "SPOTIFY",
			"DISNEY", "STREAMING", "SUBSCRIPTION", "SHOW", "EVENT", "GAME", "PLAY", "FUN",
			"LEISURE", "RECREATION", "AMUSEMENT", "PARK",
		}},
		{Category: "Travel", Keywords: []string{
			"HOTEL", "FLIGHT", "AIRLINE", "AIRWAYS", "BOOKING", "TRAVEL", "VACATION",
			"HOLIDAY", "TRIP", "TOUR", "RESORT", "LODGE", "AIRBNB", "CAR RENTAL", "TAXI",
			"TRANSPORT", "TOURISM", "AIRPORT",
		}},
		{Category: "Transportation", Keywords: []string{
			"BUS", "TRAIN", "METRO", "SUBWAY", "PUBLIC TRANSIT", "UBER", "LYFT", "RIDESHARE",
			"VEHICLE", "MAINTENANCE", "AUTO", "SERVICE", "OIL CHANGE", "REPAIR", "FARE",
			"TICKET", "COMMUTE", "TRANSPORTATION",
		}},
		{Category: "Shopping", Keywords: []string{
			"RETAIL", "SHOP", "STORE", "MALL", "ONLINE", "E-COMMERCE", "AMAZON", "EBAY",
			"DEPARTMENT", "PURCHASE", "BUY", "CONSUMER", "MERCHANDISE", "PRODUCT", "ITEM",
			"SHOPPING",
		}},
		{Category: "Education", Keywords: []string{
			"TUITION", "SCHOOL", "COLLEGE", "UNIVERSITY", "COURSE", "CLASS", "EDUCATION",
			"STUDENT", "BOOK", "LEARNING", "STUDY", "TRAINING", "WORKSHOP", "SEMINAR",
			"INSTITUTE", "ACADEMY", "TUTORIAL",
		}},
		{Category: "Personal Care", Keywords: []string{
			"SALON", "HAIRCUT", "SPA", "MASSAGE", "BEAUTY", "COSMETIC", "PERSONAL CARE",
			"HYGIENE", "GROOMING", "BARBER", "STYLIST", "NAIL", "GYM", "FITNESS", "EXERCISE",
			"WELLNESS", "SELF-CARE",
		}},
		{Category: "Subscriptions", Keywords: []string{
			"SUBSCRIPTION", "MEMBERSHIP", "MONTHLY", "ANNUAL", "RECURRING", "SERVICE",
			"MAGAZINE", "NEWSPAPER", "SOFTWARE", "APP", "DIGITAL", "ACCESS", "PREMIUM",
			"ACCOUNT", "PLATFORM", "CLOUD",
		}},
		{Category: "Insurance", Keywords: []string{
			"INSURANCE", "POLICY", "PREMIUM", "COVERAGE", "PROTECT", "LIFE", "AUTO",
			"HOME", "RENTER", "HEALTH", "LIABILITY", "CLAIM", "INSURER", "UNDERWRITER",
		}},
		{Category: "Gifts/Donations", Keywords: []string{
			"GIFT", "PRESENT", "DONATION", "CHARITY", "CONTRIBUTE", "FOUNDATION",
			"NONPROFIT", "WEDDING", "BIRTHDAY", "ANNIVERSARY", "HOLIDAY", "FUNDRAISER",
			"SUPPORT", "CAUSE", "ORGANIZATION",
		}},
		{Category: "Financial", Keywords: []string{
			"BANK", "FEE", "INTEREST", "INVESTMENT", "FINANCE", "CREDIT", "DEBIT", "LOAN",
			"MORTGAGE", "PAYMENT", "TRANSACTION", "TRANSFER", "DEPOSIT", "WITHDRAWAL",
			"BALANCE", "ACCOUNT", "MONEY", "CASH", "ATM", "WIRE",
		}},
		{Category: Payment, Keywords: []string{
			"PAYMENT CR", "INTERNET PAYMENT", "BILL PAYMENT", "CREDIT PAYMENT", "ONLINE PAYMENT",
		}},
	}
}

// SpendingCategories returns every category a transaction can carry in
// spending reports: the rule categories except Payment, plus the default.
func SpendingCategories() []string {
	rules := DefaultRules()
	names := make([]string, 0, len(rules))
	for _, r := range rules {
		if r.Category == Payment {
			continue
		}
		names = append(names, r.Category)
	}
	return append(names, model.CategoryOther)
}

// matchRules returns the first rule category whose keyword set matches the
// description, or "" when none do.
func matchRules(rules []Rule, description string) string {
	lower := strings.ToLower(description)
	for _, rule := range rules {
		for _, keyword := range rule.Keywords {
			if strings.Contains(lower, strings.ToLower(keyword)) {
				return rule.Category
			}
		}
	}
	return ""
}
