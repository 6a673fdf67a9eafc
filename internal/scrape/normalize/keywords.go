package normalize

// Classification tables are policy knobs tuned against common US/EU
// career boards, not contracts. Order matters where noted.

// departmentRules are applied to the title in order; first hit wins.
var departmentRules = []struct {
	Department string
	Any        []string
}{
	{"Security", []string{"security", "trust & safety"}},
	{"Data & Analytics", []string{"data", "analyst", "analytics", "machine learning", "ml "}},
	{"Engineering", []string{"engineer", "developer", "sre", "devops", "infrastructure", "backend", "frontend", "full stack", "fullstack"}},
	{"Design", []string{"design", "ux", "ui "}},
	{"Product", []string{"product"}},
	{"Sales", []string{"sales", "account executive", "account manager"}},
	{"Marketing", []string{"marketing", "growth", "brand", "communications"}},
	{"Customer Support", []string{"support", "success", "customer experience"}},
	{"People", []string{"people", "recruit", "talent", "human resources"}},
	{"Finance", []string{"finance", "accounting", "payroll"}},
	{"Legal", []string{"legal", "counsel", "compliance"}},
	{"Operations", []string{"operations", "workplace", "office manager"}},
	{"Research", []string{"research", "scientist"}},
}

// seniorityTiers are scanned most-specific first so "Senior Staff
// Engineer" lands on Staff/Principal and "Senior Lead" on Lead.
var seniorityTiers = []struct {
	Markers []string
	Tier    string
}{
	{[]string{"staff", "principal", "distinguished", "fellow"}, "staff"},
	{[]string{"lead", "head of"}, "lead"},
	{[]string{"senior", "sr.", "sr "}, "senior"},
	{[]string{"intern", "entry", "associate", "junior", "jr.", "jr ", "graduate", "new grad"}, "entry"},
}

// regionMarkers mark parenthesized title text as a location rather
// than part of the role name.
var regionMarkers = []string{
	"remote", "hybrid", "onsite", "on-site",
	"usa", "us", "uk", "united states", "united kingdom", "canada",
	"germany", "france", "india", "australia", "singapore", "japan",
	"brazil", "spain", "italy", "netherlands", "ireland",
}

// cityKeywords back the last-resort location scan over title+text.
var cityKeywords = []string{
	"new york", "san francisco", "london", "paris", "tokyo", "berlin",
	"sydney", "toronto", "amsterdam", "madrid", "dublin", "singapore",
	"seattle", "austin", "boston", "chicago", "denver", "atlanta",
	"los angeles", "washington", "bangalore", "bengaluru", "mumbai",
	"hong kong", "são paulo", "sao paulo", "zurich",
}
