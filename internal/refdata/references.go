package refdata

// countryTerritories maps a FIPS country code to the territory codes
// whose stations belong to it. GHCN-Daily station ids start with the
// FIPS code of the territory they sit in, so countries with overseas
// territories span several codes. The table is static reference data;
// resolution order follows the listed order.
var countryTerritories = map[string][]string{
	"AR": {"AR"},
	"AS": {"AS"},
	"AU": {"AU"},
	"BE": {"BE"},
	"BR": {"BR"},
	"CA": {"CA"},
	"CH": {"CH"},
	"DA": {"DA", "GL", "FO"},
	"EI": {"EI"},
	"EZ": {"EZ"},
	"FI": {"FI"},
	"FR": {"FR", "FG", "FP", "GP", "MB", "NC", "RE", "TB", "WF"},
	"GM": {"GM"},
	"GR": {"GR"},
	"IC": {"IC"},
	"IN": {"IN"},
	"IT": {"IT"},
	"JA": {"JA"},
	"KS": {"KS"},
	"MX": {"MX"},
	"NL": {"NL", "AA", "NN", "UC"},
	"NO": {"NO", "SV", "JN"},
	"NZ": {"NZ"},
	"PL": {"PL"},
	"PO": {"PO"},
	"RS": {"RS"},
	"SF": {"SF"},
	"SP": {"SP"},
	"SW": {"SW"},
	"SZ": {"SZ"},
	"TU": {"TU"},
	"UK": {"UK"},
	"US": {"US", "AQ", "CQ", "GQ", "JQ", "LQ", "MQ", "RQ", "VQ", "WQ"},
}
