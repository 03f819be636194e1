package profanity

// fallbackWords covers the worst offenders when the remote list cannot
// be fetched. Deliberately short; the remote list is the source of
// truth.
var fallbackWords = []string{
	"arse",
	"ass",
	"bastard",
	"bitch",
	"bollocks",
	"cock",
	"crap",
	"cunt",
	"damn",
	"dick",
	"fag",
	"fuck",
	"nigga",
	"nigger",
	"piss",
	"prick",
	"pussy",
	"shit",
	"slut",
	"twat",
	"wank",
	"whore",
}
