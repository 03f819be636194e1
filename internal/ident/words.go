package ident

// wordList feeds game-id generation. All entries are lowercase ASCII words so
// generated ids always satisfy the game-id format check.
var wordList = []string{
	"absent", "acorn", "amber", "anchor", "apple", "arrow", "aspen", "atlas",
	"autumn", "badge", "bamboo", "basil", "beacon", "berry", "birch", "bishop",
	"blanket", "breeze", "bridge", "bronze", "brook", "butter", "cabin", "candle",
	"canyon", "carbon", "castle", "cedar", "cherry", "circle", "citrus", "clover",
	"cobalt", "comet", "copper", "coral", "cotton", "cricket", "crystal", "curtain",
	"dawn", "delta", "denim", "desert", "drift", "eagle", "early", "echo",
	"ember", "engine", "evening", "falcon", "feather", "fern", "fiddle", "flint",
	"forest", "fossil", "frost", "garden", "garnet", "ginger", "glacier", "granite",
	"grape", "gravel", "grove", "harbor", "harvest", "hazel", "heron", "hickory",
	"hollow", "honey", "horizon", "indigo", "into", "iron", "island", "ivory",
	"jade", "jasper", "juniper", "kettle", "lagoon", "lantern", "lark", "lemon",
	"lilac", "linen", "lunar", "magnet", "mantle", "maple", "marble", "meadow",
	"mellow", "midnight", "mineral", "mist", "morning", "mountain", "nectar", "nickel",
	"north", "nutmeg", "oasis", "ocean", "olive", "onyx", "orbit", "orchard",
	"orient", "otter", "oyster", "palm", "paper", "pearl", "pebble", "pepper",
	"pine", "plum", "pocket", "polar", "pollen", "poplar", "prairie", "quartz",
	"quiet", "raven", "ridge", "river", "robin", "rustic", "saffron", "sage",
	"salt", "sandal", "sapphire", "scarlet", "shore", "silver", "sleet", "slate",
	"smoke", "solar", "sparrow", "spice", "spruce", "stone", "storm", "summit",
	"sunset", "swift", "tangerine", "thicket", "thistle", "tiger", "timber", "topaz",
	"topic", "trail", "tulip", "tuna", "tundra", "turnip", "twilight", "umber",
	"valley", "velvet", "violet", "walnut", "waterfall", "willow", "winter", "wren",
	"yarrow", "yellow", "zephyr", "zinc",
}
