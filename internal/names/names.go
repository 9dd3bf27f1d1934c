// Package names turns raw game data filenames into human readable ship
// names. Filenames follow a manufacturer-prefixed underscore scheme,
// e.g. "aegs_gladius" or "anvl_hornet_f7c_mk2".
package names

import "strings"

// manufacturers maps the four-letter filename prefix to the brand name.
var manufacturers = map[string]string{
	"aegs": "Aegis",
	"anvl": "Anvil",
	"argo": "Argo",
	"banu": "Banu",
	"cnou": "C.O.",
	"crus": "Crusader",
	"drak": "Drake",
	"espr": "Esperia",
	"gama": "Gatac",
	"krig": "Kruger",
	"misc": "MISC",
	"mrai": "Mirai",
	"orig": "Origin",
	"rsi":  "RSI",
	"tmbl": "Tumbril",
	"vncl": "Vanduul",
	"xian": "Xi'An",
}

// nameFixes maps model tokens whose canonical spelling is not simple
// title case. Tokens not listed here are title-cased.
var nameFixes = map[string]string{
	"avenger":       "Avenger",
	"stalker":       "Stalker",
	"titan":         "Titan",
	"gladius":       "Gladius",
	"eclipse":       "Eclipse",
	"hammerhead":    "Hammerhead",
	"sabre":         "Sabre",
	"vanguard":      "Vanguard",
	"hornet":        "Hornet",
	"arrow":         "Arrow",
	"hawk":          "Hawk",
	"hurricane":     "Hurricane",
	"valkyrie":      "Valkyrie",
	"carrack":       "Carrack",
	"pisces":        "Pisces",
	"gladiator":     "Gladiator",
	"terrapin":      "Terrapin",
	"redeemer":      "Redeemer",
	"mole":          "MOLE",
	"raft":          "RAFT",
	"mpuv":          "MPUV",
	"srv":           "SRV",
	"f7a":           "F7A",
	"f7c":           "F7C",
	"f7cm":          "F7C-M",
	"f7cr":          "F7C-R",
	"f7cs":          "F7C-S",
	"f8":            "F8",
	"f8c":           "F8C",
	"mk1":           "Mk I",
	"mk2":           "Mk II",
	"c8":            "C8",
	"c8r":           "C8R",
	"c8x":           "C8X",
	"a1":            "A1",
	"a2":            "A2",
	"c1":            "C1",
	"c2":            "C2",
	"m2":            "M2",
	"p52":           "P-52",
	"p72":           "P-72",
	"mustang":       "Mustang",
	"aurora":        "Aurora",
	"constellation": "Constellation",
	"freelancer":    "Freelancer",
	"starfarer":     "Starfarer",
	"prospector":    "Prospector",
	"cutlass":       "Cutlass",
	"caterpillar":   "Caterpillar",
	"corsair":       "Corsair",
	"buccaneer":     "Buccaneer",
	"herald":        "Herald",
	"vulture":       "Vulture",
	"defender":      "Defender",
	"prowler":       "Prowler",
	"talon":         "Talon",
	"nox":           "Nox",
	"dragonfly":     "Dragonfly",
	"razor":         "Razor",
	"reliant":       "Reliant",
	"polaris":       "Polaris",
	"idris":         "Idris",
	"javelin":       "Javelin",
	"kraken":        "Kraken",
	"reclaimer":     "Reclaimer",
	"merchantman":   "Merchantman",
	"endeavor":      "Endeavor",
	"genesis":       "Genesis",
	"hull":          "Hull",
	"orion":         "Orion",
	"pioneer":       "Pioneer",
	"nautilus":      "Nautilus",
	"perseus":       "Perseus",
	"liberator":     "Liberator",
}

// FormatShipName renders "aegs_gladius" as "Aegis Gladius". Unknown
// manufacturer prefixes pass through lowercased, unknown model tokens
// are title-cased, and filenames without an underscore are returned
// unchanged.
func FormatShipName(filename string) string {
	parts := strings.Split(strings.ToLower(filename), "_")
	if len(parts) < 2 {
		return filename
	}

	mfr, ok := manufacturers[parts[0]]
	if !ok {
		mfr = parts[0]
	}

	model := make([]string, 0, len(parts)-1)
	for _, p := range parts[1:] {
		if fixed, ok := nameFixes[p]; ok {
			model = append(model, fixed)
			continue
		}
		model = append(model, titleToken(p))
	}

	return mfr + " " + strings.Join(model, " ")
}

func titleToken(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
