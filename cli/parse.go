package cli

import (
	"strings"

	"github.com/nathoo/emberfall/types"
)

var directionExpansions = map[string]string{
	"n": "north",
	"s": "south",
	"e": "east",
	"w": "west",
	"u": "up",
	"d": "down",
}

// Full direction names that are standalone shortcuts for "go <dir>".
var directionNames = map[string]bool{
	"north": true, "south": true, "east": true, "west": true,
	"up": true, "down": true,
}

var verbAliases = map[string]string{
	// Look
	"l":       "look",
	"examine": "look",

	// Movement
	"go":     "move",
	"walk":   "move",
	"run":    "move",
	"head":   "move",
	"travel": "move",

	// Combat
	"hit":    "attack",
	"fight":  "attack",
	"strike": "attack",
	"kill":   "attack",
	"punch":  "attack",

	// Items
	"take":  "pickup",
	"get":   "pickup",
	"grab":  "pickup",
	"drink": "use",
	"eat":   "use",
	"quaff": "use",
	"wield": "equip",
	"wear":  "equip",
	"don":   "equip",

	// Info
	"i":     "inventory",
	"inv":   "inventory",
	"score": "stats",
	"sheet": "stats",

	// Progression
	"assign": "allocate",
	"spend":  "allocate",

	// Lootboxes
	"unbox": "open",

	// Dialogue
	"speak": "talk",
	"chat":  "talk",
	"ask":   "talk",

	// Flee
	"escape":  "flee",
	"retreat": "flee",
}

var articles = map[string]bool{
	"the": true, "a": true, "an": true,
}

// Parse converts a raw command line into an Intent for the engine's
// closed action set. Unknown verbs pass through unchanged; the engine
// rejects them with an error event.
func Parse(input string) types.Intent {
	input = strings.TrimSpace(input)
	if input == "" {
		return types.Intent{}
	}

	words := strings.Fields(strings.ToLower(input))

	// Direction shortcut: bare "n", "south", etc. means move that way.
	if len(words) == 1 {
		if dir, ok := directionExpansions[words[0]]; ok {
			return types.Intent{Action: types.ActionMove, Direction: dir}
		}
		if directionNames[words[0]] {
			return types.Intent{Action: types.ActionMove, Direction: words[0]}
		}
	}

	words = expandMultiWordVerbs(words)
	if alias, ok := verbAliases[words[0]]; ok {
		words[0] = alias
	}

	verb := words[0]
	rest := stripArticles(words[1:])
	target := strings.Join(rest, " ")

	if verb == "move" {
		if dir, ok := directionExpansions[target]; ok {
			target = dir
		}
		return types.Intent{Action: types.ActionMove, Direction: target}
	}

	return types.Intent{Action: types.Action(verb), Target: target}
}

// expandMultiWordVerbs handles "pick up", "talk to", "put on" and friends.
func expandMultiWordVerbs(words []string) []string {
	if len(words) < 2 {
		return words
	}

	switch words[0] {
	case "pick":
		if words[1] == "up" {
			return append([]string{"pickup"}, words[2:]...)
		}
	case "talk", "speak", "chat":
		if words[1] == "to" || words[1] == "with" {
			return append([]string{"talk"}, words[2:]...)
		}
	case "put":
		if words[1] == "on" {
			return append([]string{"equip"}, words[2:]...)
		}
	case "look":
		if words[1] == "at" {
			return append([]string{"look"}, words[2:]...)
		}
	case "run":
		if words[1] == "away" {
			return append([]string{"flee"}, words[2:]...)
		}
	}

	return words
}

// stripArticles removes "the", "a", "an" from the word list.
func stripArticles(words []string) []string {
	result := make([]string, 0, len(words))
	for _, w := range words {
		if !articles[w] {
			result = append(result, w)
		}
	}
	return result
}
