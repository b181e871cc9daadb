// Package types defines the shared data structures for the Emberfall engine.
// This package contains only data definitions and trivial accessors — no
// game logic, no I/O.
package types

// Action identifies one of the fixed turn actions the engine dispatches on.
// The set is closed: adding an action means adding a constant here and a
// case to the engine's dispatch switch.
type Action string

const (
	ActionMove      Action = "move"
	ActionLook      Action = "look"
	ActionAttack    Action = "attack"
	ActionPickup    Action = "pickup"
	ActionUse       Action = "use"
	ActionEquip     Action = "equip"
	ActionInventory Action = "inventory"
	ActionStats     Action = "stats"
	ActionAllocate  Action = "allocate"
	ActionOpen      Action = "open"
	ActionTalk      Action = "talk"
	ActionFlee      Action = "flee"
)

// Intent is the validated structured command the engine resolves.
// It arrives pre-parsed: the engine performs no natural-language work.
type Intent struct {
	Action    Action `json:"action"`
	Target    string `json:"target,omitempty"`
	Direction string `json:"direction,omitempty"`
	Context   string `json:"context,omitempty"`
}

// Tier is a rarity band applied to items and lootboxes.
type Tier string

const (
	TierIron   Tier = "iron"
	TierBronze Tier = "bronze"
	TierSilver Tier = "silver"
	TierGold   Tier = "gold"
)

// ItemType classifies what an item does.
type ItemType string

const (
	ItemWeapon     ItemType = "weapon"
	ItemArmor      ItemType = "armor"
	ItemConsumable ItemType = "consumable"
	ItemLootbox    ItemType = "lootbox"
	ItemMisc       ItemType = "misc"
)

// ItemStats is the stats bag carried by an item.
type ItemStats struct {
	Attack     int `json:"attack,omitempty"`
	Defense    int `json:"defense,omitempty"`
	HealAmount int `json:"healAmount,omitempty"`
}

// ItemInstance is a concrete copy of a catalog item. Instances are copied
// by value between rooms and inventories — after pickup there is no shared
// ownership between a room's item and a player's item.
type ItemInstance struct {
	InstanceID string    `json:"instanceId"`
	ItemID     string    `json:"itemId"`
	Name       string    `json:"name"`
	Type       ItemType  `json:"type"`
	Tier       Tier      `json:"tier"`
	Stats      ItemStats `json:"stats"`
	Slot       string    `json:"slot,omitempty"` // weapon, head, chest or feet
}

// Stats holds the six ability scores.
type Stats struct {
	Strength     int `json:"strength"`
	Dexterity    int `json:"dexterity"`
	Constitution int `json:"constitution"`
	Intelligence int `json:"intelligence"`
	Wisdom       int `json:"wisdom"`
	Charisma     int `json:"charisma"`
}

// StatNames lists the allocatable ability score names in display order.
var StatNames = []string{
	"strength", "dexterity", "constitution",
	"intelligence", "wisdom", "charisma",
}

// Get returns the named ability score. The second return is false for an
// unknown name.
func (s *Stats) Get(name string) (int, bool) {
	switch name {
	case "strength":
		return s.Strength, true
	case "dexterity":
		return s.Dexterity, true
	case "constitution":
		return s.Constitution, true
	case "intelligence":
		return s.Intelligence, true
	case "wisdom":
		return s.Wisdom, true
	case "charisma":
		return s.Charisma, true
	}
	return 0, false
}

// Add increments the named ability score by delta. Returns false for an
// unknown name.
func (s *Stats) Add(name string, delta int) bool {
	switch name {
	case "strength":
		s.Strength += delta
	case "dexterity":
		s.Dexterity += delta
	case "constitution":
		s.Constitution += delta
	case "intelligence":
		s.Intelligence += delta
	case "wisdom":
		s.Wisdom += delta
	case "charisma":
		s.Charisma += delta
	default:
		return false
	}
	return true
}

// Equipment holds the four named equip slots. Each slot carries at most
// one item instance.
type Equipment struct {
	Weapon *ItemInstance `json:"weapon,omitempty"`
	Head   *ItemInstance `json:"head,omitempty"`
	Chest  *ItemInstance `json:"chest,omitempty"`
	Feet   *ItemInstance `json:"feet,omitempty"`
}

// EquipSlots lists the valid equipment slot names.
var EquipSlots = []string{"weapon", "head", "chest", "feet"}

// Slot returns a pointer to the named slot, or nil for an unknown name.
func (e *Equipment) Slot(name string) **ItemInstance {
	switch name {
	case "weapon":
		return &e.Weapon
	case "head":
		return &e.Head
	case "chest":
		return &e.Chest
	case "feet":
		return &e.Feet
	}
	return nil
}

// Statistics tracks monotonically increasing lifetime counters.
type Statistics struct {
	Kills           int `json:"kills"`
	LootboxesOpened int `json:"lootboxesOpened"`
}

// PlayerSchemaVersion is the current player document schema version.
// Documents below this version are migrated once at load time.
const PlayerSchemaVersion = 2

// Player is the aggregate root for one human participant. Created once at
// onboarding, mutated by every turn that changes state, never deleted —
// death is a terminal flag, not removal.
type Player struct {
	ID                  string         `json:"id"`
	Name                string         `json:"name"`
	Level               int            `json:"level"`
	XP                  int            `json:"xp"`
	Stats               Stats          `json:"stats"`
	Skills              map[string]int `json:"skills"`
	HP                  int            `json:"hp"`
	MaxHP               int            `json:"maxHp"`
	Location            string         `json:"location"`
	Inventory           []ItemInstance `json:"inventory"`
	Equipment           Equipment      `json:"equipment"`
	Explored            []string       `json:"explored"`
	Statistics          Statistics     `json:"statistics"`
	Alive               bool           `json:"alive"`
	StatPointsAvailable int            `json:"statPointsAvailable"`
	EventLog            []Event        `json:"eventLog,omitempty"`
	SchemaVersion       int            `json:"schemaVersion"`
}

// HasExplored reports whether the player has visited the room.
func (p *Player) HasExplored(roomID string) bool {
	for _, id := range p.Explored {
		if id == roomID {
			return true
		}
	}
	return false
}

// MarkExplored records a visited room. Idempotent.
func (p *Player) MarkExplored(roomID string) {
	if !p.HasExplored(roomID) {
		p.Explored = append(p.Explored, roomID)
	}
}

// Directions lists the six directional connections a room may have.
var Directions = []string{"north", "south", "east", "west", "up", "down"}

// Room is a static world graph vertex with two dynamic lists: present
// entity ids and present items. Rooms are shared mutable state — players
// in the same room observe each other's removals.
type Room struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Zone        string            `json:"zone"`
	HazardLevel int               `json:"hazardLevel"`
	Description string            `json:"description"`
	Exits       map[string]string `json:"exits"` // direction → room id
	Entities    []string          `json:"entities"`
	Items       []ItemInstance    `json:"items"`
}

// RemoveEntity deletes an entity id from the room's presence list.
func (r *Room) RemoveEntity(id string) {
	for i, e := range r.Entities {
		if e == id {
			r.Entities = append(r.Entities[:i], r.Entities[i+1:]...)
			return
		}
	}
}

// passiveClasses are entity class tags exempt from aggression.
var passiveClasses = map[string]bool{
	"merchant": true,
	"villager": true,
	"guide":    true,
}

// Entity is a mob or NPC. Entities persist death (hp=0) as a document;
// non-respawning dead entities are removed from their room's presence
// list permanently.
type Entity struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	HP        int      `json:"hp"`
	MaxHP     int      `json:"maxHp"`
	Attack    int      `json:"attack"`
	Defense   int      `json:"defense"`
	XPReward  int      `json:"xpReward"`
	LootTable string   `json:"lootTable,omitempty"`
	Respawns  bool     `json:"respawns"`
	Class     string   `json:"class,omitempty"`
	Dialogue  []string `json:"dialogue,omitempty"`
}

// Hostile reports whether the entity participates in aggression.
// Passive classes (merchants and the like) never attack.
func (e *Entity) Hostile() bool {
	return !passiveClasses[e.Class]
}

// Alive reports whether the entity has hit points remaining.
func (e *Entity) Alive() bool {
	return e.HP > 0
}

// LootEntry is one weighted row of a loot table.
type LootEntry struct {
	ItemID string `json:"itemId"`
	Weight int    `json:"weight"`
}

// LootTable is a named weighted list of item drops, referenced by entity
// loot table id or lootbox tier.
type LootTable struct {
	ID      string      `json:"id"`
	Entries []LootEntry `json:"entries"`
}
