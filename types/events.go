package types

// EventType tags one record in the ordered output log of a turn. The tag
// set and the fields populated for each tag are a compatibility surface:
// downstream narration binds to them verbatim.
type EventType string

const (
	EventError         EventType = "error"
	EventPlayerMoved   EventType = "player_moved"
	EventRoomLook      EventType = "room_look"
	EventPlayerAttack  EventType = "player_attack"
	EventEntityAttack  EventType = "entity_attack"
	EventEntityDeath   EventType = "entity_death"
	EventPlayerDeath   EventType = "player_death"
	EventXPGained      EventType = "xp_gained"
	EventLevelUp       EventType = "level_up"
	EventSkillCheck    EventType = "skill_check"
	EventSkillLevelUp  EventType = "skill_level_up"
	EventHazardDamage  EventType = "hazard_damage"
	EventItemSpawned   EventType = "item_spawned"
	EventItemPickup    EventType = "item_pickup"
	EventItemUsed      EventType = "item_used"
	EventItemEquipped  EventType = "item_equipped"
	EventLootDropped   EventType = "loot_dropped"
	EventLootboxOpened EventType = "lootbox_opened"
	EventInventory     EventType = "inventory"
	EventPlayerStats   EventType = "player_stats"
	EventStatAllocated EventType = "stat_allocated"
	EventNPCTalk       EventType = "npc_talk"
	EventFleeSuccess   EventType = "flee_success"
	EventFleeFailure   EventType = "flee_failure"
)

// EntityRef is a snapshot of an entity as seen in a room.
type EntityRef struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	HP    int    `json:"hp"`
	MaxHP int    `json:"maxHp"`
}

// Event is one tagged record in a turn's output. Only the fields relevant
// to the tag are populated; everything else is omitted from the encoding.
type Event struct {
	Type EventType `json:"type"`

	// Error and dialogue text.
	Message string `json:"message,omitempty"`

	// Room context.
	RoomID      string      `json:"roomId,omitempty"`
	RoomName    string      `json:"roomName,omitempty"`
	Description string      `json:"description,omitempty"`
	Direction   string      `json:"direction,omitempty"`
	Exits       []string    `json:"exits,omitempty"`
	Entities    []EntityRef `json:"entities,omitempty"`

	// Combat and hazards.
	TargetID   string `json:"targetId,omitempty"`
	TargetName string `json:"targetName,omitempty"`
	Damage     int    `json:"damage,omitempty"`
	HP         int    `json:"hp,omitempty"`
	MaxHP      int    `json:"maxHp,omitempty"`

	// Progression.
	XP         int `json:"xp,omitempty"`
	Level      int `json:"level,omitempty"`
	StatPoints int `json:"statPoints,omitempty"`

	// Skill checks.
	Skill      string `json:"skill,omitempty"`
	SkillLevel int    `json:"skillLevel,omitempty"`
	Roll       int    `json:"roll,omitempty"`
	Threshold  int    `json:"threshold,omitempty"`
	Success    bool   `json:"success,omitempty"`

	// Items.
	Item     *ItemInstance  `json:"item,omitempty"`
	Items    []ItemInstance `json:"items,omitempty"`
	Healed   int            `json:"healed,omitempty"`
	Capacity int            `json:"capacity,omitempty"`
	Slot     string         `json:"slot,omitempty"`

	// Stat snapshots and allocation.
	Stat   string         `json:"stat,omitempty"`
	Value  int            `json:"value,omitempty"`
	Stats  *Stats         `json:"stats,omitempty"`
	Skills map[string]int `json:"skills,omitempty"`
}

// ErrorEvent builds the single error event used for every terminal
// precondition failure.
func ErrorEvent(message string) Event {
	return Event{Type: EventError, Message: message}
}
