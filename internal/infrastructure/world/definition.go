package world

// Definition is the YAML world document a new game starts from
type Definition struct {
	Name      string               `yaml:"name" validate:"required"`
	Rules     RulesDefinition      `yaml:"rules"`
	Ship      ShipDefinition       `yaml:"ship" validate:"required"`
	Nodes     []NodeDefinition     `yaml:"nodes" validate:"required,min=1,dive"`
	Edges     []EdgeDefinition     `yaml:"edges" validate:"dive"`
	Buildings []BuildingDefinition `yaml:"buildings" validate:"required,min=1,dive"`
}

// RulesDefinition overrides the default rules. Omitted fields keep their
// defaults; pointers tell an explicit zero from an omission.
type RulesDefinition struct {
	FoodPerCrew       *int           `yaml:"food_per_crew" validate:"omitempty,min=0"`
	StarvationLimit   *int           `yaml:"starvation_limit" validate:"omitempty,min=1"`
	RocketsPerLanding *int           `yaml:"rockets_per_landing" validate:"omitempty,min=0"`
	RestartThreshold  map[string]int `yaml:"restart_threshold" validate:"omitempty,dive,keys,resource,endkeys,min=0"`
}

type ShipDefinition struct {
	Name     string         `yaml:"name" validate:"required"`
	Crew     *int           `yaml:"crew" validate:"omitempty,min=0"`
	Location string         `yaml:"location" validate:"required"`
	Capacity int            `yaml:"capacity" validate:"min=0"`
	Stock    map[string]int `yaml:"stock" validate:"omitempty,dive,keys,resource,endkeys,min=0"`
	Caps     map[string]int `yaml:"caps" validate:"omitempty,dive,keys,resource,endkeys,min=0"`
}

type NodeDefinition struct {
	ID       string         `yaml:"id" validate:"required,nodeid"`
	Name     string         `yaml:"name"`
	Kind     string         `yaml:"kind" validate:"required,hostkind"`
	Capacity int            `yaml:"capacity" validate:"min=0"`
	Stock    map[string]int `yaml:"stock" validate:"omitempty,dive,keys,resource,endkeys,min=0"`
	Caps     map[string]int `yaml:"caps" validate:"omitempty,dive,keys,resource,endkeys,min=0"`
}

// EdgeDefinition is a directed edge unless Bidirectional is set, in which
// case the reverse edge gets the same turn count and cost
type EdgeDefinition struct {
	From          string         `yaml:"from" validate:"required"`
	To            string         `yaml:"to" validate:"required,nefield=From"`
	Turns         int            `yaml:"turns" validate:"required,min=1"`
	Cost          map[string]int `yaml:"cost" validate:"omitempty,dive,keys,resource,endkeys,min=0"`
	Bidirectional bool           `yaml:"bidirectional"`
}

type BuildingDefinition struct {
	Kind        string                        `yaml:"kind" validate:"required"`
	Name        string                        `yaml:"name"`
	Description string                        `yaml:"description"`
	Cost        map[string]int                `yaml:"cost" validate:"omitempty,dive,keys,resource,endkeys,min=0"`
	Lifetime    int                           `yaml:"lifetime" validate:"min=0"`
	Placement   string                        `yaml:"placement" validate:"required,placement"`
	Effects     []EffectDefinition            `yaml:"effects" validate:"dive"`
	HostEffects map[string][]EffectDefinition `yaml:"host_effects" validate:"omitempty,dive,dive"`
}

type EffectDefinition struct {
	Resource string `yaml:"resource" validate:"required,resource"`
	Amount   int    `yaml:"amount" validate:"required"`
	Period   int    `yaml:"period" validate:"omitempty,min=1"`
}
