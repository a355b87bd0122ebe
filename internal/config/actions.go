package config

type ActionsConfig struct {
	Actions []ActionDef `yaml:"actions" json:"actions"`
}

type ActionDef struct {
	Name           string `yaml:"name" json:"name" jsonschema:"pattern=^[A-Z][A-Z0-9_]*$,required"`
	Code           int    `yaml:"code" json:"code" jsonschema:"minimum=0,maximum=255"`
	Kind           string `yaml:"kind" json:"kind" jsonschema:"enum=rest,enum=move,enum=attack,enum=drain,enum=defend,enum=drug"`
	League         int    `yaml:"league" json:"league" jsonschema:"minimum=0"`
	Energy         int    `yaml:"energy" json:"energy,omitempty"`
	EnergyTransfer int    `yaml:"energy_transfer" json:"energy_transfer,omitempty" jsonschema:"minimum=0"`
	Move           int    `yaml:"move" json:"move,omitempty"`
	Distance       int    `yaml:"distance" json:"distance,omitempty" jsonschema:"description=Positive: exact measure. Negative: reach up to |distance|. Zero never engages"`
	Drug           int    `yaml:"drug" json:"drug,omitempty"`
	Note           string `yaml:"note" json:"note,omitempty"`
}
