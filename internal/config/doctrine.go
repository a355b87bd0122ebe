package config

// DoctrineConfig drives the scripted agent: the first rule (by priority)
// whose condition holds decides the action.
type DoctrineConfig struct {
	Name    string    `yaml:"name" json:"name"`
	Default string    `yaml:"default" json:"default" jsonschema:"description=Action played when no rule fires"`
	Rules   []RuleDef `yaml:"rules" json:"rules"`
	Note    string    `yaml:"note" json:"note,omitempty"`
}

type RuleDef struct {
	Name     string `yaml:"name" json:"name"`
	Priority int    `yaml:"priority" json:"priority"`
	When     string `yaml:"when" json:"when" jsonschema:"description=expr-lang boolean expression over Gap/Me/You/League/Tick"`
	Action   string `yaml:"action" json:"action"`
}
