package gwas

// Dataset is a published collection of GWAS summary statistics, usually
// one publication, grouping one component per analyzed trait or stratum.
type Dataset struct {
	Name        string      `yaml:"name"`
	Description string      `yaml:"description"`
	PMID        uint32      `yaml:"pmid,omitempty"`
	URL         string      `yaml:"url,omitempty"`
	Components  []Component `yaml:"components"`
}

// Component is a single analysis unit inside a dataset: one trait in one
// population/sex stratum, backed by one tabix-indexed file.
type Component struct {
	TraitName     string     `yaml:"trait_name"`
	RawURL        string     `yaml:"raw_url,omitempty"`
	FormattedFile string     `yaml:"formatted_file"`
	Population    Population `yaml:"population,omitempty"`
	Sex           Sex        `yaml:"sex,omitempty"`
	EffectType    EffectType `yaml:"effect_type"`
	NCases        uint32     `yaml:"n_cases,omitempty"`
	NControls     uint32     `yaml:"n_controls,omitempty"`
	N             uint32     `yaml:"n,omitempty"`
}

// SexOrDefault returns the component's sex stratum, defaulting to Both.
func (c *Component) SexOrDefault() Sex {
	if c.Sex == "" {
		return SexBoth
	}
	return c.Sex
}

// PopulationOrDefault returns the component's population, defaulting to EUR.
func (c *Component) PopulationOrDefault() Population {
	if c.Population == "" {
		return PopulationEUR
	}
	return c.Population
}
