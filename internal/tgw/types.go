package tgw

// header carries the common "format"/"type" keys every TGW file begins
// with, enough to dispatch to the right decoder without assuming anything
// about the rest of the file.
type header struct {
	Format string `toml:"format"`
	Type   string `toml:"type"`
}

// FileInfo is the result of a shallow scan of a TGW file: its declared
// format and the kind of resource it holds.
type FileInfo struct {
	Format string
	Type   string
}

type tomlConstraint struct {
	Clock string `toml:"clock"`
	Op    string `toml:"op"`
	Value int    `toml:"value"`
}

type tomlTransition struct {
	Source           string           `toml:"source"`
	Symbol           string           `toml:"symbol"`
	Target           string           `toml:"target"`
	ClockConstraints []tomlConstraint `toml:"clock_constraints"`
	ClockResets      []string         `toml:"clock_resets"`
}

// topLevelPlant is a "PLANT" file: an explicit timed automaton.
type topLevelPlant struct {
	Format          string           `toml:"format"`
	Type            string           `toml:"type"`
	Locations       []string         `toml:"locations"`
	Alphabet        []string         `toml:"alphabet"`
	InitialLocation string           `toml:"initial_location"`
	FinalLocations  []string         `toml:"final_locations"`
	Clocks          []string         `toml:"clocks"`
	Transitions     []tomlTransition `toml:"transitions"`
}

// topLevelPlantProduct is a "PLANT_PRODUCT" file: a synchronized product
// over component PLANT (or further PLANT_PRODUCT/MANIFEST) files.
type topLevelPlantProduct struct {
	Format              string   `toml:"format"`
	Type                string   `toml:"type"`
	Components          []string `toml:"components"`
	SynchronizedActions []string `toml:"synchronized_actions"`
}

// topLevelManifest is a "MANIFEST" file: a list of other TGW files to bring
// together into one bundle. For plant loading, the files it lists are
// combined the same way a PLANT_PRODUCT's components are.
type topLevelManifest struct {
	Format              string   `toml:"format"`
	Type                string   `toml:"type"`
	Files               []string `toml:"files"`
	SynchronizedActions []string `toml:"synchronized_actions"`
}

type tomlEndpoint struct {
	Value     int    `toml:"value"`
	BoundType string `toml:"bound_type"`
}

type tomlInterval struct {
	Lower *tomlEndpoint `toml:"lower"`
	Upper *tomlEndpoint `toml:"upper"`
}

// tomlFormula is one node of a "SPECIFICATION" file's recursive MTL formula
// tree. Which of Value/Symbol/Operand/Left/Right/Interval is meaningful
// depends on Kind.
type tomlFormula struct {
	Kind     string       `toml:"kind"`
	Value    bool         `toml:"value"`
	Symbol   string       `toml:"symbol"`
	Operand  *tomlFormula `toml:"operand"`
	Left     *tomlFormula `toml:"left"`
	Right    *tomlFormula `toml:"right"`
	Interval *tomlInterval `toml:"interval"`
}

// topLevelSpecification is a "SPECIFICATION" file: the alphabet the
// formula's atoms are interpreted over, plus the formula itself.
type topLevelSpecification struct {
	Format   string      `toml:"format"`
	Type     string      `toml:"type"`
	Alphabet []string    `toml:"alphabet"`
	Formula  tomlFormula `toml:"formula"`
}
