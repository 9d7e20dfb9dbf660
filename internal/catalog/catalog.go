package catalog

// LocationCard describes one playable sphere location. The engine reads only
// Stage, the part id sets and Effects; names and flavor belong to the client.
type LocationCard struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Stage           int      `json:"stage"`
	CompulsoryParts []string `json:"compulsoryParts"`
	OptionalParts   []string `json:"optionalParts"`
	Effects         []Effect `json:"effects"`
}

// PartDef describes one golem part (faculty) a seat can pick for a chapter.
type PartDef struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Effects []Effect `json:"effects"`
}

// Catalog is the immutable content lookup. Built once at startup; never
// mutated afterwards.
type Catalog struct {
	locations []LocationCard
	byID      map[string]*LocationCard
	partList  []PartDef
	parts     map[string]*PartDef
}

// New builds a catalog from explicit content. Location order is preserved for
// option listings.
func New(locations []LocationCard, parts []PartDef) *Catalog {
	c := &Catalog{
		locations: locations,
		byID:      make(map[string]*LocationCard, len(locations)),
		parts:     make(map[string]*PartDef, len(parts)),
	}
	for i := range c.locations {
		c.byID[c.locations[i].ID] = &c.locations[i]
	}
	c.partList = make([]PartDef, len(parts))
	copy(c.partList, parts)
	for i := range c.partList {
		c.parts[c.partList[i].ID] = &c.partList[i]
	}
	return c
}

// LocationsForStage returns the ordered locations declared for a stage.
func (c *Catalog) LocationsForStage(stage int) []LocationCard {
	out := []LocationCard{}
	for _, l := range c.locations {
		if l.Stage == stage {
			out = append(out, l)
		}
	}
	return out
}

// AllLocations returns every location in declaration order.
func (c *Catalog) AllLocations() []LocationCard {
	out := make([]LocationCard, len(c.locations))
	copy(out, c.locations)
	return out
}

// LocationByID looks up a location, nil if unknown.
func (c *Catalog) LocationByID(id string) *LocationCard { return c.byID[id] }

// AllParts returns every part in declaration order.
func (c *Catalog) AllParts() []PartDef {
	out := make([]PartDef, len(c.partList))
	copy(out, c.partList)
	return out
}

// PartByID looks up a part, nil if unknown.
func (c *Catalog) PartByID(id string) *PartDef { return c.parts[id] }

// MaxStage returns the highest stage any location declares.
func (c *Catalog) MaxStage() int {
	max := 0
	for _, l := range c.locations {
		if l.Stage > max {
			max = l.Stage
		}
	}
	return max
}
