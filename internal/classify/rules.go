package classify

import "strings"

// Rule is one (predicate, category) pair. Rules are evaluated in slice order
// and the first match wins; predicates overlap, so the order is semantically
// load-bearing and must never be replaced by keyed dispatch.
type Rule struct {
	Category string
	// WidthM is the assumed corridor width for line geometries, used to
	// estimate an area for categories that have no native polygon footprint.
	// Zero means line geometries of this category get no estimated area.
	WidthM float64
	Match  func(tags map[string]string) bool
}

func has(tags map[string]string, key string) bool {
	v, ok := tags[key]
	return ok && v != "" && v != "no"
}

func is(tags map[string]string, key string, values ...string) bool {
	v, ok := tags[key]
	if !ok {
		return false
	}
	for _, want := range values {
		if v == want {
			return true
		}
	}
	return false
}

// DefaultRules returns the production rule order. Water barriers come before
// generic waterways and tree rows before generic barriers; re-ordering
// silently changes classification results for multiply-matched objects.
func DefaultRules() []Rule {
	return []Rule{
		{Category: CatDam, Match: func(t map[string]string) bool {
			return is(t, "waterway", "dam", "weir") || is(t, "barrier", "dam")
		}},
		{Category: CatRetentionBasin, Match: func(t map[string]string) bool {
			return has(t, "basin") || is(t, "landuse", "basin", "reservoir")
		}},
		{Category: CatWaterbody, Match: func(t map[string]string) bool {
			return is(t, "natural", "water") || has(t, "water")
		}},
		{Category: CatWetland, Match: func(t map[string]string) bool {
			return is(t, "natural", "wetland")
		}},
		{Category: CatWaterway, WidthM: 6, Match: func(t map[string]string) bool {
			return is(t, "waterway", "river", "stream", "canal", "drain", "ditch")
		}},
		{Category: CatTreeRow, WidthM: 4, Match: func(t map[string]string) bool {
			return is(t, "natural", "tree_row")
		}},
		{Category: CatBarrier, WidthM: 1, Match: func(t map[string]string) bool {
			return has(t, "barrier")
		}},
		{Category: CatMajorRoad, WidthM: 12, Match: func(t map[string]string) bool {
			return is(t, "highway",
				"motorway", "trunk", "primary", "secondary",
				"motorway_link", "trunk_link", "primary_link", "secondary_link")
		}},
		{Category: CatRoad, WidthM: 6, Match: func(t map[string]string) bool {
			return has(t, "highway")
		}},
		{Category: CatRail, WidthM: 5, Match: func(t map[string]string) bool {
			return is(t, "railway", "rail", "light_rail", "subway", "tram", "narrow_gauge")
		}},
		{Category: CatPowerLine, WidthM: 3, Match: func(t map[string]string) bool {
			return is(t, "power", "line", "minor_line")
		}},
		{Category: CatHydroPlant, Match: func(t map[string]string) bool {
			return is(t, "power", "plant") && plantSource(t) == "hydro"
		}},
		{Category: CatSolarPlant, Match: func(t map[string]string) bool {
			return is(t, "power", "plant") && plantSource(t) == "solar"
		}},
		{Category: CatWindPlant, Match: func(t map[string]string) bool {
			return is(t, "power", "plant") && plantSource(t) == "wind"
		}},
		{Category: CatPowerPlant, Match: func(t map[string]string) bool {
			return is(t, "power", "plant", "generator")
		}},
		{Category: CatPowerSubstation, Match: func(t map[string]string) bool {
			return is(t, "power", "substation")
		}},
		{Category: CatFuelStation, Match: func(t map[string]string) bool {
			return is(t, "amenity", "fuel")
		}},
		{Category: CatParking, Match: func(t map[string]string) bool {
			return is(t, "amenity", "parking")
		}},
		{Category: CatBuilding, Match: func(t map[string]string) bool {
			return has(t, "building")
		}},
		{Category: CatIndustrial, Match: func(t map[string]string) bool {
			return is(t, "landuse", "industrial")
		}},
		{Category: CatCommercial, Match: func(t map[string]string) bool {
			return is(t, "landuse", "commercial", "retail")
		}},
		{Category: CatResidential, Match: func(t map[string]string) bool {
			return is(t, "landuse", "residential")
		}},
		{Category: CatConstruction, Match: func(t map[string]string) bool {
			return is(t, "landuse", "construction")
		}},
		{Category: CatCemetery, Match: func(t map[string]string) bool {
			return is(t, "landuse", "cemetery") || is(t, "amenity", "grave_yard")
		}},
		{Category: CatWasteSite, Match: func(t map[string]string) bool {
			return is(t, "landuse", "landfill") ||
				is(t, "amenity", "waste_transfer_station", "waste_disposal", "recycling")
		}},
		{Category: CatParksGreen, Match: func(t map[string]string) bool {
			return is(t, "leisure", "park", "garden", "pitch", "playground") ||
				is(t, "landuse", "grass", "recreation_ground", "village_green")
		}},
		{Category: CatAgri, Match: func(t map[string]string) bool {
			return is(t, "landuse", "farmland", "farmyard", "orchard", "vineyard", "meadow")
		}},
		{Category: CatManagedForest, Match: func(t map[string]string) bool {
			return is(t, "landuse", "forest")
		}},
		{Category: CatNaturalHabitat, Match: func(t map[string]string) bool {
			return is(t, "natural", "wood", "scrub", "heath", "grassland", "moor")
		}},
		{Category: CatProtected, Match: func(t map[string]string) bool {
			return is(t, "boundary", "protected_area", "national_park") ||
				is(t, "leisure", "nature_reserve")
		}},
		{Category: CatRestricted, Match: func(t map[string]string) bool {
			return is(t, "landuse", "military") || has(t, "military")
		}},
	}
}

// plantSource normalizes the plant:source tag family.
func plantSource(tags map[string]string) string {
	for _, key := range []string{"plant:source", "generator:source"} {
		if v, ok := tags[key]; ok {
			return strings.ToLower(v)
		}
	}
	return ""
}
