package classify

// Category labels assigned by the classifier. Every raw object gets exactly
// one, or is dropped.
const (
	CatDam             = "dam"
	CatRetentionBasin  = "retention_basin"
	CatWaterbody       = "waterbody"
	CatWetland         = "wetland"
	CatWaterway        = "waterway"
	CatTreeRow         = "tree_row"
	CatBarrier         = "barrier"
	CatMajorRoad       = "major_road"
	CatRoad            = "road"
	CatRail            = "rail"
	CatPowerLine       = "power_line"
	CatHydroPlant      = "hydro_plant"
	CatSolarPlant      = "solar_plant"
	CatWindPlant       = "wind_plant"
	CatPowerPlant      = "power_plant"
	CatPowerSubstation = "power_substation"
	CatFuelStation     = "fuel_station"
	CatParking         = "parking"
	CatBuilding        = "building"
	CatIndustrial      = "industrial"
	CatCommercial      = "commercial"
	CatResidential     = "residential"
	CatConstruction    = "construction"
	CatCemetery        = "cemetery"
	CatWasteSite       = "waste_site"
	CatParksGreen      = "parks_green"
	CatAgri            = "agri"
	CatManagedForest   = "managed_forest"
	CatNaturalHabitat  = "natural_habitat"
	CatProtected       = "protected"
	CatRestricted      = "restricted"
)

// AreaCategories lists the categories that carry an area sum in the output
// table, in column order.
var AreaCategories = []string{
	CatWaterbody,
	CatWaterway,
	CatWetland,
	CatRetentionBasin,
	CatRoad,
	CatRail,
	CatParking,
	CatBuilding,
	CatResidential,
	CatCommercial,
	CatIndustrial,
	CatConstruction,
	CatCemetery,
	CatParksGreen,
	CatAgri,
	CatManagedForest,
	CatNaturalHabitat,
	CatProtected,
	CatRestricted,
	CatWasteSite,
}

// CountCategories lists the count columns of the output table, in column
// order. These are not one-to-one with classifier categories: a major road
// increments both major_road_count and road_count, a typed power plant both
// its own count and power_plant_count.
var CountCategories = []string{
	CatBuilding,
	CatRoad,
	CatMajorRoad,
	CatRail,
	CatParking,
	CatWaterbody,
	CatWaterway,
	CatWetland,
	CatDam,
	CatBarrier,
	CatTreeRow,
	CatPowerLine,
	CatPowerPlant,
	CatHydroPlant,
	CatSolarPlant,
	CatWindPlant,
	CatPowerSubstation,
	CatFuelStation,
	CatWasteSite,
	"industrial_area",
}

// AreaBucket maps a classifier category to the area column it sums into.
// Empty means the category contributes counts only (point-like structures and
// narrow linear obstacles with no meaningful footprint).
func AreaBucket(category string) string {
	switch category {
	case CatMajorRoad:
		return CatRoad
	case CatDam, CatTreeRow, CatBarrier, CatPowerLine,
		CatPowerPlant, CatHydroPlant, CatSolarPlant, CatWindPlant,
		CatPowerSubstation, CatFuelStation:
		return ""
	default:
		return category
	}
}

// CountBuckets maps a classifier category to the count columns it increments.
func CountBuckets(category string) []string {
	switch category {
	case CatMajorRoad:
		return []string{CatMajorRoad, CatRoad}
	case CatHydroPlant:
		return []string{CatHydroPlant, CatPowerPlant}
	case CatSolarPlant:
		return []string{CatSolarPlant, CatPowerPlant}
	case CatWindPlant:
		return []string{CatWindPlant, CatPowerPlant}
	case CatIndustrial:
		return []string{"industrial_area"}
	case CatBuilding, CatRoad, CatRail, CatParking, CatWaterbody, CatWaterway,
		CatWetland, CatDam, CatBarrier, CatTreeRow, CatPowerLine,
		CatPowerPlant, CatPowerSubstation, CatFuelStation, CatWasteSite:
		return []string{category}
	default:
		return nil
	}
}

// HumanFootprintComponents are the area categories summed into
// human_footprint_area_m2.
var HumanFootprintComponents = []string{
	CatBuilding,
	CatIndustrial,
	CatParksGreen,
	CatWasteSite,
}

// UrbanFootprintExtras are the area categories layered on top of the human
// footprint to form urban_footprint_area_m2. Component categories are not
// mutually exclusive on the ground, so the composite percentages may exceed
// 100; that is accepted, not clamped.
var UrbanFootprintExtras = []string{
	CatResidential,
	CatCommercial,
	CatParking,
	CatRoad,
	CatCemetery,
	CatConstruction,
}
