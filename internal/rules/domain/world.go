package domain

// Dimension identifies which dimension a world instance represents.
type Dimension uint8

const (
	DimensionOverworld Dimension = iota
	DimensionNether
	DimensionEnd
)

// String returns a stable name for the dimension.
func (d Dimension) String() string {
	switch d {
	case DimensionOverworld:
		return "overworld"
	case DimensionNether:
		return "the_nether"
	case DimensionEnd:
		return "the_end"
	default:
		return "unknown"
	}
}

// Well-known host world type names. Selectors compare world types as raw,
// case-sensitive strings, so unknown names are still valid input.
const (
	WorldTypeDefault     = "default"
	WorldTypeFlat        = "flat"
	WorldTypeLargeBiomes = "largeBiomes"
	WorldTypeAmplified   = "amplified"
	WorldTypeCustomized  = "customized"
	WorldTypeBuffet      = "buffet"
)
