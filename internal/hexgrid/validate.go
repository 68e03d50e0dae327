package hexgrid

// RejectReason classifies why a coordinate was rejected. Rejection is a data
// condition, not an error: rejected records are dropped from all downstream
// stages and reported only in the partition diagnostics.
type RejectReason string

const (
	RejectNone          RejectReason = ""
	RejectNullCoord     RejectReason = "null_coordinate"
	RejectLatOutOfRange RejectReason = "latitude_out_of_range"
	RejectLonOutOfRange RejectReason = "longitude_out_of_range"
	RejectZeroZero      RejectReason = "zero_zero_sentinel"
)

// ValidateCoordinate checks a record coordinate before indexing. lat and lon
// are pointers because staging columns are nullable. Exactly (0, 0) is
// treated as a placeholder, not a real location.
func ValidateCoordinate(lat, lon *float64) (RejectReason, bool) {
	if lat == nil || lon == nil {
		return RejectNullCoord, false
	}
	if *lat < -90 || *lat > 90 {
		return RejectLatOutOfRange, false
	}
	if *lon < -180 || *lon > 180 {
		return RejectLonOutOfRange, false
	}
	if *lat == 0 && *lon == 0 {
		return RejectZeroZero, false
	}
	return RejectNone, true
}
