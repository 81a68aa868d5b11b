package export

import (
	"strconv"
	"strings"
)

type priceRange struct {
	min, max int
}

// tourPriceRanges are checked in order against the destination name.
var tourPriceRanges = []struct {
	keyword string
	priceRange
}{
	{"maldives", priceRange{2500, 4500}},
	{"switzerland", priceRange{2800, 5200}},
	{"amsterdam", priceRange{1800, 3200}},
	{"vietnam", priceRange{800, 2500}},
	{"japan", priceRange{2200, 4800}},
	{"thailand", priceRange{1200, 2800}},
	{"singapore", priceRange{1500, 3500}},
}

var defaultTourRange = priceRange{1500, 3500}

// hotelPriceRanges are nightly rates in USD by star rating.
var hotelPriceRanges = map[int]priceRange{
	5: {200, 800},
	4: {100, 300},
	3: {50, 150},
	2: {25, 80},
	1: {15, 50},
}

const (
	defaultTourDuration = "3-5 days"
	defaultAverageDays  = 4.0
)

// TourPrice derives a USD package price from the destination, the duration
// and the record's position in the export. The result is deterministic.
func TourPrice(destination, duration string, index int) int {
	r := defaultTourRange
	dest := strings.ToLower(destination)
	for _, tr := range tourPriceRanges {
		if strings.Contains(dest, tr.keyword) {
			r = tr.priceRange
			break
		}
	}

	base := r.min + (index%3)*((r.max-r.min)/3)
	return int(float64(base) + (averageDays(duration)-3)*200)
}

// averageDays reads "5 days" or "3-5 days"; anything else counts as 4 days.
func averageDays(duration string) float64 {
	if !strings.Contains(duration, "days") {
		return defaultAverageDays
	}
	fields := strings.Fields(duration)
	if len(fields) == 0 {
		return defaultAverageDays
	}

	first := fields[0]
	if lo, hi, ok := strings.Cut(first, "-"); ok {
		a, errA := strconv.Atoi(lo)
		b, errB := strconv.Atoi(hi)
		if errA != nil || errB != nil || strings.Contains(hi, "-") {
			return defaultAverageDays
		}
		return float64(a+b) / 2
	}

	n, err := strconv.Atoi(first)
	if err != nil {
		return defaultAverageDays
	}
	return float64(n)
}

// HotelStars infers a star rating from the hotel type and amenities.
func HotelStars(hotelType string, amenities []string) int {
	t := strings.ToLower(hotelType)
	a := strings.ToLower(strings.Join(amenities, " "))

	switch {
	case strings.Contains(t, "resort") || containsAny(a, "spa", "pool", "concierge", "suite"):
		return 5
	case strings.Contains(t, "hotel") && containsAny(a, "gym", "restaurant", "room service"):
		return 4
	default:
		return 3
	}
}

// NightlyRate picks a USD nightly rate within the star rating's range.
func NightlyRate(stars, index int) int {
	r, ok := hotelPriceRanges[stars]
	if !ok {
		r = hotelPriceRanges[3]
	}
	return r.min + (index%4)*((r.max-r.min)/4)
}

func containsAny(s string, words ...string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
