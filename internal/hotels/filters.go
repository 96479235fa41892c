package hotels

import (
	"sort"
	"strings"

	"staymate/internal/shared/upstream"
)

// Filter narrows a hotel list. Zero-valued bounds are unbounded: a blank
// query matches everything, MaxPrice 0 means no ceiling, MinRating 0 means
// any rating.
type Filter struct {
	Query     string
	City      string
	MinPrice  float64
	MaxPrice  float64
	MinRating float64
}

func (f Filter) matches(h upstream.Hotel) bool {
	if f.Query != "" {
		q := strings.ToLower(f.Query)
		if !strings.Contains(strings.ToLower(h.Name), q) &&
			!strings.Contains(strings.ToLower(h.City), q) &&
			!strings.Contains(strings.ToLower(h.Country), q) {
			return false
		}
	}
	if f.City != "" && !strings.EqualFold(h.City, f.City) {
		return false
	}
	if h.PricePerNight < f.MinPrice {
		return false
	}
	if f.MaxPrice > 0 && h.PricePerNight > f.MaxPrice {
		return false
	}
	if h.AverageRating < f.MinRating {
		return false
	}
	return true
}

// Apply returns the hotels passing the filter, preserving input order.
func Apply(hotels []upstream.Hotel, f Filter) []upstream.Hotel {
	out := make([]upstream.Hotel, 0, len(hotels))
	for _, h := range hotels {
		if f.matches(h) {
			out = append(out, h)
		}
	}
	return out
}

// Destinations folds a hotel list into unique city/country pairs with hotel
// counts, sorted by count descending then city for stable output.
func Destinations(hotels []upstream.Hotel) []Destination {
	index := make(map[string]int)
	var out []Destination
	for _, h := range hotels {
		if h.City == "" {
			continue
		}
		key := strings.ToLower(h.City) + "|" + strings.ToLower(h.Country)
		if i, ok := index[key]; ok {
			out[i].Count++
			continue
		}
		index[key] = len(out)
		out = append(out, Destination{
			City:    h.City,
			Country: h.Country,
			Count:   1,
			Image:   h.Image,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].City < out[j].City
	})
	return out
}
