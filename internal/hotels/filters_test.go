package hotels

import (
	"testing"

	"staymate/internal/shared/upstream"
)

func catalogue() []upstream.Hotel {
	return []upstream.Hotel{
		{ID: 1, Name: "Seaside Palace", City: "Lisbon", Country: "Portugal", PricePerNight: 220, AverageRating: 4.6, Image: "lisbon.jpg"},
		{ID: 2, Name: "Harbor Inn", City: "Lisbon", Country: "Portugal", PricePerNight: 90, AverageRating: 3.8},
		{ID: 3, Name: "Alpine Lodge", City: "Innsbruck", Country: "Austria", PricePerNight: 150, AverageRating: 4.2},
	}
}

func TestApplyEmptyFilterMatchesEverything(t *testing.T) {
	got := Apply(catalogue(), Filter{})
	if len(got) != 3 {
		t.Fatalf("a zero filter is unbounded, got %d hotels", len(got))
	}
}

func TestApplyQueryMatchesNameCityCountry(t *testing.T) {
	hotels := catalogue()

	if got := Apply(hotels, Filter{Query: "palace"}); len(got) != 1 || got[0].ID != 1 {
		t.Errorf("name match failed: %v", got)
	}
	if got := Apply(hotels, Filter{Query: "LISBON"}); len(got) != 2 {
		t.Errorf("city match must be case-insensitive, got %v", got)
	}
	if got := Apply(hotels, Filter{Query: "austria"}); len(got) != 1 || got[0].ID != 3 {
		t.Errorf("country match failed: %v", got)
	}
}

func TestApplyPriceBounds(t *testing.T) {
	hotels := catalogue()

	if got := Apply(hotels, Filter{MaxPrice: 160}); len(got) != 2 {
		t.Errorf("expected 2 hotels under 160, got %v", got)
	}
	if got := Apply(hotels, Filter{MinPrice: 100, MaxPrice: 200}); len(got) != 1 || got[0].ID != 3 {
		t.Errorf("expected only the 150/night hotel, got %v", got)
	}
	// MaxPrice 0 means no ceiling, not "free only".
	if got := Apply(hotels, Filter{MaxPrice: 0}); len(got) != 3 {
		t.Errorf("zero max price must be unbounded, got %v", got)
	}
}

func TestApplyMinRating(t *testing.T) {
	got := Apply(catalogue(), Filter{MinRating: 4.0})
	if len(got) != 2 {
		t.Fatalf("expected 2 hotels rated 4.0+, got %v", got)
	}
}

func TestApplyPreservesOrder(t *testing.T) {
	got := Apply(catalogue(), Filter{City: "Lisbon"})
	if len(got) != 2 || got[0].ID != 1 || got[1].ID != 2 {
		t.Errorf("input order must be preserved, got %v", got)
	}
}

func TestDestinationsFoldsByCity(t *testing.T) {
	got := Destinations(catalogue())
	if len(got) != 2 {
		t.Fatalf("expected 2 destinations, got %v", got)
	}
	if got[0].City != "Lisbon" || got[0].Count != 2 {
		t.Errorf("Lisbon with 2 hotels should rank first, got %+v", got[0])
	}
	if got[0].Image != "lisbon.jpg" {
		t.Errorf("destination image comes from the first hotel seen, got %q", got[0].Image)
	}
	if got[1].City != "Innsbruck" || got[1].Count != 1 {
		t.Errorf("unexpected second destination %+v", got[1])
	}
}

func TestDestinationsSkipsBlankCities(t *testing.T) {
	hotels := append(catalogue(), upstream.Hotel{ID: 4, Name: "Nowhere"})

	got := Destinations(hotels)
	for _, d := range got {
		if d.City == "" {
			t.Fatalf("blank city must be skipped, got %v", got)
		}
	}
}
