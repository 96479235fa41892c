package pagination

import (
	"reflect"
	"testing"
)

func TestPaginateSlicesItems(t *testing.T) {
	items := make([]int, 25)
	for i := range items {
		items[i] = i + 1
	}

	page := Paginate(items, 2, 10)
	if page.CurrentPage != 2 {
		t.Errorf("expected current page 2, got %d", page.CurrentPage)
	}
	if page.TotalPages != 3 {
		t.Errorf("expected 3 total pages, got %d", page.TotalPages)
	}
	if page.TotalItems != 25 {
		t.Errorf("expected 25 total items, got %d", page.TotalItems)
	}
	if len(page.Items) != 10 || page.Items[0] != 11 || page.Items[9] != 20 {
		t.Errorf("expected items 11..20, got %v", page.Items)
	}
}

func TestPaginateLastPartialPage(t *testing.T) {
	items := []string{"a", "b", "c", "d", "e"}

	page := Paginate(items, 2, 3)
	if len(page.Items) != 2 {
		t.Fatalf("expected 2 items on the last page, got %v", page.Items)
	}
	if page.Items[0] != "d" || page.Items[1] != "e" {
		t.Errorf("expected [d e], got %v", page.Items)
	}
}

func TestPaginateOutOfRangePageClamps(t *testing.T) {
	items := []int{1, 2, 3}

	page := Paginate(items, 99, 2)
	if page.CurrentPage != 2 {
		t.Errorf("expected clamp to last page 2, got %d", page.CurrentPage)
	}
	if len(page.Items) != 1 || page.Items[0] != 3 {
		t.Errorf("expected last page contents [3], got %v", page.Items)
	}
}

func TestPaginateEmpty(t *testing.T) {
	page := Paginate([]int{}, 1, 10)
	if page.TotalPages != 1 || page.CurrentPage != 1 || len(page.Items) != 0 {
		t.Errorf("unexpected empty page: %+v", page)
	}
}

func TestPageStripShortRangeListsEveryPage(t *testing.T) {
	got := PageStrip(2, 5)
	want := []any{1, 2, 3, 4, 5}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestPageStripLongRangeCollapsesWithEllipsis(t *testing.T) {
	got := PageStrip(7, 20)
	want := []any{1, Ellipsis, 6, 7, 8, Ellipsis, 20}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestPageStripNearEdges(t *testing.T) {
	got := PageStrip(1, 20)
	if got[0] != 1 {
		t.Errorf("strip must start at page 1, got %v", got)
	}
	if got[len(got)-1] != 20 {
		t.Errorf("strip must end at the last page, got %v", got)
	}

	got = PageStrip(20, 20)
	if got[len(got)-1] != 20 {
		t.Errorf("strip must end at the last page, got %v", got)
	}
}
