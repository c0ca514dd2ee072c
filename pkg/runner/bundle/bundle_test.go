package bundle

import (
	"reflect"
	"testing"

	"tableflip.dev/packlist/pkg/catalog"
)

func TestParseLines(t *testing.T) {
	got, err := ParseLines([]string{"a", "b:3", "c:0", " d : x "})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	want := []catalog.BundleLine{
		{InventoryID: "a", Qty: 1},
		{InventoryID: "b", Qty: 3},
		{InventoryID: "c", Qty: 1},
		{InventoryID: "d", Qty: 1},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
	if _, err := ParseLines([]string{":2"}); err == nil {
		t.Fatal("expected error for missing id")
	}
}
