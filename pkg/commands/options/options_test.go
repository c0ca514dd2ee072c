package options

import (
	"errors"
	"testing"
	"time"

	"tableflip.dev/packlist/pkg/apperr"
)

func TestGetDate(t *testing.T) {
	o := DateOptions{DateString: " 2024-06-01 "}
	got, err := o.GetDate()
	if err != nil || got != "2024-06-01" {
		t.Fatalf("expected 2024-06-01, got %q (%v)", got, err)
	}
	o.DateString = "June 1"
	if _, err := o.GetDate(); err == nil {
		t.Fatal("expected error for bad date")
	}
	o.DateString = ""
	if got, _ := o.GetDate(); got != "" {
		t.Fatalf("expected empty date, got %q", got)
	}
}

func TestGetMonth(t *testing.T) {
	o := MonthOptions{}
	if m, err := o.GetMonth(); err != nil || m != nil {
		t.Fatalf("expected no month, got %v (%v)", m, err)
	}
	o.OnString = "2024-6"
	m, err := o.GetMonth()
	if err != nil || m.Year() != 2024 || m.Month() != time.June {
		t.Fatalf("unexpected month %v (%v)", m, err)
	}
	o.OnString = "3"
	m, err = o.GetMonth()
	if err != nil || m.Year() != time.Now().Year() || m.Month() != time.March {
		t.Fatalf("unexpected month %v (%v)", m, err)
	}
}

func TestHandleErrorSkipsValidationNoop(t *testing.T) {
	o := OutputOptions{}
	if err := o.HandleError(apperr.Blank("trip: name")); err != nil {
		t.Fatalf("expected notice only, got %v", err)
	}
	boom := errors.New("boom")
	if err := o.HandleError(boom); !errors.Is(err, boom) {
		t.Fatalf("expected error passed through, got %v", err)
	}
}

func TestWrap(t *testing.T) {
	if got := Wrap("one two   three", 7); got != "one two\nthree" {
		t.Fatalf("unexpected wrap %q", got)
	}
}
