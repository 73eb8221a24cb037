package parser

import "testing"

func TestCanonicalizeHeader_Synonyms(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want string
	}{
		{"Staff", FieldEmployees},
		{"  staff ", FieldEmployees},
		{"Employee(s)", FieldEmployees},
		{"EMPLOYEES", FieldEmployees},
		{"Booking", FieldBooking},
		{"Booking_Name", FieldBooking},
		{"amount", FieldCost},
		{"Cost", FieldCost},
		{"Paid Hours", FieldPaidHours},
		{"Hours  Paid-Out", FieldPaidHours},
		{"\ufeffDate", FieldDate},
		{"date", FieldDate},
	}
	for _, c := range cases {
		if got := CanonicalizeHeader(c.in); got != c.want {
			t.Fatalf("CanonicalizeHeader(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestCanonicalizeHeader_Idempotent(t *testing.T) {
	t.Parallel()

	for _, in := range []string{"Staff", "Notes", "Booking Name", "  Extra Column  ", "\ufeffDate"} {
		once := CanonicalizeHeader(in)
		twice := CanonicalizeHeader(once)
		if once != twice {
			t.Fatalf("not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}

func TestCanonicalizeHeader_UnknownPassesThrough(t *testing.T) {
	t.Parallel()

	if got := CanonicalizeHeader("  Notes  "); got != "Notes" {
		t.Fatalf("unknown header want trimmed passthrough, got %q", got)
	}
	if got := CanonicalizeHeader("\ufeffInternal Ref"); got != "Internal Ref" {
		t.Fatalf("BOM should be stripped from passthrough, got %q", got)
	}
}
