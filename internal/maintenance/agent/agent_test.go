package agent

import "testing"

func TestRequestFullAddress(t *testing.T) {
	req := testRequest()
	if got := req.FullAddress(); got != "12 Oak St, Springfield, IL 62701" {
		t.Fatalf("unexpected full address %q", got)
	}

	req.PropertyZipCode = ""
	if got := req.FullAddress(); got != "12 Oak St, Springfield, IL" {
		t.Fatalf("unexpected full address %q", got)
	}
}

func TestRequestOutreachAddress(t *testing.T) {
	req := testRequest()
	if got := req.OutreachAddress(); got != "12 Oak St, Springfield, IL" {
		t.Fatalf("unexpected outreach address %q", got)
	}

	unit := "4B"
	req.PropertyUnit = &unit
	if got := req.OutreachAddress(); got != "12 Oak St, Unit 4B, Springfield, IL" {
		t.Fatalf("unexpected outreach address %q", got)
	}

	empty := ""
	req.PropertyUnit = &empty
	if got := req.OutreachAddress(); got != "12 Oak St, Springfield, IL" {
		t.Fatalf("empty unit should be omitted, got %q", got)
	}
}
