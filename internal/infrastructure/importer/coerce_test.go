package importer

import (
	"testing"
	"time"
)

func TestSanitizeStripsInvisibleCharacters(t *testing.T) {
	cases := map[string]string{
		"\ufeffApple Inc.":      "Apple Inc.",
		"Settlement\u00a0Order": "SettlementOrder",
		"Iran\u200b":            "Iran",
		"  trimmed  ":           "trimmed",
		"ctrl\x00chars\x1b":     "ctrlchars",
		"":                      "",
	}
	for in, want := range cases {
		if got := sanitize(in); got != want {
			t.Fatalf("sanitize(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestCoerceFloatToleratesCurrencyFormatting(t *testing.T) {
	v, ok := coerceFloat("$1,234,567.89")
	if !ok || v == nil || *v != 1234567.89 {
		t.Fatalf("currency parse failed: %v ok=%v", v, ok)
	}

	if v, ok := coerceFloat(""); !ok || v != nil {
		t.Fatalf("empty must be valid NULL, got %v ok=%v", v, ok)
	}
	if _, ok := coerceFloat("seven million"); ok {
		t.Fatalf("prose must not coerce to a float")
	}
}

func TestCoerceIntAcceptsIntLikeOnly(t *testing.T) {
	if v, ok := coerceInt("42"); !ok || v == nil || *v != 42 {
		t.Fatalf("plain int parse failed: %v ok=%v", v, ok)
	}
	if v, ok := coerceInt("42.0"); !ok || v == nil || *v != 42 {
		t.Fatalf("integral float must coerce: %v ok=%v", v, ok)
	}
	if _, ok := coerceInt("42.5"); ok {
		t.Fatalf("fractional value must not coerce to int")
	}
}

func TestCoerceBoolIsTriState(t *testing.T) {
	for _, s := range []string{"1", "TRUE", "true", "Y", "yes"} {
		v, ok := coerceBool(s)
		if !ok || v == nil || !*v {
			t.Fatalf("%q must coerce to true", s)
		}
	}
	for _, s := range []string{"0", "FALSE", "N", "no"} {
		v, ok := coerceBool(s)
		if !ok || v == nil || *v {
			t.Fatalf("%q must coerce to false", s)
		}
	}
	if v, ok := coerceBool(""); !ok || v != nil {
		t.Fatalf("empty must stay NULL, got %v ok=%v", v, ok)
	}
	if _, ok := coerceBool("maybe"); ok {
		t.Fatalf("unknown spelling must not coerce")
	}
}

func TestCoerceTimeLayouts(t *testing.T) {
	for _, s := range []string{"2019-03-27", "2019-03-27 14:30:00", "3/27/2019"} {
		v, ok := coerceTime(s)
		if !ok || v == nil {
			t.Fatalf("%q must parse", s)
		}
		if v.Year() != 2019 || v.Month() != time.March || v.Day() != 27 {
			t.Fatalf("%q parsed to wrong date: %v", s, v)
		}
	}
	if _, ok := coerceTime("sometime in 2019"); ok {
		t.Fatalf("prose must not parse as a date")
	}
}

func TestBuildActionMapsAndNullsInvalid(t *testing.T) {
	headers := []string{"ID", "Title", "SettlementAmount", "Published", "NumberOfViolations", "SanctionPrograms"}
	row := []string{"17", "\ufeffEnforcement Order", "$2,000,000", "garbage", "3", "Iran"}

	action, invalid, err := buildAction(headers, row)
	if err != nil {
		t.Fatalf("buildAction() error = %v", err)
	}
	if action.ID != 17 || action.Title != "Enforcement Order" || action.SanctionPrograms != "Iran" {
		t.Fatalf("fields not mapped: %+v", action)
	}
	if action.SettlementAmount == nil || *action.SettlementAmount != 2000000 {
		t.Fatalf("settlement amount not coerced: %v", action.SettlementAmount)
	}
	if action.NumberOfViolations == nil || *action.NumberOfViolations != 3 {
		t.Fatalf("violations not coerced: %v", action.NumberOfViolations)
	}
	if action.Published != nil {
		t.Fatalf("invalid bit must become NULL")
	}
	if len(invalid) != 1 || invalid[0] != "Published" {
		t.Fatalf("invalid columns = %v, want [Published]", invalid)
	}
}

func TestBuildActionRejectsMissingID(t *testing.T) {
	if _, _, err := buildAction([]string{"ID", "Title"}, []string{"", "no id"}); err == nil {
		t.Fatalf("row without ID must be rejected")
	}
	if _, _, err := buildAction([]string{"Title"}, []string{"no id column"}); err == nil {
		t.Fatalf("dataset without ID column must reject every row")
	}
}
