package importer

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/overruled/enforcement-search/internal/core/domain"
)

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
	"1/2/2006 15:04",
	"1/2/2006",
}

// coerceInt accepts int-like values only. Empty input is a valid NULL;
// anything else that fails to parse reports ok=false.
func coerceInt(s string) (*int, bool) {
	if s == "" {
		return nil, true
	}
	if n, err := strconv.Atoi(s); err == nil {
		return &n, true
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && f == float64(int(f)) {
		n := int(f)
		return &n, true
	}
	return nil, false
}

// coerceFloat tolerates currency formatting: "$1,234.56" parses as 1234.56.
func coerceFloat(s string) (*float64, bool) {
	if s == "" {
		return nil, true
	}
	cleaned := strings.ReplaceAll(strings.ReplaceAll(s, ",", ""), "$", "")
	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return nil, false
	}
	return &f, true
}

// coerceBool maps the source's bit spellings. The field is tri-state:
// empty stays NULL.
func coerceBool(s string) (*bool, bool) {
	if s == "" {
		return nil, true
	}
	v := true
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "1", "TRUE", "Y", "YES":
	case "0", "FALSE", "N", "NO":
		v = false
	default:
		return nil, false
	}
	return &v, true
}

func coerceTime(s string) (*time.Time, bool) {
	if s == "" {
		return nil, true
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t, true
		}
	}
	return nil, false
}

// buildAction maps one sanitized row onto the action model by header name.
// Values that fail coercion become NULL and their column names are reported
// so the caller can log them; a row without a usable ID is rejected outright.
func buildAction(headers, row []string) (domain.EnforcementAction, []string, error) {
	var action domain.EnforcementAction
	var invalid []string
	idSet := false

	for i, header := range headers {
		if i >= len(row) {
			break
		}
		value := sanitize(row[i])

		switch header {
		case "ID":
			id, ok := coerceInt(value)
			if !ok || id == nil {
				return domain.EnforcementAction{}, nil, fmt.Errorf("row has no usable ID: %q", row[i])
			}
			action.ID = *id
			idSet = true
		case "Title":
			action.Title = value
		case "BrowserFile":
			action.BrowserFile = value
		case "Ordinal":
			v, ok := coerceFloat(value)
			if !ok {
				invalid = append(invalid, header)
			}
			action.Ordinal = v
		case "DateIssued":
			v, ok := coerceTime(value)
			if !ok {
				invalid = append(invalid, header)
			}
			action.DateIssued = v
		case "Published":
			v, ok := coerceBool(value)
			if !ok {
				invalid = append(invalid, header)
			}
			action.Published = v
		case "DocumentTypes":
			action.DocumentTypes = value
		case "KeyFacts":
			action.KeyFacts = value
		case "DocumentText":
			action.DocumentText = value
		case "Commentary":
			action.Commentary = value
		case "NumberOfViolations":
			v, ok := coerceInt(value)
			if !ok {
				invalid = append(invalid, header)
			}
			action.NumberOfViolations = v
		case "SettlementAmount":
			v, ok := coerceFloat(value)
			if !ok {
				invalid = append(invalid, header)
			}
			action.SettlementAmount = v
		case "OfacPenalty":
			action.OfacPenalty = value
		case "AggregatePenalty":
			action.AggregatePenalty = value
		case "BasePenalty":
			action.BasePenalty = value
		case "StatutoryMaximum":
			action.StatutoryMaximum = value
		case "VSD":
			action.VSD = value
		case "Egregious":
			action.Egregious = value
		case "WillfulOrReckless":
			action.WillfulOrReckless = value
		case "Criminal":
			action.Criminal = value
		case "RegulatoryProvisions":
			action.RegulatoryProvisions = value
		case "LegalIssues":
			action.LegalIssues = value
		case "SanctionPrograms":
			action.SanctionPrograms = value
		case "EnforcementCharacterizations":
			action.EnforcementCharacterizations = value
		case "Industries":
			action.Industries = value
		case "AggravatingFactors":
			action.AggravatingFactors = value
		case "MitigatingFactors":
			action.MitigatingFactors = value
		}
	}

	if !idSet {
		return domain.EnforcementAction{}, nil, fmt.Errorf("row has no ID column value")
	}
	return action, invalid, nil
}
