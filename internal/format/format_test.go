package format

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"livecounter-backend/internal/model"
)

func ptr[T any](v T) *T { return &v }

func TestCount(t *testing.T) {
	testCases := []struct {
		name  string
		input any
		want  string
	}{
		{"nil", nil, NotAvailable},
		{"nil pointer", (*int64)(nil), NotAvailable},
		{"nil string pointer", (*string)(nil), NotAvailable},
		{"nil count pointer", (*model.Count)(nil), NotAvailable},
		{"absent count", model.Count{}, NotAvailable},
		{"text", "abc", NotAvailable},
		{"empty string", "", NotAvailable},
		{"suffixed text", "1.2M", NotAvailable},
		{"NaN", math.NaN(), NotAvailable},
		{"zero", 0, "0"},
		{"zero count", model.NewCount(0), "0"},
		{"999", 999, "999"},
		{"1000", 1000, "1.0K"},
		{"12345", 12345, "12.3K"},
		{"1.5M", 1_500_000, "1.5M"},
		{"2.3B", int64(2_300_000_000), "2.3B"},
		{"numeric string", "12345", "12.3K"},
		{"grouped string", "1,234,567", "1.2M"},
		{"string pointer", ptr("999"), "999"},
		{"count", model.NewCount(12345), "12.3K"},
		{"json number", json.Number("1500000"), "1.5M"},
		{"float truncated", 999.9, "999"},
		{"half rounds up", 1050, "1.1K"},
		{"just below half", 1049, "1.0K"},
		{"carry into next whole", 1_999_950, "2.0M"},
		{"just below unit carry", 999_949, "999.9K"},
		{"carry promotes K to M", 999_950, "1.0M"},
		{"carry promotes from 999,999", 999_999, "1.0M"},
		{"carry promotes M to B", 999_950_000, "1.0B"},
		{"billions do not promote", 999_950_000_000, "1000.0B"},
		{"large billions", 1_234_500_000_000, "1234.5B"},
		{"negative is grouped", -1234, "-1,234"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Count(tc.input))
		})
	}
}

func TestCount_IdempotentOnNumericInput(t *testing.T) {
	for _, n := range []int64{0, 7, 999, 1000, 12345, 1_500_000, 2_300_000_000} {
		assert.Equal(t, Count(n), Count(n))
	}
}

func TestDate(t *testing.T) {
	testCases := []struct {
		name  string
		input any
		want  string
	}{
		{"nil", nil, NotAvailable},
		{"empty", "", NotAvailable},
		{"nil pointer", (*string)(nil), NotAvailable},
		{"rfc3339", "2024-03-05T10:00:00Z", "Mar 5, 2024"},
		{"rfc3339 with fraction", "2024-03-05T10:00:00.123Z", "Mar 5, 2024"},
		{"offset converted to UTC", "2024-03-05T23:30:00-05:00", "Mar 6, 2024"},
		{"date only", "2023-12-31", "Dec 31, 2023"},
		{"pointer", ptr("2023-12-31"), "Dec 31, 2023"},
		{"unparseable returned verbatim", "3 days ago", "3 days ago"},
		{"unix seconds count", model.NewCount(1700000000), "Nov 14, 2023"},
		{"absent count", model.Count{}, NotAvailable},
		{"time", time.Date(2022, 1, 2, 0, 0, 0, 0, time.UTC), "Jan 2, 2022"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Date(tc.input))
		})
	}
}

func TestDisplayValue(t *testing.T) {
	testCases := []struct {
		name  string
		input any
		want  string
	}{
		{"nil", nil, NotAvailable},
		{"empty string", "", NotAvailable},
		{"nil pointer", (*string)(nil), NotAvailable},
		{"empty string pointer", ptr(""), NotAvailable},
		{"string", "chris", "chris"},
		{"string pointer", ptr("chris"), "chris"},
		{"false is a value", false, "false"},
		{"bool pointer", ptr(true), "true"},
		{"zero is a value", 0, "0"},
		{"count", model.NewCount(42), "42"},
		{"absent count", model.Count{}, NotAvailable},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, DisplayValue(tc.input))
		})
	}
}
