package store

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecordStr(t *testing.T) {
	rec := Record{
		"name":    "Veg Sandwich",
		"price":   40,
		"rating":  4.5,
		"veg":     true,
		"count":   int64(12),
		"nothing": nil,
		"nested":  map[string]interface{}{"a": 1},
	}

	tests := []struct {
		name     string
		key      string
		expected string
	}{
		{name: "string value", key: "name", expected: "Veg Sandwich"},
		{name: "int formatted", key: "price", expected: "40"},
		{name: "float formatted", key: "rating", expected: "4.5"},
		{name: "bool formatted", key: "veg", expected: "true"},
		{name: "int64 formatted", key: "count", expected: "12"},
		{name: "nil value", key: "nothing", expected: ""},
		{name: "missing key", key: "absent", expected: ""},
		{name: "nested value skipped", key: "nested", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, rec.Str(tt.key))
		})
	}
}

func TestRecordFirst(t *testing.T) {
	rec := Record{"Event_Name": "Tech Fest", "title": ""}

	assert.Equal(t, "Tech Fest", rec.First("title", "Event_Name", "name"))
	assert.Equal(t, "", rec.First("absent", "missing"))
}

func TestRecordStringFields(t *testing.T) {
	rec := Record{
		"name":  "Coding Club",
		"desc":  "Hackathons",
		"count": 40,
		"blank": "",
	}

	fields := rec.StringFields()
	assert.Equal(t, map[string]string{"name": "Coding Club", "desc": "Hackathons"}, fields)
}

func TestRecordClone(t *testing.T) {
	rec := Record{"name": "Drama Club"}
	clone := rec.Clone()
	clone["name"] = "Changed"

	assert.Equal(t, "Drama Club", rec.Str("name"))
}

func TestParseCategory(t *testing.T) {
	cat, err := ParseCategory("events")
	assert.NoError(t, err)
	assert.Equal(t, CategoryEvents, cat)

	_, err = ParseCategory("parking")
	assert.True(t, errors.Is(err, ErrUnknownCategory))
}
