package validator

import "testing"

func TestCustomTags(t *testing.T) {
	tests := []struct {
		name    string
		tag     string
		value   string
		wantErr bool
	}{
		{name: "valid yearmonth", tag: "yearmonth", value: "2025-06", wantErr: false},
		{name: "yearmonth with day", tag: "yearmonth", value: "2025-06-01", wantErr: true},
		{name: "yearmonth month out of range", tag: "yearmonth", value: "2025-13", wantErr: true},
		{name: "valid isodate", tag: "isodate", value: "2025-06-15", wantErr: false},
		{name: "isodate impossible day", tag: "isodate", value: "2025-02-30", wantErr: true},
		{name: "isodate wrong separator", tag: "isodate", value: "2025/06/15", wantErr: true},
		{name: "known category", tag: "category", value: "Food", wantErr: false},
		{name: "unknown category", tag: "category", value: "Gadgets", wantErr: true},
		{name: "category is case-sensitive", tag: "category", value: "food", wantErr: true},
		{name: "notblank with text", tag: "notblank", value: "hello", wantErr: false},
		{name: "notblank only spaces", tag: "notblank", value: "   ", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate.Var(tt.value, tt.tag)
			if (err != nil) != tt.wantErr {
				t.Errorf("Var(%q, %q) error = %v, wantErr %v", tt.value, tt.tag, err, tt.wantErr)
			}
		})
	}
}
