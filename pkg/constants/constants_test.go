package constants

import (
	"slices"
	"testing"
	"time"
)

// TestServiceTypeNames tests the service code table
func TestServiceTypeNames(t *testing.T) {
	expected := map[string]string{
		"carpet":       "Carpet Installation",
		"vinyl":        "Vinyl Flooring",
		"laminate":     "Laminate Flooring",
		"lvt":          "Luxury Vinyl Tiles (LVT)",
		"consultation": "Free Consultation",
		"other":        "Other",
	}

	if len(ServiceTypeNames) != len(expected) {
		t.Errorf("ServiceTypeNames length = %d, want %d", len(ServiceTypeNames), len(expected))
	}

	for code, label := range expected {
		if got := ServiceTypeNames[code]; got != label {
			t.Errorf("ServiceTypeNames[%q] = %q, want %q", code, got, label)
		}
	}
}

// TestTimeframeNames tests the timeframe code table
func TestTimeframeNames(t *testing.T) {
	for _, code := range []string{"asap", "2weeks", "month", "3months", "planning"} {
		if TimeframeNames[code] == "" {
			t.Errorf("TimeframeNames[%q] is missing", code)
		}
	}

	if len(TimeframeNames) != 5 {
		t.Errorf("TimeframeNames length = %d, want 5", len(TimeframeNames))
	}
}

// TestRequiredFieldsAreFormFields tests that every required field is also posted
func TestRequiredFieldsAreFormFields(t *testing.T) {
	for _, field := range RequiredFormFields {
		if !slices.Contains(FormFields, field) {
			t.Errorf("required field %q missing from FormFields", field)
		}
	}

	if len(RequiredFormFields) != 4 {
		t.Errorf("RequiredFormFields length = %d, want 4", len(RequiredFormFields))
	}
}

// TestSlideTimings tests that the settle delay fits inside the interval
func TestSlideTimings(t *testing.T) {
	if SlideInterval != 5*time.Second {
		t.Errorf("SlideInterval = %v, want 5s", SlideInterval)
	}

	if SlideSettleDelay != 2100*time.Millisecond {
		t.Errorf("SlideSettleDelay = %v, want 2.1s", SlideSettleDelay)
	}

	if SlideSettleDelay >= SlideInterval {
		t.Error("SlideSettleDelay should be shorter than SlideInterval")
	}
}

// TestTimeoutRelationships tests that server timeouts leave room for a send
func TestTimeoutRelationships(t *testing.T) {
	if ServerWriteTimeout <= DefaultRequestTimeout {
		t.Errorf("ServerWriteTimeout (%v) should exceed DefaultRequestTimeout (%v)",
			ServerWriteTimeout, DefaultRequestTimeout)
	}

	if ServerReadTimeout <= 0 || ServerIdleTimeout <= 0 || GracefulShutdownTimeout <= 0 {
		t.Error("server timeouts should be positive")
	}
}

// TestDefaultPort tests the default port value
func TestDefaultPort(t *testing.T) {
	if DefaultPort != "8080" {
		t.Errorf("DefaultPort = %q, want 8080", DefaultPort)
	}
}
