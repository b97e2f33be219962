package platform

import "testing"

func TestParseCaptureBackend_Valid(t *testing.T) {
	tests := []struct {
		input string
		want  CaptureBackend
	}{
		{"", BackendCommand},
		{"command", BackendCommand},
		{"Command", BackendCommand},
		{"rect", BackendRect},
		{" RECT ", BackendRect},
	}
	for _, tt := range tests {
		got, err := ParseCaptureBackend(tt.input)
		if err != nil {
			t.Errorf("ParseCaptureBackend(%q): %v", tt.input, err)
		}
		if got != tt.want {
			t.Errorf("ParseCaptureBackend(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestParseCaptureBackend_Invalid(t *testing.T) {
	if _, err := ParseCaptureBackend("screenkit"); err == nil {
		t.Error("ParseCaptureBackend(\"screenkit\") should fail")
	}
}
