package styles

import (
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/packetplay/internal/ui/testutil"
)

func TestApplyBoldGradient_PreservesText(t *testing.T) {
	tests := []string{"", "P", "Packet Play", "café"}
	for _, text := range tests {
		got := testutil.StripANSI(ApplyBoldGradient(text, T().Primary, T().Secondary))
		if got != text {
			t.Errorf("ApplyBoldGradient(%q) stripped = %q", text, got)
		}
	}
}

func TestToColorful_Fallback(t *testing.T) {
	c := toColorful(lipgloss.Color("240"))
	r, g, b := c.RGB255()
	if r != g || g != b {
		t.Errorf("fallback should be gray, got %d,%d,%d", r, g, b)
	}
}
