package rendering

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClean(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"empty", "", ""},
		{"plain", "Led a team of 5", "Led a team of 5"},
		{"generics kept", "Built generic List<T> and Map<K,V> helpers", "Built generic List<T> and Map<K,V> helpers"},
		{"comparison kept", "Go<Rust", "Go<Rust"},
		{"address kept", "Contact <jane@x.com>", "Contact <jane@x.com>"},
		{"tags kept literal", "Built <b>fast</b> APIs", "Built <b>fast</b> APIs"},
		{"entities kept literal", "R&D for AT&T", "R&D for AT&T"},
		{"angle text", "latency < 10ms", "latency < 10ms"},
		{"whitespace collapsed", "  Go,\n\tSQL   and  Rust ", "Go, SQL and Rust"},
		{"control chars dropped", "a\x07bc", "abc"},
		{"unicode kept", "Zürich – Café", "Zürich – Café"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Clean(tt.input))
		})
	}
}

func TestCleanAll_DropsEmpty(t *testing.T) {
	assert.Equal(t, []string{"one", "<script>", "two"}, cleanAll([]string{" one ", "", "<script>", "\t", "two"}))
}
