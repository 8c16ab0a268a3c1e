package benchmark

import (
	"testing"

	"github.com/dzonerzy/go-optparse/internal/intern"
)

func BenchmarkTable_Intern(b *testing.B) {
	table := intern.NewTable(0)
	keys := []string{"--flag1", "--flag2", "--help", "--version", "--config"}

	b.ResetTimer()
	for i := range b.N {
		table.Intern(keys[i%len(keys)])
	}
}

func BenchmarkShort(b *testing.B) {
	runes := []rune{'a', 'h', 'v', 'c', 'é', 'λ'}

	b.ResetTimer()
	for i := range b.N {
		intern.Short(runes[i%len(runes)])
	}
}
