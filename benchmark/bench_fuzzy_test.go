package benchmark

import (
	"testing"

	"github.com/dzonerzy/go-optparse/internal/fuzzy"
)

var spellings = []string{
	"-h", "--help", "--version", "-v", "--verbose", "-c", "--config",
	"-o", "--output", "--input", "--force", "--debug", "--port", "--host",
}

func BenchmarkMatcher_FindBest(b *testing.B) {
	matcher := fuzzy.NewMatcher(2)
	candidates := []string{"help", "version", "verbose", "config", "output", "input"}
	b.ResetTimer()
	for range b.N {
		matcher.FindBest("hep", candidates)
	}
}

func BenchmarkDistance(b *testing.B) {
	for range b.N {
		fuzzy.Distance("--verbsoe", "--verbose")
	}
}

func BenchmarkSpelling(b *testing.B) {
	b.Run("hit", func(b *testing.B) {
		for range b.N {
			fuzzy.Spelling("--verbos", spellings)
		}
	})
	b.Run("miss", func(b *testing.B) {
		for range b.N {
			fuzzy.Spelling("--zzzzzz", spellings)
		}
	})
}
