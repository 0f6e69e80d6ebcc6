package markov

import (
	"go/build"
	"math/rand/v2"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"testing"
)

// sampleNames is a small corpus shared by tests that need some variety.
var sampleNames = []string{
	"Adelaide", "Alaric", "Amara", "Anneliese", "Aurelia", "Bastian", "Beatrix",
	"Cassian", "Cordelia", "Dorian", "Elowen", "Evander", "Felicity", "Florian",
	"Genevieve", "Isolde", "Jasper", "Leontine", "Lucian", "Marisol", "Octavia",
	"Orlando", "Percival", "Rosalind", "Seraphina", "Sebastian", "Theodora",
	"Tristan", "Valentina", "Vivienne",
}

// newTestCorpus builds a corpus from lines with the default tokenizer.
func newTestCorpus(t *testing.T, lines ...string) *Corpus {
	t.Helper()
	c, err := NewCorpus(lines, NewDefaultTokenizer())
	if err != nil {
		t.Fatalf("NewCorpus() error = %v", err)
	}
	return c
}

// newTestGenerator is a convenience helper that also builds the table.
func newTestGenerator(t *testing.T, order int, lines ...string) *Generator {
	t.Helper()
	g, err := NewGenerator(newTestCorpus(t, lines...), order)
	if err != nil {
		t.Fatalf("NewGenerator() error = %v", err)
	}
	return g
}

func newRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// textChains flattens a table into prefix text -> next token text -> frequency,
// which does not depend on the IDs the vocabulary happened to assign.
func textChains(tb *Table) map[string]map[string]int {
	out := make(map[string]map[string]int)
	for key, c := range tb.chains {
		var parts []string
		for _, idStr := range strings.Split(key, " ") {
			id, _ := strconv.Atoi(idStr)
			parts = append(parts, tb.vocab[id])
		}
		textKey := strings.Join(parts, "|")
		out[textKey] = make(map[string]int)
		for _, token := range c.tokens {
			out[textKey][tb.vocab[token.Id]] = token.Freq
		}
	}
	return out
}

var (
	benchmarkCorpus []string
	corpusOnce      sync.Once
)

// createBenchmarkCorpus collects identifiers from Go source files to use as a
// corpus of names for benchmarking.
func createBenchmarkCorpus() []string {
	corpusOnce.Do(func() {
		goRoot := build.Default.GOROOT
		filesToRead := []string{
			filepath.Join(goRoot, "src/net/http/server.go"),
			filepath.Join(goRoot, "src/go/parser/parser.go"),
			filepath.Join(goRoot, "src/encoding/json/encode.go"),
		}

		words := regexp.MustCompile(`[A-Za-z]{3,}`)
		for _, file := range filesToRead {
			content, err := os.ReadFile(file)
			if err != nil {
				benchmarkCorpus = sampleNames
				return
			}
			benchmarkCorpus = append(benchmarkCorpus, words.FindAllString(string(content), -1)...)
		}
	})
	return benchmarkCorpus
}
