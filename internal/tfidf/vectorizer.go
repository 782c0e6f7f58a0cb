package tfidf

import (
	"math"
	"sort"
	"strings"
)

type Options struct {
	// MaxFeatures caps the vocabulary at the terms with the highest
	// document frequency, ties broken alphabetically. 0 disables the cap.
	MaxFeatures int
	// MinDocFreq drops terms appearing in fewer documents.
	MinDocFreq int
	// MaxDocFrac drops terms appearing in more than this fraction of
	// documents. 0 disables the cut.
	MaxDocFrac float64
	// NgramMax emits n-grams up to this length (1 = unigrams only).
	NgramMax int
	// StopWords enables English stop-word removal before n-gram assembly.
	StopWords bool
}

// Vector is one sparse TF-IDF row. Terms are sorted vocabulary ids; the
// conceptual dimensionality is always the corpus vocabulary size.
type Vector struct {
	Terms   []int
	Weights []float64
	Norm    float64
}

// Matrix holds the fitted vocabulary and one vector per input document.
type Matrix struct {
	vocab   map[string]int
	terms   []string
	Vectors []Vector
}

func (m *Matrix) VocabSize() int {
	return len(m.terms)
}

func (m *Matrix) Terms() []string {
	return m.terms
}

// Dense materializes a sparse row at full vocabulary dimensionality,
// for storage in a vector column.
func (m *Matrix) Dense(i int) []float32 {
	dense := make([]float32, len(m.terms))
	v := m.Vectors[i]
	for j, term := range v.Terms {
		dense[term] = float32(v.Weights[j])
	}
	return dense
}

// Fit builds the vocabulary over the corpus and vectorizes every document.
// Deterministic for a fixed corpus and options.
func Fit(corpus []string, opts Options) *Matrix {
	if opts.NgramMax <= 0 {
		opts.NgramMax = 1
	}
	docs := make([][]string, len(corpus))
	for i, text := range corpus {
		docs[i] = Tokenize(text, opts)
	}

	docFreq := make(map[string]int)
	for _, doc := range docs {
		seen := make(map[string]bool, len(doc))
		for _, term := range doc {
			if !seen[term] {
				docFreq[term]++
				seen[term] = true
			}
		}
	}

	numDocs := len(docs)
	maxDF := numDocs
	if opts.MaxDocFrac > 0 {
		maxDF = int(opts.MaxDocFrac * float64(numDocs))
	}
	kept := make([]string, 0, len(docFreq))
	for term, df := range docFreq {
		if opts.MinDocFreq > 1 && df < opts.MinDocFreq {
			continue
		}
		if df > maxDF {
			continue
		}
		kept = append(kept, term)
	}
	if opts.MaxFeatures > 0 && len(kept) > opts.MaxFeatures {
		sort.Slice(kept, func(i, j int) bool {
			if docFreq[kept[i]] != docFreq[kept[j]] {
				return docFreq[kept[i]] > docFreq[kept[j]]
			}
			return kept[i] < kept[j]
		})
		kept = kept[:opts.MaxFeatures]
	}
	sort.Strings(kept)

	vocab := make(map[string]int, len(kept))
	for i, term := range kept {
		vocab[term] = i
	}

	// IDF with smoothing: log(1 + N/(1+df)).
	idf := make([]float64, len(kept))
	for i, term := range kept {
		idf[i] = math.Log(1 + float64(numDocs)/(1+float64(docFreq[term])))
	}

	m := &Matrix{vocab: vocab, terms: kept, Vectors: make([]Vector, numDocs)}
	for i, doc := range docs {
		m.Vectors[i] = vectorize(doc, vocab, idf)
	}
	return m
}

func vectorize(doc []string, vocab map[string]int, idf []float64) Vector {
	if len(doc) == 0 {
		return Vector{}
	}
	counts := make(map[int]float64)
	total := 0.0
	for _, term := range doc {
		id, ok := vocab[term]
		if !ok {
			continue
		}
		counts[id]++
		total++
	}
	if total == 0 {
		return Vector{}
	}
	ids := make([]int, 0, len(counts))
	for id := range counts {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	v := Vector{Terms: ids, Weights: make([]float64, len(ids))}
	var norm float64
	for j, id := range ids {
		tf := counts[id] / total
		weight := tf * idf[id]
		v.Weights[j] = weight
		norm += weight * weight
	}
	v.Norm = math.Sqrt(norm)
	return v
}

// Cosine computes cosine similarity of two sparse rows by merging their
// sorted term lists. Either zero vector yields 0.
func Cosine(a, b Vector) float64 {
	if a.Norm == 0 || b.Norm == 0 {
		return 0
	}
	var dot float64
	i, j := 0, 0
	for i < len(a.Terms) && j < len(b.Terms) {
		switch {
		case a.Terms[i] == b.Terms[j]:
			dot += a.Weights[i] * b.Weights[j]
			i++
			j++
		case a.Terms[i] < b.Terms[j]:
			i++
		default:
			j++
		}
	}
	return dot / (a.Norm * b.Norm)
}

// Tokenize lowercases, splits on non-alphanumeric (underscore kept),
// removes stop words when enabled and assembles n-grams.
func Tokenize(text string, opts Options) []string {
	lower := strings.ToLower(text)
	words := strings.FieldsFunc(lower, func(r rune) bool {
		return !(r == '_' || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'))
	})
	if opts.StopWords {
		filtered := words[:0]
		for _, w := range words {
			if !stopWords[w] {
				filtered = append(filtered, w)
			}
		}
		words = filtered
	}
	if opts.NgramMax <= 1 || len(words) == 0 {
		return words
	}
	grams := make([]string, 0, len(words)*opts.NgramMax)
	for n := 1; n <= opts.NgramMax; n++ {
		for i := 0; i+n <= len(words); i++ {
			grams = append(grams, strings.Join(words[i:i+n], " "))
		}
	}
	return grams
}
