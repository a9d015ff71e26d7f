package nlp

import "math"

// cosineTFIDF computes cosine similarity between two token streams using
// TF-IDF weights over the two-document corpus. Smoothed IDF keeps shared
// terms contributing instead of zeroing out, mirroring the usual
// ln((1+n)/(1+df))+1 formulation.
func cosineTFIDF(a, b []string) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	tfA := termFreq(a)
	tfB := termFreq(b)

	idf := func(term string) float64 {
		df := 0
		if tfA[term] > 0 {
			df++
		}
		if tfB[term] > 0 {
			df++
		}
		return math.Log(3.0/(1.0+float64(df))) + 1.0
	}

	var dot, normA, normB float64
	seen := make(map[string]bool, len(tfA)+len(tfB))
	for _, tf := range []map[string]float64{tfA, tfB} {
		for term := range tf {
			if seen[term] {
				continue
			}
			seen[term] = true
			w := idf(term)
			wa := tfA[term] * w
			wb := tfB[term] * w
			dot += wa * wb
			normA += wa * wa
			normB += wb * wb
		}
	}

	if normA == 0 || normB == 0 {
		return 0
	}
	cos := dot / (math.Sqrt(normA) * math.Sqrt(normB))
	return clamp01(cos)
}

func termFreq(tokens []string) map[string]float64 {
	tf := make(map[string]float64, len(tokens))
	for _, t := range tokens {
		if t == "" {
			continue
		}
		tf[t]++
	}
	return tf
}

func clamp01(v float64) float64 {
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}

// roundScore scales a [0,1] similarity to a 0-100 score with one decimal.
func roundScore(similarity float64) float64 {
	return math.Round(similarity*1000) / 10
}
