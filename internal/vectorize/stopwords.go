package vectorize

import "strings"

// englishStopWords is the stop-word list applied before building page
// vectors. Keeping function words out of the vocabulary is what makes
// adjacent-page cosine similarity track topic rather than style.
var englishStopWords = map[string]struct{}{}

func init() {
	words := strings.Fields(`
		a about above after again against all am an and any are aren as at
		be because been before being below between both but by
		can cannot could couldn
		did didn do does doesn doing don down during
		each
		few for from further
		had hadn has hasn have haven having he her here hers herself him
		himself his how
		i if in into is isn it its itself
		just
		me more most mustn my myself
		no nor not now
		of off on once only or other our ours ourselves out over own
		same shan she should shouldn so some such
		than that the their theirs them themselves then there these they
		this those through to too
		under until up upon
		very
		was wasn we were weren what when where which while who whom why
		will with won would wouldn
		you your yours yourself yourselves`)
	for _, w := range words {
		englishStopWords[w] = struct{}{}
	}
}

// IsStopWord reports whether a lowercased token is an English stop word.
func IsStopWord(token string) bool {
	_, ok := englishStopWords[token]
	return ok
}
