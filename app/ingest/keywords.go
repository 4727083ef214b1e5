package ingest

import (
	"strings"

	"golang.org/x/text/cases"
)

const maxKeywords = 5

var stopwords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "and": {}, "or": {}, "but": {},
	"in": {}, "on": {}, "at": {}, "to": {}, "for": {}, "of": {},
	"with": {}, "by": {}, "is": {}, "are": {}, "was": {}, "were": {},
	"be": {}, "been": {}, "have": {}, "has": {}, "had": {}, "do": {},
	"does": {}, "did": {}, "will": {}, "would": {}, "could": {}, "should": {},
}

var keywordFolder = cases.Fold()

// ExtractKeywords pulls up to maxKeywords terms from a title: tokens are
// case-folded, stripped of basic punctuation, and filtered against the
// stopword list. Short tokens carry too little signal and are dropped.
func ExtractKeywords(text string) []string {
	if text == "" {
		return nil
	}

	replacer := strings.NewReplacer(",", "", ".", "", "'", "", "\"", "", ":", "", ";", "", "?", "", "!", "")
	cleaned := replacer.Replace(keywordFolder.String(text))

	var keywords []string
	for _, word := range strings.Fields(cleaned) {
		if len(word) <= 2 {
			continue
		}
		if _, ok := stopwords[word]; ok {
			continue
		}
		keywords = append(keywords, word)
		if len(keywords) >= maxKeywords {
			break
		}
	}

	return keywords
}
