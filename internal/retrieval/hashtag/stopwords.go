// Framescout - Interactive Keyframe Retrieval and Feedback Re-ranking
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/framescout

package hashtag

// stopWords are function words and common verbs that never start or extend
// a hashtag phrase.
var stopWords = toSet(
	"a", "about", "above", "across", "after", "again", "against", "all", "almost", "along",
	"already", "also", "although", "always", "am", "among", "an", "and", "another", "any",
	"anyone", "anything", "are", "around", "as", "at", "away", "back", "be", "became",
	"because", "become", "been", "before", "behind", "being", "below", "beside", "between",
	"beyond", "both", "but", "by", "can", "cannot", "could", "did", "do", "does", "doing",
	"done", "down", "during", "each", "either", "else", "enough", "even", "ever", "every",
	"few", "for", "from", "front", "further", "get", "gets", "getting", "go", "goes", "going",
	"had", "has", "have", "having", "he", "her", "here", "hers", "herself", "him", "himself",
	"his", "how", "however", "i", "if", "in", "inside", "into", "is", "it", "its", "itself",
	"just", "least", "less", "like", "made", "make", "many", "may", "me", "might", "mine",
	"more", "most", "much", "must", "my", "myself", "near", "neither", "never", "next", "no",
	"nobody", "none", "nor", "not", "nothing", "now", "of", "off", "often", "on", "once",
	"one", "only", "onto", "or", "other", "others", "our", "ours", "ourselves", "out",
	"outside", "over", "own", "per", "perhaps", "please", "quite", "rather", "really", "same",
	"see", "seen", "shall", "she", "should", "show", "showing", "shows", "since", "so", "some",
	"someone", "something", "sometimes", "still", "such", "than", "that", "the", "their",
	"theirs", "them", "themselves", "then", "there", "these", "they", "this", "those",
	"though", "through", "throughout", "thus", "to", "together", "too", "toward", "towards",
	"under", "until", "up", "upon", "us", "very", "via", "was", "we", "well", "were", "what",
	"whatever", "when", "where", "whether", "which", "while", "who", "whoever", "whole",
	"whom", "whose", "why", "will", "with", "within", "without", "would", "yet", "you",
	"your", "yours", "yourself", "yourselves",
	"don't", "doesn't", "didn't", "isn't", "aren't", "wasn't", "weren't", "can't", "won't",
	"it's", "there's", "he's", "she's", "they're", "we're", "i'm",
)

func toSet(words ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}
