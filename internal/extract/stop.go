package extract

import "strings"

// DefaultStopSequences are the markers the local inference scripts stop
// generation at. Output captured without them applied still needs cutting.
var DefaultStopSequences = []string{"<|user|>", "<|end|>", "<|endoftext|>", "<|im_end|>", "\n\n"}

// TruncateAtStop cuts text at the earliest occurrence of any stop sequence.
// Empty stop sequences are ignored.
func TruncateAtStop(text string, stops []string) string {
	cut := len(text)
	for _, s := range stops {
		if s == "" {
			continue
		}
		if i := strings.Index(text[:cut], s); i >= 0 {
			cut = i
		}
	}
	return text[:cut]
}
