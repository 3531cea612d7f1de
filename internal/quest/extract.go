package quest

import (
	"regexp"
	"strings"
)

// Sample is one worked example block from a part's narrative. Quest
// descriptions usually show several example blocks; the last one is the
// canonical worked example.
type Sample struct {
	Part    int
	Content string
}

// ExpectedAnswer is the boxed answer a part's narrative finally asks
// for. Earlier boxed values in the text are illustrative false answers,
// so only the last occurrence counts.
type ExpectedAnswer struct {
	Part  int
	Value string
}

var (
	sampleRe = regexp.MustCompile(`(?s)<pre class="note">(.*?)</pre>`)
	answerRe = regexp.MustCompile(`<pre>\s*<b>([^<]+)</b>\s*</pre>`)
)

// ExtractSamples returns every example block in the part's text in
// document order, with leading whitespace stripped. An empty result is
// normal: not every narrative carries a worked example.
func ExtractSamples(partText string) []string {
	matches := sampleRe.FindAllStringSubmatch(partText, -1)
	if len(matches) == 0 {
		return nil
	}
	samples := make([]string, 0, len(matches))
	for _, m := range matches {
		samples = append(samples, strings.TrimLeft(m[1], " \t\r\n"))
	}
	return samples
}

// ExtractExpectedAnswer returns the value of the last boxed-answer
// marker in the part's text, trimmed of surrounding whitespace. ok is
// false when the narrative has no such marker.
func ExtractExpectedAnswer(partText string) (string, bool) {
	matches := answerRe.FindAllStringSubmatch(partText, -1)
	if len(matches) == 0 {
		return "", false
	}
	return strings.TrimSpace(matches[len(matches)-1][1]), true
}

// PartText is one part's slice of an assembled document.
type PartText struct {
	Part int
	Text string
}

// SplitParts cuts an assembled document back into per-part slices along
// the part banners. A document with no banners is all part 1.
func SplitParts(document string) []PartText {
	parts := []PartText{{Part: 1, Text: document}}
	for _, n := range []int{2, 3} {
		last := &parts[len(parts)-1]
		if head, tail, found := strings.Cut(last.Text, partBanner(n)); found {
			last.Text = head
			parts = append(parts, PartText{Part: n, Text: tail})
		}
	}
	return parts
}

// LastSamples pairs, for every part present in the document, the
// canonical (last) sample block with that part's expected answer.
// Parts without a sample are omitted; a sample without an answer is
// returned with no matching ExpectedAnswer entry.
func LastSamples(document string) ([]Sample, []ExpectedAnswer) {
	var samples []Sample
	var answers []ExpectedAnswer
	for _, pt := range SplitParts(document) {
		blocks := ExtractSamples(pt.Text)
		if len(blocks) == 0 {
			continue
		}
		samples = append(samples, Sample{Part: pt.Part, Content: blocks[len(blocks)-1]})
		if value, ok := ExtractExpectedAnswer(pt.Text); ok {
			answers = append(answers, ExpectedAnswer{Part: pt.Part, Value: value})
		}
	}
	return samples, answers
}
