package tips

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// The model is asked for "Tip X for [query]: ..." sections, but it only
// follows that format loosely, and less so in other languages. ParseTips
// runs four strategies from strictest to loosest and stops at the first
// one that recovers at least one tip, so well-formed output is parsed
// precisely and degraded output still yields something usable.

var (
	strictHeaderRe = regexp.MustCompile(`Tip (\d+) for ([^:\n]+):`)
	strictNextRe   = regexp.MustCompile(`\nTip \d+`)

	// strategy 2: emphasized headers like **팁 1: 제목** or **Tip 2. Title**
	markedHeaderRe = regexp.MustCompile(`\*\*\s*((?:팁|조언|[Tt]ip|TIP)\s*\d+[^*]*?)\s*\*\*`)

	blankLineRe = regexp.MustCompile(`\n[ \t]*\n`)
	boldWrapRe  = regexp.MustCompile(`(?s)^\*\*.+\*\*$`)
	numberedRe  = regexp.MustCompile(`^\d+\s*[.:]`)
	digitRe     = regexp.MustCompile(`\d`)
)

// tipWords are the labels that introduce a tip in model output we have
// seen: Korean 팁/조언 plus the Latin word.
var tipWords = []string{"팁", "조언", "tip"}

// ParseTips extracts tips from raw model output, in order of appearance.
// Never panics; unrecognizable input yields an empty slice.
func ParseTips(text string) []Tip {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	strategies := []func(string) []Tip{
		parseStrict,
		parseMarked,
		parseBlocks,
		parseLines,
	}

	for _, strategy := range strategies {
		if tips := strategy(text); len(tips) > 0 {
			for i := range tips {
				tips[i].ID = uuid.NewString()
			}
			return tips
		}
	}
	return nil
}

// parseStrict recognizes the requested "Tip <n> for <context>: <content>"
// shape, content running until the next "Tip <n>" line or end of text.
func parseStrict(text string) []Tip {
	var tips []Tip

	pos := 0
	for pos < len(text) {
		loc := strictHeaderRe.FindStringSubmatchIndex(text[pos:])
		if loc == nil {
			break
		}
		number := text[pos+loc[2] : pos+loc[3]]
		context := text[pos+loc[4] : pos+loc[5]]

		contentStart := pos + loc[1]
		contentEnd := len(text)
		if next := strictNextRe.FindStringIndex(text[contentStart:]); next != nil {
			contentEnd = contentStart + next[0]
		}

		body, details := splitLines(text[contentStart:contentEnd])
		tips = append(tips, Tip{
			Title:   fmt.Sprintf("Tip %s for %s", number, context),
			Body:    body,
			Details: details,
		})
		pos = contentEnd
	}
	return tips
}

// parseMarked recognizes emphasized headers carrying a tip word and a
// number; the section content runs to the next emphasized header or end
// of text and is split into body and details on blank-line boundaries.
func parseMarked(text string) []Tip {
	matches := markedHeaderRe.FindAllStringSubmatchIndex(text, -1)
	if matches == nil {
		return nil
	}

	var tips []Tip
	for i, m := range matches {
		title := strings.TrimSpace(text[m[2]:m[3]])

		contentStart := m[1]
		contentEnd := len(text)
		if i+1 < len(matches) {
			contentEnd = matches[i+1][0]
		}

		blocks := splitBlocks(text[contentStart:contentEnd])
		tip := Tip{Title: title}
		if len(blocks) > 0 {
			tip.Body = blocks[0]
			tip.Details = strings.Join(blocks[1:], "\n\n")
		}
		tips = append(tips, tip)
	}
	return tips
}

// parseBlocks treats blank-line-separated sections as alternating title
// and content. A section is a title if it is emphasized, starts with a
// numbered marker, or mentions a tip word; the section after a title is
// consumed as its content.
func parseBlocks(text string) []Tip {
	sections := blankLineRe.Split(text, -1)

	var tips []Tip
	for i := 0; i < len(sections); i++ {
		sec := strings.TrimSpace(sections[i])
		if sec == "" || !isBlockTitle(sec) {
			continue
		}

		tip := Tip{Title: stripMarkers(sec)}
		if i+1 < len(sections) {
			tip.Body, tip.Details = splitLines(sections[i+1])
			i++
		}
		tips = append(tips, tip)
	}
	return tips
}

// parseLines is the last resort: scan line by line, starting a new tip at
// anything that resembles a heading and pouring the rest into body, then
// details.
func parseLines(text string) []Tip {
	var tips []Tip
	var cur *Tip

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		if isTitleLine(line) {
			if cur != nil {
				tips = append(tips, *cur)
			}
			cur = &Tip{Title: stripMarkers(line)}
			continue
		}

		if cur == nil {
			continue
		}
		switch {
		case cur.Body == "":
			cur.Body = line
		case cur.Details == "":
			cur.Details = line
		default:
			cur.Details += "\n" + line
		}
	}

	if cur != nil {
		tips = append(tips, *cur)
	}
	return tips
}

func isBlockTitle(sec string) bool {
	if boldWrapRe.MatchString(sec) {
		return true
	}
	if numberedRe.MatchString(sec) {
		return true
	}
	return containsTipWord(sec)
}

func isTitleLine(line string) bool {
	if strings.Contains(line, "**") {
		return true
	}
	if numberedRe.MatchString(line) {
		return true
	}
	return containsTipWord(line) && digitRe.MatchString(line)
}

func containsTipWord(s string) bool {
	lower := strings.ToLower(s)
	for _, w := range tipWords {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}

func stripMarkers(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(s, "**", ""))
}

// splitLines trims content and splits it into a first-line body and
// newline-joined details.
func splitLines(content string) (body, details string) {
	content = strings.TrimSpace(content)
	if content == "" {
		return "", ""
	}
	lines := strings.Split(content, "\n")
	body = strings.TrimSpace(lines[0])
	details = strings.TrimSpace(strings.Join(lines[1:], "\n"))
	return body, details
}

// splitBlocks trims content and splits it on blank-line boundaries,
// dropping empty blocks.
func splitBlocks(content string) []string {
	var blocks []string
	for _, b := range blankLineRe.Split(strings.TrimSpace(content), -1) {
		if b = strings.TrimSpace(b); b != "" {
			blocks = append(blocks, b)
		}
	}
	return blocks
}
