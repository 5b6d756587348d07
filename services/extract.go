package services

import "strings"

// The section markers below are a contract with the indexed document
// corpus: the source files label their sections with these exact
// strings. Extraction is literal and case-sensitive; change a marker
// only together with the corpus.

// ExtractAnswer shapes a reply directly from retrieved context when
// generation produced nothing. Blocks are scanned in retrieval order
// and rules are checked in a fixed precedence per block; the first hit
// wins. Returns "" only when context is empty.
func ExtractAnswer(message string, context []string) string {
	if len(context) == 0 {
		return ""
	}
	lowered := strings.ToLower(message)

	for _, block := range context {
		switch {
		case strings.Contains(lowered, "symptom") && strings.Contains(block, "Common Symptoms:"):
			return formatSection("Common Symptoms", cutSection(block, "Common Symptoms:", "General Advice"))
		case (strings.Contains(lowered, "advice") || strings.Contains(lowered, "self-care")) && strings.Contains(block, "General Advice"):
			return formatSection("General Advice / Self-care", cutSection(block, "General Advice", "Prevention"))
		case strings.Contains(lowered, "prevention") && strings.Contains(block, "Prevention Tips:"):
			return formatSection("Prevention Tips", cutSection(block, "Prevention Tips:", "When to Seek"))
		case (strings.Contains(lowered, "when to seek") || strings.Contains(lowered, "medical help")) && strings.Contains(block, "When to Seek"):
			return formatSection("When to Seek Medical Help", cutSection(block, "When to Seek", "Disclaimer"))
		case strings.Contains(lowered, "overview") && strings.Contains(block, "Overview:"):
			return "**Overview:**\n" + cutSection(block, "Overview:", "Common Symptoms")
		}
	}

	for _, cue := range []string{"tell me", "about", "what is", "details"} {
		if strings.Contains(lowered, cue) {
			if summary := summarizeBlock(context[0]); summary != "" {
				return summary
			}
			break
		}
	}

	return "Here's what I found:\n\n" + context[0]
}

// summarizeBlock builds a composite summary from a single block.
// Sections whose markers are missing are skipped, never an error.
func summarizeBlock(block string) string {
	var parts []string
	if overview := cutSection(block, "Overview:", "Common Symptoms"); overview != "" {
		parts = append(parts, "**Overview:**\n"+overview)
	}
	if symptoms := cutSection(block, "Common Symptoms:", "General Advice"); symptoms != "" {
		parts = append(parts, formatSection("Common Symptoms", symptoms))
	}
	if advice := cutSection(block, "General Advice", "Prevention"); advice != "" {
		parts = append(parts, formatSection("General Advice / Self-care", advice))
	}
	return strings.Join(parts, "\n\n")
}

// cutSection returns the trimmed text between the first occurrence of
// start and the first occurrence of end after it. A missing end marker
// runs the section to the end of the block; a missing start marker
// yields "".
func cutSection(block, start, end string) string {
	_, after, found := strings.Cut(block, start)
	if !found {
		return ""
	}
	section, _, _ := strings.Cut(after, end)
	return strings.TrimSpace(section)
}

// formatSection renders a section as a markdown bullet list under a
// bolded title. If no usable lines remain, the raw text is kept so the
// section still reaches the user.
func formatSection(title, text string) string {
	var bullets []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(strings.Trim(line, "- "))
		if line != "" {
			bullets = append(bullets, "- "+line)
		}
	}
	if len(bullets) == 0 {
		return "**" + title + ":**\n" + text
	}
	return "**" + title + ":**\n" + strings.Join(bullets, "\n")
}
