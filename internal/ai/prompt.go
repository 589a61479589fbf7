package ai

import "fmt"

// Section headings the model is asked to use
const (
	HeadingImprovedText      = "Improved Text"
	HeadingSuggestedHashtags = "Suggested Hashtags"
	HeadingEngagementAdvice  = "Engagement Advice"
)

const promptTemplate = `You are an experienced social media editor. Review the post text below and answer in Markdown using exactly these three sections, in this order:

## ` + HeadingImprovedText + `
The post rewritten with grammar, spelling and punctuation corrected. Keep the author's voice and meaning.

## ` + HeadingSuggestedHashtags + `
Between 5 and 10 relevant hashtags on a single line, separated by spaces.

## ` + HeadingEngagementAdvice + `
One short paragraph of advice on how to make the post more engaging.

Post text:
%s`

// BuildPrompt embeds text verbatim into the analysis instructions
func BuildPrompt(text string) string {
	return fmt.Sprintf(promptTemplate, text)
}
