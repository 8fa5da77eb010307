package azureopenai

import (
	"fmt"
	"strings"

	"github.com/overruled/enforcement-search/internal/core/domain"
)

const classificationPrompt = `You are a query classification expert for a legal enforcement document search system. Your job is to analyze user questions and classify them into one of these categories:

## QUERY TYPES:

### 1. STRUCTURED_SEARCH (structured_search)
Use for queries that can be converted into structured search filters. These typically involve:
- Specific date ranges ("from 2020 to 2023", "in 2022")
- Specific programs/sanctions ("Iran sanctions", "OFAC violations", "Cuba program")
- Specific document types ("voluntary disclosures", "enforcement actions")
- Specific industries ("financial services", "shipping")
- Specific penalty amounts or ranges ("over $1 million", "penalties above $500k")
- Specific respondent characteristics ("US companies", "foreign entities")

Examples:
- "Find OFAC violations related to Iran sanctions from 2020 to 2023"
- "Show me voluntary disclosures in the financial services industry"
- "Search for cases involving penalties over $1 million in 2022"
- "Find enforcement actions against shipping companies for Cuba sanctions"

### 2. SEMANTIC_SEARCH (semantic_search)
Use for complex questions that require semantic understanding and analysis of document content:
- Questions about legal interpretations or implications
- Questions asking "what", "how", "why" that need content analysis
- Questions requiring synthesis across multiple documents
- Questions about specific legal concepts or procedures
- Questions that need expert commentary analysis

Examples:
- "Can Iranian origin banknotes be imported into the U.S.?"
- "What are the compliance requirements for financial institutions dealing with sanctioned entities?"
- "How does OFAC determine penalty amounts?"
- "What constitutes a voluntary disclosure under OFAC regulations?"

### 3. STATISTICAL_QUERY (statistical_query)
Use for statistical or aggregate questions that would be better answered by database queries:
- Questions asking for counts, totals, averages, or statistics
- Questions comparing numbers across different categories
- Questions about trends over time (statistical trends, not interpretive)
- Questions asking for rankings or top/bottom lists

Examples:
- "How many violations were there in 2023?"
- "What's the average penalty amount for financial institutions?"
- "Which industry had the most violations last year?"
- "Show me the top 10 largest penalties by amount"

### 4. NEEDS_CLARIFICATION (needs_clarification)
Use when the query is too vague, ambiguous, or lacks sufficient context:
- Very short or unclear questions
- Questions that could apply to multiple categories
- Questions missing key context (time periods, specific topics, etc.)

Examples:
- "Tell me about sanctions"
- "What happened?"
- "Search for violations"

## INSTRUCTIONS:
1. Classify the query into one of the 4 types above
2. Provide a confidence score (0.0 to 1.0) for your classification
3. Explain your reasoning in 1-2 sentences
4. If classification is NEEDS_CLARIFICATION, provide a specific clarification question

## CONFIDENCE GUIDELINES:
- 0.9-1.0: Very clear classification, obvious category
- 0.7-0.8: Clear classification with minor ambiguity
- 0.5-0.6: Moderate confidence, could potentially fit multiple categories
- 0.0-0.4: Low confidence, ambiguous or unclear

Be decisive but honest about confidence levels. When in doubt between STRUCTURED_SEARCH and SEMANTIC_SEARCH, prefer SEMANTIC_SEARCH for better user experience.

## OUTPUT FORMAT:
Respond with a JSON object containing the following fields with no additional text:
{
    "query_type": "one of: structured_search, semantic_search, statistical_query, needs_clarification",
    "confidence": 0.85,
    "reasoning": "Brief explanation of why this classification was chosen",
    "clarification_question": "Only include if query_type is needs_clarification"
}`

const synthesisPrompt = `Review the provided documents and commentary to answer the user's question.

### Guidance ###

1. From the list of provided documents, list out which are relevant to the user's question.
2. For each relevant document, explain how it addresses the user's question. Make sure to cite the document title and put the title in brackets. Always refer to the documents by [title], not by number.
3. Commentary may also be relevant to the user's question. If so, explain how it addresses the user's question.
4. If there is no relevant information in the documents or commentary, say that you couldn't find any relevant information to answer the question. Under no circumstances should you answer with anything outside of the context of the search results. This is a legal search engine AI, accuracy is paramount. Do not make assumptions, inferences, or fabricate information.
5. If a document is only partially relevant, specify which parts are relevant and which are not.
6. Do not use any external knowledge or prior training; only use the provided search results.
7. Do not repeat the user's question in your answer.
8. A REFERENCE COUNT section, where present, states how many other items cite the document; mention it when it supports the document's weight.

### Output Format ###

- Always begin your answer stating 'Yes.', 'No.', 'It depends.', or 'It is unclear.', followed by identifying which documents you're referencing (e.g., "According to [Document Title]...").
- When referencing information, clearly indicate which document it came from.
- Use the document titles provided in the TITLE sections to identify sources.
- If information comes from multiple documents, mention all relevant sources.
- Be specific about which document contains which information.
- Summarize the expert commentary at the end if relevant to the user's question.
- Use bullet points for clarity where appropriate.`

// extractionPromptHeader precedes the controlled-vocabulary listing built at
// startup from the taxonomy tables.
const extractionPromptHeader = `You are given a user query against a legal enforcement document archive. Historically, users had to manually write the specific search query syntax themselves and manually select the filters they want to apply. Your job is to do this for them based on the query.

### Distinct Values for Filters ###
`

const extractionPromptFooter = `
### Output Format Guidance ###

Respond with a single JSON object and no additional text:

{
    "DateIssuedBegin": int?,
    "DateIssuedEnd": int?,
    "LegalIssue": [string, ...],
    "Program": [string, ...],
    "DocumentType": [string, ...],
    "RegulatoryProvision": [string, ...],
    "Published": boolean?,
    "EnforcementCharacterization": [string, ...],
    "NumberOfViolationsLow": int?,
    "NumberOfViolationsHigh": int?,
    "OFACPenalty": [string, ...],
    "AggregatePenalty": [string, ...],
    "Industry": [string, ...],
    "RespondentNationality": [string, ...],
    "VoluntaryDisclosure": [1 | 0 | -1, ...],
    "EgregiousCase": [1 | 0 | -1, ...],
    "KeyWords": string,
    "ExcludeCommentaries": boolean
}

VoluntaryDisclosure and EgregiousCase use 1 = yes, 0 = no, -1 = not stated.
ExcludeCommentaries is true when only document text should be searched, not commentary.
Preserve quoted phrases in KeyWords exactly, including the quotation marks.

### Examples ###

User: give me all documents that contain the words "global distribution system"
Assistant: {"DateIssuedBegin": null, "DateIssuedEnd": null, "LegalIssue": [], "Program": [], "DocumentType": [], "RegulatoryProvision": [], "Published": null, "EnforcementCharacterization": [], "NumberOfViolationsLow": null, "NumberOfViolationsHigh": null, "OFACPenalty": [], "AggregatePenalty": [], "Industry": [], "RespondentNationality": [], "VoluntaryDisclosure": [], "EgregiousCase": [], "KeyWords": "\"global distribution system\"", "ExcludeCommentaries": false}

User: give me all documents that contain the words "global distribution system" (but not if the term appears only in the commentary section)
Assistant: {"DateIssuedBegin": null, "DateIssuedEnd": null, "LegalIssue": [], "Program": [], "DocumentType": [], "RegulatoryProvision": [], "Published": null, "EnforcementCharacterization": [], "NumberOfViolationsLow": null, "NumberOfViolationsHigh": null, "OFACPenalty": [], "AggregatePenalty": [], "Industry": [], "RespondentNationality": [], "VoluntaryDisclosure": [], "EgregiousCase": [], "KeyWords": "\"global distribution system\"", "ExcludeCommentaries": true}

User: give me all OFAC FAQs that contain the name "deripaska"
Assistant: {"DateIssuedBegin": null, "DateIssuedEnd": null, "LegalIssue": [], "Program": [], "DocumentType": ["OFAC FAQs"], "RegulatoryProvision": [], "Published": null, "EnforcementCharacterization": [], "NumberOfViolationsLow": null, "NumberOfViolationsHigh": null, "OFACPenalty": [], "AggregatePenalty": [], "Industry": [], "RespondentNationality": [], "VoluntaryDisclosure": [], "EgregiousCase": [], "KeyWords": "deripaska", "ExcludeCommentaries": false}

User: give me all items that relate to section 515.204 of the CACR
Assistant: {"DateIssuedBegin": null, "DateIssuedEnd": null, "LegalIssue": [], "Program": [], "DocumentType": [], "RegulatoryProvision": ["515.204"], "Published": null, "EnforcementCharacterization": [], "NumberOfViolationsLow": null, "NumberOfViolationsHigh": null, "OFACPenalty": [], "AggregatePenalty": [], "Industry": [], "RespondentNationality": [], "VoluntaryDisclosure": [], "EgregiousCase": [], "KeyWords": "", "ExcludeCommentaries": false}

User: give me a list of all ofac enforcement actions from 2024
Assistant: {"DateIssuedBegin": 2024, "DateIssuedEnd": 2024, "LegalIssue": [], "Program": [], "DocumentType": ["Enforcement Releases", "OFAC Settlement Agreements"], "RegulatoryProvision": [], "Published": null, "EnforcementCharacterization": [], "NumberOfViolationsLow": null, "NumberOfViolationsHigh": null, "OFACPenalty": [], "AggregatePenalty": [], "Industry": [], "RespondentNationality": [], "VoluntaryDisclosure": [], "EgregiousCase": [], "KeyWords": "", "ExcludeCommentaries": false}`

// buildExtractionPrompt embeds the controlled vocabulary between the fixed
// header and footer. Field order is stable so the prompt is reproducible.
func buildExtractionPrompt(vocabulary map[string][]string) string {
	var b strings.Builder
	b.WriteString(extractionPromptHeader)
	for _, field := range []string{"DocumentType", "LegalIssue", "Program", "Industry"} {
		values := vocabulary[field]
		if len(values) == 0 {
			continue
		}
		fmt.Fprintf(&b, "\n<%s>\n", field)
		for _, v := range values {
			b.WriteString(v)
			b.WriteByte('\n')
		}
	}
	b.WriteString(extractionPromptFooter)
	return b.String()
}

// buildSynthesisInput renders the retrieved documents into the user message
// for answer generation. Documents are numbered for separation only; the
// system prompt instructs citation by title.
func buildSynthesisInput(question string, documents []domain.RetrievedDocument) string {
	formatted := make([]string, 0, len(documents))
	for i, doc := range documents {
		formatted = append(formatted, fmt.Sprintf("DOCUMENT %d:\n%s", i+1, doc.Content))
	}
	return fmt.Sprintf(`Create a comprehensive answer to the user's question using these search results.

User Question: %s

Search Results:
%s

Synthesize these results into a clear, complete answer. Remember to cite which documents contain the information you're referencing.`, question, strings.Join(formatted, "\n"))
}
