package advisor

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/dvloznov/finance-advisor/internal/domain"
)

// promptTransaction is the wire shape of a movement inside the prompt's
// financialMovements block. Amounts are emitted as plain JSON numbers so the
// model sees exact values without quoting.
type promptTransaction struct {
	Category string      `json:"category"`
	Type     string      `json:"type"`
	Title    string      `json:"title"`
	Account  string      `json:"account"`
	Amount   json.Number `json:"amount"`
	Date     string      `json:"date"`
}

const promptTemplate = `You are a smart financial assistant inside a personal finance app.

IMPORTANT ANALYSIS RULES:
1. READ THE DATA CAREFULLY - Use exact amounts from the data, never make up numbers
2. RECURRENT EXPENSES - Only classify as "recurrent_expenses" if there are 2+ transactions of the same category or similar merchant within the time period
3. SINGLE TRANSACTIONS - A single transaction should be "excessive_expenses" if unusually high, or "savings_opportunities" for general advice
4. AMOUNTS - Always use the EXACT amounts from the transaction data
5. CONTEXT - Consider the transaction amounts in the local currency context (could be pesos, dollars, etc.)

ANALYSIS CONTEXT:
%s

You will receive two blocks of information in JSON format:

1. ` + "`previousResponses`" + `: Past recommendations already generated for the user
2. ` + "`financialMovements`" + `: User's financial transactions from the last 7 days

Your task is to generate ONE new personalized recommendation based on the user's financial activity.

CLASSIFICATION RULES:
- "excessive_expenses": Single large expense or high spending in one category
- "recurrent_expenses": 2+ similar transactions (same category/merchant) showing a pattern
- "savings_opportunities": General advice for optimization or positive financial behavior
- "no_transactions": Only if financialMovements is completely empty - encourage user to start tracking finances

SPECIAL CASE - NO TRANSACTIONS:
If financialMovements is empty, generate a motivational recommendation about the importance of tracking financial transactions regularly. Explain how recording expenses and income helps gain better control over personal finances, identify spending patterns, and make informed financial decisions.

RESPONSE REQUIREMENTS:
- Use EXACT amounts from the data
- Base recommendations on ACTUAL transaction patterns, not assumptions
- Avoid repeating ideas from previousResponses
- Title: Short, attention-grabbing (question or statement), MAX 100 characters
- Description: Clear insight based on real data, MAX 280 characters (keep it concise!)
- Provide actionable advice in brief, clear language

Return ONLY a JSON object with this exact structure:

{
  "title": "...",
  "desc": "...",
  "type": "..."
}

---

previousResponses:
%s

---

financialMovements:
%s`

const simplePromptTemplate = `Analyze these financial transactions and create ONE recommendation.

RULES:
- Use EXACT amounts from the data
- "recurrent_expenses" = 2+ similar transactions only
- "excessive_expenses" = single large expense
- "savings_opportunities" = general advice
- Title MAX 100 characters, description MAX 280 characters

DATA:
Movements: %s
Previous: %s

Return JSON only:
{
  "title": "specific title",
  "desc": "based on exact data with real amounts",
  "type": "correct_type"
}`

// BuildPrompt combines the digest, the raw transaction list and the prior
// recommendations into the full instruction string for the model. Output is
// deterministic for identical inputs: both data blocks preserve input order
// and values are serialized without reformatting.
func BuildPrompt(transactions []domain.Transaction, priors []domain.PriorRecommendation, digest string) string {
	return strings.TrimSpace(fmt.Sprintf(promptTemplate, digest, marshalPriors(priors), marshalMovements(transactions)))
}

// BuildSimplePrompt is the short composer variant for lightweight and test
// use. It omits the long-form rules and the digest but demands the same
// three-field JSON reply.
func BuildSimplePrompt(transactions []domain.Transaction, priors []domain.PriorRecommendation) string {
	return strings.TrimSpace(fmt.Sprintf(simplePromptTemplate, marshalMovements(transactions), marshalPriors(priors)))
}

func marshalMovements(transactions []domain.Transaction) string {
	block := make([]promptTransaction, 0, len(transactions))
	for _, t := range transactions {
		block = append(block, promptTransaction{
			Category: t.Category,
			Type:     string(t.Kind),
			Title:    t.Title,
			Account:  t.Account,
			Amount:   json.Number(t.Amount.String()),
			Date:     t.Date.String(),
		})
	}
	return marshalBlock(block)
}

func marshalPriors(priors []domain.PriorRecommendation) string {
	// A nil slice would serialize as JSON null; the prompt contract wants [].
	block := priors
	if block == nil {
		block = []domain.PriorRecommendation{}
	}
	return marshalBlock(block)
}

func marshalBlock(v interface{}) string {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		// Only reachable with unmarshalable values, which these DTOs are not.
		return "[]"
	}
	return string(data)
}
