// Package analysts declares the known analyst identities, their display
// names, and the canonical ordering applied before rendering.
package analysts

import "strings"

// Reserved agent identities with special handling in the report pipeline.
const (
	RiskManagementAgent      = "risk_management_agent"
	PortfolioManagementAgent = "portfolio_management_agent"
	TechnicalAnalystAgent    = "technical_analyst_agent"
	FundamentalsAgent        = "fundamentals_agent"
	SentimentAgent           = "sentiment_agent"
	ValuationAgent           = "valuation_agent"
)

// RiskManagementDisplay is the display name of the trailing sentinel
// identity in the canonical order.
const RiskManagementDisplay = "Risk Management"

// Analyst describes one known agent identity.
type Analyst struct {
	ID      string
	Display string
	// Structured marks agents whose reasoning arrives as an
	// aspect-to-detail mapping rather than prose.
	Structured bool
}

// Roster returns the known analysts in canonical display order.
// Risk and portfolio management are deliberately absent: they are
// consumed elsewhere, not listed among analysts.
func Roster() []Analyst {
	return []Analyst{
		{ID: "aswath_damodaran_agent", Display: "Aswath Damodaran"},
		{ID: "benjamin_graham_agent", Display: "Benjamin Graham"},
		{ID: "bill_ackman_agent", Display: "Bill Ackman"},
		{ID: "cathie_wood_agent", Display: "Cathie Wood"},
		{ID: "charlie_munger_agent", Display: "Charlie Munger"},
		{ID: "michael_burry_agent", Display: "Michael Burry"},
		{ID: "peter_lynch_agent", Display: "Peter Lynch"},
		{ID: "phil_fisher_agent", Display: "Phil Fisher"},
		{ID: "stanley_druckenmiller_agent", Display: "Stanley Druckenmiller"},
		{ID: "warren_buffett_agent", Display: "Warren Buffett"},
		{ID: TechnicalAnalystAgent, Display: "Technical Analyst", Structured: true},
		{ID: FundamentalsAgent, Display: "Fundamentals", Structured: true},
		{ID: SentimentAgent, Display: "Sentiment"},
		{ID: ValuationAgent, Display: "Valuation", Structured: true},
	}
}

// DisplayName derives a human-readable name from an agent identity:
// the "_agent" suffix is dropped, underscores become spaces, and each
// word is title-cased. Unknown agents get the same treatment, so every
// identity renders consistently.
func DisplayName(agentID string) string {
	name := strings.TrimSuffix(agentID, "_agent")
	words := strings.Split(name, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// IsStructured reports whether the agent's reasoning is declared to be
// an aspect-to-detail mapping.
func IsStructured(agentID string) bool {
	for _, a := range Roster() {
		if a.ID == agentID {
			return a.Structured
		}
	}
	return false
}

// OrderingPolicy is a total order over analyst display names: known
// analysts get their configured rank, Risk Management always ranks
// last among knowns, and unrecognized names rank after that. Ties
// among unknowns are broken by the caller using a stable sort.
type OrderingPolicy struct {
	rank  map[string]int
	known int
}

// NewOrderingPolicy builds the policy from the canonical roster.
func NewOrderingPolicy() *OrderingPolicy {
	displays := make([]string, 0, len(Roster()))
	for _, a := range Roster() {
		displays = append(displays, a.Display)
	}
	return NewOrderingPolicyFor(displays)
}

// NewOrderingPolicyFor builds the policy from an explicit display-name
// order, as supplied by configuration.
func NewOrderingPolicyFor(displays []string) *OrderingPolicy {
	rank := make(map[string]int, len(displays)+1)
	for i, d := range displays {
		rank[d] = i
	}
	rank[RiskManagementDisplay] = len(displays)
	return &OrderingPolicy{rank: rank, known: len(displays)}
}

// Rank returns the sort rank for a display name. Unknown names rank
// after Risk Management.
func (p *OrderingPolicy) Rank(display string) int {
	if r, ok := p.rank[display]; ok {
		return r
	}
	return p.known + 1
}
