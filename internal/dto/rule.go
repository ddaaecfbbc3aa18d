package dto

import "github.com/hfa-project/home_finance_app/internal/core/domain"

// CreateRuleRequest defines the payload for creating a category rule.
type CreateRuleRequest struct {
	Type             string `json:"type" binding:"required,oneof=merchant keyword regex"`
	Pattern          string `json:"pattern" binding:"required"`
	TargetCategoryID string `json:"targetCategoryID" binding:"required"`
	Priority         int    `json:"priority"`
}

// CreateRuleFromTransactionRequest defines the explicit operation that turns
// a manual categorization into a reusable rule.
type CreateRuleFromTransactionRequest struct {
	TransactionID string `json:"transactionID" binding:"required"`
	Priority      int    `json:"priority"`
}

// RuleTestRequest is the rule-authoring test contract: does this pattern
// match this sample text?
type RuleTestRequest struct {
	Type       string `json:"type" binding:"required,oneof=merchant keyword regex"`
	Pattern    string `json:"pattern" binding:"required"`
	SampleText string `json:"sampleText" binding:"required"`
}

// RuleTestResponse reports a match result. Error is set (and Matches false)
// for a malformed regex pattern; the endpoint never fails outright on one.
type RuleTestResponse struct {
	Matches bool   `json:"matches"`
	Error   string `json:"error,omitempty"`
}

// BatchRuleIDsRequest carries an explicit id list for batch delete.
type BatchRuleIDsRequest struct {
	RuleIDs []string `json:"ruleIDs" binding:"required,min=1"`
}

// BatchRuleToggleRequest carries an explicit id list plus the target active
// state for batch toggle.
type BatchRuleToggleRequest struct {
	RuleIDs []string `json:"ruleIDs" binding:"required,min=1"`
	Active  *bool    `json:"active" binding:"required"`
}

// BatchRuleResponse reports how many rules a batch operation affected.
// Ids outside the household are no-ops, not errors.
type BatchRuleResponse struct {
	Affected int `json:"affected"`
}

// RuleResponse defines the rule representation returned to clients.
type RuleResponse struct {
	RuleID           string `json:"ruleID"`
	Type             string `json:"type"`
	Pattern          string `json:"pattern"`
	TargetCategoryID string `json:"targetCategoryID"`
	Priority         int    `json:"priority"`
	IsActive         bool   `json:"isActive"`
	Broken           bool   `json:"broken"`
}

// ToRuleResponse maps a domain CategoryRule to its response form.
func ToRuleResponse(r *domain.CategoryRule) RuleResponse {
	return RuleResponse{
		RuleID:           r.RuleID,
		Type:             string(r.Type),
		Pattern:          r.Pattern,
		TargetCategoryID: r.TargetCategoryID,
		Priority:         r.Priority,
		IsActive:         r.IsActive,
		Broken:           r.Broken,
	}
}

// ToRuleResponseSlice maps a slice of domain CategoryRules.
func ToRuleResponseSlice(rs []domain.CategoryRule) []RuleResponse {
	out := make([]RuleResponse, len(rs))
	for i := range rs {
		out[i] = ToRuleResponse(&rs[i])
	}
	return out
}
