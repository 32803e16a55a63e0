package compliance

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/creative-automation/backend/internal/ai"
	"github.com/creative-automation/backend/internal/config"
	"github.com/creative-automation/backend/internal/models"
	"go.uber.org/zap"
)

// DefaultMaxAttempts bounds the auto-fix loop when no override is configured.
const DefaultMaxAttempts = 5

// LogSink receives human-readable progress lines for the campaign log.
type LogSink interface {
	Log(message string)
}

type nopSink struct{}

func (nopSink) Log(string) {}

// Agent validates a campaign message against legal and brand rules using a
// text oracle, auto-fixing rejected messages within a bounded attempt budget.
//
// Checks fail OPEN: when the oracle call errors or its response cannot be
// parsed, the check passes with a diagnostic reason. This is a deliberate
// policy to avoid blocking legitimate campaigns on oracle formatting noise.
type Agent struct {
	oracle      ai.TextOracle
	guidelines  config.BrandGuidelines
	maxAttempts int
	log         *zap.Logger
}

func NewAgent(oracle ai.TextOracle, guidelines config.BrandGuidelines, maxAttempts int, log *zap.Logger) *Agent {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	return &Agent{
		oracle:      oracle,
		guidelines:  guidelines,
		maxAttempts: maxAttempts,
		log:         log,
	}
}

// validation run states
type state int

const (
	stateCheckLegal state = iota
	stateCheckBrand
	stateFix
	statePass
	stateRejected
)

// run carries the mutable context threaded through state transitions.
type run struct {
	message        string
	audience       string
	locale         string
	attempt        int
	violationKind  string
	violationIssue string
	fixes          []models.FixRecord
	rejectedReason string
}

// ValidateCampaign runs the compliance state machine on the brief's message.
// When the run passes after one or more fixes, the returned brief is a copy
// carrying the fixed message; when it passes untouched, the brief is nil.
func (a *Agent) ValidateCampaign(ctx context.Context, brief *models.CampaignBrief, autoFix bool, locale string, sink LogSink) (models.ComplianceOutcome, *models.CampaignBrief) {
	if sink == nil {
		sink = nopSink{}
	}

	r := &run{
		message:  brief.CampaignMessage,
		audience: brief.TargetAudience,
		locale:   locale,
	}

	st := stateCheckLegal
	for st != statePass && st != stateRejected {
		switch st {
		case stateCheckLegal:
			st = a.stepCheck(ctx, r, models.ViolationLegal, autoFix, sink)
		case stateCheckBrand:
			st = a.stepCheck(ctx, r, models.ViolationBrand, autoFix, sink)
		case stateFix:
			st = a.stepFix(ctx, r, sink)
		}
	}

	if st == stateRejected {
		a.log.Info("campaign rejected",
			zap.String("campaign_id", brief.CampaignID),
			zap.String("reason", r.rejectedReason),
		)
		return models.ComplianceOutcome{Compliant: false, Reason: r.rejectedReason}, nil
	}

	if len(r.fixes) > 0 {
		sink.Log(fmt.Sprintf("Compliance achieved after %d fix(es)", len(r.fixes)))
		outcome := models.ComplianceOutcome{
			Compliant: true,
			Reason:    "Campaign is compliant after auto-fixes",
			Fixes:     r.fixes,
		}
		return outcome, brief.WithMessage(r.message)
	}

	sink.Log("All compliance checks passed")
	return models.ComplianceOutcome{Compliant: true, Reason: "Campaign is compliant with all requirements"}, nil
}

// stepCheck runs the legal or brand check and decides the next state.
func (a *Agent) stepCheck(ctx context.Context, r *run, kind string, autoFix bool, sink LogSink) state {
	var compliant bool
	var reason string
	switch kind {
	case models.ViolationLegal:
		compliant, reason = a.checkLegal(ctx, r.message, r.locale)
	default:
		compliant, reason = a.checkBrand(ctx, r.message, r.audience, r.locale)
	}

	label := checkLabel(kind)
	if compliant {
		sink.Log(fmt.Sprintf("%s compliance check: PASSED", label))
		if kind == models.ViolationLegal {
			return stateCheckBrand
		}
		return statePass
	}

	sink.Log(fmt.Sprintf("%s compliance check: FAILED - %s", label, reason))

	if !autoFix {
		r.rejectedReason = fmt.Sprintf("%s compliance failed: %s", label, reason)
		return stateRejected
	}
	if r.attempt >= a.maxAttempts-1 {
		r.rejectedReason = fmt.Sprintf("%s compliance failed after %d auto-fix attempts: %s", label, a.maxAttempts, reason)
		return stateRejected
	}

	r.violationKind = kind
	r.violationIssue = fmt.Sprintf("%s issue: %s", label, reason)
	sink.Log(fmt.Sprintf("Attempt %d/%d to fix %s compliance...", r.attempt+1, a.maxAttempts, strings.ToLower(label)))
	return stateFix
}

// stepFix asks the oracle to rewrite the message for the recorded violation.
// A failed fix still consumes an attempt and retries while budget remains;
// a successful fix re-enters the legal check, since a brand-only rewrite can
// reintroduce a legal issue.
func (a *Agent) stepFix(ctx context.Context, r *run, sink LogSink) state {
	fixed, explanation, err := a.requestFix(ctx, r.message, r.audience, r.violationIssue, r.locale)
	if err != nil {
		r.attempt++
		if r.attempt < a.maxAttempts {
			sink.Log(fmt.Sprintf("Fix failed (%v), retrying... (%d/%d)", err, r.attempt+1, a.maxAttempts))
			return stateFix
		}
		r.rejectedReason = fmt.Sprintf("%s compliance failed: Could not generate valid fix after %d attempts",
			checkLabel(r.violationKind), a.maxAttempts)
		return stateRejected
	}

	r.fixes = append(r.fixes, models.FixRecord{
		Attempt:     r.attempt + 1,
		Type:        r.violationKind,
		Original:    r.message,
		Fixed:       fixed,
		Explanation: explanation,
	})
	r.message = fixed
	r.attempt++
	sink.Log("Fix successful, re-checking compliance...")
	return stateCheckLegal
}

func checkLabel(kind string) string {
	if kind == models.ViolationLegal {
		return "Legal"
	}
	return "Brand"
}

// checkResponse is the JSON object both checks expect from the oracle.
type checkResponse struct {
	Compliant bool   `json:"compliant"`
	Reason    string `json:"reason"`
}

func (a *Agent) checkLegal(ctx context.Context, message, locale string) (bool, string) {
	return a.runCheck(ctx, buildLegalPrompt(message, locale))
}

func (a *Agent) checkBrand(ctx context.Context, message, audience, locale string) (bool, string) {
	return a.runCheck(ctx, buildBrandPrompt(a.guidelines, message, audience, locale))
}

// runCheck executes one oracle check, failing open on any error.
func (a *Agent) runCheck(ctx context.Context, prompt string) (bool, string) {
	response, err := a.oracle.Complete(ctx, prompt)
	if err != nil {
		a.log.Warn("compliance check oracle error, defaulting to compliant", zap.Error(err))
		return true, fmt.Sprintf("Compliance check completed with warning: %v", err)
	}

	raw, ok := extractJSON(response)
	if !ok {
		a.log.Warn("compliance check response not parseable, defaulting to compliant")
		return true, "Compliance check completed (response format issue)"
	}

	var result checkResponse
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		a.log.Warn("compliance check JSON invalid, defaulting to compliant", zap.Error(err))
		return true, "Compliance check completed (response format issue)"
	}

	reason := result.Reason
	if reason == "" {
		reason = "No reason provided"
	}
	return result.Compliant, reason
}

// fixResponse is the JSON object the fix prompt expects back.
type fixResponse struct {
	FixedMessage string `json:"fixed_message"`
	Explanation  string `json:"explanation"`
}

func (a *Agent) requestFix(ctx context.Context, message, audience, issue, locale string) (string, string, error) {
	response, err := a.oracle.Complete(ctx, buildFixPrompt(a.guidelines, message, audience, issue, locale))
	if err != nil {
		return "", "", fmt.Errorf("fix generation failed: %w", err)
	}

	raw, ok := extractJSON(response)
	if !ok {
		return "", "", fmt.Errorf("no JSON found in oracle response")
	}

	var result fixResponse
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		return "", "", fmt.Errorf("JSON parsing failed: %w", err)
	}
	if strings.TrimSpace(result.FixedMessage) == "" {
		return "", "", fmt.Errorf("oracle returned empty fixed message")
	}

	return result.FixedMessage, result.Explanation, nil
}

// extractJSON pulls the first '{' through last '}' span out of free-form
// oracle text, which often wraps the object in prose or code fences.
func extractJSON(response string) (string, bool) {
	start := strings.Index(response, "{")
	end := strings.LastIndex(response, "}")
	if start < 0 || end <= start {
		return "", false
	}
	return response[start : end+1], true
}
