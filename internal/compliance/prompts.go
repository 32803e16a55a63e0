package compliance

import (
	"fmt"
	"strings"

	"github.com/creative-automation/backend/internal/config"
	"github.com/creative-automation/backend/internal/models"
)

func languageNote(locale, suffix string) string {
	name := models.LanguageName(locale)
	if name == "" {
		return ""
	}
	return fmt.Sprintf("\nNOTE: This message is in %s. %s", name, suffix)
}

func buildLegalPrompt(message, locale string) string {
	note := languageNote(locale, "Evaluate compliance based on the content meaning, regardless of the language.")
	return fmt.Sprintf(`You are a legal compliance checker for advertising content.%s

Review this campaign message for legal issues:
%q

Check for:
- Discriminatory language (e.g., targeting by race, gender, religion)
- Harmful or violent terms
- False claims or misleading statements
- Scammy or deceptive language

Respond ONLY with valid JSON in this exact format:
{"compliant": true, "reason": "explanation"}

or

{"compliant": false, "reason": "explanation"}`, note, message)
}

func formatGuidelines(g config.BrandGuidelines) string {
	var b strings.Builder
	b.WriteString("Core Values:\n")
	for _, key := range []string{"quality", "integrity", "environmentalism", "justice", "not_bound_by_convention"} {
		if v, ok := g.CoreValues[key]; ok {
			fmt.Fprintf(&b, "- %s\n", v)
		}
	}
	fmt.Fprintf(&b, "\nForbidden Terms:\n%s\n", strings.Join(g.ForbiddenTerms, ", "))
	b.WriteString("\nBrand Voice Principles:\n")
	for _, p := range g.VoicePrinciples {
		fmt.Fprintf(&b, "- %s\n", p)
	}
	return b.String()
}

func buildBrandPrompt(g config.BrandGuidelines, message, audience, locale string) string {
	note := languageNote(locale, "Evaluate compliance based on the content meaning and brand values, regardless of the language.")
	return fmt.Sprintf(`You are a brand compliance checker for %s.%s

Brand Guidelines:
%s

Campaign Message: %q
Target Audience: %q

Check if the message:
1. Aligns with the brand's environmental and social mission
2. Avoids prohibited language (guaranteed, miracle, buy now, limited time, etc.)
3. Focuses on quality, durability, and environmental responsibility
4. Uses authentic voice (not overly salesy or aggressive)

Respond ONLY with valid JSON in this exact format:
{"compliant": true, "reason": "explanation"}

or

{"compliant": false, "reason": "explanation"}`, g.BrandName, note, formatGuidelines(g), message, audience)
}

func buildFixPrompt(g config.BrandGuidelines, message, audience, issue, locale string) string {
	var note string
	if name := models.LanguageName(locale); name != "" {
		note = fmt.Sprintf("\nIMPORTANT: The fixed message MUST be written in %s, maintaining the same language as the original message.", name)
	}
	return fmt.Sprintf(`You are a compliance expert for %s advertising campaigns.%s

ORIGINAL MESSAGE: %q
TARGET AUDIENCE: %q

COMPLIANCE ISSUE:
%s

BRAND GUIDELINES:
%s

YOUR TASK:
Rewrite the campaign message to be fully compliant with both legal requirements and the brand guidelines.

REQUIREMENTS:
1. Make environmental claims specific and substantiated (avoid vague claims)
2. Remove any unverifiable or misleading statements
3. Maintain the brand's authentic voice
4. Keep the message concise (under 150 characters)
5. Focus on quality, durability, and responsibility
6. Avoid prohibited language and overly aggressive sales tactics
7. Write in the SAME language as the original message

Respond ONLY with valid JSON in this exact format:
{"fixed_message": "your compliant message here", "explanation": "brief explanation of changes"}`,
		g.BrandName, note, message, audience, issue, formatGuidelines(g))
}
