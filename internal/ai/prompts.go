package ai

import (
	"fmt"
	"strings"

	"github.com/spec-kit/telecom-support/internal/repository"
)

const telecomClassifierPrompt = `You are a strict classifier for a telecom provider's technical support.
Decide whether the described problem concerns telecom services.

Telecom scope includes:
 - home and corporate internet (FTTH, GPON, xDSL)
 - Wi-Fi, routers, ONU/ONT units
 - IPTV and set-top boxes
 - IP telephony, SIP, VoIP
 - 4G/5G mobile connectivity
 - landline telephony

NOT in scope: vehicles, computer hardware repair, medicine, plumbing,
construction, household appliances.

Reply with strict JSON only:
{ "is_telecom": true }
or
{ "is_telecom": false }`

const assessmentPrompt = `You are the unified AI system of a telecom provider's technical support.
You ARE the support desk: never tell the user to call support, open a
ticket, or contact a specialist.

If the problem is not telecom-related, return JSON with an empty
engineer_advice, engineer_visit_probability 0 and initial_priority 30.

Otherwise produce:
 - client_advice: a short safe recommendation for the client
 - engineer_advice: technical steps for the field engineer
 - engineer_visit_probability: integer 0-100, how likely an on-site visit is needed
 - visit_explanation: one sentence justifying the probability
 - initial_priority: integer 30-70

Return JSON only, no markdown, no explanations:
{"client_advice": "...", "engineer_advice": "...", "engineer_visit_probability": 0, "visit_explanation": "...", "initial_priority": 50}`

const engineerPickPrompt = `You rank field engineers of a telecom support desk for a new ticket.
Pick the single best engineer considering current load (lower is better)
and how similar their past resolved tickets are to the new problem.

Return JSON only:
{"engineer_id": "...", "reason": "...", "confidence": 0.0}

engineer_id MUST be copied verbatim from the candidate list. confidence
is a number between 0 and 1.`

func buildAssessmentUserPrompt(description string, clientAge int, resolutions []repository.ResolutionSample, visits []repository.VisitSample) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Problem description:\n%s\n\n", description)
	fmt.Fprintf(&b, "Client age: %d\n\n", clientAge)

	b.WriteString("Recent final resolutions:\n")
	if len(resolutions) == 0 {
		b.WriteString("(no data)\n")
	}
	for _, sample := range resolutions {
		fmt.Fprintf(&b, "- %s\n", sample.FinalResolution)
	}

	b.WriteString("\nRecent visit-probability history:\n")
	if len(visits) == 0 {
		b.WriteString("(no data)\n")
	}
	for _, sample := range visits {
		fmt.Fprintf(&b, "- %s\n  probability: %d\n", sample.Description, sample.VisitProbability)
	}

	b.WriteString("\nReturn JSON only.")
	return b.String()
}

// EngineerCandidate is one entry of the advisor's candidate payload.
type EngineerCandidate struct {
	EngineerID    string
	FullName      string
	ActiveTickets int
	PastResolved  []string
}

func buildEngineerPickUserPrompt(description string, clientAge int, candidates []EngineerCandidate) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Problem description:\n%s\n\n", description)
	fmt.Fprintf(&b, "Client age: %d\n\n", clientAge)
	b.WriteString("Candidates:\n")
	for _, candidate := range candidates {
		fmt.Fprintf(&b, "- engineer_id: %s\n  name: %s\n  active_tickets: %d\n",
			candidate.EngineerID, candidate.FullName, candidate.ActiveTickets)
		for _, resolved := range candidate.PastResolved {
			fmt.Fprintf(&b, "  past: %s\n", resolved)
		}
	}
	b.WriteString("\nReturn JSON only.")
	return b.String()
}
