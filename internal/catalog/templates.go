package catalog

import "prompt-template-store/internal/domain/model"

// Pricing in euro cents. The bundle unlocks every template.
const (
	singleTemplatePriceCents = 289
	bundlePriceCents         = 979
	priceCurrency            = "eur"
)

// builtinTemplates returns the five prompt frameworks plus the
// full-access bundle entry. The RACE framework is the free tier.
func builtinTemplates() []model.Template {
	return []model.Template{
		{
			ID:          "race",
			Name:        "RACE Framework : Structured expert answer",
			Domain:      "Questions requiring expertise and thorough explanation",
			Description: "Role, Action, Context, Examples",
			Free:        true,
			Currency:    priceCurrency,
			Fields: []model.Field{
				{ID: "role", Label: "Role (e.g., nutritionist, data analyst, UX designer)", Type: model.FieldTypeText, Placeholder: "nutritionist"},
				{ID: "domain_specific", Label: "Domain / Area of expertise (short)", Type: model.FieldTypeText, Placeholder: "sports nutrition"},
				{ID: "complementary_skill", Label: "Complementary skill (short)", Type: model.FieldTypeText, Placeholder: "habit change coaching"},
				{ID: "action", Label: "Action required (analyze / create / evaluate / recommend)", Type: model.FieldTypeText, Placeholder: "create a detailed plan"},
				{ID: "situation", Label: "Situation summary", Type: model.FieldTypeTextarea, Placeholder: "Describe the situation briefly..."},
				{ID: "current_state", Label: "Current state", Type: model.FieldTypeTextarea, Placeholder: "Current metrics, status or conditions..."},
				{ID: "constraints", Label: "Constraints (time, budget, tools, other)", Type: model.FieldTypeTextarea, Placeholder: "List constraints..."},
				{ID: "goal", Label: "Goal (specific outcome)", Type: model.FieldTypeText, Placeholder: "Improve conversion by 15%"},
				{ID: "tone", Label: "Tone & style (e.g., professional, technical)", Type: model.FieldTypeText, Placeholder: "Professional yet approachable"},
				{ID: "format", Label: "Desired output format (e.g., plan, analysis)", Type: model.FieldTypeText, Placeholder: "Detailed plan with headings"},
			},
			Content: `You are an expert {{role}} with deep experience in {{domain_specific}} and {{complementary_skill}}. Your role is to provide structured, evidence-based guidance that is actionable and tailored to the user's situation.
Your task is to {{action}} based on the following context:
Context provided:

Situation: {{situation}}
Current state: {{current_state}}
Constraints: {{constraints}}
Goal: {{goal}}

Requirements for your response:

Role perspective: Answer strictly from the viewpoint of a {{role}}, using industry-standard practices and terminology where appropriate.
Action delivered: Provide {{format}} that directly addresses the user's needs.
Context awareness: Consider the specific circumstances mentioned, including {{constraints}}.
Explanation included: For each recommendation or point, explain:

- WHY it matters in this context
- HOW it addresses the user's goal
- WHAT the expected outcome is

Output format:
Your response must follow this structure:

Summary (2-3 sentences): Overview of the situation and your approach
Main Response (structured sections with clear headings)
Reasoning (explain the logic behind your recommendations)
Next Steps (actionable items the user can implement immediately)

Tone & Style:
{{tone}}

Avoid jargon unless specifically requested.
Use examples when helpful.`,
		},
		{
			ID:          "care",
			Name:        "CARE Framework : Immediate practical solution",
			Domain:      "Problems requiring concrete, implementable solutions",
			Description: "Context, Action, Result, Examples",
			PriceCents:  singleTemplatePriceCents,
			Currency:    priceCurrency,
			Fields: []model.Field{
				{ID: "domain", Label: "Domain (e.g., operations, marketing)", Type: model.FieldTypeText, Placeholder: "operations"},
				{ID: "specific_skill", Label: "Specific skill (e.g., process design)", Type: model.FieldTypeText, Placeholder: "process design"},
				{ID: "current_situation", Label: "Current situation", Type: model.FieldTypeTextarea, Placeholder: "Describe the current situation..."},
				{ID: "challenge", Label: "Main challenge", Type: model.FieldTypeTextarea, Placeholder: "What is the core challenge?"},
				{ID: "environment", Label: "Environment / setting", Type: model.FieldTypeText, Placeholder: "e.g., SMB, remote team"},
				{ID: "resources", Label: "Available resources", Type: model.FieldTypeTextarea, Placeholder: "People, budget, tools..."},
				{ID: "timeline", Label: "Timeline / deadline", Type: model.FieldTypeText, Placeholder: "e.g., 2 weeks"},
				{ID: "problem_main", Label: "Problem to solve (short)", Type: model.FieldTypeText, Placeholder: "Reduce onboarding time"},
				{ID: "expertise_level", Label: "Required user skill level to implement", Type: model.FieldTypeText, Placeholder: "Intermediate"},
				{ID: "result_measure", Label: "Measurable result expected", Type: model.FieldTypeText, Placeholder: "Reduce time by 30%"},
				{ID: "example_details", Label: "Example details (real-world example)", Type: model.FieldTypeTextarea, Placeholder: "Give a concrete example or case study..."},
			},
			Content: `You are a practical problem-solver specializing in {{domain}} with a track record of delivering real-world, actionable solutions. Your expertise lies in {{specific_skill}} and you excel at translating theory into practice.
Your task is to provide a concrete, implementable solution for the following situation.

CONTEXT:
Current situation: {{current_situation}}
Challenge faced: {{challenge}}
Environment/Setting: {{environment}}
Available resources: {{resources}}
Timeline: {{timeline}}

ACTION REQUIRED:
Create a step-by-step solution that addresses {{problem_main}}. The solution must be:
- Immediately actionable
- Realistic given the constraints listed
- Clear enough for someone with {{expertise_level}} to implement
- Focused on practical outcomes, not theory

RESULT EXPECTED:
The user should be able to achieve {{result_measure}} within {{timeline}}. Success looks like:
- {{result_measure}} achieved
- Clear process ownership
- Measurable improvement in key metrics

EXAMPLE REQUIREMENT:
Include at least one detailed, real-world example showing:
- What the solution looks like in practice
- How someone successfully implemented something similar
- Specific numbers or outcomes (use {{example_details}} if provided)

Output format:
Quick Overview (2-3 sentences)
Step-by-Step Action Plan (numbered steps with clear instructions and time estimates)
Expected Results (what success looks like)
Real Example (case study or illustration)
Troubleshooting Tips (common pitfalls to avoid)

Additional requirements:
Use simple, direct language. Focus on 'how-to' rather than 'why' and provide alternatives if the main approach won't work.`,
		},
		{
			ID:          "pain",
			Name:        "PAIN Framework : Solve urgent problem",
			Domain:      "Critical issues requiring quick resolution",
			Description: "Problem, Action, Information, Next steps",
			PriceCents:  singleTemplatePriceCents,
			Currency:    priceCurrency,
			Fields: []model.Field{
				{ID: "domain", Label: "Domain (e.g., product, ops, marketing)", Type: model.FieldTypeText, Placeholder: "product"},
				{ID: "core_issue", Label: "Core issue (short)", Type: model.FieldTypeText, Placeholder: "Low activation rate"},
				{ID: "impact", Label: "Impact / consequences", Type: model.FieldTypeTextarea, Placeholder: "Describe consequences..."},
				{ID: "attempted_solutions", Label: "Attempted solutions so far", Type: model.FieldTypeTextarea, Placeholder: "What was tried already?"},
				{ID: "why_it_matters", Label: "Why it matters / urgency", Type: model.FieldTypeText, Placeholder: "e.g., revenue risk"},
				{ID: "success_criteria", Label: "Success criteria (how to measure resolution)", Type: model.FieldTypeTextarea, Placeholder: "What defines success?"},
				{ID: "background", Label: "Background / additional context", Type: model.FieldTypeTextarea, Placeholder: "History or context..."},
				{ID: "constraints", Label: "Constraints", Type: model.FieldTypeTextarea, Placeholder: "Budget, time, policies..."},
				{ID: "stakeholders", Label: "Stakeholders involved", Type: model.FieldTypeText, Placeholder: "Who is impacted?"},
				{ID: "who_does_what", Label: "Who does what (owners)", Type: model.FieldTypeTextarea, Placeholder: "Assign roles and responsibilities..."},
			},
			Content: `You are a strategic problem-solver with expertise in {{domain}} and a proven ability to diagnose issues and deliver effective solutions quickly. You specialize in {{core_issue}} and have helped clients overcome similar challenges.

PROBLEM DEFINITION:
The user is facing the following problem:

Core issue: {{core_issue}}
Impact: {{impact}}
Attempted solutions: {{attempted_solutions}}
Why it matters: {{why_it_matters}}
Success criteria: {{success_criteria}}

Additional context:
Background: {{background}}
Constraints: {{constraints}}
Stakeholders: {{stakeholders}}

ACTION NEEDED:
Provide a clear, prioritized action plan to resolve this problem. Your solution must:
- Directly address the root cause, not just symptoms
- Be implementable with the resources/constraints mentioned
- Include quick wins AND long-term solutions
- Specify WHO does WHAT and WHEN (use {{who_does_what}})

INFORMATION TO PROVIDE:
Include key concepts, metrics to track, tools/resources required, and warning signs.

NEXT STEPS:
Immediate actions (within 24-48 hours)
Short-term actions (this week)
Medium-term actions (this month)
Follow-up checkpoint (when to reassess)

Output format:
Problem Breakdown
Recommended Solution
Critical Information
Prioritized Action Plan
Success Indicators

Tone: Direct, solution-focused, empowering.`,
		},
		{
			ID:          "create",
			Name:        "CREATE Framework : Custom complex project",
			Domain:      "Projects needing full control, personalization, and detailed output",
			Description: "Context, Request, Examples, Adjustments, Target",
			PriceCents:  singleTemplatePriceCents,
			Currency:    priceCurrency,
			Fields: []model.Field{
				{ID: "role_specific", Label: "Very specific role (e.g., senior UX researcher)", Type: model.FieldTypeText, Placeholder: "senior UX researcher"},
				{ID: "expertise", Label: "Expertise areas (comma separated)", Type: model.FieldTypeText, Placeholder: "user research, prototyping"},
				{ID: "experience", Label: "Experience summary (years/context)", Type: model.FieldTypeText, Placeholder: "7 years in SaaS"},
				{ID: "specialty", Label: "Specialty (what distinguishes you)", Type: model.FieldTypeText, Placeholder: "mixed-methods research"},
				{ID: "approach", Label: "Approach / methodology", Type: model.FieldTypeText, Placeholder: "lean research + rapid testing"},
				{ID: "values", Label: "Guiding values", Type: model.FieldTypeText, Placeholder: "user-centered, data-driven"},
				{ID: "primary_objective", Label: "Primary objective", Type: model.FieldTypeText, Placeholder: "Create a research plan"},
				{ID: "secondary_objectives", Label: "Secondary objectives (short)", Type: model.FieldTypeTextarea, Placeholder: "List secondary goals..."},
				{ID: "audience_usage", Label: "Target audience / usage", Type: model.FieldTypeText, Placeholder: "product team, execs"},
				{ID: "examples_ref", Label: "Examples (short descriptions)", Type: model.FieldTypeTextarea, Placeholder: "Example 1: ... Example 2: ..."},
				{ID: "emulate_aspects", Label: "What to emulate from examples", Type: model.FieldTypeTextarea, Placeholder: "Style elements to copy..."},
				{ID: "avoid_aspects", Label: "What to avoid", Type: model.FieldTypeTextarea, Placeholder: "Don't use..."},
				{ID: "depth_level", Label: "Depth level (beginner/expert)", Type: model.FieldTypeText, Placeholder: "expert-level"},
				{ID: "focus_areas", Label: "Focus areas", Type: model.FieldTypeText, Placeholder: "e.g., accessibility, onboarding"},
				{ID: "tone", Label: "Tone (formal/conversational/...)", Type: model.FieldTypeText, Placeholder: "conversational but precise"},
				{ID: "type_format", Label: "Type / format required (e.g., report, email)", Type: model.FieldTypeText, Placeholder: "Report with sections"},
				{ID: "structure_requirements", Label: "Structure requirements", Type: model.FieldTypeTextarea, Placeholder: "Section 1: ... Section 2: ..."},
				{ID: "length_spec", Label: "Length specification", Type: model.FieldTypeText, Placeholder: "~800 words"},
				{ID: "extras", Label: "Extras (data, quotes, visuals)", Type: model.FieldTypeTextarea, Placeholder: "Include stats or visuals suggestions..."},
			},
			Content: `CHARACTER / ROLE:
You are a {{role_specific}} with the following profile:
Expertise: {{expertise}}
Experience: {{experience}}
Specialty: {{specialty}}
Approach: {{approach}}
Values: {{values}}

REQUEST:
Your specific task is to {{primary_objective}}.

Primary objective: {{primary_objective}}
Secondary objectives: {{secondary_objectives}}
The deliverable should serve {{audience_usage}} and enable them to act.

EXAMPLES:
Examples provided: {{examples_ref}}
What to emulate: {{emulate_aspects}}
What to avoid: {{avoid_aspects}}

ADJUSTMENTS:
Depth level: {{depth_level}}
Focus areas: {{focus_areas}}
Tone: {{tone}}

TYPE / FORMAT:
Deliver in this format: {{type_format}}
Structure: {{structure_requirements}}
Length: {{length_spec}}
Extras: {{extras}}

Quality standards:
Ensure claims are actionable, specific and avoid vague filler. Output must be directly usable by the intended audience.`,
		},
		{
			ID:          "roses",
			Name:        "ROSES Framework : Strategic planning",
			Domain:      "High-stakes decisions requiring analysis and structured planning",
			Description: "Role, Objective, Steps, End Goal, Style",
			PriceCents:  singleTemplatePriceCents,
			Currency:    priceCurrency,
			Fields: []model.Field{
				{ID: "role", Label: "Strategic role (e.g., business consultant)", Type: model.FieldTypeText, Placeholder: "business consultant"},
				{ID: "expertise_1", Label: "Expertise 1", Type: model.FieldTypeText, Placeholder: "market strategy"},
				{ID: "expertise_2", Label: "Expertise 2", Type: model.FieldTypeText, Placeholder: "financial modeling"},
				{ID: "expertise_3", Label: "Expertise 3", Type: model.FieldTypeText, Placeholder: "operations design"},
				{ID: "distinctive_force", Label: "Distinctive strength", Type: model.FieldTypeText, Placeholder: "data-driven decision making"},
				{ID: "objective", Label: "Strategic objective (measurable)", Type: model.FieldTypeText, Placeholder: "Increase ARR by 20%"},
				{ID: "success_criteria", Label: "Success criteria (short)", Type: model.FieldTypeTextarea, Placeholder: "List measurable success criteria..."},
				{ID: "timeline", Label: "Timeline (short/medium/long)", Type: model.FieldTypeText, Placeholder: "12 months"},
				{ID: "budget", Label: "Budget constraints", Type: model.FieldTypeText, Placeholder: "$50k"},
				{ID: "resources", Label: "Available resources", Type: model.FieldTypeTextarea, Placeholder: "People, tech, partners..."},
				{ID: "limitations", Label: "Other limitations", Type: model.FieldTypeTextarea, Placeholder: "Regulatory, tech..."},
				{ID: "current_situation", Label: "Current situation & market context", Type: model.FieldTypeTextarea, Placeholder: "Describe current state..."},
				{ID: "key_challenges", Label: "Key challenges", Type: model.FieldTypeTextarea, Placeholder: "Challenge 1, 2, 3..."},
				{ID: "opportunities", Label: "Opportunities identified", Type: model.FieldTypeTextarea, Placeholder: "Opportunity 1, 2..."},
				{ID: "assumptions", Label: "Critical assumptions", Type: model.FieldTypeTextarea, Placeholder: "Assumption 1, 2..."},
				{ID: "alt_count", Label: "Number of alternatives to propose", Type: model.FieldTypeText, Placeholder: "2"},
			},
			Content: `ROLE:
You are a strategic {{role}} with experience in {{expertise_1}}, {{expertise_2}}, and {{expertise_3}}. You are known for {{distinctive_force}}.

OBJECTIVE:
The strategic objective: {{objective}}
Success means:
{{success_criteria}}
Timeline: {{timeline}}
Constraints: Budget {{budget}}, Resources {{resources}}, Other: {{limitations}}

SCENARIO - Current situation:
{{current_situation}}

Key challenges:
{{key_challenges}}

Opportunities:
{{opportunities}}

Critical assumptions:
{{assumptions}}

EXPECTED SOLUTION:
Provide a solution that covers:
- Primary recommendation (your best strategic approach)
- Supporting rationale
- {{alt_count}} alternative approaches with pros/cons
- Risk analysis and mitigation
Format result as:
Executive Summary, Strategic Analysis, Recommended Approach, Implementation Roadmap (phased), Risk Management, Alternatives, Success Metrics.`,
		},
		{
			ID:          model.BundleTemplateID,
			Name:        "All templates",
			Domain:      "Unlimited access to every framework",
			Description: "Full access bundle",
			Bundle:      true,
			PriceCents:  bundlePriceCents,
			Currency:    priceCurrency,
		},
	}
}
