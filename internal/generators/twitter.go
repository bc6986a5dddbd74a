package generators

import (
	"text/template"

	"github.com/josephgoksu/monadgen/internal/generation"
)

// Structure modes for the aphorism generator.
const (
	StructureDiverse = "diverse"
	StructureLegacy  = "legacy"

	// diverseMinTemperature is the floor applied in diverse mode.
	diverseMinTemperature = 0.85
)

var demographicItemKeys = []string{"demographics", "profiles", "personas", "tribes"}

var soft = Group{
	Heading: "SOFT INTERACTIONS (Being-in-the-World)",
	Fields: []Field{
		{Key: "cultural_capital_markers", Label: "Cultural Capital Markers", Kind: Bullets},
		{Key: "status_performance", Label: "Status Position & Performance"},
		{Key: "habitus", Label: "Habitus on Platform"},
		{Key: "capital_strategy", Label: "Cultural Capital Strategy"},
		{Key: "symbolic_boundaries"},
		{Key: "anxiety_patterns"},
		{Key: "subliminal_motivations"},
	},
}

var hard = Group{
	Heading: "HARD INTERACTIONS (Technical/Behavioral)",
	Fields: []Field{
		{Key: "composition_patterns"},
		{Key: "ui_signature", Label: "UI Interaction Signature"},
		{Key: "temporal_patterns"},
		{Key: "engagement_calculus"},
		{Key: "tool_psychology", Label: "Tool-at-Hand Psychology"},
	},
}

var crossCutting = []Field{
	{Key: "capitalization_aesthetic"},
	{Key: "quote_tweet_ethics", Label: "Quote-Tweet vs Reply Ethics"},
	{Key: "ratioing_relationship"},
	{Key: "thread_culture"},
}

func wizardSpec() Spec {
	return Spec{
		Info: Info{
			ID:          "twitter_wizard",
			Name:        "The Wizard (Implementation-Level)",
			Platform:    PlatformTwitter,
			Category:    CategoryDemographics,
			Description: "Demographics mapped against the published X ranking code",
		},
		Prefix:       "wizard_demographics",
		ItemKeys:     append(append([]string{}, demographicItemKeys...), "wizards"),
		CountKey:     "num_demographics",
		ItemsKey:     "demographics",
		DefaultCount: 18,
		MaxTokens:    12000,
		Temperature:  0.7,
		System:       SystemPromptWizard,
		Prompt:       template.Must(template.New("twitter_wizard").Parse(PromptWizard)),
		Meta: []MetaValue{
			{Key: "algorithm_source", Value: "github.com/twitter/the-algorithm (2023 release)"},
		},
		Layout: &Layout{
			Title: "The Wizard's Twitter Demographics",
			Preamble: []string{
				"*If the algorithm dictates perception which dictates monadistic realities...*",
				"",
				"1. **SOFT**: Cultural capital, habitus, being-in-the-world",
				"2. **HARD**: UI patterns, behavioral metrics, technical interactions",
				"3. **ALGORITHMIC**: Implementation-level understanding from the source code",
				"4. **META**: The 2023 gap, epistemic humility, monadistic reality construction",
			},
			CountLabel:   "Total Demographics",
			TitleKey:     "label",
			TitleDefault: "Untitled Demographic",
			Groups: []Group{
				soft,
				hard,
				{
					Heading: "ALGORITHMIC AWARENESS (Implementation-Level)",
					Fields: []Field{
						{Key: "code_literacy_level"},
						{Key: "signal_weights_awareness"},
						{Key: "six_thousand_features_problem", Label: "The 6000 Features Problem"},
						{Key: "video_watch_time_gaming"},
						{Key: "author_diversity_hacking"},
						{Key: "content_balance_theory"},
						{Key: "feedback_fatigue_awareness"},
						{Key: "safetylabel_sophistication", Label: "SafetyLabel Sophistication"},
						{Key: "visibility_filter_navigation"},
						{Key: "the_2023_gap", Label: "The 2023 Gap"},
						{Key: "folk_theory_vs_reality", Label: "Folk Theory vs Reality"},
					},
				},
				{Heading: "CROSS-CUTTING DIMENSIONS", Fields: crossCutting},
				{
					Heading: "META-AWARENESS",
					Fields: []Field{
						{Key: "monadistic_reality_construction"},
						{Key: "persona_quote", Label: "Persona Quote", Kind: Quote},
					},
				},
			},
		},
	}
}

func livedSpec() Spec {
	return Spec{
		Info: Info{
			ID:          "twitter_lived",
			Name:        "Lived Experience (Phenomenological)",
			Platform:    PlatformTwitter,
			Category:    CategoryDemographics,
			Description: "What algorithmic Twitter feels like from the inside",
		},
		Prefix:       "lived_experience_demographics",
		ItemKeys:     []string{"demographics", "profiles", "personas", "experiences"},
		CountKey:     "num_demographics",
		ItemsKey:     "demographics",
		DefaultCount: 18,
		MaxTokens:    12000,
		Temperature:  0.7,
		System:       SystemPromptLived,
		Prompt:       template.Must(template.New("twitter_lived").Parse(PromptLived)),
		Meta: []MetaValue{
			{Key: "theoretical_framework", Value: "Bourdieu + Heidegger + Monadism (informing, not visible)"},
		},
		Layout: &Layout{
			Title: "Lived Experiences of Algorithmic Twitter Reality",
			Preamble: []string{
				"These profiles capture what it FEELS like to exist in algorithmically-mediated social reality.",
			},
			CountLabel:   "Total Profiles",
			TitleKey:     "label",
			TitleDefault: "Untitled Experience",
			Groups: []Group{
				{Fields: []Field{
					{Key: "background_markers", Label: "Background"},
					{Key: "position_feeling", Label: "Where They Feel They Sit"},
				}},
				{
					Heading: "The Experience of Algorithmic Reality",
					Fields: []Field{
						{Key: "filter_bubble_awareness"},
						{Key: "tool_breakdown_moments", Label: "When The Machine Becomes Visible"},
						{Key: "invisible_hierarchy_navigation", Label: "Navigating Invisible Hierarchies"},
						{Key: "anxiety_and_dependence", Label: "Anxiety & Dependence"},
						{Key: "reality_tunnel", Label: "What Feels Real"},
					},
				},
				{
					Heading: "How They Act",
					Fields: []Field{
						{Key: "posting_rituals"},
						{Key: "engagement_patterns"},
						{Key: "invisible_rules", Label: "Rules They Sense But Can't Name"},
						{Key: "adaptation_to_changes", Label: "When The Algorithm Shifts"},
					},
				},
				{
					Heading: "Social Reality Construction",
					Fields: []Field{
						{Key: "information_bubble", Label: "Their Information Diet"},
						{Key: "parallel_realities_awareness", Label: "Awareness of Others' Different Realities"},
						{Key: "status_rituals_unnamed", Label: "Status Games They Can't Name"},
						{Key: "algorithmic_other", Label: "Who 'Gets Reach Naturally'"},
					},
				},
				{
					Heading: "Understanding & Relationship",
					Fields: []Field{
						{Key: "unseen_machinery_theory", Label: "Their Theory of How It Works"},
						{Key: "epistemic_position", Label: "What They Know They Don't Know"},
						{Key: "trapped_relationship", Label: "Relationship to Being Trapped"},
						{Key: "persona_quote", Label: "In Their Words", Kind: Quote},
					},
				},
			},
		},
	}
}

func softHardSpec() Spec {
	return Spec{
		Info: Info{
			ID:          "twitter_soft_hard",
			Name:        "Soft+Hard+Algorithmic",
			Platform:    PlatformTwitter,
			Category:    CategoryDemographics,
			Description: "Cultural capital, UI behaviour and ranking awareness",
		},
		Prefix:       "twitter_demographics",
		ItemKeys:     demographicItemKeys,
		CountKey:     "num_demographics",
		ItemsKey:     "demographics",
		DefaultCount: 12,
		MaxTokens:    10000,
		Temperature:  0.7,
		System:       SystemPromptSoftHard,
		Prompt:       template.Must(template.New("twitter_soft_hard").Parse(PromptSoftHard)),
		Layout: &Layout{
			Title: "Twitter/X Demographics: Soft + Hard + Algorithmic Awareness Mapping",
			Preamble: []string{
				"- **SOFT**: Cultural capital, habitus, being-in-the-world",
				"- **HARD**: UI patterns, behavioral metrics, technical interactions",
				"- **ALGORITHMIC**: Understanding and exploitation of X's recommendation system",
			},
			CountLabel:   "Total Demographics",
			TitleKey:     "label",
			TitleDefault: "Untitled Demographic",
			Groups: []Group{
				soft,
				hard,
				{
					Heading: "ALGORITHMIC AWARENESS (X's Recommendation System)",
					Fields: []Field{
						{Key: "algorithmic_literacy_level"},
						{Key: "graph_positioning_strategy", Label: "Graph Positioning Strategy (UTEG/GraphJet)"},
						{Key: "candidate_source_optimization"},
						{Key: "ranking_signal_awareness"},
						{Key: "engagement_prediction_gaming"},
						{Key: "visibility_filter_navigation"},
						{Key: "feed_composition_theory"},
					},
				},
				{
					Heading: "CROSS-CUTTING DIMENSIONS",
					Fields: append(append([]Field{}, crossCutting...),
						Field{Key: "persona_quote", Label: "Persona Quote", Kind: Quote}),
				},
			},
		},
	}
}

func aphorismsSpec() Spec {
	return Spec{
		Info: Info{
			ID:          "twitter_aphorisms",
			Name:        "X Aphorisms (Engagement-Optimized)",
			Platform:    PlatformTwitter,
			Category:    CategoryContent,
			Description: "Hard-hitting takes mapped to micro-demographics",
		},
		Prefix:       "x_aphorisms",
		ItemKeys:     []string{"aphorisms", "takes", "tweets"},
		CountKey:     "num_aphorisms",
		ItemsKey:     "aphorisms",
		DefaultCount: 25,
		MaxTokens:    8000,
		Temperature:  0.7,
		Tune: func(opts generation.Options, temperature float64) float64 {
			if structureMode(opts) == StructureDiverse {
				return max(diverseMinTemperature, temperature)
			}
			return temperature
		},
		System: SystemPromptAphorisms,
		Prompt: template.Must(template.New("twitter_aphorisms").Parse(PromptAphorisms)),
		PromptData: func(opts generation.Options, count int) map[string]any {
			return map[string]any{"Count": count, "Mode": structureMode(opts)}
		},
		Layout: &Layout{
			Title:      "Hard-Hitting Aphorisms for Intellectual Twitter",
			CountLabel: "Total Aphorisms",
			Groups: []Group{{Fields: []Field{
				{Key: "take", Label: "THE TAKE", Kind: Callout},
				{Key: "capitalization_strategy"},
				{Key: "format_style"},
				{Key: "aesthetic_tribe"},
				{Key: "target_demographic"},
				{Key: "intellectual_scaffolding", Label: "Intellectual Scaffolding", Kind: Bullets},
				{Key: "why_it_hits"},
				{Key: "rigor_score", Label: "Intellectual Rigor Score", Kind: Score},
				{Key: "engagement_vectors"},
				{Key: "formatting_notes"},
				{Key: "thread_potential"},
			}}},
		},
	}
}

// structureMode reads structure_mode, defaulting to diverse. Anything other
// than "legacy" is treated as diverse.
func structureMode(opts generation.Options) string {
	if opts.String(generation.OptStructureMode, StructureDiverse) == StructureLegacy {
		return StructureLegacy
	}
	return StructureDiverse
}
