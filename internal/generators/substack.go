package generators

import "text/template"

// Artifact prefixes other generators read back as inputs.
const (
	ReaderDemographicsPrefix = "reader_demographics"
	WritingStylesPrefix      = "writing_styles"
)

func readersSpec() Spec {
	return Spec{
		Info: Info{
			ID:          "substack_readers",
			Name:        "Reader Demographics",
			Platform:    PlatformSubstack,
			Category:    CategoryDemographics,
			Description: "Niche Substack and Medium reader personas",
		},
		Prefix:       ReaderDemographicsPrefix,
		ItemKeys:     []string{"demographics", "reader_demographics", "profiles"},
		CountKey:     "num_demographics",
		ItemsKey:     "demographics",
		DefaultCount: 15,
		MaxTokens:    6000,
		Temperature:  0.8,
		System:       SystemPromptReaders,
		Prompt:       template.Must(template.New("substack_readers").Parse(PromptReaders)),
		Layout: &Layout{
			Title:        "Substack & Medium Reader Demographics",
			CountLabel:   "Total Demographics",
			TitleKey:     "label",
			TitleDefault: "Untitled Demographic",
			Groups: []Group{{Fields: []Field{
				{Key: "identity_markers", Label: "Core Identity Markers", Kind: Bullets},
				{Key: "reading_motivations", Label: "Primary Reading Motivations"},
				{Key: "content_preferences"},
				{Key: "auxiliary_interests", Label: "Auxiliary Interest Vectors", Kind: Bullets},
				{Key: "media_diet"},
				{Key: "engagement_patterns"},
				{Key: "psychographic_profile"},
				{Key: "discovery_pathways"},
				{Key: "persona_quote", Label: "Persona Quote", Kind: Quote},
			}}},
		},
	}
}

func stylesSpec() Spec {
	return Spec{
		Info: Info{
			ID:          "substack_styles",
			Name:        "Writing Styles",
			Platform:    PlatformSubstack,
			Category:    CategoryContent,
			Description: "Literary styles for Substack writers",
		},
		Prefix:       WritingStylesPrefix,
		ItemKeys:     []string{"styles", "writing_styles"},
		CountKey:     "num_styles",
		ItemsKey:     "styles",
		DefaultCount: 10,
		MaxTokens:    4000,
		Temperature:  0.8,
		System:       SystemPromptStyles,
		Prompt:       template.Must(template.New("substack_styles").Parse(PromptStyles)),
		Layout: &Layout{
			Title:        "Literary Writing Styles for Substack",
			CountLabel:   "Total Styles",
			TitleKey:     "name",
			TitleDefault: "Untitled Style",
			Groups: []Group{{Fields: []Field{
				{Key: "characteristics", Label: "Core Characteristics", Kind: Bullets},
				{Key: "tone_voice", Label: "Tone & Voice"},
				{Key: "sentence_structure"},
				{Key: "vocabulary", Label: "Vocabulary & Diction"},
				{Key: "influences", Label: "Literary Influences"},
				{Key: "best_for", Label: "Best Used For"},
				{Key: "example_opening", Label: "Example Opening", Kind: Quote},
			}}},
		},
	}
}
