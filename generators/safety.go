package generators

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"cloud.google.com/go/ai/generativelanguage/apiv1beta/generativelanguagepb"
)

type HarmCategory string

const (
	HarmHateSpeech       HarmCategory = "hate_speech"
	HarmDangerousContent HarmCategory = "dangerous_content"
	HarmHarassment       HarmCategory = "harassment"
	HarmSexuallyExplicit HarmCategory = "sexually_explicit"
)

type HarmThreshold string

const (
	BlockNone           HarmThreshold = "block_none"
	BlockOnlyHigh       HarmThreshold = "block_only_high"
	BlockMediumAndAbove HarmThreshold = "block_medium_and_above"
	BlockLowAndAbove    HarmThreshold = "block_low_and_above"
)

// SafetySettings maps harm categories to blocking thresholds.
// Categories not listed use the provider default.
type SafetySettings map[HarmCategory]HarmThreshold

func (s SafetySettings) Validate() error {
	for category, threshold := range s {
		if _, ok := geminiHarmCategories[category]; !ok {
			return fmt.Errorf("unknown harm category: %q", category)
		}
		if _, ok := geminiThresholds[threshold]; !ok {
			return fmt.Errorf("unknown threshold for %s: %q", category, threshold)
		}
	}
	return nil
}

var geminiHarmCategories = map[HarmCategory]generativelanguagepb.HarmCategory{
	HarmHateSpeech:       generativelanguagepb.HarmCategory_HARM_CATEGORY_HATE_SPEECH,
	HarmDangerousContent: generativelanguagepb.HarmCategory_HARM_CATEGORY_DANGEROUS_CONTENT,
	HarmHarassment:       generativelanguagepb.HarmCategory_HARM_CATEGORY_HARASSMENT,
	HarmSexuallyExplicit: generativelanguagepb.HarmCategory_HARM_CATEGORY_SEXUALLY_EXPLICIT,
}

var geminiThresholds = map[HarmThreshold]generativelanguagepb.SafetySetting_HarmBlockThreshold{
	BlockNone:           generativelanguagepb.SafetySetting_BLOCK_NONE,
	BlockOnlyHigh:       generativelanguagepb.SafetySetting_BLOCK_ONLY_HIGH,
	BlockMediumAndAbove: generativelanguagepb.SafetySetting_BLOCK_MEDIUM_AND_ABOVE,
	BlockLowAndAbove:    generativelanguagepb.SafetySetting_BLOCK_LOW_AND_ABOVE,
}

func (s SafetySettings) ToGemini() (ret []*generativelanguagepb.SafetySetting, err error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	for _, category := range slices.Sorted(maps.Keys(s)) {
		ret = append(ret, &generativelanguagepb.SafetySetting{
			Category:  geminiHarmCategories[category],
			Threshold: geminiThresholds[s[category]],
		})
	}
	return
}

func (s SafetySettings) String() string {
	var parts []string
	for _, category := range slices.Sorted(maps.Keys(s)) {
		parts = append(parts, string(category)+"="+string(s[category]))
	}
	return strings.Join(parts, ",")
}
