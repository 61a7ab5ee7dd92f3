package services

import "math"

// CalculateSectionScore turns the answered questions of one section into a
// 0-100 score. Each answered question adds abs(weight) to the denominator and
// its earned points to the numerator; unanswered questions contribute to
// neither, so the score is computed only over what was answered. A section
// with no answered questions scores 0.
func CalculateSectionScore(section Section, responses map[string]any) int {
	totalWeight := 0
	earned := 0.0
	for _, q := range section.Questions {
		answer, ok := responses[q.ID]
		if !ok || answer == nil {
			continue
		}
		totalWeight += absInt(q.Weight)
		earned += earnedPoints(q, answer)
	}
	if totalWeight <= 0 {
		return 0
	}
	return int(math.Round(earned / float64(totalWeight) * 100))
}

// CalculateOverallScore averages the section scores, excluding sections that
// score 0. A zero score means the section is unanswered, so it is left out of
// the mean rather than dragging it down. Returns 0 when nothing scores.
func CalculateOverallScore(sections []Section, responses map[string]any) int {
	total := 0
	count := 0
	for _, sec := range sections {
		if score := CalculateSectionScore(sec, responses); score > 0 {
			total += score
			count++
		}
	}
	if count == 0 {
		return 0
	}
	return int(math.Round(float64(total) / float64(count)))
}

func earnedPoints(q Question, answer any) float64 {
	switch q.Type {
	case QuestionBoolean:
		b, ok := answer.(bool)
		if !ok {
			return 0
		}
		// A positive weight rewards only "yes"; a negative weight rewards
		// only "no" (the bad thing did not happen).
		if b && q.Weight > 0 {
			return float64(q.Weight)
		}
		if !b && q.Weight < 0 {
			return float64(-q.Weight)
		}
		return 0
	case QuestionMultiple:
		sel, ok := answer.(string)
		if !ok {
			return 0
		}
		idx := optionIndex(q.Options, sel)
		if idx < 0 {
			// Answer not among the options: earns nothing but the question
			// still counted toward the denominator as answered.
			return 0
		}
		if len(q.Options) < 2 {
			// Single-option list: the ratio is undefined, grant full credit
			// for the only possible choice.
			return float64(q.Weight)
		}
		return float64(q.Weight) * float64(idx) / float64(len(q.Options)-1)
	case QuestionScale:
		v, ok := numericAnswer(answer)
		if !ok {
			return 0
		}
		if v < 0 {
			v = 0
		}
		if v > 100 {
			v = 100
		}
		return float64(q.Weight) * v / 100
	}
	return 0
}

// RiskLevelForScore derives the risk tier from a trust score. Never stored
// independently of the score it was derived from.
func RiskLevelForScore(trustScore int) RiskLevel {
	switch {
	case trustScore >= 85:
		return RiskLow
	case trustScore >= 70:
		return RiskMedium
	default:
		return RiskHigh
	}
}

// Badge is a cosmetic achievement tier derived from the trust score.
type Badge struct {
	Tier        string `json:"tier"`
	Name        string `json:"name"`
	MinScore    int    `json:"min_score"`
	Description string `json:"description"`
}

var badgeTiers = []Badge{
	{Tier: "platinum", Name: "Platinum Guardian", MinScore: 95, Description: "Elite security awareness - 95+ score"},
	{Tier: "gold", Name: "Gold Defender", MinScore: 85, Description: "Excellent security practices - 85+ score"},
	{Tier: "silver", Name: "Silver Protector", MinScore: 75, Description: "Good security awareness - 75+ score"},
	{Tier: "bronze", Name: "Bronze Sentinel", MinScore: 65, Description: "Basic security knowledge - 65+ score"},
}

// BadgeTiers lists the achievement tiers from highest to lowest.
func BadgeTiers() []Badge {
	return badgeTiers
}

// BadgeForScore returns the highest tier the score qualifies for, top-down
// first match, or nil below Bronze.
func BadgeForScore(trustScore int) *Badge {
	for i := range badgeTiers {
		if trustScore >= badgeTiers[i].MinScore {
			return &badgeTiers[i]
		}
	}
	return nil
}

// BadgesForScore returns the badge names to store on a vendor record.
func BadgesForScore(trustScore int) []string {
	if b := BadgeForScore(trustScore); b != nil {
		return []string{b.Name}
	}
	return nil
}

// ClampScore bounds a score to [0,100].
func ClampScore(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func optionIndex(options []string, sel string) int {
	for i, opt := range options {
		if opt == sel {
			return i
		}
	}
	return -1
}

// numericAnswer accepts the shapes a scale answer arrives in: native ints
// from Go callers and float64 from decoded JSON.
func numericAnswer(answer any) (float64, bool) {
	switch v := answer.(type) {
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case float64:
		return v, true
	case float32:
		return float64(v), true
	}
	return 0, false
}
