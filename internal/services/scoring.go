package services

import (
	"math"
	"strconv"
)

// Score levels and tiers. The whole scoring path is pure: same input, same
// output, no clock, no I/O.

const (
	LevelVeryLow = "very-low"
	LevelLow     = "low"
	LevelNormal  = "normal"
	LevelHigh    = "high"
)

type TestosteroneEstimate struct {
	Value float64 `json:"value"`
	Level string  `json:"level"`
}

type ScoreResult struct {
	TotalScore            int                  `json:"total_score"`
	EstimatedTestosterone TestosteroneEstimate `json:"estimated_testosterone"`
	Level                 string               `json:"level"`
	RecommendedTier       string               `json:"recommended_tier"`
}

// NormalizedQuizData is the fixed-shape scoring input derived from the raw
// answer set.
type NormalizedQuizData struct {
	Age    float64
	Weight float64
	Height float64

	TrainingFrequency string // none, 1-2, 3-4, 5+
	TrainingType      string // strength, cardio, mixed, none
	SleepHours        float64
	Diet              string // balanced, high-protein, vegetarian, fast-food
	AlcoholPerWeek    float64
	Nicotine          string // never, sometimes, daily

	Libido           string // very-low, low, normal, high
	MorningErections string // daily, often, rarely, never
	MorningEnergy    string // very-low, low, normal, high
	Recovery         string // fast, average, slow
	Mood             string // stable, swings, irritable, low
}

// Defaults substituted for missing or NaN numeric inputs.
const (
	defaultAge    = 30
	defaultWeight = 75
	defaultHeight = 175
	defaultSleep  = 7
)

// ConvertAlcoholToNumber maps the categorical alcohol answer onto a
// weekly-drinks proxy. Unrecognized categories count as zero.
func ConvertAlcoholToNumber(category string) float64 {
	switch category {
	case "never":
		return 0
	case "rarely":
		return 2
	case "weekly":
		return 5
	case "often":
		return 10
	default:
		return 0
	}
}

// ConvertScaleToLevel buckets a 1-10 self-rating. Lower bounds are inclusive:
// 8 is already high, 5 normal, 3 low.
func ConvertScaleToLevel(value float64) string {
	switch {
	case value >= 8:
		return LevelHigh
	case value >= 5:
		return LevelNormal
	case value >= 3:
		return LevelLow
	default:
		return LevelVeryLow
	}
}

func orDefault(v, def float64) float64 {
	if v <= 0 || math.IsNaN(v) {
		return def
	}
	return v
}

// NormalizeAnswers flattens the raw answer map into the scoring input.
// Numeric answers arrive as JSON numbers (float64) but string digits are
// tolerated too.
func NormalizeAnswers(answers map[string]interface{}) NormalizedQuizData {
	return NormalizedQuizData{
		Age:               answerNumber(answers, "age"),
		Weight:            answerNumber(answers, "weight"),
		Height:            answerNumber(answers, "height"),
		TrainingFrequency: answerString(answers, "training_frequency"),
		TrainingType:      answerString(answers, "training_type"),
		SleepHours:        answerNumber(answers, "sleep"),
		Diet:              answerString(answers, "diet"),
		AlcoholPerWeek:    ConvertAlcoholToNumber(answerString(answers, "alcohol")),
		Nicotine:          answerString(answers, "nicotine"),
		Libido:            ConvertScaleToLevel(answerNumber(answers, "libido")),
		MorningErections:  answerString(answers, "morning_erections"),
		MorningEnergy:     ConvertScaleToLevel(answerNumber(answers, "morning_energy")),
		Recovery:          answerString(answers, "recovery"),
		Mood:              answerString(answers, "mood"),
	}
}

func answerNumber(answers map[string]interface{}, id string) float64 {
	switch v := answers[id].(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case string:
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return math.NaN()
}

func answerString(answers map[string]interface{}, id string) string {
	if s, ok := answers[id].(string); ok {
		return s
	}
	return ""
}

// CalculateScore maps the normalized lifestyle record onto a 0-100 composite
// index plus categorical outputs. The weights below are the product's pinned
// scoring table; the golden tests lock them in.
func CalculateScore(in NormalizedQuizData) ScoreResult {
	age := orDefault(in.Age, defaultAge)
	weight := orDefault(in.Weight, defaultWeight)
	height := orDefault(in.Height, defaultHeight)
	sleep := orDefault(in.SleepHours, defaultSleep)

	score := 50.0

	switch {
	case sleep >= 8:
		score += 8
	case sleep >= 7:
		score += 5
	case sleep >= 6:
		// neutral
	default:
		score -= 8
	}

	switch in.TrainingFrequency {
	case "5+":
		score += 10
	case "3-4":
		score += 8
	case "1-2":
		score += 4
	case "none":
		score -= 6
	}

	switch in.TrainingType {
	case "strength":
		score += 4
	case "mixed":
		score += 2
	case "none":
		score -= 2
	}

	switch {
	case in.AlcoholPerWeek == 0:
		score += 5
	case in.AlcoholPerWeek <= 2:
		score += 2
	case in.AlcoholPerWeek <= 5:
		score -= 3
	default:
		score -= 8
	}

	switch in.Nicotine {
	case "never":
		score += 4
	case "sometimes":
		score -= 4
	case "daily":
		score -= 10
	}

	switch in.Libido {
	case LevelHigh:
		score += 8
	case LevelNormal:
		score += 4
	case LevelLow:
		score -= 4
	case LevelVeryLow:
		score -= 10
	}

	switch in.MorningErections {
	case "daily":
		score += 8
	case "often":
		score += 4
	case "rarely":
		score -= 4
	case "never":
		score -= 10
	}

	switch in.MorningEnergy {
	case LevelHigh:
		score += 6
	case LevelNormal:
		score += 3
	case LevelLow:
		score -= 3
	case LevelVeryLow:
		score -= 8
	}

	switch in.Recovery {
	case "fast":
		score += 5
	case "slow":
		score -= 5
	}

	switch in.Mood {
	case "stable":
		score += 4
	case "swings":
		score -= 2
	case "irritable":
		score -= 4
	case "low":
		score -= 6
	}

	switch in.Diet {
	case "high-protein":
		score += 5
	case "balanced":
		score += 3
	case "fast-food":
		score -= 6
	}

	switch {
	case age < 30:
		score += 5
	case age < 40:
		score += 2
	case age < 50:
		score -= 2
	default:
		score -= 6
	}

	bmi := weight / math.Pow(height/100, 2)
	switch {
	case bmi >= 20 && bmi <= 27:
		score += 4
	case bmi >= 18.5 && bmi <= 30:
		// neutral
	default:
		score -= 5
	}

	total := int(math.Round(math.Min(100, math.Max(0, score))))

	// 0-100 index projected onto a 300-750 ng/dL band.
	estimate := 300 + float64(total)*4.5
	estimateLevel := LevelLow
	switch {
	case estimate >= 600:
		estimateLevel = "optimal"
	case estimate >= 450:
		estimateLevel = LevelNormal
	case estimate >= 350:
		estimateLevel = "suboptimal"
	}

	riskLevel := "high"
	switch {
	case total >= 70:
		riskLevel = "low"
	case total >= 45:
		riskLevel = "moderate"
	}

	tier := "t-boost-maintain"
	switch {
	case total < 45:
		tier = "t-boost-max"
	case total < 70:
		tier = "t-boost-standard"
	}

	return ScoreResult{
		TotalScore: total,
		EstimatedTestosterone: TestosteroneEstimate{
			Value: estimate,
			Level: estimateLevel,
		},
		Level:           riskLevel,
		RecommendedTier: tier,
	}
}
