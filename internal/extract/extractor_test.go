package extract

import (
	"reflect"
	"testing"

	"github.com/mkrogh/veridoc/internal/model"
)

func claimsOfType(claims []model.Claim, t model.ClaimType) []model.Claim {
	var out []model.Claim
	for _, c := range claims {
		if c.Type == t {
			out = append(out, c)
		}
	}
	return out
}

func TestExtractor_ThresholdLine(t *testing.T) {
	e := NewExtractor()

	claims := e.Extract("run1", "CURB-65 ≥3 eller sat < 90%")

	thresholds := claimsOfType(claims, model.ClaimTypeThreshold)
	if len(thresholds) != 2 {
		t.Fatalf("expected exactly 2 THRESHOLD claims, got %d: %+v", len(thresholds), thresholds)
	}
	if len(claims) != 2 {
		t.Errorf("expected no claims from other categories, got %d total", len(claims))
	}

	if thresholds[0].NormalizedValue == nil || *thresholds[0].NormalizedValue != 3 {
		t.Errorf("expected first threshold value 3, got %v", thresholds[0].NormalizedValue)
	}
	if thresholds[1].NormalizedValue == nil || *thresholds[1].NormalizedValue != 90 {
		t.Errorf("expected second threshold value 90, got %v", thresholds[1].NormalizedValue)
	}
	if thresholds[1].Unit != "%" {
		t.Errorf("expected unit %%, got %q", thresholds[1].Unit)
	}
}

func TestExtractor_CitedDose(t *testing.T) {
	e := NewExtractor()

	cited := e.Extract("run1", "Adrenalin 0.5 mg i.m. [SRC001]")
	if len(cited) != 1 {
		t.Fatalf("expected exactly 1 claim, got %d: %+v", len(cited), cited)
	}
	c := cited[0]
	if c.Type != model.ClaimTypeDose {
		t.Fatalf("expected DOSE, got %s", c.Type)
	}
	if !reflect.DeepEqual(c.SourceRefs, []string{"SRC001"}) {
		t.Errorf("expected source refs [SRC001], got %v", c.SourceRefs)
	}
	if c.NormalizedValue == nil || *c.NormalizedValue != 0.5 {
		t.Errorf("expected value 0.5, got %v", c.NormalizedValue)
	}
	if c.Unit != "mg" {
		t.Errorf("expected unit mg, got %q", c.Unit)
	}

	uncited := e.Extract("run1", "Adrenalin 0.5 mg i.m.")
	if len(uncited) != 1 {
		t.Fatalf("expected exactly 1 uncited claim, got %d", len(uncited))
	}
	if c.Confidence <= uncited[0].Confidence {
		t.Errorf("cited confidence %.2f must exceed uncited %.2f",
			c.Confidence, uncited[0].Confidence)
	}
}

func TestExtractor_CommaDecimal(t *testing.T) {
	e := NewExtractor()

	claims := e.Extract("run1", "Adrenalin 0,5 mg i.m.")
	if len(claims) != 1 {
		t.Fatalf("expected 1 claim, got %d", len(claims))
	}
	if claims[0].NormalizedValue == nil || *claims[0].NormalizedValue != 0.5 {
		t.Errorf("expected comma decimal normalized to 0.5, got %v", claims[0].NormalizedValue)
	}
}

func TestExtractor_CitationForms(t *testing.T) {
	e := NewExtractor()

	cases := []string{
		"Adrenalin 0.5 mg i.m. [SRC001]",
		"Adrenalin 0.5 mg i.m. [S:SRC001]",
		"Adrenalin 0.5 mg i.m. [src001]",
	}
	for _, line := range cases {
		claims := e.Extract("run1", line)
		if len(claims) != 1 {
			t.Fatalf("%q: expected 1 claim, got %d", line, len(claims))
		}
		if !reflect.DeepEqual(claims[0].SourceRefs, []string{"SRC001"}) {
			t.Errorf("%q: expected refs [SRC001], got %v", line, claims[0].SourceRefs)
		}
	}
}

func TestExtractor_Recommendation(t *testing.T) {
	e := NewExtractor()

	claims := e.Extract("run1", "Patienten bør overvåges i mindst 4 timer.")
	recs := claimsOfType(claims, model.ClaimTypeRecommendation)
	if len(recs) != 1 {
		t.Fatalf("expected 1 RECOMMENDATION claim, got %d: %+v", len(recs), claims)
	}
}

func TestExtractor_Contraindication(t *testing.T) {
	e := NewExtractor()

	claims := e.Extract("run1", "Beta-blokkere må ikke gives ved ukontrolleret astma.")
	contras := claimsOfType(claims, model.ClaimTypeContraindication)
	if len(contras) != 1 {
		t.Fatalf("expected 1 CONTRAINDICATION claim, got %d: %+v", len(contras), claims)
	}
}

func TestExtractor_RedFlagPrefix(t *testing.T) {
	e := NewExtractor()

	claims := e.Extract("run1", "OBS: ring 112 ved mistanke om anafylaksi")
	flags := claimsOfType(claims, model.ClaimTypeRedFlag)
	if len(flags) != 1 {
		t.Fatalf("expected exactly 1 RED_FLAG claim, got %d: %+v", len(flags), claims)
	}
}

func TestExtractor_NumberedStepWithDose(t *testing.T) {
	e := NewExtractor()

	claims := e.Extract("run1", "1. Giv adrenalin 0.5 mg i.m.")
	steps := claimsOfType(claims, model.ClaimTypeAlgorithmStep)
	doses := claimsOfType(claims, model.ClaimTypeDose)
	if len(steps) != 1 {
		t.Errorf("expected 1 ALGORITHM_STEP claim, got %d", len(steps))
	}
	if len(doses) != 1 {
		t.Errorf("expected 1 DOSE claim, got %d", len(doses))
	}
	if len(steps) == 1 && len(doses) == 1 && steps[0].Confidence >= doses[0].Confidence {
		t.Errorf("step confidence %.2f should be below dose confidence %.2f",
			steps[0].Confidence, doses[0].Confidence)
	}
}

func TestExtractor_SkipsHeadingsAndBlanks(t *testing.T) {
	e := NewExtractor()

	claims := e.Extract("run1", "# Anafylaksi\n\nAdrenalin 0.5 mg i.m.")
	if len(claims) != 1 {
		t.Fatalf("expected 1 claim, got %d", len(claims))
	}
	if claims[0].LineNumber != 3 {
		t.Errorf("expected line 3, got %d", claims[0].LineNumber)
	}
}

func TestExtractor_Deterministic(t *testing.T) {
	e := NewExtractor()
	draft := "## Fremgangsmåde\n1. Giv adrenalin 0.5 mg i.m. [SRC001]\nCURB-65 ≥3 eller sat < 90%\nPatienten bør overvåges i 4 timer."

	first := e.Extract("run1", draft)
	second := e.Extract("run1", draft)

	if !reflect.DeepEqual(first, second) {
		t.Error("extraction must be deterministic for identical input")
	}
	if len(first) == 0 {
		t.Fatal("expected claims from the draft")
	}
}

func TestExtractor_ConfidenceCapped(t *testing.T) {
	e := NewExtractorWithConfig(model.ExtractConfig{CitedBonus: 0.5})

	claims := e.Extract("run1", "Adrenalin 0.5 mg i.m. [SRC001]")
	if len(claims) != 1 {
		t.Fatalf("expected 1 claim, got %d", len(claims))
	}
	if claims[0].Confidence > 1 {
		t.Errorf("confidence must be capped at 1, got %.2f", claims[0].Confidence)
	}
}

func TestExtractor_EmptyDraft(t *testing.T) {
	e := NewExtractor()
	if claims := e.Extract("run1", ""); len(claims) != 0 {
		t.Errorf("expected no claims from empty draft, got %d", len(claims))
	}
}
