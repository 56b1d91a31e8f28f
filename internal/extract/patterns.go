package extract

import (
	"regexp"

	"github.com/mkrogh/veridoc/internal/model"
)

// pattern is one lexical rule inside a category catalog. valueGroup and
// unitGroup are submatch indices (0 = not extracted).
type pattern struct {
	name       string
	re         *regexp.Regexp
	valueGroup int
	unitGroup  int
}

// catalog is the ordered, immutable pattern set for one claim category.
// Catalogs are built once at extractor construction and never mutated.
type catalog struct {
	claimType model.ClaimType
	base      float64 // Base confidence for an uncited line
	patterns  []pattern
}

// Base confidence per category. Only the relative ordering matters:
// a cited claim always scores higher than the same claim uncited.
const (
	baseDose             = 0.85
	baseThreshold        = 0.85
	baseRecommendation   = 0.70
	baseContraindication = 0.80
	baseRedFlag          = 0.75
	baseAlgorithmStep    = 0.60
)

// doseUnits covers mass, volume, international units and concentration,
// optionally qualified per kg / per day.
const doseUnits = `(?:mg|mcg|µg|ug|g|ml|l|ie|iu|mmol)(?:/(?:kg|døgn|dag|d))?`

// buildCatalogs constructs the six category catalogs in their fixed
// application order.
func buildCatalogs() []catalog {
	return []catalog{
		{
			claimType: model.ClaimTypeDose,
			base:      baseDose,
			patterns: []pattern{
				{
					// Drug name + quantity + unit, with optional dose
					// splitting and route abbreviation.
					name: "drug-quantity-unit",
					re: regexp.MustCompile(`(?i)\b([a-zæøå][a-zæøå0-9-]*)\s+(\d+(?:[.,]\d+)?)\s*(` + doseUnits + `)` +
						`(?:\s*(?:x\s*\d+|fordelt på \d+ doser|delt i \d+ doser))?` +
						`(?:\s+(?:i\.?v\.?|i\.?m\.?|p\.?o\.?|s\.?c\.?|p\.?r\.?|inh\.?))?`),
					valueGroup: 2,
					unitGroup:  3,
				},
				{
					// Quantity-first form: "0.5 mg adrenalin".
					name:       "quantity-unit-drug",
					re:         regexp.MustCompile(`(?i)\b(\d+(?:[.,]\d+)?)\s*(` + doseUnits + `)\s+(?:af\s+)?([a-zæøå][a-zæøå-]{3,})`),
					valueGroup: 1,
					unitGroup:  2,
				},
			},
		},
		{
			claimType: model.ClaimTypeThreshold,
			base:      baseThreshold,
			patterns: []pattern{
				{
					// Named score or vital against a cutoff. The optional
					// "/n" tail covers blood-pressure pairs like 90/60.
					name: "comparator-cutoff",
					re: regexp.MustCompile(`(?i)\b([a-zæøå][a-zæøå0-9-]*)\s*(<=|>=|≤|≥|<|>)\s*(\d+(?:[.,]\d+)?)` +
						`(?:\s*/\s*\d+(?:[.,]\d+)?)?\s*(%|mmhg|mmol/l|/min)?`),
					valueGroup: 3,
					unitGroup:  4,
				},
				{
					// Two-part range: "puls 50-60" / "BT mellem 90 og 100".
					name: "range",
					re: regexp.MustCompile(`(?i)\b([a-zæøå][a-zæøå0-9-]*)\s+(?:mellem\s+)?(\d+(?:[.,]\d+)?)\s*(?:-|–|til|og)\s*\d+(?:[.,]\d+)?\s*(%|mmhg|mmol/l|/min)`),
					valueGroup: 2,
					unitGroup:  3,
				},
			},
		},
		{
			claimType: model.ClaimTypeRecommendation,
			base:      baseRecommendation,
			patterns: []pattern{
				{
					// Modal verb followed within a short token window by an
					// approved action verb.
					name: "modal-action",
					re: regexp.MustCompile(`(?i)\b(?:bør|skal|anbefales|det anbefales(?: at)?|should|must|it is recommended(?: to)?)\b` +
						`(?:\s+\S+){0,4}?\s+` +
						`(?:gives?|administreres|startes?|opstartes|seponeres|kontaktes?|monitoreres|overvåges?|henvises?|behandles?|undersøges?|gentages?|fortsættes?|give|given|administered|started|stopped|monitored|referred|treated|repeated|continued)\b`),
				},
			},
		},
		{
			claimType: model.ClaimTypeContraindication,
			base:      baseContraindication,
			patterns: []pattern{
				{
					// Negated-modal and "contraindicated/never/avoid" forms,
					// matched over the containing clause.
					name: "negated",
					re: regexp.MustCompile(`(?i)[^.;]*\b(?:kontraindiceret|contraindicated|må (?:ikke|aldrig)|bør ikke|aldrig gives|undgå|avoid|never (?:use|give|administer))\b[^.;]*`),
				},
				{
					// Noun form: "en kontraindikation er ...".
					name: "noun-form",
					re:   regexp.MustCompile(`(?i)[^.;]*\b(?:en kontraindikation er|kontraindikation(?:er)?(?::| er| omfatter)|a contraindication is|contraindications? (?:is|are|include))[^.;]*`),
				},
			},
		},
		{
			claimType: model.ClaimTypeRedFlag,
			base:      baseRedFlag,
			patterns: []pattern{
				{
					// Attention prefix at line start.
					name: "attention-prefix",
					re:   regexp.MustCompile(`(?i)^\s*(?:obs|nb|advarsel|warning)[:!].*$`),
				},
				{
					// Warning constructions inside the clause.
					name: "warning-clause",
					re: regexp.MustCompile(`(?i)[^.;]*\b(?:kritisk|critical|akut|urgent|mistanke om|suspected|risiko for|risk of|henvis straks|refer immediately|ring 112|tilkald hjælp|call for help)\b[^.;]*`),
				},
			},
		},
		{
			claimType: model.ClaimTypeAlgorithmStep,
			base:      baseAlgorithmStep,
			patterns: []pattern{
				{
					name: "numbered-marker",
					re:   regexp.MustCompile(`^\s*\d+[.)]\s+.*$`),
				},
				{
					name: "lettered-marker",
					re:   regexp.MustCompile(`(?i)^\s*[a-z]\)\s+.*$`),
				},
				{
					name: "named-step",
					re:   regexp.MustCompile(`(?i)^\s*(?:trin|step|fase|phase|del|part)\s*\d+[.:)]?\s+.*$`),
				},
				{
					name: "ordinal",
					re:   regexp.MustCompile(`(?i)^\s*(?:først|derefter|dernæst|herefter|til sidst|first|second|third|then|finally)[,:]?\s+.*$`),
				},
			},
		},
	}
}
