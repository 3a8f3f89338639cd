package quality

import (
	"fmt"
	"strings"
)

// Report renders the deterministic narrative for one evaluation: an overall
// tier sentence followed by one block per measured parameter, in canonical
// order.
func (e *Evaluator) Report(m MeasurementSet, overall float64) string {
	var b strings.Builder

	b.WriteString("Overall Quality Interpretation: ")
	b.WriteString(overallComment(overall))
	b.WriteString("\n\n")
	b.WriteString("Parameter Details:\n")

	for _, p := range Parameters {
		v, ok := m[p]
		if !ok {
			continue
		}
		spec, ok := e.catalog.Spec(p)
		if !ok {
			continue
		}
		qi, _ := e.catalog.Rate(p, v)
		fmt.Fprintf(&b,
			"\n%s:\n    Measured Value: %v %s\n    Quality Rating (Qi): %.2f (out of 100)\n    Weighted Qi: %.2f\n    Interpretation: %s\n",
			p, v, spec.Unit, qi, qi*spec.Weight, parameterComment(p, v))
	}

	return b.String()
}

// overallComment maps the composite score to its fixed tier sentence.
func overallComment(score float64) string {
	switch {
	case score >= 90:
		return "Excellent water quality. Suitable for all uses."
	case score >= 70:
		return "Good water quality. Generally suitable for most uses."
	case score >= 50:
		return "Fair water quality. May be suitable for some uses but might require treatment for others."
	case score >= 25:
		return "Poor water quality. Requires significant treatment before use."
	default:
		return "Very poor water quality. Not suitable for use without extensive treatment."
	}
}

// parameterComment buckets the raw measured value into a narrative sentence.
// Every supported parameter has its own bucket table; the default covers any
// parameter without one.
func parameterComment(p Parameter, v float64) string {
	switch p {
	case PH:
		switch {
		case v < 6.5:
			return "pH is acidic, which can be corrosive and may affect aquatic life."
		case v <= 8.5:
			return "pH is optimal, well-suited for most aquatic life and uses."
		default:
			return "pH is alkaline, which can be unpleasant to taste and may affect aquatic life."
		}
	case DissolvedOxygen:
		switch {
		case v < 5:
			return "Dissolved oxygen levels are critically low, severely stressing aquatic life."
		case v <= 7:
			return "Dissolved oxygen levels are moderate, sufficient for some aquatic life but could be better."
		default:
			return "Dissolved oxygen levels are high, indicating a healthy and well-oxygenated aquatic ecosystem."
		}
	case Temperature:
		switch {
		case v < 15:
			return "Temperature is low, which can slow down biological processes in aquatic ecosystems."
		case v <= 25:
			return "Temperature is optimal for a wide range of aquatic organisms."
		default:
			return "Temperature is high, which can reduce dissolved oxygen levels and stress aquatic life."
		}
	case Turbidity:
		switch {
		case v <= 1:
			return "Turbidity is very low, indicating exceptionally clear water."
		case v <= 5:
			return "Turbidity is low, indicating clear water."
		case v <= 50:
			return "Turbidity is moderate, which may impact light penetration and visual clarity."
		default:
			return "Turbidity is high, indicating cloudy water with a significant amount of suspended particles."
		}
	case Conductivity:
		switch {
		case v <= 100:
			return "Conductivity is very low, indicating very pure water with minimal dissolved substances."
		case v <= 500:
			return "Conductivity is within a normal range for freshwater systems."
		case v <= 1500:
			return "Conductivity is elevated, suggesting a higher concentration of dissolved substances."
		default:
			return "Conductivity is very high, which can be detrimental to aquatic life and indicates significant dissolved solids."
		}
	case TotalDissolvedSolids:
		switch {
		case v <= 100:
			return "TDS levels are very low, indicating high purity."
		case v <= 500:
			return "TDS levels are acceptable for drinking water."
		case v <= 1000:
			return "TDS levels are moderately high and may affect taste or be noticeable."
		default:
			return "TDS levels are high, potentially making the water unpalatable or unsuitable for certain uses."
		}
	case Nitrate:
		switch {
		case v <= 1:
			return "Nitrate levels are very low and well within safe limits."
		case v <= 5:
			return "Nitrate levels are within acceptable limits."
		case v <= 10:
			return "Nitrate levels are elevated and could contribute to eutrophication in sensitive waters."
		default:
			return "Nitrate levels are high, posing a significant risk of eutrophication and potential health concerns."
		}
	case Phosphate:
		switch {
		case v <= 0.02:
			return "Phosphate levels are very low and well within acceptable limits."
		case v <= 0.1:
			return "Phosphate levels are within acceptable limits."
		case v <= 0.5:
			return "Phosphate levels are elevated and could contribute to algal blooms."
		default:
			return "Phosphate levels are high, significantly increasing the risk of nuisance algal blooms."
		}
	case TotalColiforms:
		switch {
		case v == 0:
			return "Total coliforms are not detected, indicating excellent sanitary quality."
		case v <= 10:
			return "Low levels of total coliforms detected, suggesting a potential for minor contamination."
		default:
			return "High levels of total coliforms, indicating likely fecal contamination and the need for further investigation."
		}
	case EColi:
		if v == 0 {
			return "E. coli is not detected, indicating the water is likely safe from recent fecal contamination."
		}
		return "E. coli is detected, indicating fecal contamination and a potential risk of waterborne illness. This requires immediate attention."
	case BOD:
		switch {
		case v <= 1:
			return "BOD is very low, indicating excellent water quality with minimal organic pollution."
		case v <= 3:
			return "BOD is low, indicating good water quality with minimal organic pollution."
		case v <= 8:
			return "BOD is moderate, suggesting some organic pollution that could impact dissolved oxygen levels."
		default:
			return "BOD is high, indicating significant organic pollution and a potential for oxygen depletion."
		}
	case COD:
		switch {
		case v <= 1:
			return "COD is very low, indicating very clean water with minimal chemical pollutants."
		case v <= 5:
			return "COD is low, indicating minimal chemical pollutants."
		case v <= 20:
			return "COD is moderate, suggesting the presence of some chemical pollutants."
		default:
			return "COD is high, indicating significant chemical pollution that may require treatment."
		}
	case Hardness:
		switch {
		case v <= 60:
			return "Water is soft, which is generally good but may lack some minerals."
		case v <= 120:
			return "Water is moderately hard, generally considered good for consumption."
		case v <= 180:
			return "Water is hard, which may lead to scale buildup."
		default:
			return "Water is very hard, likely to cause significant scale buildup and may affect soap effectiveness."
		}
	case Alkalinity:
		switch {
		case v < 20:
			return "Alkalinity is low, making the water susceptible to pH changes."
		case v <= 100:
			return "Alkalinity is within the optimal range, providing good buffering capacity."
		case v <= 200:
			return "Alkalinity is slightly elevated but generally acceptable."
		default:
			return "Alkalinity is high, which may be associated with high pH and can affect the taste of water."
		}
	case Iron:
		switch {
		case v <= 0.1:
			return "Iron levels are very low, unlikely to cause any issues."
		case v <= 0.3:
			return "Iron levels are low, with a minimal risk of staining or taste issues."
		case v <= 1.0:
			return "Iron levels are moderate and may cause noticeable staining in plumbing fixtures."
		default:
			return "Iron levels are high, likely causing significant staining and a metallic taste."
		}
	default:
		return "No specific comment available for this parameter."
	}
}
