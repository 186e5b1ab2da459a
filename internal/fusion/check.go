package fusion

import (
	"fmt"
	"math"
)

// #region check-types

// CheckMetric captures a single invariant check on a fusion result.
type CheckMetric struct {
	Name  string
	Value float64
	Pass  bool
}

// CheckResult is the output of result validation.
type CheckResult struct {
	Passed  bool
	Metrics []CheckMetric
	Reason  string
}

// #endregion check-types

// #region check

// weightSumTolerance is the allowed drift on the normalized weight sum.
const weightSumTolerance = 1e-6

// Check validates a fusion result against its numeric contracts: weights
// sum to 1, position coordinates and confidence in [0, 1], vector finite.
// Intended for tests and for the cmd tools' sanity output.
func Check(result Result) CheckResult {
	var metrics []CheckMetric
	passed := true
	var failReasons []string

	var weightSum float64
	for _, d := range DomainOrder {
		weightSum += result.Weights[d]
	}
	sumPass := math.Abs(weightSum-1.0) <= weightSumTolerance
	metrics = append(metrics, CheckMetric{Name: "weight_sum", Value: weightSum, Pass: sumPass})
	if !sumPass {
		passed = false
		failReasons = append(failReasons, fmt.Sprintf("weight sum %.9f not within %.0e of 1", weightSum, weightSumTolerance))
	}

	for _, d := range DomainOrder {
		w := result.Weights[d]
		wPass := w >= 0
		metrics = append(metrics, CheckMetric{Name: fmt.Sprintf("weight_%s", d), Value: w, Pass: wPass})
		if !wPass {
			passed = false
			failReasons = append(failReasons, fmt.Sprintf("negative weight for %s", d))
		}
	}

	for i, coord := range result.Position {
		coordPass := coord >= 0 && coord <= 1
		metrics = append(metrics, CheckMetric{Name: fmt.Sprintf("position_%d", i), Value: coord, Pass: coordPass})
		if !coordPass {
			passed = false
			failReasons = append(failReasons, fmt.Sprintf("position coordinate %d out of [0,1]: %.6f", i, coord))
		}
	}

	confPass := result.Confidence >= 0 && result.Confidence <= 1
	metrics = append(metrics, CheckMetric{Name: "confidence", Value: result.Confidence, Pass: confPass})
	if !confPass {
		passed = false
		failReasons = append(failReasons, fmt.Sprintf("confidence out of [0,1]: %.6f", result.Confidence))
	}

	vectorPass := true
	for _, v := range result.Vector {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			vectorPass = false
		}
	}
	metrics = append(metrics, CheckMetric{Name: "vector_finite", Value: boolValue(vectorPass), Pass: vectorPass})
	if !vectorPass {
		passed = false
		failReasons = append(failReasons, "non-finite value in fused vector")
	}

	reason := "all checks passed"
	if !passed {
		reason = fmt.Sprintf("check failed: %s", failReasons[0])
		if len(failReasons) > 1 {
			reason = fmt.Sprintf("check failed: %d checks: %s", len(failReasons), failReasons[0])
		}
	}

	return CheckResult{Passed: passed, Metrics: metrics, Reason: reason}
}

func boolValue(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// #endregion check
