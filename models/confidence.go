package models

import (
	"context"

	"github.com/proofpay/proofpay_backend/utils"
)

// confidenceReasonLabels maps the known reason codes (attached at ingestion
// time, opaque to this service) to customer-facing copy.
var confidenceReasonLabels = map[string]string{
	"SOURCE_POS":              "Source verified from merchant POS",
	"TOTAL_EXACT":             "Transaction total matches receipt",
	"TIME_EXACT":              "Purchase time matched exactly",
	"DESCRIPTOR_WEAK":         "Merchant descriptor is unclear",
	"TIME_WINDOW_WIDE":        "Purchase time window is wide",
	"AMOUNT_MISMATCH":         "Transaction amount does not match",
	"MERCHANT_VERIFIED":       "Merchant identity verified",
	"PAYMENT_METHOD_VERIFIED": "Payment method verified",
	"ITEMIZATION_COMPLETE":    "Receipt itemization is complete",
	"CROSS_REFERENCE_MATCH":   "Cross-reference data matches",
}

// ConfidenceReasonLabel returns the plain-language label for a reason code.
// Unknown codes fall back to a generic humanization so new ingestion codes
// never break rendering.
func ConfidenceReasonLabel(code string) string {
	if label, ok := confidenceReasonLabels[code]; ok {
		return label
	}
	return utils.HumanizeCode(code)
}

func FormatConfidenceReasons(reasons StringArray) []string {
	labels := make([]string, 0, len(reasons))
	for _, code := range reasons {
		labels = append(labels, ConfidenceReasonLabel(code))
	}
	return labels
}

// IsBelowThreshold decides whether a receipt is hidden from normal customer
// view. A receipt with no confidence score is never below threshold: absence
// of data must not hide a receipt. The comparison is strict, so a score equal
// to the threshold stays visible. A nil threshold means "use the active
// policy threshold" (fetched fresh, never cached).
func IsBelowThreshold(ctx context.Context, receipt *Receipt, threshold *int) bool {
	if receipt == nil || receipt.ConfidenceScore == nil {
		return false
	}
	t := 0
	if threshold != nil {
		t = *threshold
	} else {
		t = GetConfidenceThreshold(ctx)
	}
	return *receipt.ConfidenceScore < t
}
