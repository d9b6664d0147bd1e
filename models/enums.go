package models

// BillingStatus is the classifier outcome for one device/month pair.
type BillingStatus string

const (
	BillingStatusExpired  BillingStatus = "EXPIRED"
	BillingStatusPending  BillingStatus = "PENDING"
	BillingStatusService  BillingStatus = "SERVICE"
	BillingStatusBillable BillingStatus = "BILLABLE"
	BillingStatusError    BillingStatus = "ERROR"

	// Reconciliation-only internal status for vendor-billed devices
	// that have no master record.
	BillingStatusNotInMaster BillingStatus = "NOT_IN_MASTER"
)

type VendorBillingStatus string

const (
	VendorBillingStatusBilled    VendorBillingStatus = "BILLED"
	VendorBillingStatusNotBilled VendorBillingStatus = "NOT_BILLED"
)

type BillingRecommendation string

const (
	BillingRecommendationBilled   BillingRecommendation = "BILLED"
	BillingRecommendationUnbilled BillingRecommendation = "UNBILLED"
)

// Discrepancy is terminal: assigned once per reconciliation record.
type Discrepancy string

const (
	DiscrepancyMatch   Discrepancy = "MATCH"
	DiscrepancyDispute Discrepancy = "DISPUTE"
	DiscrepancyMissing Discrepancy = "MISSING"
)

// UnassignedDivision is the grouping key for devices without a division.
const UnassignedDivision = "Unassigned"
