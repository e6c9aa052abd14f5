package services

import (
	"fmt"
)

// ServiceTier buckets pincodes by delivery speed.
type ServiceTier string

const (
	TierMetro    ServiceTier = "metro"
	TierUrban    ServiceTier = "urban"
	TierStandard ServiceTier = "standard"
)

// CODConfig holds the Cash-on-Delivery rules for the Indian market. Injected
// so environments and tests can override thresholds and pincode lists.
type CODConfig struct {
	MinOrderAmount  float64 // minimum order for COD in INR
	MaxOrderAmount  float64 // maximum COD order in INR
	CODFee          float64 // COD handling fee in INR
	CODFeeThreshold float64 // orders at or above this amount have no COD fee

	// Blocked pincodes (high-risk areas)
	BlockedPincodes []string

	// Service tiers keyed by 3-digit pincode prefix. Metro is checked before
	// urban; first match wins.
	MetroPrefixes []string
	UrbanPrefixes []string
}

// DefaultCODConfig returns the production rules.
func DefaultCODConfig() CODConfig {
	return CODConfig{
		MinOrderAmount:  200,
		MaxOrderAmount:  50000,
		CODFee:          40,
		CODFeeThreshold: 1000,
		BlockedPincodes: nil,
		// Delhi, Mumbai, Chennai, Kolkata, Bangalore, Hyderabad
		MetroPrefixes: []string{"110", "400", "600", "700", "560", "500"},
		// Pune, Ahmedabad, Coimbatore, Kochi, Lucknow, Jaipur
		UrbanPrefixes: []string{"411", "380", "641", "682", "226", "302"},
	}
}

// CODService evaluates COD eligibility, fees and delivery estimates. Pure
// rules over the injected config; no persistence.
type CODService struct {
	config CODConfig
}

// NewCODService creates a COD service with the given rules.
func NewCODService(config CODConfig) *CODService {
	return &CODService{config: config}
}

// CODCheckInput is an eligibility query.
type CODCheckInput struct {
	Pincode     string  `json:"pincode"`
	OrderAmount float64 `json:"orderAmount"`
}

// CODCheckResult reports whether COD is available and at what fee.
type CODCheckResult struct {
	Eligible     bool    `json:"eligible"`
	Reason       string  `json:"reason,omitempty"`
	CODFee       float64 `json:"codFee"`
	MaxCODAmount float64 `json:"maxCodAmount,omitempty"`
}

// CheckEligibility applies the COD rules in order: pincode format, blocklist,
// minimum amount, maximum amount, then fee computation.
func (s *CODService) CheckEligibility(input CODCheckInput) CODCheckResult {
	if !validPincode(input.Pincode) {
		return CODCheckResult{Eligible: false, Reason: "Invalid pincode format"}
	}

	for _, blocked := range s.config.BlockedPincodes {
		if input.Pincode == blocked {
			return CODCheckResult{Eligible: false, Reason: "COD not available in this area"}
		}
	}

	if input.OrderAmount < s.config.MinOrderAmount {
		return CODCheckResult{
			Eligible: false,
			Reason:   fmt.Sprintf("Minimum order amount for COD is ₹%.0f", s.config.MinOrderAmount),
		}
	}

	if input.OrderAmount > s.config.MaxOrderAmount {
		return CODCheckResult{
			Eligible:     false,
			Reason:       fmt.Sprintf("COD not available for orders above ₹%.0f. Please use online payment.", s.config.MaxOrderAmount),
			MaxCODAmount: s.config.MaxOrderAmount,
		}
	}

	// Fee waived at and above the threshold to encourage larger COD baskets.
	fee := s.config.CODFee
	if input.OrderAmount >= s.config.CODFeeThreshold {
		fee = 0
	}

	return CODCheckResult{
		Eligible:     true,
		CODFee:       fee,
		MaxCODAmount: s.config.MaxOrderAmount,
	}
}

// ServiceTier classifies a pincode by its 3-digit prefix. Metro is matched
// before urban since the lists could overlap.
func (s *CODService) ServiceTier(pincode string) ServiceTier {
	if len(pincode) < 3 {
		return TierStandard
	}
	prefix := pincode[:3]

	for _, p := range s.config.MetroPrefixes {
		if prefix == p {
			return TierMetro
		}
	}
	for _, p := range s.config.UrbanPrefixes {
		if prefix == p {
			return TierUrban
		}
	}
	return TierStandard
}

// DeliveryEstimate is a tier-based shipping time.
type DeliveryEstimate struct {
	Days    int    `json:"days"`
	Message string `json:"message"`
}

// EstimatedDelivery maps the pincode's service tier to a delivery window.
func (s *CODService) EstimatedDelivery(pincode string) DeliveryEstimate {
	switch s.ServiceTier(pincode) {
	case TierMetro:
		return DeliveryEstimate{Days: 2, Message: "2-3 business days"}
	case TierUrban:
		return DeliveryEstimate{Days: 4, Message: "4-5 business days"}
	default:
		return DeliveryEstimate{Days: 7, Message: "5-7 business days"}
	}
}

// PincodeValidation is the outcome of a serviceability check.
type PincodeValidation struct {
	Valid             bool `json:"valid"`
	DeliveryAvailable bool `json:"deliveryAvailable"`
	CODAvailable      bool `json:"codAvailable"`
}

// ValidatePincode checks the format and blocklist for a shipping pincode.
func (s *CODService) ValidatePincode(pincode string) PincodeValidation {
	if !validPincode(pincode) {
		return PincodeValidation{}
	}

	codAvailable := true
	for _, blocked := range s.config.BlockedPincodes {
		if pincode == blocked {
			codAvailable = false
			break
		}
	}

	return PincodeValidation{
		Valid:             true,
		DeliveryAvailable: true,
		CODAvailable:      codAvailable,
	}
}

// validPincode requires exactly 6 ASCII digits.
func validPincode(pincode string) bool {
	if len(pincode) != 6 {
		return false
	}
	for _, r := range pincode {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
