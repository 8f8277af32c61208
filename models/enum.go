package models

type Role string
type Side string
type Reason string

const (
	RoleTrader      Role = "trader"
	RoleFundManager Role = "fund_manager"
	RoleAuditor     Role = "auditor"
	RoleUnknown     Role = "unknown"

	SideBuy  Side = "buy"
	SideSell Side = "sell"

	// The only order type the intake endpoint accepts.
	OrderTypeExchangeLimit = "exchange limit"
)

// Execution options. At most one may be attached to an order.
const (
	OptionMakerOrCancel        = "maker-or-cancel"
	OptionImmediateOrCancel    = "immediate-or-cancel"
	OptionAuctionOnly          = "auction-only"
	OptionIndicationOfInterest = "indication-of-interest"
)

// Reason codes returned in structured error bodies.
const (
	ReasonInvalidSignature     Reason = "InvalidSignature"
	ReasonInvalidNonce         Reason = "InvalidNonce"
	ReasonClientOrderIdTooLong Reason = "ClientOrderIdTooLong"
	ReasonInvalidSymbol        Reason = "InvalidSymbol"
	ReasonInvalidQuantity      Reason = "InvalidQuantity"
	ReasonInvalidOrderType     Reason = "InvalidOrderType"
	ReasonConflictingOptions   Reason = "ConflictingOptions"
	ReasonUnsupportedOption    Reason = "UnsupportedOption"
)

var supportedOptions = map[string]bool{
	OptionMakerOrCancel:        true,
	OptionImmediateOrCancel:    true,
	OptionAuctionOnly:          true,
	OptionIndicationOfInterest: true,
}

// SupportedOption reports whether value is a recognized execution option.
func SupportedOption(value string) bool {
	return supportedOptions[value]
}

// ParseRole maps a stored role string onto a Role. An unrecognized value maps
// to RoleUnknown so it can never widen permissions.
func ParseRole(s string) Role {
	switch Role(s) {
	case RoleTrader, RoleFundManager, RoleAuditor:
		return Role(s)
	default:
		return RoleUnknown
	}
}
