package constants

const (
	ROLE_ADMIN    = "ADMIN"
	ROLE_CUSTOMER = "CUSTOMER"
	ROLE_DELIVERY = "DELIVERY"
)

const (
	CANCELLED_BY_CUSTOMER = "customer"
	CANCELLED_BY_ADMIN    = "admin"
	CANCELLED_BY_SYSTEM   = "system"
)

// Fees applied at checkout. Subtotals are always recomputed from current
// product prices, never taken from the client.
const (
	PLATFORM_FEE         = 5.0
	DELIVERY_FEE_EXPRESS = 50.0
	DELIVERY_FEE_SCHEDULED = 30.0
	DELIVERY_FEE_STANDARD  = 0.0
)

const REFERRAL_REWARD_AMOUNT = 150.0

const (
	DATA_INPUT_IS_NOT_NUMBER = "Input is not a valid number"
	ERROR_INTERNAL_ERROR     = "Internal server error"
)
