package contracts

type InvestmentOpenRequest struct {
	ProductID *string `json:"productId" binding:"omitempty,len=26"`
}

type ContributionRequest struct {
	Amount Amount `json:"amount"`
}

type WithdrawalRequest struct {
	ProductID string `json:"productId" binding:"required,len=26"`
	Amount    Amount `json:"amount"`
}
