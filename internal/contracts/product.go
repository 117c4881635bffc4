package contracts

type ProductCreateRequest struct {
	Code               string   `json:"code" binding:"required,max=50"`
	Name               string   `json:"name" binding:"required,max=150"`
	AnnualRateBps      int      `json:"annualRateBps" binding:"required,gte=1,lte=100000"`
	MinContribution    *float64 `json:"minContribution" binding:"omitempty,gte=0"`
	NoWithdrawBonusBps *int     `json:"noWithdrawBonusBps" binding:"omitempty,gte=0,lte=100000"`
	Active             *bool    `json:"active" binding:"omitempty"`
}

type ProductUpdateRequest struct {
	Name               *string  `json:"name" binding:"omitempty,max=150"`
	AnnualRateBps      *int     `json:"annualRateBps" binding:"omitempty,gte=1,lte=100000"`
	MinContribution    *float64 `json:"minContribution" binding:"omitempty,gte=0"`
	NoWithdrawBonusBps *int     `json:"noWithdrawBonusBps" binding:"omitempty,gte=0,lte=100000"`
	Active             *bool    `json:"active" binding:"omitempty"`
}
