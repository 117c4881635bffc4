package contracts

type SetupBootstrapRequest struct {
	SetupKey           string   `json:"setupKey" binding:"required"`
	TenantCode         string   `json:"tenantCode" binding:"required,max=50"`
	TenantName         string   `json:"tenantName" binding:"required,max=150"`
	AdminName          string   `json:"adminName" binding:"required,max=150"`
	AdminEmail         string   `json:"adminEmail" binding:"required,email"`
	AdminPassword      string   `json:"adminPassword" binding:"required,min=8"`
	ProductCode        string   `json:"productCode" binding:"omitempty,max=50"`
	ProductName        string   `json:"productName" binding:"omitempty,max=150"`
	AnnualRateBps      int      `json:"annualRateBps" binding:"required,gte=1"`
	MinContribution    *float64 `json:"minContribution" binding:"omitempty,gte=0"`
	NoWithdrawBonusBps *int     `json:"noWithdrawBonusBps" binding:"omitempty,gte=0"`
}
