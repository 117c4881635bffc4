package product

import (
	"context"
	"fmt"
	"time"

	"github.com/Azell-Tech/azell-web/internal/pkg/money"

	"github.com/oklog/ulid/v2"
)

// Product es una oferta del catálogo de la organización.
type Product struct {
	Id                 ulid.ULID `json:"id"`
	TenantId           ulid.ULID `json:"tenantId"`
	Code               string    `json:"code"`
	Name               string    `json:"name"`
	TermMonths         int       `json:"termMonths"`
	AnnualRateBps      int       `json:"annualRateBps"`
	NoWithdrawBonusBps *int      `json:"noWithdrawBonusBps,omitempty"`
	MinContribution    *float64  `json:"minContribution,omitempty"`
	Currency           string    `json:"currency"`
	Active             bool      `json:"active"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

func (p *Product) AnnualRate() float64 {
	return money.BpsToFraction(p.AnnualRateBps)
}

func (p *Product) NoWithdrawBonus() *float64 {
	if p.NoWithdrawBonusBps == nil {
		return nil
	}
	v := money.BpsToFraction(*p.NoWithdrawBonusBps)
	return &v
}

// MinimumContribution nunca es menor a 1.
func (p *Product) MinimumContribution() float64 {
	if p.MinContribution == nil || *p.MinContribution < 1 {
		return 1
	}
	return *p.MinContribution
}

func (p *Product) TermLabel() string {
	return fmt.Sprintf("%d meses", p.TermMonths)
}

func (p *Product) RateLabel() string {
	rate := p.AnnualRate()
	return money.FormatPercent(&rate) + " anual"
}

// Label es el texto de las opciones del selector.
func (p *Product) Label() string {
	return fmt.Sprintf("%s (%s, %s)", p.Name, p.TermLabel(), p.RateLabel())
}

type Option struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// CatalogItem es un producto tal como se muestra al cliente.
type CatalogItem struct {
	ID              string   `json:"id"`
	Code            string   `json:"code"`
	Name            string   `json:"name"`
	Status          string   `json:"status"`
	Term            string   `json:"term"`
	Rate            string   `json:"rate"`
	AnnualRate      float64  `json:"annualRate"`
	NoWithdrawBonus *float64 `json:"noWithdrawBonus,omitempty"`
	MinContribution float64  `json:"minContribution"`
	Currency        string   `json:"currency"`
}

const StatusAvailable = "Disponible"

type Repository interface {
	Create(ctx context.Context, p *Product) error
	Update(ctx context.Context, p *Product) error
	GetByID(ctx context.Context, tenantID, id ulid.ULID) (*Product, error)
	GetByCode(ctx context.Context, tenantID ulid.ULID, code string) (*Product, error)
	List(ctx context.Context, tenantID ulid.ULID, activeOnly bool) ([]*Product, error)
	LatestActive(ctx context.Context, tenantID ulid.ULID) (*Product, error)
}

// HoldingLister devuelve los productos que el usuario ya tiene contratados.
type HoldingLister interface {
	ProductIDsByUser(ctx context.Context, tenantID, userID ulid.ULID) ([]ulid.ULID, error)
}
