package catalog

import (
	"fmt"
	"math"
	"sort"
	"strconv"
)

// Offer is one retailer's priced listing for a product, as loaded from storage.
type Offer struct {
	RetailerID   uint
	RetailerName string
	SiteURL      string
	CurrentPrice float64
	WasPrice     float64
	PerUnitPrice string
	OfferInfo    string
	ProductURL   string
}

// OfferView is the wire shape API consumers compare against. The price and
// saving strings are part of the contract and must not change format.
type OfferView struct {
	RetailerID       string `json:"retailer_id"`
	RetailerName     string `json:"retailer_name"`
	RetailerPrice    string `json:"retailer_price"`
	WasPrice         string `json:"was_price,omitempty"`
	SavingPercentage string `json:"saving_percentage"`
	PerUnitPrice     string `json:"per_unit_price,omitempty"`
	OfferInfo        string `json:"offer_info,omitempty"`
	ProductURL       string `json:"product_url,omitempty"`
	SiteURL          string `json:"site_url,omitempty"`
}

// FormatPrice renders a price with exactly two decimals. A missing price
// (zero or negative) renders as "0.00".
func FormatPrice(p float64) string {
	if p <= 0 {
		return "0.00"
	}
	return fmt.Sprintf("%.2f", p)
}

// SavingPercentage is ceil((rrp - price) * 100 / rrp) with a percent sign.
// Ceiling, not rounding: 14.2% of savings is advertised as 15%. Missing rrp
// or price yields "0%".
func SavingPercentage(rrp, price float64) string {
	if rrp <= 0 || price <= 0 {
		return "0%"
	}
	pct := math.Ceil((rrp - price) * 100 / rrp)
	return strconv.Itoa(int(pct)) + "%"
}

// EmptyOffer is the sentinel best-deal when a product has no offers.
func EmptyOffer() OfferView {
	return OfferView{
		RetailerID:       "",
		RetailerName:     "",
		RetailerPrice:    "0.00",
		SavingPercentage: "0%",
	}
}

// Rank sorts offers ascending by numeric price (stable, so ties keep their
// original order) and returns the formatted views plus the best deal, which
// is the cheapest offer or the zero sentinel when there are none.
func Rank(offers []Offer, rrp float64) ([]OfferView, OfferView) {
	if len(offers) == 0 {
		return []OfferView{}, EmptyOffer()
	}

	ranked := make([]Offer, len(offers))
	copy(ranked, offers)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].CurrentPrice < ranked[j].CurrentPrice
	})

	views := make([]OfferView, 0, len(ranked))
	for _, offer := range ranked {
		view := OfferView{
			RetailerID:       strconv.FormatUint(uint64(offer.RetailerID), 10),
			RetailerName:     offer.RetailerName,
			RetailerPrice:    FormatPrice(offer.CurrentPrice),
			SavingPercentage: SavingPercentage(rrp, offer.CurrentPrice),
			PerUnitPrice:     offer.PerUnitPrice,
			OfferInfo:        offer.OfferInfo,
			ProductURL:       offer.ProductURL,
			SiteURL:          offer.SiteURL,
		}
		if offer.WasPrice > 0 {
			view.WasPrice = FormatPrice(offer.WasPrice)
		}
		views = append(views, view)
	}

	return views, views[0]
}
