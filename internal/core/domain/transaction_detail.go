package domain

// TransactionDetail classifies a ledger movement.
type TransactionDetail string

const (
	DetailSale             TransactionDetail = "SALE"
	DetailOwnerInvestment  TransactionDetail = "OWNER_INVESTMENT"
	DetailProductPurchase  TransactionDetail = "PRODUCT_PURCHASE"
	DetailRent             TransactionDetail = "RENT"
	DetailElectricity      TransactionDetail = "ELECTRICITY"
	DetailMachinePurchase  TransactionDetail = "MACHINE_PURCHASE"
	DetailOther            TransactionDetail = "OTHER"
	DetailProfitWithdrawal TransactionDetail = "PROFIT_WITHDRAWAL"
	DetailMoneyInvestment  TransactionDetail = "MONEY_INVESTMENT"
	DetailCostOfGoodsSold  TransactionDetail = "COST_OF_GOODS_SOLD"
	DetailCOGSReversal     TransactionDetail = "COGS_REVERSAL"
	DetailTransfer         TransactionDetail = "TRANSFER"
)

// DetailClassification is the fixed accounting effect of a detail.
type DetailClassification struct {
	AffectsProfit bool
	AffectsCash   bool
}

// detailClassifications is the single source of truth for how a detail
// counts toward profit and cash.
var detailClassifications = map[TransactionDetail]DetailClassification{
	DetailSale:             {AffectsProfit: true, AffectsCash: true},
	DetailOwnerInvestment:  {AffectsProfit: false, AffectsCash: true},
	DetailProductPurchase:  {AffectsProfit: false, AffectsCash: true},
	DetailRent:             {AffectsProfit: true, AffectsCash: true},
	DetailElectricity:      {AffectsProfit: true, AffectsCash: true},
	DetailMachinePurchase:  {AffectsProfit: true, AffectsCash: true},
	DetailOther:            {AffectsProfit: true, AffectsCash: true},
	DetailProfitWithdrawal: {AffectsProfit: true, AffectsCash: true},
	DetailMoneyInvestment:  {AffectsProfit: false, AffectsCash: true},
	DetailCostOfGoodsSold:  {AffectsProfit: true, AffectsCash: false},
	DetailCOGSReversal:     {AffectsProfit: true, AffectsCash: false},
	DetailTransfer:         {AffectsProfit: false, AffectsCash: true},
}

// allDetails keeps a stable order for SQL parameter lists and tests.
var allDetails = []TransactionDetail{
	DetailSale, DetailOwnerInvestment, DetailProductPurchase, DetailRent,
	DetailElectricity, DetailMachinePurchase, DetailOther, DetailProfitWithdrawal,
	DetailMoneyInvestment, DetailCostOfGoodsSold, DetailCOGSReversal, DetailTransfer,
}

// Classify returns the classification of d. Unknown details affect nothing.
func Classify(d TransactionDetail) DetailClassification {
	return detailClassifications[d]
}

// IsValid reports whether d is a known detail.
func (d TransactionDetail) IsValid() bool {
	_, ok := detailClassifications[d]
	return ok
}

// DetailsWhere returns the details whose classification satisfies pred.
func DetailsWhere(pred func(DetailClassification) bool) []TransactionDetail {
	out := make([]TransactionDetail, 0, len(allDetails))
	for _, d := range allDetails {
		if pred(detailClassifications[d]) {
			out = append(out, d)
		}
	}
	return out
}

// ManualEntryDetails are the details an owner may record by hand, mapped to
// the sign they are booked with unless the owner says otherwise.
var ManualEntryDetails = map[TransactionDetail]AmountSign{
	DetailOwnerInvestment: PositiveOnly,
	DetailMoneyInvestment: PositiveOnly,
	DetailRent:            NegativeOnly,
	DetailElectricity:     NegativeOnly,
	DetailMachinePurchase: NegativeOnly,
	DetailOther:           NegativeOnly,
}
