package types

type StoreProvider string

const (
	StoreProviderApple      StoreProvider = "apple"
	StoreProviderGoogle     StoreProvider = "google"
	StoreProviderRevenueCat StoreProvider = "revenuecat"
)

// StoreProduct maps a store product identifier to the tier it unlocks.
// The catalog lives in configuration; product ids are the ones registered
// with the app stores / RevenueCat.
type StoreProduct struct {
	ProductID string        `json:"product_id" mapstructure:"product_id"`
	Provider  StoreProvider `json:"provider" mapstructure:"provider"`
	Tier      Tier          `json:"tier" mapstructure:"tier"`
}
