// Package settings persists the user-editable tunables: vehicle mpg, fuel
// price, and the SMS configuration string.
//
// The core reads the store once at startup and writes fire-and-forget when
// the user edits a value; durability is never awaited on the mutation path.
package settings

import "context"

// Default values applied when the store holds nothing.
const (
	DefaultMPG       = 24.0
	DefaultFuelPrice = 4.79
	DefaultSMSConfig = ""
)

// Values holds the three persisted settings.
type Values struct {
	MPG       float64 `json:"mpg"`
	FuelPrice float64 `json:"fuel_price"`
	SMSConfig string  `json:"sms_config"`
}

// Defaults returns the out-of-the-box settings.
func Defaults() Values {
	return Values{MPG: DefaultMPG, FuelPrice: DefaultFuelPrice, SMSConfig: DefaultSMSConfig}
}

// Store loads and saves settings values. Missing keys fall back to
// defaults; Load never fails just because the store is empty.
type Store interface {
	Load(ctx context.Context) (Values, error)
	Save(ctx context.Context, v Values) error
}
