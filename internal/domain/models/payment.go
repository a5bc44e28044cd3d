package models

// Currency is an ISO 4217 alpha-3 currency code.
type Currency string

const (
	CurrencyAED Currency = "AED"
	CurrencyAUD Currency = "AUD"
	CurrencyBHD Currency = "BHD"
	CurrencyCAD Currency = "CAD"
	CurrencyCHF Currency = "CHF"
	CurrencyEUR Currency = "EUR"
	CurrencyGBP Currency = "GBP"
	CurrencyINR Currency = "INR"
	CurrencyJPY Currency = "JPY"
	CurrencyKRW Currency = "KRW"
	CurrencyKWD Currency = "KWD"
	CurrencyOMR Currency = "OMR"
	CurrencySGD Currency = "SGD"
	CurrencyUSD Currency = "USD"
	CurrencyVND Currency = "VND"
)

// CaptureMethod controls when an authorized amount is captured.
type CaptureMethod string

const (
	CaptureMethodAutomatic CaptureMethod = "automatic"
	CaptureMethodManual    CaptureMethod = "manual"
	CaptureMethodManualMultiple CaptureMethod = "manual_multiple"
)

// AuthenticationType selects the 3DS posture for an attempt.
type AuthenticationType string

const (
	AuthenticationTypeThreeDS AuthenticationType = "three_ds"
	AuthenticationTypeNoThreeDS AuthenticationType = "no_three_ds"
)

// FutureUsage marks whether a payment method is being stored for later
// off-session or on-session use.
type FutureUsage string

const (
	FutureUsageOffSession FutureUsage = "off_session"
	FutureUsageOnSession  FutureUsage = "on_session"
)

// CardNetwork identifies the card scheme.
type CardNetwork string

const (
	CardNetworkVisa       CardNetwork = "Visa"
	CardNetworkMastercard CardNetwork = "Mastercard"
	CardNetworkAmex       CardNetwork = "AmericanExpress"
	CardNetworkDiscover   CardNetwork = "Discover"
	CardNetworkJCB        CardNetwork = "JCB"
	CardNetworkDinersClub CardNetwork = "DinersClub"
	CardNetworkRuPay      CardNetwork = "RuPay"
	CardNetworkUnionPay   CardNetwork = "UnionPay"
)

// Card is raw card payment method data. Sensitive fields are Masked so they
// never leak through logging.
type Card struct {
	Number      Masked
	ExpiryMonth Masked
	ExpiryYear  Masked
	CVC         Masked
	HolderName  string
	Network     CardNetwork
}

// UPIData is a UPI collect payment method.
type UPIData struct {
	VPA Masked
}

// WalletData is a wallet payment method, carrying the wallet-issued token.
type WalletData struct {
	Provider string
	Token    Masked
}

// PaymentMethodData is the payment instrument for an attempt.
// Exactly one of the variants is set.
type PaymentMethodData struct {
	Card   *Card
	UPI    *UPIData
	Wallet *WalletData
	// Token references a previously stored payment method.
	Token string
}

// Address is a postal address plus contact details.
type Address struct {
	FirstName  string
	LastName   string
	Line1      string
	Line2      string
	City       string
	State      string
	Zip        string
	CountryISO string
	Email      string
	Phone      string
}

// BrowserInfo carries the customer browser fingerprint used for 3DS.
type BrowserInfo struct {
	UserAgent      string
	AcceptHeader   string
	Language       string
	ColorDepth     int
	ScreenHeight   int
	ScreenWidth    int
	TimeZoneOffset int
	JavaEnabled    bool
	IPAddress      string
}

// RedirectForm is redirection data for flows that bounce the customer
// through an issuer or connector page.
type RedirectForm struct {
	URL    string
	Method string
	Fields map[string]string
}
