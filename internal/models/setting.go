package models

// Setting keys used by the application. Values round-trip through JSON
// encoding, so the stored Value column always holds a JSON document.
const (
	SettingSyndicateName              = "syndicateName"
	SettingSyndicateCNPJ              = "syndicateCnpj"
	SettingSyndicateAddress           = "syndicateAddress"
	SettingSyndicatePhone             = "syndicatePhone"
	SettingDeclarationTemplate        = "declarationTemplate"
	SettingPaymentDeclarationTemplate = "paymentDeclarationTemplate"
	SettingSyndicateSignature         = "syndicateSignature"
)

type Setting struct {
	Key   string `gorm:"primaryKey" json:"key"`
	Value string `gorm:"not null" json:"value"` // JSON-encoded
}
