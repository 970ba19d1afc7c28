// Package categories maps the item type codes of both container formats to
// display names. The tables are fixed at compile time and never modified.
package categories

import "sort"

// Category is one item kind shared by both container formats.
type Category struct {
	// Code is the three digit cloud category code.
	Code string

	// TypeName is the legacy typeName, empty when the legacy format has no equivalent.
	TypeName string

	// Name is the display name.
	Name string
}

var all = []Category{
	{Code: "001", TypeName: "webforms.WebForm", Name: "Login"},
	{Code: "002", TypeName: "wallet.financial.CreditCard", Name: "Credit Card"},
	{Code: "003", TypeName: "securenotes.SecureNote", Name: "Secure Note"},
	{Code: "004", TypeName: "identities.Identity", Name: "Identity"},
	{Code: "005", TypeName: "passwords.Password", Name: "Password"},
	{Code: "099", TypeName: "system.Tombstone", Name: "Tombstone"},
	{Code: "100", TypeName: "wallet.computer.License", Name: "Software License"},
	{Code: "101", TypeName: "wallet.financial.BankAccountUS", Name: "Bank Account"},
	{Code: "102", TypeName: "wallet.computer.Database", Name: "Database"},
	{Code: "103", TypeName: "wallet.government.DriversLicense", Name: "Driver License"},
	{Code: "104", TypeName: "wallet.government.HuntingLicense", Name: "Outdoor License"},
	{Code: "105", TypeName: "wallet.membership.Membership", Name: "Membership"},
	{Code: "106", TypeName: "wallet.government.Passport", Name: "Passport"},
	{Code: "107", TypeName: "wallet.membership.RewardProgram", Name: "Rewards"},
	{Code: "108", TypeName: "wallet.government.SsnUS", Name: "Social Security Number"},
	{Code: "109", TypeName: "wallet.computer.Router", Name: "Router"},
	{Code: "110", TypeName: "wallet.computer.UnixServer", Name: "Server"},
	{Code: "111", TypeName: "wallet.onlineservices.Email.v2", Name: "Email"},
}

var (
	byCode     = make(map[string]Category, len(all))
	byTypeName = make(map[string]Category, len(all))
)

func init() {
	for _, category := range all {
		byCode[category.Code] = category
		if category.TypeName != "" {
			byTypeName[category.TypeName] = category
		}
	}
	// older writers
	byTypeName["system.folder.Regular"] = Category{TypeName: "system.folder.Regular", Name: "Folder"}
	byTypeName["system.folder.SavedSearch"] = Category{TypeName: "system.folder.SavedSearch", Name: "Saved Search"}
	byTypeName["wallet.onlineservices.GenericAccount"] = Category{TypeName: "wallet.onlineservices.GenericAccount", Name: "Generic Account"}
	byTypeName["wallet.onlineservices.Email"] = byCode["111"]
}

// ByCode returns the category for a cloud category code.
func ByCode(code string) (Category, bool) {
	category, ok := byCode[code]
	return category, ok
}

// ByTypeName returns the category for a legacy typeName.
func ByTypeName(typeName string) (Category, bool) {
	category, ok := byTypeName[typeName]
	return category, ok
}

// NameForCode returns the display name of a cloud code, or "Unknown (<code>)".
func NameForCode(code string) string {
	if category, ok := byCode[code]; ok {
		return category.Name
	}
	return "Unknown (" + code + ")"
}

// NameForTypeName returns the display name of a legacy typeName, or the typeName itself.
func NameForTypeName(typeName string) string {
	if category, ok := byTypeName[typeName]; ok {
		return category.Name
	}
	return typeName
}

// All returns every cloud category ordered by code.
func All() []Category {
	out := make([]Category, len(all))
	copy(out, all)
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}
