package domain

// DefaultLanguage is the language modules are generated in.
const DefaultLanguage = "eng_Latn"

// Language is a supported translation target.
type Language struct {
	// Code is the FLORES-200 style code, e.g. "hin_Deva".
	Code string `json:"code"`

	// Name is the display name.
	Name string `json:"name"`
}

var supportedLanguages = []Language{
	{Code: "eng_Latn", Name: "English"},
	{Code: "hin_Deva", Name: "Hindi"},
	{Code: "ben_Beng", Name: "Bengali"},
	{Code: "tam_Taml", Name: "Tamil"},
	{Code: "tel_Telu", Name: "Telugu"},
	{Code: "mar_Deva", Name: "Marathi"},
	{Code: "bho_Deva", Name: "Bhojpuri"},
	{Code: "mai_Deva", Name: "Maithili"},
	{Code: "mag_Deva", Name: "Magahi"},
	{Code: "san_Deva", Name: "Sanskrit"},
	{Code: "urd_Arab", Name: "Urdu"},
}

// SupportedLanguages returns all supported languages in display order.
func SupportedLanguages() []Language {
	out := make([]Language, len(supportedLanguages))
	copy(out, supportedLanguages)
	return out
}

// IsSupportedLanguage returns true if code is a supported language code.
func IsSupportedLanguage(code string) bool {
	_, ok := LanguageName(code)
	return ok
}

// LanguageName returns the display name for a language code.
func LanguageName(code string) (string, bool) {
	for _, l := range supportedLanguages {
		if l.Code == code {
			return l.Name, true
		}
	}
	return "", false
}
