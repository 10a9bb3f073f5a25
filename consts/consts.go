package consts

const (
	// EmergencyChannelID is the android notification channel the mobile app
	// registers for emergency alerts
	EmergencyChannelID = "emergency"

	// CoordinatePrecision is the number of decimals shown for coordinates
	CoordinatePrecision = 4

	DefaultLanguage = "en"
)

// LanguageCodes maps accepted Accept-Language values to i18n bundle names
var LanguageCodes = map[string]string{
	"zh-Hant": "zh_tw",
	"zh-TW":   "zh_tw",
	"en":      "en",
}

// Language returns the bundle name for a language code
func Language(code string) string {
	if lang, ok := LanguageCodes[code]; ok {
		return lang
	}
	return DefaultLanguage
}
