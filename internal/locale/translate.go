package locale

// Pick returns the text matching the request language, defaulting to French.
func Pick(language, english, french string) string {
	if NormalizeLanguage(language) == LanguageEnglish {
		if english != "" {
			return english
		}
		return french
	}
	if french != "" {
		return french
	}
	return english
}
