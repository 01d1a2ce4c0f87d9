package i18n

// Translator retrieves localized messages for Issue codes.
// data provides optional metadata to embed in the message (for example,
// "expected" or "key").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	switch t.lang {
	case "ja":
		switch code {
		case "invalid_type":
			if data["expected"] != "" {
				return data["expected"] + " が必要ですが " + data["found"] + " でした"
			}
			return "型が不正です"
		case "key_not_found":
			if data["key"] != "" {
				return "必須キー '" + data["key"] + "' が不足しています"
			}
			return "必須キーが不足しています"
		case "value_not_found":
			if data["expected"] != "" {
				return "値が見つかりません (" + data["expected"] + " が必要です)"
			}
			return "値が見つかりません"
		case "data_corrupted":
			return "データが破損しています"
		case "duplicate_key":
			return "キーが重複しています"
		case "parse_error":
			return "解析エラー"
		case "truncated":
			return "打ち切られました"
		}
	default: // "en"
		switch code {
		case "invalid_type":
			if data["expected"] != "" {
				return "expected " + data["expected"] + ", found " + data["found"]
			}
			return "invalid type"
		case "key_not_found":
			if data["key"] != "" {
				return "required key '" + data["key"] + "' missing"
			}
			return "required key missing"
		case "value_not_found":
			if data["expected"] != "" {
				return "no value available, expected " + data["expected"]
			}
			return "value not found"
		case "data_corrupted":
			return "data corrupted"
		case "duplicate_key":
			return "duplicate key"
		case "parse_error":
			return "parse error"
		case "truncated":
			return "truncated"
		}
	}
	return code
}

var currentTranslator Translator = dictTranslator{lang: "en"}

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	currentTranslator = dictTranslator{lang: lang}
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		currentTranslator = dictTranslator{lang: "en"}
		return
	}
	currentTranslator = tr
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string { return currentTranslator.Message(code, data) }
