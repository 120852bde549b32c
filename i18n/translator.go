package i18n

// Translator retrieves localized messages for error and diagnostic codes.
// data provides optional metadata to embed in the message (for example, "id").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	switch t.lang {
	case "ja":
		switch code {
		case "wrong_kind":
			return "ノードではない値です"
		case "missing_id":
			return "@id がありません"
		case "duplicate_id":
			if id := data["id"]; id != "" {
				return "@id が重複しています: " + id
			}
			return "@id が重複しています"
		case "malstructured_data":
			return "ドキュメントの構造が不正です"
		case "invalid_value":
			return "プロパティ値が不正です"
		case "unsupported_operation":
			return "読み取り専用のため操作できません"
		case "parse_error":
			return "解析エラー"
		case "duplicate_key":
			return "キーが重複しています"
		case "truncated":
			return "打ち切られました"
		case "bad_document":
			return "ドキュメントが不正です"
		case "bad_value":
			return "値が不正です"
		}
	default: // "en"
		switch code {
		case "wrong_kind":
			return "value is not a node"
		case "missing_id":
			return "node has no @id"
		case "duplicate_id":
			if id := data["id"]; id != "" {
				return "duplicate @id " + id
			}
			return "duplicate @id"
		case "malstructured_data":
			return "malstructured data"
		case "invalid_value":
			return "invalid property value"
		case "unsupported_operation":
			return "unsupported operation on a read-only view"
		case "parse_error":
			return "parse error"
		case "duplicate_key":
			return "duplicate key"
		case "truncated":
			return "truncated"
		case "bad_document":
			return "bad document"
		case "bad_value":
			return "bad value"
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
